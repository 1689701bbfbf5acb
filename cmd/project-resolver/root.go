package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"project-resolver/internal/config"
	"project-resolver/internal/logging"
)

const (
	flagConfig    = "config"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagZip       = "zip"
)

// Command carries the state shared by every subcommand.
type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command
	cfg  *config.Config
	log  *slog.Logger
}

type runFunction func(c *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "project-resolver",
		Short: "project-resolver finds build projects and resolves packages.",
		Long: `project-resolver classifies locations of a source tree against the build
projects found in it (Maven pom.xml, Gradle build.gradle[.kts], Go go.mod).

A path belongs to a package only when it lies beneath a source root of a
project that carries a build descriptor. Everything else resolves to no
package.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return c.setup()
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range []*cobra.Command{
		newResolveCmd(c),
		newProjectCmd(c),
		newPackagesCmd(c),
		newCheckCmd(c),
		newNewPackageCmd(c),
		newConfigCmd(c),
		newVersionCmd(c),
	} {
		cmd.AddCommand(sub)
	}
	return c
}

func addGlobalFlags(f *pflag.FlagSet) {
	f.String(flagConfig, config.FileName, "configuration file")
	f.String(flagLogLevel, "", "log level: debug, info, warn or error (overrides config)")
	f.String(flagLogFormat, "", "log format: text or json (overrides config)")
	f.String(flagZip, "", "resolve entry names inside this zip archive instead of host paths")
}

// setup loads the configuration and builds the logger. An explicitly named
// configuration file must exist.
func (c *Command) setup() error {
	flags := c.root.PersistentFlags()
	path, _ := flags.GetString(flagConfig)
	var err error
	if flags.Changed(flagConfig) {
		c.cfg, err = config.Read(path)
	} else {
		c.cfg, err = config.Load(path)
	}
	if err != nil {
		return err
	}

	level, format := c.cfg.Log.Level, c.cfg.Log.Format
	if v, _ := flags.GetString(flagLogLevel); v != "" {
		level = v
	}
	if v, _ := flags.GetString(flagLogFormat); v != "" {
		format = v
	}
	c.log, err = logging.New(c.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}
	if c.cfg.Source != "" {
		c.log.Debug("loaded configuration", "file", c.cfg.Source)
	}
	return nil
}

// Main runs the project-resolver tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	c := newRootCmd()
	c.root.SetArgs(args)
	return c.root.ExecuteContext(ctx)
}
