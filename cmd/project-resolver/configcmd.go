package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"project-resolver/internal/config"
)

func newConfigCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  mkRunE(c, runConfig),
	}
	cmd.Flags().Bool("init", false, "write a commented default configuration file if none exists")
	return cmd
}

func runConfig(c *Command, args []string) error {
	if initFile, _ := c.Flags().GetBool("init"); initFile {
		path, _ := c.root.PersistentFlags().GetString(flagConfig)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := os.WriteFile(path, []byte(config.DefaultYAML), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "wrote %s\n", path)
		return nil
	}
	data, err := c.cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = c.OutOrStdout().Write(data)
	return err
}
