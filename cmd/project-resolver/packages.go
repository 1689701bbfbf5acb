package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"project-resolver/internal/cache"
	"project-resolver/internal/diff"
	"project-resolver/internal/validate"
)

func newPackagesCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages <dir>",
		Short: "list the packages of the project enclosing dir",
		Long: `packages lists every package of the project enclosing dir, the default
package first. A snapshot of the listing is kept in the cache directory so
that --diff can report what changed since the previous run.`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runPackages),
	}
	cmd.Flags().Bool("diff", false, "print changes since the previous snapshot instead of the listing")
	cmd.Flags().Bool("no-save", false, "do not update the snapshot")
	cmd.Flags().Bool("reset", false, "discard the previous snapshot first")
	return cmd
}

func runPackages(c *Command, args []string) error {
	w, err := c.open()
	if err != nil {
		return err
	}
	defer w.Close()

	proj, err := w.project(args[0])
	if err != nil {
		return err
	}
	pkgs, err := w.svc.ListPackages(proj)
	if err != nil {
		return err
	}
	curr, err := cache.Take(w.fsys, proj, pkgs, time.Now())
	if err != nil {
		return err
	}

	dir := cache.CacheDir(c.cfg.CacheDir, proj.Root)
	if reset, _ := c.Flags().GetBool("reset"); reset {
		if err := cache.Clear(dir); err != nil {
			return err
		}
	}
	prev, err := cache.Load(dir)
	if err != nil {
		return err
	}
	if prev != nil {
		if err := validate.Snapshot(prev); err != nil {
			c.log.Warn("ignoring invalid snapshot", "dir", dir, "err", err)
			prev = nil
		}
	}

	out := c.OutOrStdout()
	if showDiff, _ := c.Flags().GetBool("diff"); showDiff {
		var body string
		if prev == nil {
			body, _ = diff.Added("current", curr.Listing(), diff.Options{})
		} else {
			body, _ = diff.Unified("previous", "current", prev.Listing(), curr.Listing(), diff.Options{})
		}
		fmt.Fprint(out, body)
		d := cache.BuildDelta(prev, curr)
		for _, r := range d.Renamed {
			fmt.Fprintf(out, "renamed: %s -> %s\n", r.From, r.To)
		}
		for _, ch := range d.Changed {
			fmt.Fprintf(out, "changed: %s\n", ch.Name)
		}
	} else {
		for _, pkg := range pkgs {
			fmt.Fprintln(out, pkg.Caption)
		}
	}

	if noSave, _ := c.Flags().GetBool("no-save"); noSave {
		return nil
	}
	if err := cache.Save(dir, curr); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	c.log.Debug("saved snapshot", "dir", dir, "packages", len(curr.Packages))
	return nil
}
