package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project <path>",
		Short: "print the project enclosing a path",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, runProject),
	}
	cmd.Flags().Bool("json", false, "print the project as JSON")
	return cmd
}

func runProject(c *Command, args []string) error {
	w, err := c.open()
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.path(args[0])
	if err != nil {
		return err
	}
	proj, err := w.svc.ResolveProject(p)
	if err != nil {
		return err
	}
	if asJSON, _ := c.Flags().GetBool("json"); asJSON {
		return printJSON(c, proj)
	}
	out := c.OutOrStdout()
	if proj == nil {
		fmt.Fprintf(out, "%s: no project\n", args[0])
		return nil
	}
	fmt.Fprintf(out, "root: %s\n", w.display(proj.Root))
	fmt.Fprintf(out, "descriptor: %s\n", w.display(proj.Descriptor))
	fmt.Fprintf(out, "build: %s\n", proj.Info.Build)
	fmt.Fprintf(out, "module: %s\n", proj.Name())
	if proj.Info.Group != "" {
		fmt.Fprintf(out, "group: %s\n", proj.Info.Group)
	}
	if proj.Info.Version != "" {
		fmt.Fprintf(out, "version: %s\n", proj.Info.Version)
	}
	for _, r := range proj.Layout.Roots {
		fmt.Fprintf(out, "root %s: %s\n", r.Kind, r.Dir)
	}
	return nil
}
