package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "check <dir>",
		Short: "report sources declared in the wrong package",
		Long: `check scans the Java and Kotlin sources of the project enclosing dir and
reports every file whose package clause differs from the package implied by
its directory. It exits with status 1 when any is found.`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, runCheck),
	}
}

func runCheck(c *Command, args []string) error {
	w, err := c.open()
	if err != nil {
		return err
	}
	defer w.Close()

	proj, err := w.project(args[0])
	if err != nil {
		return err
	}
	ms, err := w.svc.CheckDeclarations(proj)
	if err != nil {
		return err
	}
	for _, m := range ms {
		fmt.Fprintln(c.OutOrStdout(), m.Format(w.display(m.Path)))
	}
	if len(ms) > 0 {
		return fmt.Errorf("%d misplaced source file(s)", len(ms))
	}
	return nil
}
