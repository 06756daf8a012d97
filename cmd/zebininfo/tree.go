package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/zebin"
	"github.com/wippyai/zebin/errors"
	"github.com/wippyai/zebin/yaml"
)

func newTreeCmd(g *globalFlags) *cobra.Command {
	var find string
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the parsed .ze_info node tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			text, err := zebin.ZeInfoText(data)
			if err != nil {
				return err
			}
			var w errors.Warnings
			p, err := yaml.Parse(text, &w)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, msg := range w.List() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
			}

			if find == "" {
				return p.Dump(out)
			}
			id, ok := p.FindNodeWithKeyDFS(find)
			if !ok {
				return errors.NotFound(errors.PhaseQuery, "key", find)
			}
			fmt.Fprintf(out, "%s: %s\n", strings.Join(p.Path(id), "."), p.ReadValue(id))
			return nil
		},
	}
	cmd.Flags().StringVar(&find, "find", "", "Print the path and value of the first node with this key")
	return cmd
}
