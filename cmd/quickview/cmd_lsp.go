package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/java/codebase"
)

func newLSPCmd(g *globals) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.codebaseOptions()
			if err != nil {
				return err
			}
			server := codebase.NewLSPServer(version, codebase.ServerOptions{
				Codebase: opts,
				Workers:  g.cfg.Index.Workers,
				Debounce: g.cfg.Debounce(),
				Watch:    watch,
			})
			return server.RunStdio()
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", true, "watch the workspace for changes")

	return cmd
}
