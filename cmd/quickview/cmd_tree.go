package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/format"
	"github.com/dhamidi/quickview/java/scanner"
)

func newTreeCmd(g *globals) *cobra.Command {
	var outputFormat string
	var query string

	cmd := &cobra.Command{
		Use:   "tree [root]",
		Short: "Show the Java files below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			root := rootArg(g, args)
			filter, err := g.cfg.NewFilter(root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			tree, err := scanner.LoadTree(ctx, root, filter, query)
			if err != nil {
				return err
			}
			return format.NewTreeEncoder(os.Stdout, f).Encode(tree)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")
	cmd.Flags().StringVar(&query, "filter", "", "only show files whose name contains this text, ignoring case")

	return cmd
}

// rootArg returns the directory named on the command line, the configured
// root, or the current directory.
func rootArg(g *globals, args []string) string {
	switch {
	case len(args) > 0:
		return args[0]
	case g.cfg.Root != "":
		return g.cfg.Root
	default:
		return "."
	}
}
