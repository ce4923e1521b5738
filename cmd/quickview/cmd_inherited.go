package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/format"
)

func newInheritedCmd(g *globals) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "inherited <file>",
		Short: "List the methods a Java file inherits from supertypes under the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			c, path, err := g.openFile(args[0])
			if err != nil {
				return err
			}

			decls, err := c.Session().InheritedFor(context.Background(), c.GetFile(path).Unit)
			if err != nil {
				return err
			}
			return format.NewOutlineEncoder(os.Stdout, f).Encode(decls)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, text, markdown, json, yaml)")

	return cmd
}
