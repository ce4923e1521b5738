package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/format"
)

func newOutlineCmd(g *globals) *cobra.Command {
	var outputFormat string
	var inherited bool

	cmd := &cobra.Command{
		Use:   "outline <file>",
		Short: "List the methods and constructors declared in a Java file",
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

			decls := c.GetFile(path).Declarations
			if inherited {
				decls, err = c.Outline(context.Background(), path)
				if err != nil {
					return fmt.Errorf("outline: %w", err)
				}
			}
			return format.NewOutlineEncoder(os.Stdout, f).Encode(decls)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "output format (table, text, markdown, json, yaml)")
	cmd.Flags().BoolVarP(&inherited, "inherited", "i", false, "include methods inherited from supertypes under the root")

	return cmd
}
