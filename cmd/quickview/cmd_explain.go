package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/format"
	"github.com/dhamidi/quickview/java/codebase"
	"github.com/dhamidi/quickview/java/explain"
)

func newExplainCmd(g *globals) *cobra.Command {
	var (
		outputFormat string
		offset       int
		line, col    int
		selection    int
	)

	cmd := &cobra.Command{
		Use:   "explain <file>",
		Short: "Explain the method or call at a position in a Java file",
		Long: `Explain the method or call at a position in a Java file.

The position is either a byte offset (--offset) or a 1-based line and
column (--line, --col). With --length the position starts a selection of
that many bytes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "" {
				outputFormat = g.cfg.Output.Format
			}
			f, err := format.ParseFormat(outputFormat)
			if err != nil {
				return err
			}
			c, path, err := g.openFile(args[0])
			if err != nil {
				return err
			}

			pos := offset
			if cmd.Flags().Changed("line") {
				pos, err = codebase.LineColumnOffset(c.GetFile(path).Unit.Text, line, col)
				if err != nil {
					return err
				}
			} else if !cmd.Flags().Changed("offset") {
				return fmt.Errorf("either --offset or --line and --col are required")
			}

			var x explain.Explanation
			if selection > 0 {
				x, err = c.ExplainRange(context.Background(), path, pos, pos+selection)
			} else {
				x, err = c.ExplainAt(context.Background(), path, pos)
			}
			if errors.Is(err, codebase.ErrNoInsight) {
				return fmt.Errorf("nothing to explain at %s:%d", args[0], pos)
			}
			if err != nil {
				return err
			}
			return format.NewEncoder(f, os.Stdout, g.cfg.Output.Color).Encode(x)
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (text, markdown, json, yaml); defaults to output.format")
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "byte offset")
	cmd.Flags().IntVarP(&line, "line", "l", 1, "1-based line")
	cmd.Flags().IntVar(&col, "col", 1, "1-based byte column")
	cmd.Flags().IntVar(&selection, "length", 0, "length of a selection starting at the position")

	return cmd
}
