package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/dhamidi/quickview/java/scanner"
)

func newIndexCmd(g *globals) *cobra.Command {
	var listTypes bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "index [root]",
		Short: "Scan a source tree and report the Java types it declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(rootArg(g, args))
			if err != nil {
				return err
			}
			extractor, err := g.cfg.NewExtractor()
			if err != nil {
				return err
			}

			s := scanner.New(scanner.Options{
				Extractor:        extractor,
				Exclude:          g.cfg.Exclude,
				RespectGitignore: g.cfg.RespectGitignore,
				Workers:          g.cfg.Index.Workers,
			})
			defer s.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			fmt.Printf("Scanning %s...\n", root)
			id := s.Submit(scanner.Request{Root: root})
			result, err := waitWithProgress(ctx, s, id, quiet || !g.cfg.Output.Color)
			if err != nil {
				s.Cancel(id)
				return err
			}

			switch result.Status {
			case scanner.StatusFailed:
				return fmt.Errorf("scan failed: %s", result.Error)
			case scanner.StatusCancelled:
				return fmt.Errorf("scan cancelled")
			}

			if !g.cfg.Output.Color {
				color.NoColor = true
			}
			green := color.New(color.FgGreen, color.Bold).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()

			decls := 0
			for _, f := range result.Files {
				decls += len(f.Declarations)
			}
			fmt.Printf("%s %d files, %d types, %d declarations in %s\n",
				green("Indexed"), len(result.Files), len(result.Types), decls,
				result.EndedAt.Sub(result.StartedAt).Round(time.Millisecond))
			for _, e := range result.Errors {
				fmt.Printf("%s %s\n", yellow("skipped"), e)
			}

			if listTypes {
				names := make([]string, 0, len(result.Types))
				for name := range result.Types {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					rel, err := filepath.Rel(root, result.Types[name])
					if err != nil {
						rel = result.Types[name]
					}
					fmt.Printf("%s\t%s\n", name, rel)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&listTypes, "list", "l", false, "list every type with the file declaring it")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show a progress bar")

	return cmd
}

// waitWithProgress polls the scan until it finishes, drawing a progress bar
// once the number of files is known.
func waitWithProgress(ctx context.Context, s *scanner.Scanner, id string, quiet bool) (*scanner.Result, error) {
	if quiet {
		return s.Wait(ctx, id)
	}

	var bar *progressbar.ProgressBar
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		result, ok := s.Get(id)
		if !ok {
			return nil, fmt.Errorf("scan %s: %w", id, scanner.ErrUnknownScan)
		}
		if bar == nil && result.Total > 0 {
			bar = progressbar.NewOptions(result.Total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)
		}
		if bar != nil {
			_ = bar.Set(result.Progress)
		}
		if result.Done() {
			if bar != nil && result.Status == scanner.StatusCompleted {
				_ = bar.Finish()
			}
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
