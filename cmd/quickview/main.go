package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/quickview/config"
	"github.com/dhamidi/quickview/java/codebase"
)

const version = "0.1.0"

// globals are the flags shared by every command.
type globals struct {
	configPath string
	verbosity  int
	root       string
	extractor  string
	noColor    bool

	cfg *config.Config
}

func main() {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "quickview",
		Short:         "Explain the methods and calls of Java source files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", "", "config file (default: quickview.toml, .quickview.toml, quickview.yaml, quickview.yml or quickview.json in the current directory)")
	flags.CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&g.root, "root", "", "project root for inheritance lookups")
	flags.StringVar(&g.extractor, "extractor", "", "declaration extractor (regex, treesitter)")
	flags.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(newOutlineCmd(g))
	rootCmd.AddCommand(newExplainCmd(g))
	rootCmd.AddCommand(newInheritedCmd(g))
	rootCmd.AddCommand(newIndexCmd(g))
	rootCmd.AddCommand(newTreeCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (g *globals) load() error {
	var cfg *config.Config
	var err error
	if g.configPath != "" {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.LoadOrDefault(".")
	}
	if err != nil {
		return err
	}

	if g.root != "" {
		cfg.Root = g.root
	}
	if g.extractor != "" {
		cfg.Extractor = g.extractor
	}
	if g.noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	verbosity := cfg.Log.Verbosity + g.verbosity
	if cfg.Log.File != "" {
		commonlog.Configure(verbosity, &cfg.Log.File)
	} else {
		commonlog.Configure(verbosity, nil)
	}
	g.cfg = cfg
	return nil
}

// codebaseOptions turns the configuration into codebase options.
func (g *globals) codebaseOptions() (codebase.Options, error) {
	extractor, err := g.cfg.NewExtractor()
	if err != nil {
		return codebase.Options{}, err
	}
	return codebase.Options{
		Extractor:        extractor,
		Exclude:          g.cfg.Exclude,
		RespectGitignore: g.cfg.RespectGitignore,
	}, nil
}

// openFile loads path into a new codebase rooted at the configured root,
// or at the file's directory when none is configured.
func (g *globals) openFile(path string) (*codebase.Codebase, string, error) {
	opts, err := g.codebaseOptions()
	if err != nil {
		return nil, "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	root := g.cfg.Root
	if root == "" {
		root = filepath.Dir(abs)
	}

	c := codebase.New(opts)
	if err := c.SetRoot(root); err != nil {
		return nil, "", err
	}
	if err := c.ScanFile(abs); err != nil {
		return nil, "", err
	}
	return c, abs, nil
}
