package codebase

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/quickview/format"
	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/explain"
	"github.com/dhamidi/quickview/java/scanner"
)

const lsName = "quickview"

var lspLog = commonlog.GetLogger("quickview.lsp")

// ServerOptions configure the language server. Codebase options are used
// for every workspace it opens.
type ServerOptions struct {
	Codebase Options
	Workers  int
	Debounce time.Duration
	// Watch starts a file watcher on the workspace root once initialized.
	Watch bool
}

type LSPServer struct {
	opts     ServerOptions
	codebase *Codebase
	scanner  *scanner.Scanner
	watcher  *FileWatcher
	cancel   context.CancelFunc
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string, opts ServerOptions) *LSPServer {
	ls := &LSPServer{
		opts:     opts,
		version:  version,
		codebase: New(opts.Codebase),
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := getRootDir()
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	if err := ls.codebase.SetRoot(rootDir); err != nil {
		return nil, err
	}

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	root := ls.codebase.RootDir()
	bg, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel

	ls.scanner = scanner.New(scanner.Options{
		Extractor:        ls.opts.Codebase.Extractor,
		Exclude:          ls.opts.Codebase.Exclude,
		RespectGitignore: ls.opts.Codebase.RespectGitignore,
		Workers:          ls.opts.Workers,
	})
	go ls.reindex(bg)

	if ls.opts.Watch {
		filter, err := scanner.NewFilter(root, ls.opts.Codebase.Exclude, ls.opts.Codebase.RespectGitignore)
		if err != nil {
			return err
		}
		w, err := NewFileWatcher(ls.codebase, root, filter, ls.opts.Debounce)
		if err != nil {
			return err
		}
		w.SetCallback(func([]string) { go ls.reindex(bg) })
		ls.watcher = w
		go func() {
			if err := w.Start(bg); err != nil && !errors.Is(err, context.Canceled) {
				lspLog.Errorf("watcher stopped: %v", err)
			}
		}()
	}
	return nil
}

// reindex scans the workspace and, once the scan completes, lets
// inheritance lookups use its type index.
func (ls *LSPServer) reindex(ctx context.Context) {
	id := ls.scanner.Submit(scanner.Request{Root: ls.codebase.RootDir()})
	if id == "" {
		return
	}
	result, err := ls.scanner.Wait(ctx, id)
	if err != nil {
		return
	}
	if result.Status == scanner.StatusCompleted {
		ls.codebase.Session().SetIndex(ls.scanner)
		lspLog.Infof("indexed %d files under %s", len(result.Files), result.Request.Root)
	}
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.cancel != nil {
		ls.cancel()
	}
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	if ls.scanner != nil {
		ls.scanner.Close()
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.RemoveFile(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.codebase.ScanFile(path); err != nil {
		lspLog.Warningf("%v", err)
	}
	ls.codebase.Session().Invalidate()
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	hover, err := ls.Hover(context.Background(), path, params.Position)
	if errors.Is(err, ErrNoInsight) || errors.Is(err, ErrUnknownFile) {
		return nil, nil
	}
	return hover, err
}

// Hover explains the element at pos in path.
func (ls *LSPServer) Hover(ctx context.Context, path string, pos protocol.Position) (*protocol.Hover, error) {
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, ErrUnknownFile
	}
	text := file.Unit.Text
	decl, err := ls.codebase.InsightAt(ctx, path, OffsetOf(text, pos))
	if err != nil {
		return nil, err
	}
	x := explain.Describe(ls.codebase.Knowledge(), decl)
	hover := &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: format.Markdown(x),
		},
	}
	if !decl.Inherited {
		r := rangeOf(text, decl.Start, decl.End+1)
		hover.Range = &r
	}
	return hover, nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	return DocumentSymbols(file), nil
}

// DocumentSymbols lists the declarations of file for an editor outline.
func DocumentSymbols(file *FileInfo) []protocol.DocumentSymbol {
	text := file.Unit.Text
	symbols := make([]protocol.DocumentSymbol, 0, len(file.Declarations))
	for _, d := range file.Declarations {
		kind := protocol.SymbolKindMethod
		if d.Constructor {
			kind = protocol.SymbolKindConstructor
		}
		detail := d.Signature()
		full := rangeOf(text, d.Start, d.End+1)
		selection := full
		if i := nameOffset(text, d); i >= 0 {
			selection = rangeOf(text, i, i+len(d.Name))
		}
		symbols = append(symbols, protocol.DocumentSymbol{
			Name:           d.Name,
			Detail:         &detail,
			Kind:           kind,
			Range:          full,
			SelectionRange: selection,
		})
	}
	return symbols
}

func nameOffset(text string, d java.Declaration) int {
	end := min(d.End, len(text))
	if d.Start < 0 || d.Start >= end {
		return -1
	}
	i := strings.Index(text[d.Start:end], d.Name+"(")
	if i < 0 {
		i = strings.Index(text[d.Start:end], d.Name)
	}
	if i < 0 {
		return -1
	}
	return d.Start + i
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}

func getRootDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
