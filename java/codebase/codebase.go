package codebase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/explain"
	"github.com/dhamidi/quickview/java/inherit"
	"github.com/dhamidi/quickview/java/knowledge"
)

var (
	// ErrUnknownFile is returned for paths that were never loaded.
	ErrUnknownFile = errors.New("unknown file")
	// ErrNoInsight means nothing around the offset can be explained.
	ErrNoInsight = errors.New("no insight")
)

type Options struct {
	Extractor        java.Extractor
	Knowledge        *knowledge.Base
	Exclude          []string
	RespectGitignore bool
}

// Codebase holds the open files of one project and answers questions about
// them.
type Codebase struct {
	mu      sync.RWMutex
	opts    Options
	files   map[string]*FileInfo
	session *inherit.Session
}

type FileInfo struct {
	Path         string
	Unit         java.SourceUnit
	Declarations []java.Declaration
	Fingerprint  uint64
}

func New(opts Options) *Codebase {
	if opts.Extractor == nil {
		opts.Extractor = java.RegexExtractor{}
	}
	if opts.Knowledge == nil {
		opts.Knowledge = knowledge.Default()
	}
	return &Codebase{
		opts:  opts,
		files: make(map[string]*FileInfo),
		session: inherit.NewSession(inherit.Options{
			Extractor:        opts.Extractor,
			Knowledge:        opts.Knowledge,
			Exclude:          opts.Exclude,
			RespectGitignore: opts.RespectGitignore,
		}),
	}
}

func (c *Codebase) RootDir() string {
	return c.session.Root()
}

// SetRoot points inheritance lookups at root and drops their caches.
func (c *Codebase) SetRoot(root string) error {
	return c.session.SetRoot(root)
}

func (c *Codebase) Session() *inherit.Session {
	return c.session
}

func (c *Codebase) Knowledge() *knowledge.Base {
	return c.opts.Knowledge
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read java file: %w", err)
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile stores content for path and extracts its declarations. It
// reports false when the content is unchanged since the last update.
func (c *Codebase) UpdateFile(path string, content []byte) bool {
	sum := xxhash.Sum64(content)
	c.mu.RLock()
	old, ok := c.files[path]
	c.mu.RUnlock()
	if ok && old.Fingerprint == sum {
		return false
	}

	unit := java.NewSourceUnit(path, string(content))
	info := &FileInfo{
		Path:         path,
		Unit:         unit,
		Declarations: c.opts.Extractor.Extract(unit),
		Fingerprint:  sum,
	}
	c.mu.Lock()
	c.files[path] = info
	c.mu.Unlock()
	return true
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Paths returns the loaded paths in lexical order.
func (c *Codebase) Paths() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (c *Codebase) file(path string) (*FileInfo, error) {
	f := c.GetFile(path)
	if f == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFile)
	}
	return f, nil
}

// Outline returns the declarations of path followed by those it inherits.
func (c *Codebase) Outline(ctx context.Context, path string) ([]java.Declaration, error) {
	f, err := c.file(path)
	if err != nil {
		return nil, err
	}
	inherited, err := c.session.InheritedFor(ctx, f.Unit)
	if err != nil {
		return nil, err
	}
	out := make([]java.Declaration, 0, len(f.Declarations)+len(inherited))
	out = append(out, f.Declarations...)
	return append(out, inherited...), nil
}

// InsightAt finds what the offset in path refers to: a call matched to a
// known declaration or the bare call, else the declaration around the
// offset, else a declaration or library method named by the word there.
func (c *Codebase) InsightAt(ctx context.Context, path string, offset int) (java.Declaration, error) {
	return c.insight(ctx, path, offset, -1, -1)
}

// InsightRange is InsightAt for a selection; the caret sits at end.
func (c *Codebase) InsightRange(ctx context.Context, path string, start, end int) (java.Declaration, error) {
	return c.insight(ctx, path, end, start, end)
}

func (c *Codebase) ExplainAt(ctx context.Context, path string, offset int) (explain.Explanation, error) {
	decl, err := c.InsightAt(ctx, path, offset)
	if err != nil {
		return explain.Explanation{}, err
	}
	return explain.Describe(c.opts.Knowledge, decl), nil
}

func (c *Codebase) ExplainRange(ctx context.Context, path string, start, end int) (explain.Explanation, error) {
	decl, err := c.InsightRange(ctx, path, start, end)
	if err != nil {
		return explain.Explanation{}, err
	}
	return explain.Describe(c.opts.Knowledge, decl), nil
}

func (c *Codebase) insight(ctx context.Context, path string, caret, selStart, selEnd int) (java.Declaration, error) {
	f, err := c.file(path)
	if err != nil {
		return java.Declaration{}, err
	}
	known, err := c.Outline(ctx, path)
	if err != nil {
		return java.Declaration{}, err
	}
	unit := f.Unit

	site := java.Locate(unit, caret)
	if d, ok := c.match(site, known); ok {
		return d, nil
	}
	if site != nil {
		return site.Declaration, nil
	}

	for _, d := range f.Declarations {
		if d.Contains(caret) {
			return d, nil
		}
	}

	if selEnd > selStart {
		site := java.Locate(unit, max(selEnd-1, selStart))
		if d, ok := c.match(site, known); ok {
			return d, nil
		}
		if site == nil {
			site = java.Locate(unit, selStart)
		}
		if d, ok := c.match(site, known); ok {
			return d, nil
		}
		if site == nil {
			if d, ok := c.byName(unit, selEnd-1, known); ok {
				return d, nil
			}
			if d, ok := c.byName(unit, selStart, known); ok {
				return d, nil
			}
		}
	}

	if d, ok := c.byName(unit, caret, known); ok {
		return d, nil
	}
	return java.Declaration{}, ErrNoInsight
}

// match finds the known declaration a call site refers to: same name, same
// number of arguments and owners that agree when both are known.
func (c *Codebase) match(site *java.InvocationSite, known []java.Declaration) (java.Declaration, bool) {
	if site == nil {
		return java.Declaration{}, false
	}
	owner := c.opts.Knowledge.CanonicalOwner(site.Owner)
	for _, d := range known {
		if d.Name != site.Name {
			continue
		}
		other := c.opts.Knowledge.CanonicalOwner(d.Owner)
		if owner != "" && other != "" && owner != other {
			continue
		}
		if len(d.Parameters) == len(site.Parameters) {
			return d, true
		}
	}
	return java.Declaration{}, false
}

func (c *Codebase) byName(unit java.SourceUnit, offset int, known []java.Declaration) (java.Declaration, bool) {
	word, start, end, ok := java.WordAt(unit.Text, offset)
	if !ok {
		return java.Declaration{}, false
	}
	for _, d := range known {
		if d.Name == word {
			return d, true
		}
	}
	synthetic := java.Declaration{
		Name:  word,
		Start: start,
		End:   end,
		Line:  java.LineAt(unit.Text, start),
		Owner: java.OwnerBefore(unit, start),
	}
	// A bare word is only worth explaining when something specific is
	// known about it.
	if explain.Summarize(c.opts.Knowledge, synthetic) != explain.GenericSummary {
		return synthetic, true
	}
	return java.Declaration{}, false
}
