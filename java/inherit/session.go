// Package inherit collects the methods a Java type inherits from supertypes
// declared in other files of the same project.
package inherit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/knowledge"
	"github.com/dhamidi/quickview/java/scanner"
)

var log = commonlog.GetLogger("quickview.inherit")

// Index maps a simple type name to the file declaring it.
type Index interface {
	FindType(name string) (string, bool)
}

type Options struct {
	Extractor        java.Extractor
	Knowledge        *knowledge.Base
	Exclude          []string
	RespectGitignore bool
}

// typeEntry is what one supertype file contributes: its own declarations,
// already tagged as inherited, and the names of its parents.
type typeEntry struct {
	decls   []java.Declaration
	parents []string
}

// Session resolves inherited declarations below one project root. Its
// caches are cleared whenever the root changes.
type Session struct {
	mu         sync.RWMutex
	opts       Options
	root       string
	filter     *scanner.Filter
	index      Index
	generation uint64
	files      map[string]string
	types      map[string]typeEntry
	group      singleflight.Group
}

func NewSession(opts Options) *Session {
	if opts.Extractor == nil {
		opts.Extractor = java.RegexExtractor{}
	}
	if opts.Knowledge == nil {
		opts.Knowledge = knowledge.Default()
	}
	return &Session{
		opts:  opts,
		files: make(map[string]string),
		types: make(map[string]typeEntry),
	}
}

// Root returns the current project root, "" if none is set.
func (s *Session) Root() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// SetRoot switches the session to root and drops everything cached for the
// previous one. Loads still running for the old root do not store their
// results.
func (s *Session) SetRoot(root string) error {
	var filter *scanner.Filter
	if root != "" {
		f, err := scanner.NewFilter(root, s.opts.Exclude, s.opts.RespectGitignore)
		if err != nil {
			return fmt.Errorf("set root %s: %w", root, err)
		}
		filter = f
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = root
	s.filter = filter
	s.index = nil
	s.generation++
	s.files = make(map[string]string)
	s.types = make(map[string]typeEntry)
	log.Infof("project root set to %q", root)
	return nil
}

// SetIndex installs a type index consulted before walking the root.
func (s *Session) SetIndex(index Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
}

// Invalidate drops cached lookups and declarations but keeps the root.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.files = make(map[string]string)
	s.types = make(map[string]typeEntry)
}

// Inherited returns the declarations typeName contributes to a subtype,
// followed by those of its own supertypes, depth first. Types in visited
// and built-in library types are skipped. Every type is visited once per
// call, so cycles terminate and no declaration is reported twice.
func (s *Session) Inherited(ctx context.Context, typeName string, visited Visited) ([]java.Declaration, error) {
	return s.collect(ctx, []string{typeName}, visited)
}

// InheritedFor returns everything unit inherits from the parents named in
// its extends and implements clauses.
func (s *Session) InheritedFor(ctx context.Context, unit java.SourceUnit) ([]java.Declaration, error) {
	return s.collect(ctx, java.ParentTypes(unit.Text), NewVisited(unit.PrimaryType))
}

type frame struct {
	name    string
	visited Visited
}

func (s *Session) collect(ctx context.Context, names []string, visited Visited) ([]java.Declaration, error) {
	stack := make([]frame, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		stack = append(stack, frame{name: names[i], visited: visited})
	}

	var out []java.Declaration
	seen := make(map[string]bool)
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := java.CleanTypeName(f.name)
		if name == "" || f.visited.Has(name) || seen[name] {
			continue
		}
		seen[name] = true
		if s.opts.Knowledge.IsKnownOwner(name) {
			continue
		}

		entry, err := s.load(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, entry.decls...)
		next := f.visited.With(name)
		for i := len(entry.parents) - 1; i >= 0; i-- {
			stack = append(stack, frame{name: entry.parents[i], visited: next})
		}
	}
	return out, nil
}

func (s *Session) load(ctx context.Context, name string) (typeEntry, error) {
	s.mu.RLock()
	entry, ok := s.types[name]
	gen := s.generation
	s.mu.RUnlock()
	if ok {
		return entry, nil
	}

	v, err, _ := s.group.Do(fmt.Sprintf("%d/%s", gen, name), func() (any, error) {
		path, found, err := s.FindFile(ctx, name)
		if err != nil {
			return typeEntry{}, err
		}
		var entry typeEntry
		if found {
			entry = s.read(path)
		}
		s.mu.Lock()
		if s.generation == gen {
			s.types[name] = entry
		}
		s.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return typeEntry{}, err
	}
	return v.(typeEntry), nil
}

func (s *Session) read(path string) typeEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warningf("read java file: %v", err)
		return typeEntry{}
	}
	unit := java.NewSourceUnit(path, string(data))
	own := s.opts.Extractor.Extract(unit)
	entry := typeEntry{
		decls:   make([]java.Declaration, len(own)),
		parents: java.ParentTypes(unit.Text),
	}
	for i, d := range own {
		entry.decls[i] = d.AsInherited(unit.PrimaryType)
	}
	log.Debugf("%s: %d declarations, parents %v", path, len(own), entry.parents)
	return entry
}

var errFound = errors.New("found")

// FindFile returns the path of <name>.java below the root. The installed
// index is asked first; otherwise the root is walked and the first match in
// lexical order wins. Results, misses included, are cached per name.
func (s *Session) FindFile(ctx context.Context, name string) (string, bool, error) {
	s.mu.RLock()
	root, filter, index, gen := s.root, s.filter, s.index, s.generation
	path, cached := s.files[name]
	s.mu.RUnlock()
	if cached {
		return path, path != "", nil
	}
	if root == "" {
		return "", false, nil
	}

	if index != nil {
		if p, ok := index.FindType(name); ok {
			path = p
		}
	}
	if path == "" {
		want := name + ".java"
		_, err := scanner.Walk(ctx, root, filter, func(p string) error {
			if filepath.Base(p) == want {
				path = p
				return errFound
			}
			return nil
		})
		if err != nil && !errors.Is(err, errFound) {
			if ctx.Err() != nil {
				return "", false, err
			}
			log.Warningf("find %s: %v", want, err)
		}
	}

	s.mu.Lock()
	if s.generation == gen {
		s.files[name] = path
	}
	s.mu.Unlock()
	if path == "" {
		log.Debugf("no source for %s under %s", name, root)
	}
	return path, path != "", nil
}
