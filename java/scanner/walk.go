package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Filter decides which paths below a root are visited.
type Filter struct {
	gitignore *ignore.GitIgnore
	exclude   []string
}

// NewFilter builds a filter for root. Exclude patterns are doublestar globs
// matched against slash-separated paths relative to root. When
// respectGitignore is set, the root's .gitignore is honoured if present.
func NewFilter(root string, exclude []string, respectGitignore bool) (*Filter, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	f := &Filter{exclude: exclude}
	if respectGitignore && root != "" {
		gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
		if err == nil {
			f.gitignore = gi
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading .gitignore: %w", err)
		}
	}
	return f, nil
}

// Skip reports whether the path rel (relative to the walk root) is left out.
func (f *Filter) Skip(rel string, isDir bool) bool {
	if f == nil || rel == "." || rel == "" {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir && filepath.Base(rel) == ".git" {
		return true
	}
	if f.gitignore != nil {
		p := rel
		if isDir {
			p += "/"
		}
		if f.gitignore.MatchesPath(p) {
			return true
		}
	}
	for _, pattern := range f.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(pattern, rel+"/"); ok {
				return true
			}
		}
	}
	return false
}

// IsJavaFile reports whether name has the .java extension, ignoring case.
func IsJavaFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".java")
}

// Walk calls fn for every .java file under root admitted by filter, in
// lexical order. Unreadable entries are skipped and described in the
// returned slice. Cancelling ctx stops the walk and returns ctx.Err().
func Walk(ctx context.Context, root string, filter *Filter, fn func(path string) error) ([]string, error) {
	var problems []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("walk %s: %v", path, err))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if filter.Skip(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsJavaFile(d.Name()) {
			return nil
		}
		return fn(path)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return problems, ctxErr
		}
		return problems, fmt.Errorf("walk %s: %w", root, err)
	}
	return problems, nil
}
