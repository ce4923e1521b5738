package scanner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Node is one entry of a source tree: a directory or a .java file.
type Node struct {
	Name     string  `json:"name" yaml:"name"`
	Path     string  `json:"path" yaml:"path"`
	Dir      bool    `json:"dir" yaml:"dir"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Files returns the paths of all files below n, depth first.
func (n *Node) Files() []string {
	if n == nil {
		return nil
	}
	if !n.Dir {
		return []string{n.Path}
	}
	var out []string
	for _, c := range n.Children {
		out = append(out, c.Files()...)
	}
	return out
}

// LoadTree builds the tree of .java files under root. When query is not
// empty only files whose name contains it, ignoring case, are kept.
// Directories come before files and both are ordered by name ignoring case.
// Directories below root with nothing to show are pruned; the root itself is
// always returned. Unreadable directories appear empty.
func LoadTree(ctx context.Context, root string, filter *Filter, query string) (*Node, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	node, err := loadDir(ctx, root, root, filter, query, true)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func loadDir(ctx context.Context, root, dir string, filter *Filter, query string, isRoot bool) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node := &Node{Name: filepath.Base(dir), Path: dir, Dir: true}
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debugf("tree: cannot list %s: %v", dir, err)
		if isRoot {
			return node, nil
		}
		return nil, nil
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, entry.Name())
		rel, _ := filepath.Rel(root, path)
		if filter.Skip(rel, entry.IsDir()) {
			continue
		}
		if entry.IsDir() {
			child, err := loadDir(ctx, root, path, filter, query, false)
			if err != nil {
				return nil, err
			}
			if child != nil {
				node.Children = append(node.Children, child)
			}
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.HasSuffix(lower, ".java") {
			continue
		}
		if query != "" && !strings.Contains(lower, query) {
			continue
		}
		node.Children = append(node.Children, &Node{Name: entry.Name(), Path: path})
	}

	if !isRoot && len(node.Children) == 0 {
		return nil, nil
	}
	return node, nil
}
