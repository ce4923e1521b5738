package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quickview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extractor: regex\nroot: /from/config\n"), 0o644))

	g := &globals{configPath: path, extractor: "treesitter", noColor: true}
	require.NoError(t, g.load())
	assert.Equal(t, "treesitter", g.cfg.Extractor)
	assert.Equal(t, "/from/config", g.cfg.Root)
	assert.False(t, g.cfg.Output.Color)

	g = &globals{configPath: path, extractor: "bogus"}
	assert.Error(t, g.load())
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "A.java")
	require.NoError(t, os.WriteFile(src, []byte("class A {\n    void a() {\n    }\n}\n"), 0o644))

	g := &globals{root: dir}
	require.NoError(t, g.load())

	c, path, err := g.openFile(src)
	require.NoError(t, err)
	assert.Equal(t, src, path)
	assert.Equal(t, dir, c.RootDir())
	require.Len(t, c.GetFile(path).Declarations, 1)
}

func TestRootArg(t *testing.T) {
	g := &globals{}
	require.NoError(t, g.load())

	assert.Equal(t, ".", rootArg(g, nil))
	assert.Equal(t, "src", rootArg(g, []string{"src"}))
	g.cfg.Root = "/project"
	assert.Equal(t, "/project", rootArg(g, nil))
}
