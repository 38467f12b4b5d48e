package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/jcgregorio/logger"
	"github.com/stretchr/testify/require"

	"monkey/interpreter-go/pkg/repl"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644))
}

func commit(t *testing.T, repo *git.Repository, msg string, paths ...string) string {
	t.Helper()
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	for _, p := range paths {
		_, err := worktree.Add(p)
		require.NoError(t, err)
	}
	hash, err := worktree.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Monkey", Email: "monkey@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: demo
repl:
  prompt: "monkey> "
  history: .monkey_history
  mode: JSON
  color: false
log:
  level: Debug
sources:
  zeta: scripts/zeta.monkey
  alpha: /abs/alpha.monkey
`)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, path, m.Path)
	require.Equal(t, "demo", m.Name)
	require.Equal(t, "monkey> ", m.REPL.Prompt)
	require.Equal(t, filepath.Join(dir, ".monkey_history"), m.REPL.History)
	require.Equal(t, repl.ModeJSON, m.REPL.Mode)
	require.False(t, m.REPL.Color)
	require.Equal(t, LogLevelDebug, m.Log.Level)
	require.Equal(t, []string{"zeta", "alpha"}, m.SourceOrder)
	require.Equal(t, filepath.Join(dir, "scripts", "zeta.monkey"), m.Sources["zeta"])
	require.Equal(t, "/abs/alpha.monkey", m.Sources["alpha"])

	got, ok := m.SourcePath(" zeta ")
	require.True(t, ok)
	require.Equal(t, m.Sources["zeta"], got)
}

func TestLoadManifestDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, "name: bare")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, repl.DefaultPrompt, m.REPL.Prompt)
	require.Equal(t, repl.ModeRender, m.REPL.Mode)
	require.True(t, m.REPL.Color)
	require.Equal(t, LogLevelInfo, m.Log.Level)
	require.Empty(t, m.SourceOrder)
}

func TestLoadManifestValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)
	writeFile(t, path, `
repl:
  mode: xml
log:
  level: loud
sources:
  empty: ""
`)

	_, err := LoadManifest(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	require.Len(t, verr.Issues, 4)
	msg := err.Error()
	require.True(t, strings.HasPrefix(msg, "manifest validation failed:"))
	require.Contains(t, msg, `repl.mode: unknown output mode "xml"`)
	require.Contains(t, msg, "name must be provided")
	require.Contains(t, msg, `log.level "loud"`)
	require.Contains(t, msg, "sources.empty must be a non-empty path")
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest("")
	require.Error(t, err)

	_, err = LoadManifest(filepath.Join(dir, "missing.yml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.yml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadManifest(empty)
	require.ErrorContains(t, err, "is empty")

	unknown := filepath.Join(dir, "unknown.yml")
	writeFile(t, unknown, "name: x\ntargets: {}")
	_, err = LoadManifest(unknown)
	require.ErrorContains(t, err, "field targets not found")

	badSources := filepath.Join(dir, "sources.yml")
	writeFile(t, badSources, "name: x\nsources: [a, b]")
	_, err = LoadManifest(badSources)
	require.ErrorContains(t, err, "sources must be a mapping")
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: test")
	child := filepath.Join(root, "src", "app")
	require.NoError(t, os.MkdirAll(child, 0o755))

	found, err := FindManifest(child)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ManifestFileName), found)

	found, err = FindManifest(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, ManifestFileName), found)
}

func TestFindManifestNotFound(t *testing.T) {
	_, err := FindManifest(t.TempDir())
	require.ErrorIs(t, err, ErrManifestNotFound)
}

func TestLoaderReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.monkey")
	writeFile(t, path, "let a = 1;")

	src, err := NewLoader(nil).ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "let a = 1;\n", src)

	_, err = NewLoader(logger.NewNopLogger()).ReadFile(path + ".missing")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoaderReadRevision(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	script := filepath.Join(dir, "lib", "math.monkey")
	writeFile(t, script, "let v = 1;")
	first := commit(t, repo, "first", "lib/math.monkey")
	writeFile(t, script, "let v = 2;")
	commit(t, repo, "second", "lib/math.monkey")
	writeFile(t, script, "let v = 3;")

	loader := NewLoader(nil)
	cases := []struct {
		rev  string
		want string
	}{
		{first, "let v = 1;\n"},
		{"HEAD~1", "let v = 1;\n"},
		{"HEAD", "let v = 2;\n"},
		{"", "let v = 2;\n"},
	}
	for _, tc := range cases {
		got, err := loader.ReadRevision(dir, tc.rev, "lib/math.monkey")
		require.NoError(t, err, "rev %q", tc.rev)
		require.Equal(t, tc.want, got, "rev %q", tc.rev)
	}

	got, err := loader.ReadRevision(filepath.Join(dir, "lib"), "HEAD", script)
	require.NoError(t, err)
	require.Equal(t, "let v = 2;\n", got)

	_, err = loader.ReadRevision(dir, "nope", "lib/math.monkey")
	require.ErrorContains(t, err, "resolve revision nope")

	_, err = loader.ReadRevision(dir, "HEAD", "lib/other.monkey")
	require.ErrorContains(t, err, "lib/other.monkey at HEAD")

	_, err = loader.ReadRevision(dir, "HEAD", filepath.Join(t.TempDir(), "x.monkey"))
	require.ErrorContains(t, err, "outside repository")

	_, err = loader.ReadRevision(t.TempDir(), "HEAD", "x.monkey")
	require.ErrorContains(t, err, "open repository")
}

func TestCheck(t *testing.T) {
	ok := Check("good", "let x = 1 + 2 * 3;")
	require.True(t, ok.OK())
	require.Equal(t, "good", ok.Name)
	require.Equal(t, "let x = (1 + (2 * 3));", ok.Rendered)
	require.Zero(t, ok.Placeholders)

	bad := Check("bad", "fn(x y) {}")
	require.False(t, bad.OK())
	require.Len(t, bad.Diagnostics, 4)
	require.Equal(t, 4, bad.Placeholders)
	require.Equal(t, bad.Program.String(), bad.Rendered)
}

func TestCheckManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.monkey"), "add(1, 2)")
	writeFile(t, filepath.Join(dir, "b.monkey"), "if (x { y }")
	path := filepath.Join(dir, ManifestFileName)
	writeFile(t, path, `
name: demo
sources:
  a: a.monkey
  b: b.monkey
  gone: gone.monkey
`)
	m, err := LoadManifest(path)
	require.NoError(t, err)

	loader := NewLoader(nil)
	results, err := loader.CheckManifest(m, []string{"a"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "add(1,2)", results[0].Rendered)

	results, err = loader.CheckManifest(m, nil)
	require.Error(t, err)
	require.Len(t, results, 2)
	require.True(t, results[0].OK())
	require.False(t, results[1].OK())
	require.Contains(t, err.Error(), `source "b"`)
	require.Contains(t, err.Error(), `source "gone"`)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = loader.CheckManifest(m, []string{"nope"})
	require.ErrorContains(t, err, `source "nope" is not declared`)
}
