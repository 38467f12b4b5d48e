package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/jcgregorio/logger"
	"github.com/jcgregorio/slog"
)

// Loader reads Monkey source text from disk or from a git revision.
type Loader struct {
	log slog.Logger
}

// NewLoader returns a Loader that reports what it reads to log. A nil log
// discards everything.
func NewLoader(log slog.Logger) *Loader {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Loader{log: log}
}

// ReadFile returns the contents of the file at path.
func (l *Loader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	l.log.Debugf("read %s (%d bytes)", path, len(data))
	return string(data), nil
}

// ReadRevision returns the contents of path as committed at rev in the
// repository containing repoDir. rev accepts anything go-git can resolve:
// a hash, a branch, a tag, or an expression such as HEAD~1. A relative path
// is taken relative to repoDir.
func (l *Loader) ReadRevision(repoDir, rev, path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", repoDir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree at %s: %w", repoDir, err)
	}

	rel, err := repoRelative(worktree.Filesystem.Root(), repoDir, path)
	if err != nil {
		return "", err
	}

	rev = strings.TrimSpace(rev)
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolve revision %s: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("load commit %s: %w", hash, err)
	}
	file, err := commit.File(rel)
	if err != nil {
		return "", fmt.Errorf("%s at %s: %w", rel, rev, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s at %s: %w", rel, rev, err)
	}
	l.log.Debugf("read %s at %s (%s)", rel, rev, hash)
	return contents, nil
}

// repoRelative converts path into the slash-separated form git trees use.
func repoRelative(root, repoDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(repoDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", path, root)
	}
	return filepath.ToSlash(rel), nil
}
