package history

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git implements Backend by shelling out to the git CLI against an existing
// local clone. The events file lives inside this clone.
type Git struct {
	repo   string // path to the local clone
	branch string // branch to commit and push to
	remote string // remote name, usually "origin"
}

var _ Backend = (*Git)(nil)

// NewGit returns a backend for an existing clone at repo.
func NewGit(repo, branch, remote string) *Git {
	return &Git{
		repo:   repo,
		branch: branch,
		remote: remote,
	}
}

// Stage runs `git add` for the given paths.
func (g *Git) Stage(ctx context.Context, paths ...string) error {
	args := append([]string{"add", "--"}, paths...)
	if out, err := g.git(ctx, args...); err != nil {
		return &Error{Op: "stage", Output: out, Err: err}
	}
	return nil
}

// Commit creates one history entry from the staged changes. The
// `diff --cached --quiet` probe distinguishes "nothing staged" from real
// commit failures: exit 0 means no net change, exit 1 means there is
// something to commit.
func (g *Git) Commit(ctx context.Context, message string) error {
	out, err := g.git(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return ErrNothingToCommit
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return &Error{Op: "commit", Output: out, Err: err}
	}

	if out, err := g.git(ctx, "commit", "-m", message); err != nil {
		return &Error{Op: "commit", Output: out, Err: err}
	}
	return nil
}

// Push publishes local commits to the configured remote and branch.
func (g *Git) Push(ctx context.Context) error {
	if out, err := g.git(ctx, "push", g.remote, g.branch); err != nil {
		return &PushError{Output: out, Err: err}
	}
	return nil
}

// Status reports whether the working tree has uncommitted changes.
func (g *Git) Status(ctx context.Context) (bool, error) {
	out, err := g.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, &Error{Op: "status", Output: out, Err: err}
	}
	return strings.TrimSpace(out) == "", nil
}

// git runs one git command in the repo and returns its combined output,
// trimmed and capped so it can travel inside error messages.
func (g *Git) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repo
	out, err := cmd.CombinedOutput()
	return tail(string(out)), err
}

// tail keeps the last few lines of command output. Git puts the interesting
// part (rejection reasons, auth errors) at the end.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	const keep = 5
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	return strings.Join(lines, "\n")
}

// Describe returns a short human-readable description of the backend target,
// used in startup logs.
func (g *Git) Describe() string {
	return fmt.Sprintf("%s (%s/%s)", g.repo, g.remote, g.branch)
}
