// Package git reads the current branch with go-git. The branch name is
// offered as the default name of a new task.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/pomotray/internal/ports"
)

var (
	// ErrNoRepository is returned when no repository encloses the directory.
	ErrNoRepository = errors.New("no .git directory found")
	// ErrDetachedHead is returned when HEAD does not point at a branch.
	ErrDetachedHead = errors.New("HEAD is detached")
)

// Detector implements the ports.BranchDetector interface using go-git.
type Detector struct{}

// NewDetector creates a new git detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Ensure Detector implements ports.BranchDetector.
var _ ports.BranchDetector = (*Detector)(nil)

// CurrentBranch returns the short name of the checked-out branch of the
// repository enclosing workingDir (the process directory when empty).
func (d *Detector) CurrentBranch(ctx context.Context, workingDir string) (string, error) {
	if workingDir == "" {
		var err error
		workingDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repoPath, err := findGitRepo(workingDir)
	if err != nil {
		return "", err
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}
	return head.Name().Short(), nil
}

// TaskNameFromBranch turns a branch name into a task name by dropping a
// leading "type/" prefix such as "feature/".
func TaskNameFromBranch(branch string) string {
	branch = strings.TrimSpace(branch)
	if i := strings.LastIndex(branch, "/"); i >= 0 && i < len(branch)-1 {
		branch = branch[i+1:]
	}
	return branch
}

// findGitRepo traverses up the directory tree to find a .git directory.
func findGitRepo(startPath string) (string, error) {
	currentPath := startPath

	for {
		gitPath := filepath.Join(currentPath, ".git")
		info, err := os.Stat(gitPath)
		if err == nil && info.IsDir() {
			return currentPath, nil
		}

		// a worktree has a .git file pointing at the real git dir
		if err == nil && !info.IsDir() {
			content, err := os.ReadFile(gitPath)
			if err == nil && strings.HasPrefix(string(content), "gitdir: ") {
				return currentPath, nil
			}
		}

		parent := filepath.Dir(currentPath)
		if parent == currentPath {
			break
		}
		currentPath = parent
	}

	return "", ErrNoRepository
}
