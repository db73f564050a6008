package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initRepo creates a repository with one commit and returns its worktree.
func initRepo(t *testing.T, dir string) (*git.Repository, *git.Worktree, plumbing.Hash) {
	t.Helper()

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("focus"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}
	if _, err := worktree.Add("notes.txt"); err != nil {
		t.Fatalf("Failed to add file: %v", err)
	}
	hash, err := worktree.Commit("Initial commit", &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com"},
	})
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}
	return repo, worktree, hash
}

func TestDetector_CurrentBranch(t *testing.T) {
	dir := t.TempDir()
	_, worktree, _ := initRepo(t, dir)

	err := worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature/login-page"),
		Create: true,
	})
	if err != nil {
		t.Fatalf("Failed to checkout branch: %v", err)
	}

	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}

	d := NewDetector()
	for _, wd := range []string{dir, sub} {
		branch, err := d.CurrentBranch(context.Background(), wd)
		if err != nil {
			t.Fatalf("CurrentBranch(%s) error = %v", wd, err)
		}
		if branch != "feature/login-page" {
			t.Errorf("CurrentBranch(%s) = %q, want feature/login-page", wd, branch)
		}
	}
}

func TestDetector_DetachedHead(t *testing.T) {
	dir := t.TempDir()
	_, worktree, hash := initRepo(t, dir)

	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash}); err != nil {
		t.Fatalf("Failed to detach HEAD: %v", err)
	}

	_, err := NewDetector().CurrentBranch(context.Background(), dir)
	if !errors.Is(err, ErrDetachedHead) {
		t.Errorf("CurrentBranch() error = %v, want ErrDetachedHead", err)
	}
}

func TestDetector_NoRepository(t *testing.T) {
	_, err := NewDetector().CurrentBranch(context.Background(), t.TempDir())
	if err == nil {
		t.Error("Expected error when no git repo exists")
	}
}

func TestFindGitRepo_Worktree(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere/.git/worktrees/x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := findGitRepo(filepath.Join(dir))
	if err != nil {
		t.Fatalf("findGitRepo() error = %v", err)
	}
	if got != dir {
		t.Errorf("findGitRepo() = %q, want %q", got, dir)
	}
}

func TestTaskNameFromBranch(t *testing.T) {
	tests := []struct {
		branch string
		want   string
	}{
		{"main", "main"},
		{"feature/login-page", "login-page"},
		{"fix/api/timeout", "timeout"},
		{"  spaced  ", "spaced"},
		{"trailing/", "trailing/"},
	}
	for _, tt := range tests {
		if got := TaskNameFromBranch(tt.branch); got != tt.want {
			t.Errorf("TaskNameFromBranch(%q) = %q, want %q", tt.branch, got, tt.want)
		}
	}
}
