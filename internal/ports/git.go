package ports

import (
	"context"
)

// BranchDetector defines the interface for git branch detection.
// This is a driven port (implemented by adapters).
type BranchDetector interface {
	// CurrentBranch returns the checked-out branch of the repository
	// containing workingDir.
	CurrentBranch(ctx context.Context, workingDir string) (string, error)
}
