package types

type (
	// FileFailure records a single file that could not be removed.
	FileFailure struct {
		Path   string `json:"path"`
		Reason string `json:"reason"`
	}

	// CleanResult summarizes one cleanup pass.
	CleanResult struct {
		FilesFound   int           `json:"filesFound"`
		FilesDeleted int           `json:"filesDeleted"`
		FilesFailed  []FileFailure `json:"filesFailed,omitempty"`
		DryRun       bool          `json:"dryRun"`
	}
)

// NewCleanResult seeds a result with the number of matches found.
func NewCleanResult(found int, dryRun bool) CleanResult {
	return CleanResult{
		FilesFound: found,
		DryRun:     dryRun,
	}
}

// FailedCount returns the number of files that could not be removed.
func (r CleanResult) FailedCount() int {
	return len(r.FilesFailed)
}
