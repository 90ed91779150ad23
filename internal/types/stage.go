//nolint:revive // types is a standard Go package name pattern
package types

// Stage is a resume's position in the hiring pipeline
type Stage string

// Pipeline stages, in board order
const (
	StageNew         Stage = "new"
	StageReviewed    Stage = "reviewed"
	StageShortlisted Stage = "shortlisted"
	StageRejected    Stage = "rejected"
)

// Stages lists every pipeline stage in board order
var Stages = []Stage{StageNew, StageReviewed, StageShortlisted, StageRejected}

// Valid reports whether s is a known stage
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}
