package distance

import (
	"github.com/hbollon/go-edlib"
)

// OSA is the unweighted optimal-string-alignment distance from go-edlib,
// scaled so one edit costs Unit. Case differences count as full edits.
type OSA struct{}

// Distance implements Algorithm.
func (OSA) Distance(a, b string) int {
	return edlib.OSADamerauLevenshteinDistance(a, b) * Unit
}
