package distance

import (
	"unicode"
)

// Costs holds the edit weights of a Weighted algorithm.
type Costs struct {
	Insert     int
	Delete     int
	Substitute int
	// Transpose is charged for swapping two adjacent runes.
	Transpose int
	// Case is charged for a substitution that only changes letter case.
	Case int
}

// DefaultCosts returns the weights the default threshold is tuned for.
func DefaultCosts() Costs {
	return Costs{
		Insert:     Unit,
		Delete:     Unit,
		Substitute: Unit,
		Transpose:  60,
		Case:       20,
	}
}

// Weighted is an optimal-string-alignment distance with per-operation weights.
// Insert and Delete must be equal for the distance to stay symmetric.
type Weighted struct {
	costs Costs
}

// NewWeighted creates a weighted distance over costs.
func NewWeighted(costs Costs) *Weighted {
	return &Weighted{costs: costs}
}

// Distance implements Algorithm.
func (w *Weighted) Distance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)
	if n == 0 {
		return m * w.costs.Insert
	}
	if m == 0 {
		return n * w.costs.Delete
	}

	// three rolling rows are enough for adjacent transpositions
	prev2 := make([]int, m+1)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j * w.costs.Insert
	}

	for i := 1; i <= n; i++ {
		cur[0] = i * w.costs.Delete
		for j := 1; j <= m; j++ {
			best := prev[j-1] + w.substitution(ra[i-1], rb[j-1])
			if v := prev[j] + w.costs.Delete; v < best {
				best = v
			}
			if v := cur[j-1] + w.costs.Insert; v < best {
				best = v
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] && ra[i-1] != ra[i-2] {
				if v := prev2[j-2] + w.costs.Transpose; v < best {
					best = v
				}
			}
			cur[j] = best
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[m]
}

func (w *Weighted) substitution(x, y rune) int {
	switch {
	case x == y:
		return 0
	case unicode.ToLower(x) == unicode.ToLower(y):
		return w.costs.Case
	default:
		return w.costs.Substitute
	}
}
