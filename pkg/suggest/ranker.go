package suggest

import (
	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/pkg/distance"
	"github.com/bastiangx/wordfix/pkg/index"
)

// Ranker scores index buckets against a query word.
type Ranker struct {
	distance  distance.Algorithm
	threshold int
	scanLimit int
}

// NewRanker creates a ranker accepting candidates at most threshold away.
// scanLimit caps the words compared per bucket, <= 0 uses index.DefaultScanLimit.
func NewRanker(algo distance.Algorithm, threshold, scanLimit int) *Ranker {
	if scanLimit <= 0 {
		scanLimit = index.DefaultScanLimit
	}
	return &Ranker{
		distance:  algo,
		threshold: threshold,
		scanLimit: scanLimit,
	}
}

// Threshold returns the acceptance threshold.
func (r *Ranker) Threshold() int {
	return r.threshold
}

// Rank returns the proposals for word found in idx.
//
// The exact-key bucket and the neighbourhood buckets are scored separately;
// candidates within the threshold are kept. When nothing qualifies, the closest
// words of the exact-key bucket are returned regardless of threshold, so the
// result is empty only when the word's own key has no bucket.
func (r *Ranker) Rank(idx *index.Index, word string, startsSentence bool) Proposals {
	if word == "" {
		return nil
	}
	hood := Expand(idx.Provider(), word)
	collector := NewCollector(startsSentence)

	var (
		closest []string
		minDist = -1
	)
	exact, hasExact := idx.Get(hood.Exact)
	if hasExact {
		exact.Each(r.scanLimit, func(candidate string) bool {
			d := r.distance.Distance(word, candidate)
			if d <= r.threshold {
				collector.Add(candidate, -d)
			}
			switch {
			case minDist < 0 || d < minDist:
				minDist = d
				closest = append(closest[:0], candidate)
			case d == minDist:
				closest = append(closest, candidate)
			}
			return true
		})
	}

	probed := 0
	hood.Keys.Each(func(key string) bool {
		bucket, ok := idx.Get(key)
		if !ok {
			return false
		}
		probed++
		bucket.Each(r.scanLimit, func(candidate string) bool {
			if d := r.distance.Distance(word, candidate); d <= r.threshold {
				collector.Add(candidate, -d)
			}
			return true
		})
		return false
	})

	log.Debugf("Ranked '%s': %d neighbour keys, %d hit, %d accepted", word, hood.Keys.Cardinality(), probed, collector.Len())

	if collector.Len() == 0 && hasExact {
		for _, candidate := range closest {
			collector.Add(candidate, -minDist)
		}
	}
	return collector.Proposals()
}
