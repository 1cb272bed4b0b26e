//go:build test

package dictionary

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var memQueries = []string{
	"teh", "wierd", "recieve", "adress", "seperate", "definately",
	"occured", "untill", "wich", "beleive", "goverment", "enviroment",
}

// syntheticList builds a deterministic word list of n pseudo words.
func syntheticList(n int) []byte {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	var sb strings.Builder
	seed := uint32(7)
	for i := 0; i < n; i++ {
		length := 3 + int(seed%8)
		for j := 0; j < length; j++ {
			seed = seed*1664525 + 1013904223
			sb.WriteByte(letters[seed>>24%26])
		}
		sb.WriteByte('\n')
	}
	for _, w := range []string{"the", "weird", "receive", "address", "separate", "definitely",
		"occurred", "until", "which", "believe", "government", "environment"} {
		sb.WriteString(w + "\n")
	}
	return []byte(sb.String())
}

func newMemDict(t *testing.T) *Dictionary {
	t.Helper()
	d, err := New("synthetic", NewMemoryResource("synthetic", syntheticList(50000)), DefaultOptions())
	if err != nil {
		t.Fatalf("dictionary creation failed: %v", err)
	}
	if err := d.Load(); err != nil {
		t.Fatalf("dictionary load failed: %v", err)
	}
	return d
}

func TestMemoryLeakQueries(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			d := newMemDict(t)

			var baseline runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&baseline)
			baselineGoroutines := runtime.NumGoroutine()

			for i := 0; i < iterations; i++ {
				for _, q := range memQueries {
					_ = d.Proposals(q, false)
					_ = d.IsCorrect(q)
				}
			}

			var final runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&final)

			memDelta := int64(final.Alloc - baseline.Alloc)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			totalOps := iterations * len(memQueries)
			memPerOp := float64(memDelta) / float64(totalOps)

			t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
				iterations, totalOps, memDelta, memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			d := newMemDict(t)

			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < 1000/workers; i++ {
						q := memQueries[(i+w)%len(memQueries)]
						_ = d.Proposals(q, i%2 == 0)
						if i%100 == 0 {
							_ = d.AddWord(fmt.Sprintf("worker%dword%d", w, i))
						}
					}
				}(w)
			}
			wg.Wait()

			if !d.IsCorrect("worker0word0") {
				t.Error("word added concurrently is missing")
			}
		})
	}
}

func TestMemoryReloadCycles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping reload cycles in short mode")
	}
	d := newMemDict(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	maxMemDelta := int64(0)
	for cycle := 0; cycle < 20; cycle++ {
		d.Unload()
		if !d.IsCorrect("weird") {
			t.Fatalf("cycle %d: reload lost words", cycle)
		}
		var m runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&m)
		if delta := int64(m.Alloc - baseline.Alloc); delta > maxMemDelta {
			maxMemDelta = delta
		}
	}
	t.Logf("reload cycles: max_mem_delta=%d bytes", maxMemDelta)

	if maxMemDelta > 32*1024*1024 {
		t.Errorf("reloads retain memory: %d bytes", maxMemDelta)
	}
}
