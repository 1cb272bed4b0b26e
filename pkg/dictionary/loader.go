package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordfix/internal/logger"
)

// maxLineSize bounds a single word list line.
const maxLineSize = 1 << 20

var loadLog = logger.New("loader")

// LoaderStats describes one bulk read of a word list.
type LoaderStats struct {
	Lines     int
	Words     int
	Recovered int
	Took      time.Duration
}

// ReadWords decodes r line by line with codec and calls fn for every
// non-empty line. A line that fails strict decoding is decoded lossily and
// reported as a warning; it never aborts the read.
func ReadWords(r io.Reader, codec *Codec, fn func(word string)) (LoaderStats, error) {
	var stats LoaderStats
	start := time.Now()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(codec.splitLines())
	decoder := newLineDecoder(codec)

	for scanner.Scan() {
		stats.Lines++
		raw := scanner.Bytes()

		text, err := decoder.strict(raw)
		if err != nil {
			text = decoder.lossy(raw)
			stats.Recovered++
			loadLog.Warn("Recovered malformed line", "line", stats.Lines, "text", text, "replacement", replacementText)
		}
		if stats.Lines == 1 {
			text = strings.TrimPrefix(text, "\uFEFF")
		}
		word := strings.TrimSpace(strings.TrimSuffix(text, "\r"))
		if word == "" {
			continue
		}
		fn(word)
		stats.Words++
	}
	stats.Took = time.Since(start)
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read line %d: %w", stats.Lines+1, err)
	}
	return stats, nil
}
