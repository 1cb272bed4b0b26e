package dictionary

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// errMalformed reports a line that does not decode cleanly.
var errMalformed = errors.New("malformed line")

// replacementText is what lossy decoding substitutes for undecodable bytes.
const replacementText = string(utf8.RuneError)

// Labels accepted on top of the WHATWG labels known to htmlindex.
var bomLabels = map[string]encoding.Encoding{
	"utf-8-bom":    unicode.UTF8BOM,
	"utf-16-bom":   unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16le-bom": unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16be-bom": unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
}

// LookupEncoding resolves an encoding label such as "utf-8", "windows-1252"
// or "utf-16le-bom". The empty label means UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return unicode.UTF8, nil
	}
	if enc, ok := bomLabels[label]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	return enc, nil
}

// Codec converts words to and from the byte form of one text encoding.
type Codec struct {
	enc encoding.Encoding
	// marker is what the encoder emits once at the start of a stream (a BOM)
	marker []byte
	// term is the encoded line terminator
	term []byte
	// replacement is the encoded U+FFFD, nil when the encoding cannot carry it
	replacement []byte
}

// NewCodec prepares a codec for enc.
func NewCodec(enc encoding.Encoding) (*Codec, error) {
	one, err := enc.NewEncoder().Bytes([]byte("a"))
	if err != nil {
		return nil, fmt.Errorf("encoding cannot represent ASCII: %w", err)
	}
	two, err := enc.NewEncoder().Bytes([]byte("aa"))
	if err != nil {
		return nil, fmt.Errorf("encoding cannot represent ASCII: %w", err)
	}
	unit := len(two) - len(one)
	if unit <= 0 || unit > len(one) {
		return nil, fmt.Errorf("encoding has no fixed ASCII width")
	}
	c := &Codec{enc: enc, marker: one[:len(one)-unit]}

	term, err := enc.NewEncoder().Bytes([]byte("\n"))
	if err != nil {
		return nil, fmt.Errorf("encoding cannot represent a line break: %w", err)
	}
	c.term = bytes.TrimPrefix(term, c.marker)

	if rep, err := enc.NewEncoder().Bytes([]byte(replacementText)); err == nil {
		c.replacement = bytes.TrimPrefix(rep, c.marker)
	}
	return c, nil
}

// Encoding returns the wrapped encoding.
func (c *Codec) Encoding() encoding.Encoding {
	return c.enc
}

// Marker returns the leading bytes written at the start of a fresh stream.
func (c *Codec) Marker() []byte {
	return c.marker
}

// Terminator returns the encoded line terminator.
func (c *Codec) Terminator() []byte {
	return c.term
}

// EncodeLine encodes word plus the line terminator, including any stream marker.
func (c *Codec) EncodeLine(word string) ([]byte, error) {
	return c.enc.NewEncoder().Bytes([]byte(word + "\n"))
}

// splitLines is a bufio.SplitFunc cutting at the encoded terminator.
// Terminators are only matched on code-unit boundaries.
func (c *Codec) splitLines() bufio.SplitFunc {
	term := c.term
	unit := len(term)
	return func(data []byte, atEOF bool) (int, []byte, error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		if unit == 1 {
			if i := bytes.IndexByte(data, term[0]); i >= 0 {
				return i + 1, data[:i], nil
			}
		} else {
			for i := 0; i+unit <= len(data); i += unit {
				if bytes.Equal(data[i:i+unit], term) {
					return i + unit, data[:i], nil
				}
			}
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// lineDecoder decodes lines strictly, falling back to a lossy pass for lines
// that do not decode.
type lineDecoder struct {
	codec   *Codec
	decoder *encoding.Decoder
}

func newLineDecoder(c *Codec) *lineDecoder {
	return &lineDecoder{codec: c, decoder: c.enc.NewDecoder()}
}

func (ld *lineDecoder) strict(raw []byte) (string, error) {
	out, err := ld.decoder.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errMalformed, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) &&
		(ld.codec.replacement == nil || !bytes.Contains(raw, ld.codec.replacement)) {
		return "", errMalformed
	}
	return string(out), nil
}

func (ld *lineDecoder) lossy(raw []byte) string {
	out, err := ld.decoder.Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), replacementText)
	}
	return strings.ToValidUTF8(string(out), replacementText)
}
