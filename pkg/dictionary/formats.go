package dictionary

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
)

// AutoEncoding is the label that asks for the encoding to be sniffed from the
// word list's byte order mark.
const AutoEncoding = "auto"

// FormatInfo describes a word list encoding recognised by its leading bytes.
type FormatInfo struct {
	Label       string
	Description string
	BOM         []byte
}

// ordered so longer marks are tried first
var supportedFormats = []FormatInfo{
	{Label: "utf-8-bom", Description: "UTF-8 with byte order mark", BOM: []byte{0xEF, 0xBB, 0xBF}},
	{Label: "utf-16le-bom", Description: "UTF-16 little endian with byte order mark", BOM: []byte{0xFF, 0xFE}},
	{Label: "utf-16be-bom", Description: "UTF-16 big endian with byte order mark", BOM: []byte{0xFE, 0xFF}},
}

// ListSupportedFormats returns the encodings DetectFormat can recognise.
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, len(supportedFormats))
	copy(formats, supportedFormats)
	return formats
}

// DetectFormat returns the label of the encoding announced by the first bytes
// of r, or "utf-8" when there is no byte order mark.
func DetectFormat(r io.Reader) (string, error) {
	head := make([]byte, 3)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read word list header: %w", err)
	}
	head = head[:n]
	for _, f := range supportedFormats {
		if bytes.HasPrefix(head, f.BOM) {
			return f.Label, nil
		}
	}
	return "utf-8", nil
}

// ResolveEncoding resolves label, sniffing res when label is AutoEncoding.
// A resource that cannot be opened while sniffing resolves to UTF-8; the
// load itself reports the missing resource later.
func ResolveEncoding(label string, res Resource) (encoding.Encoding, error) {
	if !strings.EqualFold(strings.TrimSpace(label), AutoEncoding) {
		return LookupEncoding(label)
	}
	rc, err := res.Open()
	if err != nil {
		log.Debugf("Cannot sniff encoding of %s: %v", res.Name(), err)
		return LookupEncoding("")
	}
	defer rc.Close()

	detected, err := DetectFormat(rc)
	if err != nil {
		return nil, err
	}
	log.Debugf("Detected %s encoding for %s", detected, res.Name())
	return LookupEncoding(detected)
}
