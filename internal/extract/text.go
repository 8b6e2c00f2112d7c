package extract

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// PlainText reads a text file best-effort: UTF-16 files (BOM-detected) are
// decoded, a UTF-8 BOM is stripped, and invalid bytes are dropped rather
// than failing the read.
type PlainText struct{}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (PlainText) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text %s: %w", path, err)
	}
	return decodeText(data), nil
}

func decodeText(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(dec, data); err == nil {
			data = decoded
		}
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	}
	return strings.ToValidUTF8(string(data), "")
}
