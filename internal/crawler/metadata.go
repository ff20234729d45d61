package crawler

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"github.com/oxhq/archlens/internal/model"
)

// detectEncoding infers text encoding from a BOM prefix, defaulting to
// UTF-8 when no BOM is present (SPEC_FULL.md §4.1).
func detectEncoding(data []byte) model.TextEncoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return model.EncodingUTF8
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return model.EncodingUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return model.EncodingUTF16BE
	default:
		return model.EncodingUTF8
	}
}

// countLines counts newline-separated lines. An empty file has zero lines;
// a file with no trailing newline still counts its last partial line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// hashContent returns the hex-encoded SHA-256 digest of data.
func hashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
