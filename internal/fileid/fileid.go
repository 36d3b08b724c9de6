// Package fileid derives stable document ids for documents loaded from seed files,
// so that reloading a changed file replaces its documents instead of adding new ones.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strconv"
)

const prefix = "file:"

// ForFile returns the id for the single document held by the file at path.
func ForFile(path string) string {
	return prefix + pathHash(path)
}

// ForEntry returns the id for the index-th document of a file holding a JSON array.
func ForEntry(path string, index int) string {
	return prefix + pathHash(path) + "#" + strconv.Itoa(index)
}

func pathHash(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return hex.EncodeToString(sum[:16])
}
