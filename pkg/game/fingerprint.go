package game

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex blake3 digest of a lesson source.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FingerprintFiles hashes every path. Missing files get an empty digest so
// their later appearance counts as a change.
func FingerprintFiles(paths []string) (map[string]string, error) {
	out := make(map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				out[path] = ""
				continue
			}
			return nil, fmt.Errorf("hashing %s: %w", path, err)
		}
		out[path] = Fingerprint(data)
	}
	return out, nil
}

// sameHashes reports whether two fingerprint sets are identical.
func sameHashes(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for path, hash := range a {
		if other, ok := b[path]; !ok || other != hash {
			return false
		}
	}
	return true
}
