package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash identifying one issue across runs.
func Fingerprint(rule, path string, line, column int, message string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%d|%s", rule, path, line, column, message)
	return hex.EncodeToString(h.Sum(nil))
}
