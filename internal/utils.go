package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateCardID creates a unique ID for a glossary card based on the
// current time and the term pair.
// Format: epochMillis_md5(termA|termB)[:8]
func GenerateCardID(termA, termB string) string {
	epochMillis := time.Now().UnixNano() / 1000000

	hash := md5.Sum([]byte(termA + "|" + termB))
	hashStr := hex.EncodeToString(hash[:])[:8]

	return fmt.Sprintf("%d_%s", epochMillis, hashStr)
}

// SanitizeFilename creates a safe filename from a string. Letters and
// digits of any script are kept, everything else becomes '_'.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
