package tool

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func GenerateRandomUUID() string {
	return uuid.New().String()
}

// GenerateShortShareID returns a short alphanumeric ID (e.g. 8 chars) for share
// session tracking. Shorter than UUID so log lines stay readable.
func GenerateShortShareID() string {
	b := make([]byte, 4) // 4 bytes = 8 hex chars
	if _, err := rand.Read(b); err != nil {
		return GenerateRandomUUID()[:8] // fallback
	}
	return hex.EncodeToString(b)
}

// SyntheticFileName derives a filename for an acquired image from its MIME
// subtype, e.g. "share-3f2a9c1b.png" for image/png.
func SyntheticFileName(mimeType string) string {
	ext := "bin"
	if idx := strings.Index(mimeType, "/"); idx >= 0 && idx+1 < len(mimeType) {
		ext = mimeType[idx+1:]
		// strip parameters like "; charset=..." and map jpeg variants
		if semi := strings.Index(ext, ";"); semi >= 0 {
			ext = strings.TrimSpace(ext[:semi])
		}
		if ext == "jpeg" {
			ext = "jpg"
		}
		if ext == "svg+xml" {
			ext = "svg"
		}
	}
	return fmt.Sprintf("share-%s.%s", GenerateShortShareID(), ext)
}
