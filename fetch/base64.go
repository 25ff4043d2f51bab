package fetch

import (
	"encoding/base64"
	"strings"

	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

const base64Marker = ";base64,"

// Base64ToAttachment parses a data URL into an ImageAttachment with a
// synthetic filename. Empty, malformed or undecodable input yields nil, not
// an error, so callers can filter without error plumbing.
func Base64ToAttachment(dataURL string) *types.ImageAttachment {
	if dataURL == "" {
		return nil
	}
	if !strings.HasPrefix(dataURL, "data:") {
		return nil
	}
	rest := dataURL[len("data:"):]
	idx := strings.Index(rest, base64Marker)
	if idx <= 0 {
		return nil // no parseable MIME type
	}
	mimeType := rest[:idx]
	body := rest[idx+len(base64Marker):]
	data, err := base64.StdEncoding.DecodeString(body)
	if err != nil || len(data) == 0 {
		return nil
	}
	return &types.ImageAttachment{
		Data:     data,
		MimeType: mimeType,
		FileName: tool.SyntheticFileName(mimeType),
	}
}
