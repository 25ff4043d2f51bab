package fetch

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase64ToAttachmentValidDataURL(t *testing.T) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	a := Base64ToAttachment(dataURL)
	require.NotNil(t, a)
	assert.Equal(t, []byte("png-bytes"), a.Data)
	assert.Equal(t, "image/png", a.MimeType)
	assert.True(t, strings.HasPrefix(a.FileName, "share-"))
	assert.True(t, strings.HasSuffix(a.FileName, ".png"))
}

func TestBase64ToAttachmentJpegFilenameExtension(t *testing.T) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpg"))

	a := Base64ToAttachment(dataURL)
	require.NotNil(t, a)
	assert.True(t, strings.HasSuffix(a.FileName, ".jpg"))
}

func TestBase64ToAttachmentRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no data prefix": "image/png;base64,aGk=",
		"no mime type":   "data:;base64,aGk=",
		"no base64 part": "data:image/png",
		"invalid base64": "data:image/png;base64,!!!not-base64!!!",
		"empty body":     "data:image/png;base64,",
		"plain junk":     "not a data url at all",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, Base64ToAttachment(input))
		})
	}
}
