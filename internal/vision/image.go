package vision

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// encodeImage reads and base64-encodes an image, returning the payload and
// its MIME type. Unknown extensions are rejected before any bytes travel.
func encodeImage(path string) (data, mediaType string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	mediaType, ok := mimeTypes[ext]
	if !ok {
		return "", "", eris.Errorf("vision: unsupported image format %q", ext)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", eris.Wrapf(err, "vision: read image %s", path)
	}
	return base64.StdEncoding.EncodeToString(b), mediaType, nil
}

// dataURL builds the data: URL form used by OpenAI-compatible endpoints.
func dataURL(data, mediaType string) string {
	return "data:" + mediaType + ";base64," + data
}
