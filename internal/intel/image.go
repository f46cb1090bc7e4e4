package intel

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// ImagePayload is an inline image found in a message body, normalized to a
// data URI suitable for a vision model.
type ImagePayload struct {
	DataURI   string
	MediaType string
}

var (
	dataURIPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+_-]+);base64,([A-Za-z0-9+/=\s]+)$`)
	base64Pattern  = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
)

// imageMagic maps leading bytes of a decoded payload to a media type.
var imageMagic = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("\x89PNG"), "image/png"},
	{[]byte("\xff\xd8\xff"), "image/jpeg"},
	{[]byte("GIF8"), "image/gif"},
	{[]byte("RIFF"), "image/webp"},
	{[]byte("BM"), "image/bmp"},
}

// minRawBase64Len filters out short base64-looking tokens that cannot be an
// image, such as ordinary words.
const minRawBase64Len = 100

// DetectImage reports whether a message body is an inline image rather than
// text. It accepts data URIs and bare base64 blobs whose decoded bytes start
// with a known image magic number.
func DetectImage(text string) (ImagePayload, bool) {
	stripped := strings.TrimSpace(text)

	if m := dataURIPattern.FindStringSubmatch(stripped); m != nil {
		data := strings.Map(dropSpace, m[2])
		return ImagePayload{
			DataURI:   "data:" + m[1] + ";base64," + data,
			MediaType: m[1],
		}, true
	}

	if len(stripped) > minRawBase64Len && base64Pattern.MatchString(stripped) {
		raw, err := base64.StdEncoding.DecodeString(pad(stripped))
		if err != nil {
			return ImagePayload{}, false
		}
		for _, magic := range imageMagic {
			if len(raw) >= len(magic.prefix) && string(raw[:len(magic.prefix)]) == string(magic.prefix) {
				return ImagePayload{
					DataURI:   "data:" + magic.mime + ";base64," + stripped,
					MediaType: magic.mime,
				}, true
			}
		}
	}

	return ImagePayload{}, false
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\n', '\r', '\t':
		return -1
	}
	return r
}

// pad rounds the input up to a valid base64 length so truncated payloads
// still decode far enough to read the magic bytes.
func pad(s string) string {
	if rem := len(s) % 4; rem != 0 {
		return s + strings.Repeat("=", 4-rem)
	}
	return s
}
