package handler

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackImageMIME = "image/jpeg"

// decodeImage accepts a data URI or bare base64. Anything unusable is no image.
func decodeImage(s string) []byte {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ";base64,")
		if i < 0 {
			return nil
		}
		s = s[i+len(";base64,"):]
	}
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Unpadded payloads are accepted too.
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil || len(b) == 0 {
		return nil
	}
	return b
}

// encodeImage renders stored bytes as a data URI with a sniffed image MIME type.
func encodeImage(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	mime := mimetype.Detect(b).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = fallbackImageMIME
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b)
}
