package handler

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
)

func TestDecodeImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(pngHeader)

	assert.Equal(t, pngHeader, decodeImage("data:image/png;base64,"+payload))
	assert.Equal(t, pngHeader, decodeImage(payload))
	assert.Equal(t, pngHeader, decodeImage(" "+payload[:8]+"\n"+payload[8:]+" "))
	assert.Equal(t, pngHeader, decodeImage("data:image/png;base64,"+base64.RawStdEncoding.EncodeToString(pngHeader)))
	assert.Equal(t, pngHeader[:4], decodeImage("data:image/png;base64,iVBORw"))
	assert.Equal(t, pngHeader[:4], decodeImage("iVBORw="))
	assert.Nil(t, decodeImage(""))
	assert.Nil(t, decodeImage("not base64 at all!"))
	assert.Nil(t, decodeImage("data:image/png,rawbytes"))
}

func TestEncodeImage(t *testing.T) {
	assert.Equal(t, "", encodeImage(nil))
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngHeader), encodeImage(pngHeader))
	assert.Equal(t, "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(jpegHeader), encodeImage(jpegHeader))
	// Unrecognised bytes still render as an image.
	assert.Contains(t, encodeImage([]byte{0x00, 0x01, 0x02}), "data:image/jpeg;base64,")
}

func TestImageRoundTrip(t *testing.T) {
	uri := encodeImage(pngHeader)
	assert.Equal(t, pngHeader, decodeImage(uri))
}
