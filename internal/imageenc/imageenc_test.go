package imageenc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(w, h), nil))
	return buf.Bytes()
}

func TestEncodeSmallJPEGUnchanged(t *testing.T) {
	data := jpegBytes(t, 40, 20)

	uri, err := NewEncoder(100).Encode(data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))

	got, err := Decode(uri)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestEncodeDownscalesLargeJPEG(t *testing.T) {
	uri, err := NewEncoder(10).Encode(jpegBytes(t, 40, 20))
	require.NoError(t, err)

	data, err := Decode(uri)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 5, cfg.Height)
}

func TestEncodeZeroMaxKeepsSize(t *testing.T) {
	data := jpegBytes(t, 40, 20)
	uri, err := NewEncoder(0).Encode(data)
	require.NoError(t, err)

	got, err := Decode(uri)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestEncodeRejectsNonJPEG(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, testImage(4, 4)))

	tests := []struct {
		name string
		data []byte
	}{
		{"png", pngBuf.Bytes()},
		{"gif", []byte("GIF89a\x01\x00\x01\x00")},
		{"text", []byte("hello world")},
		{"empty", nil},
		{"truncated jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}},
	}
	enc := NewEncoder(100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Encode(tt.data)
			assert.ErrorIs(t, err, ErrUnsupportedImage)
		})
	}
}

func TestDecodeRejectsOtherURIs(t *testing.T) {
	_, err := Decode("data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	_, err = Decode("data:image/jpeg;base64,***")
	assert.Error(t, err)
}
