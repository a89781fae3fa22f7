// Package imageenc turns uploaded photos into inline data URIs.
package imageenc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
)

const (
	mimeJPEG  = "image/jpeg"
	uriPrefix = "data:" + mimeJPEG + ";base64,"
	quality   = 85
)

// ErrUnsupportedImage is returned for anything that is not a readable JPEG.
var ErrUnsupportedImage = errors.New("unsupported image format")

type Encoder struct {
	maxDimension int
}

// NewEncoder returns an Encoder that downscales images whose width or height
// exceeds maxDimension. A maxDimension of zero keeps every image as uploaded.
func NewEncoder(maxDimension int) *Encoder {
	return &Encoder{maxDimension: maxDimension}
}

// Encode validates data as a JPEG and returns it as a data URI.
func (e *Encoder) Encode(data []byte) (string, error) {
	if http.DetectContentType(data) != mimeJPEG {
		return "", ErrUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if e.maxDimension > 0 && (cfg.Width > e.maxDimension || cfg.Height > e.maxDimension) {
		data, err = e.downscale(data)
		if err != nil {
			return "", err
		}
	}
	return uriPrefix + base64.StdEncoding.EncodeToString(data), nil
}

func (e *Encoder) downscale(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	img = imaging.Fit(img, e.maxDimension, e.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode returns the JPEG bytes held by a data URI produced by Encode.
func Decode(uri string) ([]byte, error) {
	if len(uri) < len(uriPrefix) || uri[:len(uriPrefix)] != uriPrefix {
		return nil, ErrUnsupportedImage
	}
	data, err := base64.StdEncoding.DecodeString(uri[len(uriPrefix):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return data, nil
}
