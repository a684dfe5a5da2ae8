// Package media prepares profile photos before they are forwarded to the backend.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrTooLarge is returned when the source photo exceeds the configured byte limit.
var ErrTooLarge = errors.New("photo exceeds size limit")

// PhotoOptions bound the processed photo.
type PhotoOptions struct {
	MaxWidth    int
	JPEGQuality int
	MaxBytes    int64
}

// Photo is a processed JPEG ready for multipart upload.
type Photo struct {
	Filename string
	Data     []byte
	Width    int
	Height   int
}

// ContentType is always JPEG after processing.
func (p Photo) ContentType() string {
	return "image/jpeg"
}

// PreparePhoto decodes src, scales it down to MaxWidth keeping the aspect ratio and
// re-encodes it as JPEG. Narrower images keep their size.
func PreparePhoto(src io.Reader, filename string, opts PhotoOptions) (Photo, error) {
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = 1280
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 70
	}

	reader := src
	if opts.MaxBytes > 0 {
		reader = io.LimitReader(src, opts.MaxBytes+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return Photo{}, fmt.Errorf("read photo: %w", err)
	}
	if opts.MaxBytes > 0 && int64(len(raw)) > opts.MaxBytes {
		return Photo{}, ErrTooLarge
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return Photo{}, fmt.Errorf("decode photo: %w", err)
	}
	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(opts.JPEGQuality)); err != nil {
		return Photo{}, fmt.Errorf("encode photo: %w", err)
	}

	bounds := img.Bounds()
	return Photo{
		Filename: jpegName(filename),
		Data:     buf.Bytes(),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}

func jpegName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "photo"
	}
	return base + ".jpg"
}
