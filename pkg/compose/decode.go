package compose

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/matzehuels/minicase/pkg/errors"
)

// decode reads an image after checking its declared size against
// maxPixels. The header check runs first so oversized images are rejected
// before any pixel buffer is allocated.
func decode(data []byte, maxPixels int) (image.Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "read image header")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeImageDecode, "%s image has no pixels", format)
	}
	if maxPixels > 0 && cfg.Width*cfg.Height > maxPixels {
		return nil, errors.New(errors.ErrCodeResourceExhausted,
			"%s image is %dx%d, above the %d pixel budget", format, cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageDecode, err, "decode %s image", format)
	}
	return img, nil
}
