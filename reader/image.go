package reader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/tsawler/tabscan/format"
)

// ErrUnsupportedFormat is returned when the image format cannot be decoded.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image is a decoded raster image together with what is known about its source.
type Image struct {
	Path   string        // Source path, empty for in-memory images
	Format format.Format // Format detected from content
	Image  image.Image   // Decoded pixels
}

// Width returns the image width in pixels.
func (i *Image) Width() int {
	return i.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (i *Image) Height() int {
	return i.Image.Bounds().Dy()
}

// Open reads and decodes the image at path.
// The format is detected from magic bytes, falling back to the file extension.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	defer f.Close()

	kind, err := format.DetectFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if kind == format.Unknown {
		kind = format.Detect(path)
	}

	decoded, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &Image{Path: path, Format: kind, Image: decoded}, nil
}

// Decode decodes an image from r.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decoding image: empty input")
	}

	decoded, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return &Image{
		Format: format.DetectFromMagic(data),
		Image:  decoded,
	}, nil
}

func decode(r io.Reader) (image.Image, error) {
	decoded, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("decoding image: %w", ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return decoded, nil
}

// EncodePNG encodes img as PNG. This is the form handed to the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}
