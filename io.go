package pixbuf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovidgoyal/pixbuf/meta"
	"github.com/kovidgoyal/pixbuf/types"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

// Raster is a decoded image together with what the decoder learned about it.
type Raster struct {
	Image    image.Image
	Metadata *meta.Data
}

func (r *Raster) Width() int  { return r.Image.Bounds().Dx() }
func (r *Raster) Height() int { return r.Image.Bounds().Dy() }

// BitsPerPixel is the bits per component of the source times four, the
// number of components in the canonical layout.
func (r *Raster) BitsPerPixel() int { return int(r.Metadata.BitsPerComponent) * 4 }

func decode_bytes(data []byte) (*Raster, error) {
	if bytes.HasPrefix(data, png_magic) {
		return decode_png(data)
	}
	img, imgf, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	md := &meta.Data{
		Format:           types.FormatFromName(imgf),
		PixelWidth:       uint32(img.Bounds().Dx()),
		PixelHeight:      uint32(img.Bounds().Dy()),
		BitsPerComponent: meta.BitsPerComponent(img.ColorModel()),
		NumFrames:        1,
	}
	switch md.Format {
	case types.JPEG, types.TIFF:
		md.SetExifData(data)
	}
	return &Raster{Image: img, Metadata: md}, nil
}

// Decode reads an image from r. Animated images yield their first (or
// default) frame.
func Decode(r io.Reader) (*Raster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return decode_bytes(data)
}

// DecodeFile loads an image from a file.
func DecodeFile(filename string) (*Raster, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer file.Close()
	return Decode(file)
}

// DecodeURL loads an image from a file:// or http(s):// URL or a plain path.
func DecodeURL(ctx context.Context, rawurl string) (*Raster, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		return DecodeFile(rawurl)
	case "file":
		return DecodeFile(filepath.FromSlash(u.Path))
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%w: GET %s: %s", ErrDecode, u.Redacted(), resp.Status)
		}
		return Decode(resp.Body)
	}
	return nil, fmt.Errorf("%w: unsupported URL scheme %q", ErrDecode, u.Scheme)
}

type Format = types.Format

const (
	UNKNOWN = types.UNKNOWN
	JPEG    = types.JPEG
	PNG     = types.PNG
	GIF     = types.GIF
	TIFF    = types.TIFF
	WEBP    = types.WEBP
	BMP     = types.BMP
)

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from filename:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	return FormatFromExtension(ext)
}

type encodeConfig struct {
	jpegQuality         int
	gifNumColors        int
	gifQuantizer        draw.Quantizer
	gifDrawer           draw.Drawer
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:         95,
	gifNumColors:        256,
	gifQuantizer:        nil,
	gifDrawer:           nil,
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// JPEGQuality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better. Default is 95.
func JPEGQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256.  Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// GIFQuantizer returns an EncodeOption that sets the quantizer that is used to produce
// a palette of the GIF-encoded image.
func GIFQuantizer(quantizer draw.Quantizer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifQuantizer = quantizer
	}
}

// GIFDrawer returns an EncodeOption that sets the drawer that is used to convert
// the source image to the desired palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifDrawer = drawer
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

func encode(w io.Writer, img image.Image, format Format, cfg *encodeConfig) error {
	switch format {
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.jpegQuality})

	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, img)

	case GIF:
		return gif.Encode(w, img, &gif.Options{
			NumColors: cfg.gifNumColors,
			Quantizer: cfg.gifQuantizer,
			Drawer:    cfg.gifDrawer,
		})

	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})

	case BMP:
		return bmp.Encode(w, img)
	}

	return ErrUnsupportedFormat
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF, TIFF or BMP).
// All failures wrap ErrEncode.
func Encode(w io.Writer, img image.Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	if err := encode(w, img, format, &cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, format, err)
	}
	return nil
}

// Save saves the image to file with the specified filename.
// The format is determined from the filename extension:
// "jpg" (or "jpeg"), "png", "gif", "tif" (or "tiff") and "bmp" are supported.
//
// Examples:
//
//	// Save the image as PNG.
//	err := pixbuf.Save(img, "out.png")
//
//	// Save the image as JPEG with optional quality parameter set to 80.
//	err := pixbuf.Save(img, "out.jpg", pixbuf.JPEGQuality(80))
func Save(img image.Image, filename string, opts ...EncodeOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, filename, err)
	}
	file, err := fs.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	err = Encode(file, img, f, opts...)
	errc := file.Close()
	if err == nil && errc != nil {
		err = fmt.Errorf("%w: %w", ErrEncode, errc)
	}
	if err != nil {
		Logger().Warn("could not save image", "file", filename, "error", err)
	}
	return err
}
