// Package meta holds the metadata the decoder collects about a raster.
package meta

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/kovidgoyal/pixbuf/types"
	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
)

var _ = fmt.Println

// Data represents the metadata for a decoded image.
type Data struct {
	Format           types.Format
	PixelWidth       uint32
	PixelHeight      uint32
	BitsPerComponent uint32
	HasFrames        bool
	NumFrames        int
	exifData         []byte
	exif             *exif.Exif
	exifErr          error
	mutex            sync.Mutex
}

// Returns an extracted EXIF metadata object from this metadata.
//
// An error is returned if the EXIF profile could not be correctly parsed.
//
// If no EXIF data was found, nil is returned without an error.
func (md *Data) Exif() (*exif.Exif, error) {
	md.mutex.Lock()
	defer md.mutex.Unlock()

	if md.exifErr != nil {
		return nil, md.exifErr
	}
	if md.exif != nil {
		return md.exif, nil
	}
	if len(md.exifData) == 0 {
		return nil, nil
	}
	md.exif, md.exifErr = exif.Decode(bytes.NewReader(md.exifData))
	if md.exifErr != nil && md.exif != nil && !exif.IsCriticalError(md.exifErr) {
		// non critical errors still yield usable tags
		md.exifErr = nil
	}
	return md.exif, md.exifErr
}

// SetExifData stores raw data (a JPEG or TIFF stream) to be parsed for EXIF
// tags on first use.
func (md *Data) SetExifData(data []byte) {
	md.mutex.Lock()
	defer md.mutex.Unlock()
	md.exifData = data
	md.exifErr = nil
	md.exif = nil
}

// Orientation returns the EXIF orientation tag, 1 through 8, or 0 when
// absent or unreadable. The pixels are never reoriented.
func (md *Data) Orientation() int {
	e, err := md.Exif()
	if err != nil || e == nil {
		return 0
	}
	orient, err := e.Get(exif.Orientation)
	if err != nil || orient == nil || orient.Format() != exif_tiff.IntVal {
		return 0
	}
	if x, err := orient.Int(0); err == nil && x > 0 && x < 9 {
		return x
	}
	return 0
}

func (md *Data) String() string {
	return fmt.Sprintf("%s %dx%d %d bits per component", md.Format, md.PixelWidth, md.PixelHeight, md.BitsPerComponent)
}

// BitsPerComponent guesses the component depth of a color model.
func BitsPerComponent(m color.Model) uint32 {
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.YCbCrModel, color.NYCbCrAModel, color.CMYKModel, color.GrayModel, color.AlphaModel:
		return 8
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model, color.Alpha16Model:
		return 16
	}
	if m == nil {
		return 0
	}
	if _, ok := m.(color.Palette); ok {
		return 8
	}
	// custom models: see which concrete color type they convert to
	switch m.Convert(color.RGBA{R: 255, A: 255}).(type) {
	case color.RGBA64, color.NRGBA64, color.Gray16, color.Alpha16:
		return 16
	}
	return 8
}
