package okcolor

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kettek/apng"
	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
	"github.com/vgskye/okcolor/types"

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

type decodeConfig struct {
	autoOrientation bool
}

var defaultDecodeConfig = decodeConfig{
	autoOrientation: true,
}

// DecodeOption sets an optional parameter for the Decode and Open functions.
type DecodeOption func(*decodeConfig)

// AutoOrientation returns a DecodeOption that sets the auto-orientation mode.
// If auto-orientation is enabled, JPEG images are transformed after decoding
// according to their EXIF orientation tag (if present). By default it's
// enabled.
func AutoOrientation(enabled bool) DecodeOption {
	return func(c *decodeConfig) {
		c.autoOrientation = enabled
	}
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

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("okcolor: unsupported image format")

func format_from_decode_result(x string) Format {
	switch strings.ToLower(x) {
	case "jpeg":
		return JPEG
	case "png":
		return PNG
	case "gif":
		return GIF
	case "tiff", "tif":
		return TIFF
	case "webp":
		return WEBP
	case "bmp":
		return BMP
	}
	return UNKNOWN
}

var png_signature = []byte("\x89PNG\r\n\x1a\n")

// is_animated_png walks the PNG chunks preceding the image data looking for
// the animation control chunk.
func is_animated_png(data []byte) bool {
	if !bytes.HasPrefix(data, png_signature) {
		return false
	}
	data = data[len(png_signature):]
	for len(data) >= 8 {
		length := binary.BigEndian.Uint32(data[:4])
		switch string(data[4:8]) {
		case "acTL":
			return true
		case "IDAT", "IEND":
			return false
		}
		if uint64(length)+12 > uint64(len(data)) {
			return false
		}
		data = data[length+12:]
	}
	return false
}

func exif_orientation(data []byte) orientation {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return orientationUnspecified
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Format() != exif_tiff.IntVal {
		return orientationUnspecified
	}
	if v, err := tag.Int(0); err == nil && v > 0 && v < 9 {
		return orientation(v)
	}
	return orientationUnspecified
}

func decode_all(r io.Reader, opts []DecodeOption) (ans *Image, err error) {
	cfg := defaultDecodeConfig
	for _, option := range opts {
		option(&cfg)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c, imgf, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	ans = &Image{Format: format_from_decode_result(imgf), Width: c.Width, Height: c.Height}
	switch ans.Format {
	case GIF:
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		ans.populate_from_gif(g)
		return ans, nil
	case PNG:
		if is_animated_png(data) {
			p, err := apng.DecodeAll(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			ans.populate_from_apng(&p)
			return ans, nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if ans.Format == JPEG && cfg.autoOrientation {
		if o := exif_orientation(data); o > orientationNormal {
			img = fixOrientation(img, o)
			b := img.Bounds()
			ans.Width, ans.Height = b.Dx(), b.Dy()
		}
	}
	ans.Frames = append(ans.Frames, &Frame{Number: 1, Image: img})
	return ans, nil
}

// DecodeAll reads an image from r including all animation frames if it is an
// animated GIF or PNG.
func DecodeAll(r io.Reader, opts ...DecodeOption) (*Image, error) {
	return decode_all(r, opts)
}

// Decode reads an image from r. For animations the first frame is returned.
func Decode(r io.Reader, opts ...DecodeOption) (image.Image, error) {
	ans, err := decode_all(r, opts)
	if err != nil {
		return nil, err
	}
	if len(ans.Frames) == 0 {
		if ans.DefaultImage != nil {
			return ans.DefaultImage, nil
		}
		return nil, fmt.Errorf("no frames found in image")
	}
	return ans.Frames[0].Image, nil
}

// Open loads an image from file.
//
// Examples:
//
//	// Load an image from file.
//	img, err := okcolor.Open("test.jpg")
func Open(filename string, opts ...DecodeOption) (image.Image, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file, opts...)
}

// OpenAll loads an image from file including all its animation frames.
func OpenAll(filename string, opts ...DecodeOption) (*Image, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return DecodeAll(file, opts...)
}

// FormatFromExtension parses image format from filename extension:
// "jpg" (or "jpeg"), "png" (or "apng"), "gif", "tif" (or "tiff"), "webp"
// and "bmp" are supported.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := types.FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return -1, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from filename, see
// FormatFromExtension.
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	return FormatFromExtension(ext)
}

type encodeConfig struct {
	jpegQuality         int
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:         95,
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

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF,
// TIFF or BMP). WEBP can be decoded but not encoded.
func Encode(w io.Writer, img image.Image, format Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	switch format {
	case JPEG:
		if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Opaque() {
			rgba := &image.RGBA{
				Pix:    nrgba.Pix,
				Stride: nrgba.Stride,
				Rect:   nrgba.Rect,
			}
			return jpeg.Encode(w, rgba, &jpeg.Options{Quality: cfg.jpegQuality})
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.jpegQuality})

	case PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, img)

	case GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256, Drawer: draw.FloydSteinberg})

	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})

	case BMP:
		return bmp.Encode(w, img)
	}

	return ErrUnsupportedFormat
}

func save(filename string, write func(io.Writer) error) (err error) {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = write(file)
	errc := file.Close()
	if err == nil {
		err = errc
	}
	return err
}

// Save saves the image to file with the specified filename.
// The format is determined from the filename extension, see
// FormatFromExtension.
//
// Examples:
//
//	// Save the image as PNG.
//	err := okcolor.Save(img, "out.png")
//
//	// Save the image as JPEG with optional quality parameter set to 80.
//	err := okcolor.Save(img, "out.jpg", okcolor.JPEGQuality(80))
func Save(img image.Image, filename string, opts ...EncodeOption) (err error) {
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	return save(filename, func(w io.Writer) error { return Encode(w, img, f, opts...) })
}

// Save saves an animated image. PNG and GIF output keep all frames, other
// formats store only the first frame.
func (self *Image) Save(filename string, opts ...EncodeOption) (err error) {
	if len(self.Frames) == 0 {
		return fmt.Errorf("image has no frames")
	}
	f, err := FormatFromFilename(filename)
	if err != nil {
		return err
	}
	switch {
	case f == PNG && len(self.Frames) > 1:
		return save(filename, self.EncodeAsPNG)
	case f == GIF && len(self.Frames) > 1:
		return save(filename, self.EncodeAsGIF)
	}
	return Save(self.Frames[0].Image, filename, opts...)
}
