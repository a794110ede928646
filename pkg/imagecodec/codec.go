package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrInvalidFormat is returned for image references whose extension is not supported.
var ErrInvalidFormat = errors.New("invalid image format, expected .png, .jpg, .jpeg or .gif")

const filePerm = 0o644

// Info describes a stored image blob.
type Info struct {
	Format string
	Width  int
	Height int
	Frames int
	Size   int
}

func (i Info) String() string {
	s := fmt.Sprintf("%s %dx%d, %d bytes", strings.ToUpper(i.Format), i.Width, i.Height, i.Size)
	if i.Frames > 1 {
		s += fmt.Sprintf(", %d frames", i.Frames)
	}
	return s
}

// Load reads the file at path and returns the bytes to store.
// PNG and GIF files are returned unchanged, JPEG files are transcoded to PNG.
func Load(path string) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".gif", ".jpg", ".jpeg":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %q: %w", path, err)
	}

	if ext == ".jpg" || ext == ".jpeg" {
		return TranscodeToPNG(data)
	}
	return data, nil
}

// TranscodeToPNG decodes any registered image format and re-encodes it as RGBA PNG.
func TranscodeToPNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	rgba := image.NewRGBA(src.Bounds())
	draw.Draw(rgba, rgba.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode turns stored bytes back into an image. The format name is reported alongside.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// Describe reports format, dimensions and frame count without decoding pixel data
// (except for GIFs, whose frames have to be walked).
func Describe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode image config: %w", err)
	}

	info := Info{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Frames: 1,
		Size:   len(data),
	}

	if format == "gif" {
		anim, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return Info{}, fmt.Errorf("decode gif frames: %w", err)
		}
		info.Frames = len(anim.Image)
	}

	return info, nil
}

// Extension returns the file extension matching the blob's detected type, ".png" if unknown.
func Extension(data []byte) string {
	mt := mimetype.Detect(data)
	if strings.HasPrefix(mt.String(), "image/") && mt.Extension() != "" {
		return mt.Extension()
	}
	return ".png"
}

// Export writes the stored bytes to path. A path without extension gets one from the blob type.
func Export(path string, data []byte) (string, error) {
	if data == nil {
		return "", errors.New("note has no image")
	}
	if filepath.Ext(path) == "" {
		path += Extension(data)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("write image %q: %w", path, err)
	}
	return path, nil
}

// ExportTemp writes the bytes to a temporary file and returns its path.
// The caller removes the file when done.
func ExportTemp(data []byte, prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*"+Extension(data))
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp image: %w", err)
	}
	return f.Name(), nil
}
