package utils

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidFilename is returned when nothing usable is left after sanitizing an upload name.
var ErrInvalidFilename = errors.New("invalid file name")

// ErrImageTooLarge is returned when an image declares more pixels than the thumbnail budget.
var ErrImageTooLarge = errors.New("image dimensions exceed pixel budget")

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename reduces a client supplied file name to a safe ASCII base name.
// "../../etc/passwd" becomes "etc_passwd" and "My cv.pdf" becomes "My_cv.pdf".
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// SaveUpload writes the uploaded file into dir under its sanitized name and
// returns the stored path. An existing file with the same name is overwritten.
func SaveUpload(dir string, fh *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fh.Filename)
	if name == "" {
		return "", ErrInvalidFilename
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return path, nil
}

// ThumbnailPath is where CreateThumbnail stores the thumbnail for path.
func ThumbnailPath(path string) string {
	return filepath.Join(filepath.Dir(path), "thumb_"+filepath.Base(path))
}

// CreateThumbnail writes a copy of the image at path scaled down to width pixels,
// keeping the aspect ratio. Images already narrower than width are copied as is.
// The header is checked first: images larger than maxPixels are never decoded.
// maxPixels <= 0 disables the check.
func CreateThumbnail(path string, width, maxPixels int) (string, error) {
	if width <= 0 {
		return "", fmt.Errorf("thumbnail width must be positive, got %d", width)
	}

	if err := checkImageSize(path, maxPixels); err != nil {
		return "", err
	}

	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}

	if img.Bounds().Dx() > width {
		img = imaging.Resize(img, width, 0, imaging.Lanczos)
	}

	out := ThumbnailPath(path)
	if err := imaging.Save(img, out); err != nil {
		return "", fmt.Errorf("save thumbnail %s: %w", out, err)
	}
	return out, nil
}

func checkImageSize(path string, maxPixels int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return fmt.Errorf("%s is %dx%d: %w", path, cfg.Width, cfg.Height, ErrImageTooLarge)
	}
	return nil
}
