package utils

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"avatar.png", "avatar.png"},
		{"My cv.pdf", "My_cv.pdf"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Users\me\photo.jpg`, "C_Users_me_photo.jpg"},
		{"résumé.txt", "resume.txt"},
		{"  spaced   out .png ", "spaced_out_.png"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"...", ""},
		{"日本語", ""},
		{"a$b%c.png", "abc.png"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func fileHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File[field]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveUpload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	path, err := SaveUpload(dir, fileHeader(t, "profile_picture", "../my photo.txt", []byte("first")))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my_photo.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// same sanitized name overwrites
	path2, err := SaveUpload(dir, fileHeader(t, "profile_picture", "my photo.txt", []byte("second")))
	require.NoError(t, err)
	assert.Equal(t, path, path2)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSaveUploadRejectsEmptyName(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveUpload(dir, fileHeader(t, "profile_picture", "...", []byte("x")))
	assert.ErrorIs(t, err, ErrInvalidFilename)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreateThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t, 600, 300), 0o644))

	out, err := CreateThumbnail(src, 120, 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "thumb_wide.png"), out)

	thumb, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 120, thumb.Bounds().Dx())
	assert.Equal(t, 60, thumb.Bounds().Dy())
}

func TestCreateThumbnailKeepsSmallImages(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "small.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t, 40, 20), 0o644))

	out, err := CreateThumbnail(src, 120, 1_000_000)
	require.NoError(t, err)

	thumb, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 40, thumb.Bounds().Dx())
}

func TestCreateThumbnailNotAnImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(src, []byte("plain text"), 0o644))

	_, err := CreateThumbnail(src, 120, 1_000_000)
	assert.Error(t, err)

	_, err = CreateThumbnail(src, 0, 1_000_000)
	assert.Error(t, err)
}

// pngHeaderOnly returns a PNG that declares a w x h RGBA canvas but carries no
// pixel data. Decoding it fully would fail; reading its header must not.
func pngHeaderOnly(w, h uint32) []byte {
	var ihdr bytes.Buffer
	ihdr.WriteString("IHDR")
	binary.Write(&ihdr, binary.BigEndian, w)
	binary.Write(&ihdr, binary.BigEndian, h)
	ihdr.Write([]byte{8, 6, 0, 0, 0})

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	binary.Write(&out, binary.BigEndian, uint32(ihdr.Len()-4))
	out.Write(ihdr.Bytes())
	binary.Write(&out, binary.BigEndian, crc32.ChecksumIEEE(ihdr.Bytes()))
	return out.Bytes()
}

func TestCreateThumbnailRejectsHugeCanvas(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bomb.png")
	require.NoError(t, os.WriteFile(src, pngHeaderOnly(50000, 50000), 0o644))

	_, err := CreateThumbnail(src, 256, 40_000_000)
	require.ErrorIs(t, err, ErrImageTooLarge)

	_, statErr := os.Stat(ThumbnailPath(src))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateThumbnailPixelBudget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "wide.png")
	require.NoError(t, os.WriteFile(src, pngBytes(t, 600, 300), 0o644))

	_, err := CreateThumbnail(src, 120, 100_000)
	assert.ErrorIs(t, err, ErrImageTooLarge)

	out, err := CreateThumbnail(src, 120, 180_000)
	require.NoError(t, err)
	assert.FileExists(t, out)

	_, err = CreateThumbnail(src, 120, 0)
	assert.NoError(t, err, "zero disables the budget")
}
