package viewer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	csverrors "github.com/r3d91ll/csvplot/pkg/errors"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessShow_CopiesImage(t *testing.T) {
	tmp := t.TempDir()
	dst := filepath.Join(t.TempDir(), "seen.png")
	data := testPNG(t, 4, 4)

	p := &Process{Command: []string{"cp", PlaceholderFile, dst}, TempDir: tmp}
	require.NoError(t, p.Show(context.Background(), "chart", data))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary image is removed after the viewer exits")
}

func TestProcessArgv(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		want    []string
	}{
		{
			name:    "file appended",
			command: []string{"feh", "--title", PlaceholderTitle},
			want:    []string{"feh", "--title", "Histogram of x", "/tmp/a.png"},
		},
		{
			name:    "file placeholder",
			command: []string{"open", "-W", PlaceholderFile},
			want:    []string{"open", "-W", "/tmp/a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Process{Command: tt.command}
			got, err := p.argv("Histogram of x", "/tmp/a.png")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessArgv_Default(t *testing.T) {
	got, err := (&Process{}).argv("T", "/tmp/a.png")
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, []string{"view", "--title", "T", "/tmp/a.png"}, got[1:])
}

func TestProcessShow_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command []string
		code    string
	}{
		{"missing binary", []string{"csvplot-no-such-viewer"}, csverrors.ErrViewerLaunchFailed},
		{"non-zero exit", []string{"false"}, csverrors.ErrViewerExited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Process{Command: tt.command, TempDir: t.TempDir()}
			err := p.Show(context.Background(), "chart", testPNG(t, 2, 2))
			assert.True(t, csverrors.IsCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDrawHint(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 300, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 300; x++ {
			src.Set(x, y, color.White)
		}
	}

	out := DrawHint(src, Hint)
	require.NotNil(t, out)
	assert.Equal(t, src.Bounds(), out.Bounds())

	// The caption box darkens the bottom-left corner and leaves the top alone.
	r, g, b, _ := out.At(4, 55).RGBA()
	assert.Less(t, r+g+b, uint32(3*0x8000))
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(out.At(5, 5)))

	// The source image is not modified.
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(src.At(4, 55)))
}

func TestDrawHint_Empty(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, src, DrawHint(src, "  ").(*image.RGBA))
	assert.Nil(t, DrawHint(nil, Hint))
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(good, testPNG(t, 3, 2), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("not a png"), 0o644))

	img, err := LoadImage(good)
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = LoadImage(bad)
	assert.True(t, csverrors.IsCode(err, csverrors.ErrViewerImageInvalid))

	_, err = LoadImage(filepath.Join(dir, "missing.png"))
	assert.True(t, csverrors.IsCode(err, csverrors.ErrViewerImageInvalid))
}

func TestWindowSize(t *testing.T) {
	s := windowSize(image.Rect(0, 0, 800, 400))
	assert.InDelta(t, 800, s.Width, 0.01)
	assert.InDelta(t, 400, s.Height, 0.01)

	s = windowSize(image.Rect(0, 0, 2800, 1000))
	assert.InDelta(t, 1400, s.Width, 0.01)
	assert.InDelta(t, 500, s.Height, 0.01)

	s = windowSize(image.Rect(0, 0, 900, 1800))
	assert.InDelta(t, 450, s.Width, 0.01)
	assert.InDelta(t, 900, s.Height, 0.01)
}
