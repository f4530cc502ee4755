package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	require.NoError(t, encodeFile(path, img, 90))
}

func decodedSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, _, err := decodeFile(path)
	require.NoError(t, err)
	return img.Bounds().Size()
}

func TestKernelsCommandPrintsTable(t *testing.T) {
	out, err := run(t, "kernels", "triangle", "Lanczos3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Kernel"))
	assert.True(t, strings.HasPrefix(lines[2], "triangle"))
	assert.True(t, strings.HasPrefix(lines[3], "lanczos3"))
	assert.Contains(t, lines[2], "-7.8")
}

func TestKernelsCommandList(t *testing.T) {
	out, err := run(t, "kernels", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "catmullrom\n")
	assert.NotContains(t, out, "bilinear")
}

func TestKernelsCommandUnknown(t *testing.T) {
	_, err := run(t, "kernels", "sinc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown resampler")
}

func TestTransformCommandScalesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestImage(t, in, 4, 3)

	stdout, err := run(t, "transform", "--scale", "2", "-o", out, in)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)
	assert.Equal(t, image.Pt(8, 6), decodedSize(t, out))
}

func TestTransformCommandBatch(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	inputs := []string{filepath.Join(dir, "a.bmp"), filepath.Join(dir, "b.tiff")}
	for _, in := range inputs {
		writeTestImage(t, in, 10, 6)
	}

	args := append([]string{"transform", "--width", "5", "--resampler", "mitchell", "--jobs", "2", "--out-dir", outDir}, inputs...)
	_, err := run(t, args...)
	require.NoError(t, err)

	assert.Equal(t, image.Pt(5, 3), decodedSize(t, filepath.Join(outDir, "a.bmp")))
	assert.Equal(t, image.Pt(5, 3), decodedSize(t, filepath.Join(outDir, "b.tiff")))
}

func TestTransformCommandRotateAndFormat(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "wide.png")
	writeTestImage(t, in, 6, 2)

	_, err := run(t, "transform", "--rotate", "90", "--resampler", "nearest", "--format", "bmp", "--out-dir", dir, in)
	require.NoError(t, err)

	f, err := os.Open(filepath.Join(dir, "wide.bmp"))
	require.NoError(t, err)
	defer f.Close()
	img, err := bmp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(2, 6), img.Bounds().Size())
}

func TestTransformCommandRejectsBadArguments(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeTestImage(t, in, 2, 2)

	_, err := run(t, "transform", "--resampler", "nope", in)
	require.Error(t, err)

	_, err = run(t, "transform", "-o", filepath.Join(dir, "x.png"), in, in)
	require.Error(t, err)

	_, err = run(t, "transform", "--out-dir", dir, in)
	require.ErrorContains(t, err, "overwrite the input")

	_, err = run(t, "transform", "--scale", "2", "-o", in, in)
	require.ErrorContains(t, err, "overwrite the input")
	assert.Equal(t, image.Pt(2, 2), decodedSize(t, in))

	_, err = run(t, "transform")
	require.Error(t, err)
}

func TestTransformCommandLogFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	logFile := filepath.Join(dir, "affine.log")
	writeTestImage(t, in, 3, 3)

	_, err := run(t, "--log-level", "debug", "--log-file", logFile, "transform", "-o", filepath.Join(dir, "out.png"), in)
	require.NoError(t, err)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wrote image")
	assert.Contains(t, string(data), "level=DEBUG")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := parseLevel("verbose")
	require.Error(t, err)
}

func TestBuildMatrixKeepsAspect(t *testing.T) {
	m := buildMatrix(&transformFlags{scale: 1, height: 30}, image.Pt(40, 20))
	assert.InDelta(t, 1.5, m[0], 1e-12)
	assert.InDelta(t, 1.5, m[3], 1e-12)

	m = buildMatrix(&transformFlags{scale: 0.5}, image.Pt(40, 20))
	assert.InDelta(t, 0.5, m[0], 1e-12)
	assert.InDelta(t, 0.5, m[3], 1e-12)
}

func TestEncodeFileUnsupportedExtension(t *testing.T) {
	err := encodeFile(filepath.Join(t.TempDir(), "x.webp"), image.NewNRGBA(image.Rect(0, 0, 1, 1)), 90)
	require.ErrorContains(t, err, "unsupported image extension")
}

func TestDecodeFileRoundTripPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.png")
	writeTestImage(t, path, 2, 2)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}
