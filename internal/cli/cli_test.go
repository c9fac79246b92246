package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/merridan/filevis/internal/export"
	"github.com/merridan/filevis/internal/report"
	"github.com/merridan/filevis/internal/source"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := Root()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	// keep tests independent of a config.json in the working directory
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.json"), "--log.level", "none"}, args...))
	err := root.Execute()
	return out.String(), err
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func gray(img image.Image, x, y int) uint8 {
	return color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
}

func TestOutputPath(t *testing.T) {
	in := source.Input{Path: filepath.Join("in", "x", "a.bin"), Rel: filepath.Join("x", "a.bin")}
	require.Equal(t, filepath.Join("in", "x", "a.bin"+source.OutputSuffix), OutputPath(in, ""))
	require.Equal(t, filepath.Join("out", "x", "a.bin"+source.OutputSuffix), OutputPath(in, "out"))
}

func TestRenderSameNameInSubdirectories(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "x"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "y"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x", "a.bin"), []byte{0x00, 0xFF, 0x00, 0xFF}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y", "a.bin"), []byte{0x12, 0x34, 0x12, 0x34}, 0644))

	_, err := run(t, "render", dir, "-o", outDir)
	require.NoError(t, err)

	x := decodePNG(t, filepath.Join(outDir, "x", "a.bin"+source.OutputSuffix))
	require.Equal(t, uint8(255), gray(x, 0xFF, 0x00))
	require.Equal(t, uint8(0), gray(x, 0x34, 0x12))
	y := decodePNG(t, filepath.Join(outDir, "y", "a.bin"+source.OutputSuffix))
	require.Equal(t, uint8(255), gray(y, 0x34, 0x12))
	require.Equal(t, uint8(0), gray(y, 0xFF, 0x00))
}

func TestRenderRejectsCollidingOutputs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "x"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "y"), 0755))
	a := filepath.Join(dir, "x", "a.bin")
	b := filepath.Join(dir, "y", "a.bin")
	require.NoError(t, os.WriteFile(a, []byte{1, 2}, 0644))
	require.NoError(t, os.WriteFile(b, []byte{3, 4}, 0644))
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := run(t, "render", a, b, "-o", outDir)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(outDir, "a.bin"+source.OutputSuffix))
	require.True(t, os.IsNotExist(statErr))
}

func TestRenderTwiceSkipsOwnOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{1, 2, 3, 4}, 0644))

	for i := 0; i < 2; i++ {
		_, err := run(t, "render", dir)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.ElementsMatch(t, []string{"a.bin", "a.bin" + source.OutputSuffix}, names)
}

func TestRenderScenario(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "pattern.bin")
	require.NoError(t, os.WriteFile(in, []byte{0x00, 0xFF, 0x00, 0xFF}, 0644))

	_, err := run(t, "render", in)
	require.NoError(t, err)

	img := decodePNG(t, in+source.OutputSuffix)
	require.Equal(t, image.Rect(0, 0, 256, 256), img.Bounds())
	require.Equal(t, uint8(255), gray(img, 0xFF, 0x00))
	require.Equal(t, uint8(255), gray(img, 0x00, 0xFF))
	require.Equal(t, uint8(0), gray(img, 0x10, 0x10))
}

func TestRenderDirectoryWithOptions(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{1, 2, 3, 4}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.bin"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("hello"), 0644))
	merged := filepath.Join(t.TempDir(), "sheet.png")

	_, err := run(t, "render", dir, "-o", outDir, "-s", "2", "--render.caption", "-i", "*.bin", "-m", merged)
	require.NoError(t, err)

	a := decodePNG(t, filepath.Join(outDir, "a.bin"+source.OutputSuffix))
	require.Equal(t, 512, a.Bounds().Dx())
	require.Greater(t, a.Bounds().Dy(), 512)
	require.Equal(t, uint8(255), gray(a, 0x02*2, 0x01*2))

	empty := decodePNG(t, filepath.Join(outDir, "empty.bin"+source.OutputSuffix))
	require.Equal(t, uint8(0), gray(empty, 0x02*2, 0x01*2))

	_, err = os.Stat(filepath.Join(outDir, "skip.txt"+source.OutputSuffix))
	require.True(t, os.IsNotExist(err))

	sheet := decodePNG(t, merged)
	require.Equal(t, 2*a.Bounds().Dy()+export.SheetGap, sheet.Bounds().Dy())
}

func TestRenderBrightnessAndPairing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "x.bin")
	// half pairing sees 0x0102 twice and 0x0201 once
	require.NoError(t, os.WriteFile(in, []byte{1, 2, 1, 2, 1, 2}, 0644))

	_, err := run(t, "render", in)
	require.NoError(t, err)
	require.Equal(t, uint8(127), gray(decodePNG(t, in+source.OutputSuffix), 0x01, 0x02))

	_, err = run(t, "render", in, "-b", "1")
	require.NoError(t, err)
	require.Equal(t, uint8(255), gray(decodePNG(t, in+source.OutputSuffix), 0x01, 0x02))

	_, err = run(t, "render", in, "--render.pairing", "disjoint")
	require.NoError(t, err)
	require.Equal(t, uint8(0), gray(decodePNG(t, in+source.OutputSuffix), 0x01, 0x02))
}

func TestRenderErrors(t *testing.T) {
	_, err := run(t, "render")
	require.Error(t, err)

	_, err = run(t, "render", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = run(t, "render", t.TempDir())
	require.Error(t, err, "empty directory has nothing to render")

	in := filepath.Join(t.TempDir(), "a.bin")
	require.NoError(t, os.WriteFile(in, []byte{1, 2}, 0644))
	_, err = run(t, "render", in, "-b", "-1")
	require.Error(t, err)
	_, err = run(t, "render", in, "--render.pairing", "triples")
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	in := filepath.Join(t.TempDir(), "a.bin")
	require.NoError(t, os.WriteFile(in, []byte{0x00, 0xFF, 0x00, 0xFF}, 0644))

	out, err := run(t, "stats", in)
	require.NoError(t, err)
	require.Contains(t, out, "distinct: 2")
	require.Contains(t, out, "ff 00")

	out, err = run(t, "stats", in, "--json", "-n", "1")
	require.NoError(t, err)
	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.Equal(t, 4, s.Bytes)
	require.Equal(t, uint64(2), s.Total)
	require.Len(t, s.Top, 1)
	require.Equal(t, uint16(0x00FF), s.Top[0].Digraph)
}

func TestStatsMissingFileIsEmpty(t *testing.T) {
	out, err := run(t, "stats", filepath.Join(t.TempDir(), "missing.bin"))
	require.NoError(t, err)
	require.Contains(t, out, "digraphs: 0")
}

func TestChart(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.bin")
	require.NoError(t, os.WriteFile(in, []byte("abababcdcdxy"), 0644))
	out := filepath.Join(dir, "top.png")

	_, err := run(t, "chart", in, "-o", out)
	require.NoError(t, err)
	img := decodePNG(t, out)
	require.NotZero(t, img.Bounds().Dx())

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = run(t, "chart", empty, "-o", filepath.Join(dir, "e.png"))
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "filevis v0.0.0")
}
