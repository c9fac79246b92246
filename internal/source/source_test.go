package source

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func TestReadMissingFileIsEmpty(t *testing.T) {
	require.Nil(t, Read(filepath.Join(t.TempDir(), "nope.bin"), false))
	require.Nil(t, Read(t.TempDir(), false))
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0xFF, 0, 0xFF}, 0644))
	require.Equal(t, []byte{0, 0xFF, 0, 0xFF}, Read(path, false))
	require.Equal(t, []byte{0, 0xFF, 0, 0xFF}, Read(path, true))
}

func TestDecompressZstd(t *testing.T) {
	payload := bytes.Repeat([]byte("digraph"), 100)
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	packed := enc.EncodeAll(payload, nil)
	require.NoError(t, enc.Close())

	out, err := Decompress(packed)
	require.NoError(t, err)
	require.Equal(t, payload, out)

	path := filepath.Join(t.TempDir(), "a.zst")
	require.NoError(t, os.WriteFile(path, packed, 0644))
	require.Equal(t, payload, Read(path, true))
	require.Equal(t, packed, Read(path, false))
}

func TestDecompressGzip(t *testing.T) {
	payload := bytes.Repeat([]byte{1, 2, 3}, 50)
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	out, err := Decompress(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, payload, out)
}

func TestReadCorruptCompressedFallsBackToRaw(t *testing.T) {
	raw := []byte{0x1F, 0x8B, 0x00, 0x01}
	path := filepath.Join(t.TempDir(), "broken.gz")
	require.NoError(t, os.WriteFile(path, raw, 0644))
	require.Equal(t, raw, Read(path, true))
}

func TestMatcher(t *testing.T) {
	m, err := NewMatcher(nil)
	require.NoError(t, err)
	require.True(t, m.Match("/x/anything.txt"))

	m, err = NewMatcher([]string{"*.bin", "*.{exe,dll}"})
	require.NoError(t, err)
	require.True(t, m.Match("/tmp/dir/a.bin"))
	require.True(t, m.Match("b.dll"))
	require.False(t, m.Match("/tmp/c.txt"))

	_, err = NewMatcher([]string{"[unclosed"})
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	for _, name := range []string{"a.bin", "b.txt", "sub/c.bin"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{1, 2}, 0644))
	}
	m, err := NewMatcher([]string{"*.bin"})
	require.NoError(t, err)

	explicit := filepath.Join(dir, "b.txt")
	files, err := Find([]string{dir, explicit}, m)
	require.NoError(t, err)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	require.Equal(t, []Input{
		{Path: filepath.Join(dir, "a.bin"), Rel: "a.bin"},
		{Path: filepath.Join(dir, "b.txt"), Rel: "b.txt"},
		{Path: filepath.Join(dir, "sub", "c.bin"), Rel: filepath.Join("sub", "c.bin")},
	}, files)

	_, err = Find([]string{filepath.Join(dir, "missing")}, m)
	require.Error(t, err)
}

func TestFindSkipsRenderedOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte{1, 2}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"+OutputSuffix), []byte{3, 4}, 0644))

	all, err := NewMatcher(nil)
	require.NoError(t, err)
	files, err := Find([]string{dir}, all)
	require.NoError(t, err)
	require.Equal(t, []Input{{Path: filepath.Join(dir, "a.bin"), Rel: "a.bin"}}, files)
}

func TestDecompressSizeLimit(t *testing.T) {
	defer func(old int64) { MaxDecompressed = old }(MaxDecompressed)
	MaxDecompressed = 1024
	payload := make([]byte, 64*1024)

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	packed := enc.EncodeAll(payload, nil)
	require.NoError(t, enc.Close())
	_, err = Decompress(packed)
	require.Error(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	_, err = Decompress(buf.Bytes())
	require.Error(t, err)

	small := payload[:512]
	buf.Reset()
	zw = gzip.NewWriter(&buf)
	_, err = zw.Write(small)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	out, err := Decompress(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, small, out)
}
