// Package source locates input files and reads their bytes.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/merridan/filevis/internal/logging"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// MaxDecompressed caps the size of unpacked input.
var MaxDecompressed int64 = 1 << 30

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// Read returns the whole content of path. Any failure is logged and yields nil
// so callers render the empty state instead of aborting.
func Read(path string, decompress bool) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("could not read %s: %v", path, err)
		return nil
	}
	if !decompress {
		return data
	}
	out, err := Decompress(data)
	if err != nil {
		logging.Warn("could not decompress %s, using raw bytes: %v", path, err)
		return data
	}
	return out
}

// Decompress unpacks zstd or gzip data detected by magic bytes. Other data is
// returned unchanged. Output larger than MaxDecompressed is an error.
func Decompress(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(MaxDecompressed)))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case bytes.HasPrefix(data, gzipMagic):
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, MaxDecompressed+1))
		if err != nil {
			return nil, err
		}
		if int64(len(out)) > MaxDecompressed {
			return nil, fmt.Errorf("decompressed size exceeds %d bytes", MaxDecompressed)
		}
		return out, nil
	}
	return data, nil
}

// Matcher filters file names against glob patterns. No patterns match everything.
type Matcher struct {
	globs []glob.Glob
}

// NewMatcher compiles patterns such as "*.bin" or "*.{exe,dll}".
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// Match reports whether the base name of path matches any pattern.
func (m *Matcher) Match(path string) bool {
	if len(m.globs) == 0 {
		return true
	}
	name := filepath.Base(path)
	for _, g := range m.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// OutputSuffix is appended to an input's name for its rendered heatmap.
// Walked files carrying it are skipped so reruns do not render their own output.
const OutputSuffix = ".digraph.png"

// Input is a file to render. Rel is its path below the walked directory, or
// its base name when it was named explicitly.
type Input struct {
	Path string
	Rel  string
}

// Find expands paths into regular files. Directories are walked recursively
// and their entries filtered by m; explicitly named files are always kept.
func Find(paths []string, m *Matcher) ([]Input, error) {
	var files []Input
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, Input{Path: p, Rel: filepath.Base(p)})
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() || strings.HasSuffix(d.Name(), OutputSuffix) || !m.Match(path) {
				return nil
			}
			rel, err := filepath.Rel(p, path)
			if err != nil {
				return err
			}
			files = append(files, Input{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
