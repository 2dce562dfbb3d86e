// Package content loads the files a libretro core receives via
// retro_load_game / retro_load_game_special, including archive-aware
// extraction (zip, 7z, gzip/tar.gz, rar) adapted from a ROM loader's
// single-file logic to the frontend's multi-file, subsystem-aware shape.
package content

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21}
)

// maxContentSize bounds how much data a single load request will read into
// memory, regardless of source (raw file or archive member).
const maxContentSize = 64 * 1024 * 1024

var (
	ErrNoContentFile     = errors.New("content: no matching file found in archive")
	ErrUnsupportedFormat = errors.New("content: unsupported archive format")
	ErrFileTooLarge      = errors.New("content: file exceeds maximum size limit")
)

type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func detectFormat(header []byte, path string, extensions []string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}
	if strings.HasSuffix(strings.ToLower(path), ".tar.gz") {
		return formatGzip
	}

	if len(extensions) == 0 {
		return formatRaw
	}
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return formatRaw
		}
	}
	return formatUnknown
}

func matchesExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxContentSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxContentSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// loadFromPath resolves one on-disk path, transparently extracting the
// first matching file from a recognized archive format, or reading the
// file as-is when it isn't an archive.
func loadFromPath(path string, extensions []string) (data []byte, name string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, "", err
	}
	header = header[:n]

	format := detectFormat(header, path, extensions)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", err
	}

	switch format {
	case formatRaw:
		data, err := limitedRead(f)
		return data, filepath.Base(path), err
	case formatZIP:
		return extractFromZIP(path, extensions)
	case format7z:
		return extractFrom7z(path, extensions)
	case formatGzip:
		return extractFromGzip(path, extensions)
	case formatRAR:
		return extractFromRAR(path, extensions)
	default:
		return nil, "", ErrUnsupportedFormat
	}
}
