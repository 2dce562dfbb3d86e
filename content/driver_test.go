package content

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/retrohost/retrohost/abi"
	"github.com/retrohost/retrohost/drivers"
)

func createTestFile(t *testing.T, data []byte, ext string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

func createTestZipFile(t *testing.T, data []byte, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create zip: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	fw, err := w.Create(name)
	if err != nil {
		t.Fatalf("failed to create entry in zip: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("failed to write zip entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return path
}

func TestDriverLoad_RawFile(t *testing.T) {
	testData := []byte{0x01, 0x02, 0x03, 0x04}
	path := createTestFile(t, testData, ".sms")

	d := NewDriver()
	d.SetSystemInfo(abi.SystemInfo{ValidExtensions: "sms|gg"})

	got, err := d.Load(drivers.ContentRequest{Path: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(got.Files))
	}
	if !bytes.Equal(got.Files[0].Info.Data, testData) {
		t.Errorf("data mismatch: got %v, want %v", got.Files[0].Info.Data, testData)
	}
}

func TestDriverLoad_ZipArchive(t *testing.T) {
	testData := []byte{0xAA, 0xBB, 0xCC}
	path := createTestZipFile(t, testData, "game.sms")

	d := NewDriver()
	d.SetSystemInfo(abi.SystemInfo{ValidExtensions: "sms"})

	got, err := d.Load(drivers.ContentRequest{Path: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got.Files[0].Info.Data, testData) {
		t.Errorf("data mismatch: got %v, want %v", got.Files[0].Info.Data, testData)
	}
}

func TestDriverLoad_NoGame(t *testing.T) {
	d := NewDriver()
	got, err := d.Load(drivers.ContentRequest{NoGame: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Files) != 0 {
		t.Errorf("expected no files for a no-game load, got %d", len(got.Files))
	}
}

func TestDriverLoad_RawBytes(t *testing.T) {
	d := NewDriver()
	want := []byte{1, 2, 3}
	got, err := d.Load(drivers.ContentRequest{Data: want})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got.Files[0].Info.Data, want) {
		t.Errorf("data mismatch: got %v, want %v", got.Files[0].Info.Data, want)
	}
}

func TestDriverLoad_NeedFullpath(t *testing.T) {
	path := createTestFile(t, []byte{1, 2, 3}, ".sms")

	d := NewDriver()
	d.SetSystemInfo(abi.SystemInfo{ValidExtensions: "sms", NeedFullpath: true})

	got, err := d.Load(drivers.ContentRequest{Path: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Files[0].Info.Path != path {
		t.Errorf("expected Path to be set, got %q", got.Files[0].Info.Path)
	}
	if got.Files[0].Info.Data != nil {
		t.Errorf("expected no preloaded data for a need_fullpath core, got %d bytes", len(got.Files[0].Info.Data))
	}
}

func TestDriverLoadSpecial_MultipleFiles(t *testing.T) {
	paths := []string{
		createTestFile(t, []byte{1}, ".sms"),
		createTestFile(t, []byte{2}, ".sms"),
		createTestFile(t, []byte{3}, ".sms"),
	}

	d := NewDriver()
	d.SetSystemInfo(abi.SystemInfo{ValidExtensions: "sms"})

	info := abi.SubsystemInfo{Ident: "multi"}
	reqs := make([]drivers.ContentRequest, len(paths))
	for i, p := range paths {
		reqs[i] = drivers.ContentRequest{Path: p}
	}

	got, err := d.LoadSpecial(info, reqs)
	if err != nil {
		t.Fatalf("LoadSpecial failed: %v", err)
	}
	if got.Subsystem == nil || got.Subsystem.Ident != "multi" {
		t.Fatalf("expected subsystem descriptor to be preserved")
	}
	if len(got.Files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(got.Files))
	}
	for i, f := range got.Files {
		if len(f.Info.Data) != 1 || f.Info.Data[0] != byte(i+1) {
			t.Errorf("file %d: unexpected data %v", i, f.Info.Data)
		}
	}
}

func TestDriverLoad_ExtendedInfo(t *testing.T) {
	path := createTestFile(t, []byte{9, 9}, ".sms")

	d := NewDriver()
	d.EnableExtendedInfo(true)

	got, err := d.Load(drivers.ContentRequest{Path: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.Files[0].HasExt {
		t.Fatal("expected HasExt to be true when extended info is enabled")
	}
	if got.Files[0].Ext.FullPath != path {
		t.Errorf("expected FullPath %q, got %q", path, got.Files[0].Ext.FullPath)
	}

	ext, ok := d.GameInfoExt()
	if !ok {
		t.Fatal("expected GameInfoExt to be available after a load")
	}
	if ext.FullPath != path {
		t.Errorf("GameInfoExt().FullPath = %q, want %q", ext.FullPath, path)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		header   []byte
		path     string
		extensions []string
		want     formatType
	}{
		{"zip magic", []byte{0x50, 0x4B, 0x03, 0x04}, "file.dat", nil, formatZIP},
		{"7z magic", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, "file.dat", nil, format7z},
		{"gzip magic", []byte{0x1F, 0x8B}, "file.dat", nil, formatGzip},
		{"rar magic", []byte{0x52, 0x61, 0x72, 0x21}, "file.dat", nil, formatRAR},
		{"zip extension", nil, "game.zip", nil, formatZIP},
		{"raw matching extension", nil, "game.sms", []string{".sms"}, formatRaw},
		{"raw non-matching extension", nil, "game.sms", []string{".md"}, formatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.header, tt.path, tt.extensions); got != tt.want {
				t.Errorf("detectFormat(%v, %q, %v) = %d, want %d", tt.header, tt.path, tt.extensions, got, tt.want)
			}
		})
	}
}
