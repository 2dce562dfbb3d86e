package content

import (
	"archive/zip"
	"path/filepath"
)

func extractFromZIP(path string, extensions []string) ([]byte, string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !matchesExtension(f.Name, extensions) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", err
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(f.Name), nil
	}
	return nil, "", ErrNoContentFile
}
