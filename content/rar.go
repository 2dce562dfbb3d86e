package content

import (
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

func extractFromRAR(path string, extensions []string) ([]byte, string, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, "", err
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err != nil {
			return nil, "", ErrNoContentFile
		}
		if header.IsDir || !matchesExtension(header.Name, extensions) {
			continue
		}
		data, err := limitedRead(r)
		if err != nil {
			return nil, "", err
		}
		return data, filepath.Base(header.Name), nil
	}
}
