package filestorage

import (
	"errors"
	"io"
)

var ErrInvalidPath = errors.New("invalid file path")

// FileStorage stores uploaded documents under relative keys such as
// "resumes/12_5f0c...pdf"
type FileStorage interface {
	// Save writes content to subDir/fileName and returns its key
	Save(subDir, fileName string, content io.Reader) (string, error)

	// Read returns the stored bytes for key
	Read(key string) ([]byte, error)

	// Delete removes key. Missing files are not an error.
	Delete(key string) error

	// URL returns the public URL for key, or the key itself without a base URL
	URL(key string) string
}
