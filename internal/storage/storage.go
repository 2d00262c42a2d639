package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMissingFile is returned when no file was supplied for upload.
	ErrMissingFile = errors.New("no file was supplied")

	// ErrDisallowedType is returned when the uploaded file's extension is
	// not on the allow-list. This is a user-visible validation failure,
	// not a server fault.
	ErrDisallowedType = errors.New("file type is not allowed")
)

// allowedExtensions is the upload allow-list, checked case-insensitively.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Store persists uploaded image assets. Save returns the asset reference a
// product row holds: a bare filename for the local backend, an absolute
// URL for the hosted backend.
type Store interface {
	Save(ctx context.Context, originalFilename string, data []byte) (string, error)
	Remove(ctx context.Context, ref string) error
}

// storedName validates the client-supplied filename against the extension
// allow-list and returns a fresh collision-resistant object name. Only the
// extension of the original name is preserved; the client filename is
// never used for placement.
func storedName(originalFilename string) (string, error) {
	if originalFilename == "" {
		return "", ErrMissingFile
	}
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !allowedExtensions[ext] {
		return "", ErrDisallowedType
	}
	return uuid.NewString() + ext, nil
}
