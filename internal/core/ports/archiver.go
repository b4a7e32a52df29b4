package ports

import (
	"context"
	"io"
)

// Archiver writes and reads compressed package archives.
//
//go:generate mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Create writes the files, given as slash separated paths relative to root, to w.
	Create(ctx context.Context, w io.Writer, root string, files []string) error

	// Extract unpacks the archive at archivePath into destDir, which must not exist yet.
	Extract(ctx context.Context, archivePath, destDir string) error

	// ReadFile returns the contents of the named entry of the archive.
	ReadFile(archivePath, name string) ([]byte, error)
}
