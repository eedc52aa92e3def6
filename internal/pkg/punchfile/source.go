package punchfile

import "context"

// File is one raw punch file read from the import directory.
type File struct {
	Name string
	Data []byte
}

// Source lists punch files from a directory, bounded by limit. Keeping the
// filesystem behind this interface keeps the reconciliation pipeline
// unit-testable without a real directory.
type Source interface {
	ListFiles(ctx context.Context, dir string, limit int) ([]File, error)
}
