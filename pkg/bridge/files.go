package bridge

import "context"

// FileInfo describes one entry returned by FileStore.List.
type FileInfo struct {
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size"`
}

// FileStore is the file-manager contract the bridge consumes. The
// bridge depends on this interface, never a concrete storage backend, so a
// host can back it with a local filesystem, an in-memory store for tests,
// or a remote object store without pkg/bridge knowing the difference.
type FileStore interface {
	List(ctx context.Context) ([]FileInfo, error)
	Read(ctx context.Context, path string) (string, error)
	Write(ctx context.Context, path, content string) error
	Create(ctx context.Context, path string) error
	Remove(ctx context.Context, path string) error
}
