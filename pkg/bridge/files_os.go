package bridge

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// OSFileStore implements FileStore against a real directory tree with
// plain os.ReadFile/os.WriteFile. There are no open/save dialogs here:
// the host picks the path, this just does the I/O.
type OSFileStore struct {
	Root string
}

// NewOSFileStore creates a store rooted at dir. Paths passed to its
// methods are joined under dir (an absolute path is re-rooted there, not
// used as-is); a path whose ".." segments climb out of dir is rejected.
func NewOSFileStore(dir string) *OSFileStore {
	return &OSFileStore{Root: dir}
}

func (s *OSFileStore) resolve(path string) (string, error) {
	full := filepath.Join(s.Root, path)
	rel, err := filepath.Rel(s.Root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", pkgerrors.Errorf("bridge: path %q escapes file root", path)
	}
	return full, nil
}

func (s *OSFileStore) List(ctx context.Context) ([]FileInfo, error) {
	var out []FileInfo
	err := filepath.Walk(s.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == s.Root {
			return nil
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		out = append(out, FileInfo{Path: rel, IsDir: info.IsDir(), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "bridge: listing files")
	}
	return out, nil
}

func (s *OSFileStore) Read(ctx context.Context, path string) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(full)
	if err != nil {
		return "", pkgerrors.Wrapf(err, "bridge: reading %q", path)
	}
	return string(b), nil
}

func (s *OSFileStore) Write(ctx context.Context, path, content string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		return pkgerrors.Wrapf(err, "bridge: writing %q", path)
	}
	return nil
}

func (s *OSFileStore) Create(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return pkgerrors.Wrapf(err, "bridge: creating %q", path)
	}
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "bridge: creating %q", path)
	}
	return f.Close()
}

func (s *OSFileStore) Remove(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		return pkgerrors.Wrapf(err, "bridge: removing %q", path)
	}
	return nil
}

var _ FileStore = (*OSFileStore)(nil)
