package shader

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
)

// LoadSource reads the whole file at path. A leading ~ is expanded to the
// user's home directory.
//
// On failure it returns "" and an error matching ErrSourceUnavailable;
// partial content is never returned.
func LoadSource(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return string(data), nil
}

// LoadSourceFS is LoadSource over fsys, typically an embed.FS.
func LoadSourceFS(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return string(data), nil
}

// load reads name from the builder's filesystem.
func (b *Builder) load(name string) (string, error) {
	if b.opts.fsys != nil {
		return LoadSourceFS(b.opts.fsys, name)
	}
	return LoadSource(name)
}
