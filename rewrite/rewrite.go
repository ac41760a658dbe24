package rewrite

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/creachadair/atomicfile"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
)

const defaultPerm fs.FileMode = 0o644

// ReadFile returns the current contents of the destination file.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errorsmod.Wrapf(types.ErrDestinationAccess, "read %s: %s", path, err)
	}
	return data, nil
}

// WriteFile replaces the contents of path with data.
//
// The data is staged in a temporary file next to the destination and renamed
// over it, so readers observe either the old or the new contents. A symlinked
// destination is written through: the file it points to is replaced and the
// link is kept. The permission bits of an existing destination are kept.
func WriteFile(path string, data []byte) error {
	path, err := resolve(filepath.Clean(path))
	if err != nil {
		return err
	}

	perm := defaultPerm
	if info, err := os.Stat(path); err == nil {
		if !info.Mode().IsRegular() {
			return errorsmod.Wrapf(types.ErrDestinationAccess, "%s is not a regular file", path)
		}
		perm = info.Mode().Perm()
	}

	if err := atomicfile.WriteData(path, data, perm); err != nil {
		return errorsmod.Wrapf(types.ErrDestinationAccess, "write %s: %s", path, err)
	}

	// the rename is only durable once the directory entry is synced
	dir := filepath.Dir(path)
	if err := syncDir(dir); err != nil {
		return errorsmod.Wrapf(types.ErrDestinationAccess, "sync directory %s: %s", dir, err)
	}
	return nil
}

// resolve follows path to its final target when it is a symlink.
func resolve(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", errorsmod.Wrapf(types.ErrDestinationAccess, "resolve symlink %s: %s", path, err)
	}
	return target, nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
