package artifacts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Uniswap/lp-action-contracts/types"

	errorsmod "cosmossdk.io/errors"
)

const nodeModules = "node_modules"

// Resolver maps an artifact source to a file on disk.
//
// Sources that are absolute or start with ./ or ../ are plain paths relative
// to BaseDir. Anything else is a package specifier (e.g.
// "@uniswap/v3-core/artifacts/...json") and is looked up in the node_modules
// directory of BaseDir and then of each of its ancestors, nearest first.
type Resolver struct {
	BaseDir string
}

// NewResolver returns a resolver rooted at baseDir. An empty baseDir means
// the working directory.
func NewResolver(baseDir string) Resolver {
	if baseDir == "" {
		baseDir = "."
	}
	return Resolver{BaseDir: baseDir}
}

// Resolve returns the path of the artifact file named by source.
func (r Resolver) Resolve(source string) (string, error) {
	if source == "" {
		return "", errorsmod.Wrap(types.ErrSourceResolution, "empty artifact source")
	}

	base, err := filepath.Abs(r.BaseDir)
	if err != nil {
		return "", errorsmod.Wrapf(types.ErrSourceResolution, "base directory %q: %s", r.BaseDir, err)
	}

	if isPathSource(source) {
		path := filepath.FromSlash(source)
		if !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		if !isFile(path) {
			return "", errorsmod.Wrapf(types.ErrSourceResolution, "%s: no such file", path)
		}
		return filepath.Clean(path), nil
	}

	var tried []string
	for dir := base; ; dir = filepath.Dir(dir) {
		// node never looks inside node_modules/node_modules
		if filepath.Base(dir) != nodeModules {
			candidate := filepath.Join(dir, nodeModules, filepath.FromSlash(source))
			if isFile(candidate) {
				return candidate, nil
			}
			tried = append(tried, candidate)
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	return "", errorsmod.Wrapf(
		types.ErrSourceResolution,
		"cannot find package artifact %q, tried: %s", source, strings.Join(tried, ", "),
	)
}

func isPathSource(source string) bool {
	return filepath.IsAbs(source) ||
		strings.HasPrefix(source, "./") ||
		strings.HasPrefix(source, "../") ||
		source == "." || source == ".."
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
