// Package ascii provides the ASCII art logo shown beside the system report.
// The logo is read from an asset file that may carry ANSI escape sequences;
// a plain built-in logo is used when no asset can be read.
package ascii

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LogoFile is the asset file name looked up by DefaultPaths.
const LogoFile = "fumofetch_logo.txt"

// ErrNoLogo is returned by Load when none of the paths exist.
var ErrNoLogo = errors.New("no logo file found")

// DefaultPaths returns the logo search order: the resources directory first,
// then the current directory. A non-empty override is tried before both.
func DefaultPaths(override string) []string {
	paths := []string{filepath.Join("resources", LogoFile), LogoFile}
	if override != "" {
		paths = append([]string{override}, paths...)
	}
	return paths
}

// Load reads the first existing path and splits it into lines.
//
// Parameters:
//   - paths: Candidate logo files in priority order
//
// Returns:
//   - The logo lines with every escape sequence preserved
//   - ErrNoLogo if no path exists, or the read error of the first existing path
func Load(paths ...string) ([]string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read logo %s: %w", path, err)
		}
		return Split(string(b)), nil
	}
	return nil, ErrNoLogo
}

// Split breaks logo text on newlines. A trailing newline does not produce an
// empty last line; blank lines inside the art are kept.
func Split(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// Fallback returns the built-in logo used when no asset can be loaded.
func Fallback() []string {
	return []string{
		`      /\      `,
		`     /  \     `,
		`    /\   \    `,
		`   /      \   `,
		`  /   ,,   \  `,
		` /   |  |   \ `,
		`/_-''    ''-_\`,
		`             `,
	}
}
