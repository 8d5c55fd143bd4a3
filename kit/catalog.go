// SPDX-License-Identifier: EPL-2.0

package kit

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultDirs is the kit search path: the system and per-user Hydrogen
// drumkit directories plus drmr's own.
func DefaultDirs() []string {
	dirs := []string{
		"/usr/share/hydrogen/data/drumkits",
		"/usr/local/share/hydrogen/data/drumkits",
		"/usr/share/drmr/drumkits",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".hydrogen", "data", "drumkits"),
			filepath.Join(home, ".drmr", "drumkits"),
		)
	}
	return dirs
}

// Catalog is the ordered list of kits found by Scan.
type Catalog []Entry

// Find returns the index of the kit whose path or name equals ref, or -1.
func (c Catalog) Find(ref string) int {
	clean := filepath.Clean(ref)
	for i, e := range c {
		if filepath.Clean(e.Path) == clean {
			return i
		}
	}
	for i, e := range c {
		if strings.EqualFold(e.Name, ref) {
			return i
		}
	}
	return -1
}

// Scan looks one level below each directory for kit directories and
// parses their descriptors. Missing directories are ignored. Kits that
// fail to parse are left out and reported in the joined error, which is
// informational: the returned catalog is usable either way. The catalog is
// sorted by name, then path.
func Scan(dirs []string) (Catalog, error) {
	var (
		out  Catalog
		errs []error
		seen = make(map[string]bool)
	)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, de := range entries {
			if !de.IsDir() {
				continue
			}
			path := filepath.Join(dir, de.Name())
			if seen[path] {
				continue
			}
			if _, err := os.Stat(filepath.Join(path, DescriptorName)); err != nil {
				continue
			}
			seen[path] = true

			k, err := ParseFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			out = append(out, Entry{
				Name:        k.Name,
				Description: k.Description,
				Path:        k.Path,
				Voices:      k.VoiceNames(),
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})

	return out, errors.Join(errs...)
}
