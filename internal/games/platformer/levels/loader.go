// Package levels provides level loading for the platformer: the built-in
// campaign embedded in the binary, directory loading for custom levels and
// a file watcher for hot reload.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer/levels/formats"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrLevelNotFound is returned when no level has the requested id.
var ErrLevelNotFound = errors.New("levels: level not found")

// Loader handles loading levels from a directory.
type Loader struct {
	Root string

	// OnSkip, when set, is told about every level file LoadAll skips
	// because it could not be read or parsed.
	OnSkip func(file string, err error)
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]core.Level, error) {
	var levels []core.Level

	err := filepath.WalkDir(l.Root, func(file string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !IsLevelFile(file) {
			return nil
		}

		level, err := l.LoadFile(file)
		if err != nil {
			if l.OnSkip != nil {
				l.OnSkip(file, err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(file string) (core.Level, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return core.Level{}, fmt.Errorf("levels: reading file %s: %w", file, err)
	}

	lvl, err := parseByExtension(data, strings.ToLower(filepath.Ext(file)))
	if err != nil {
		return core.Level{}, fmt.Errorf("levels: parsing file %s: %w", file, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (core.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return core.Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return core.Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return ids(levels), nil
}

// Builtin returns the embedded campaign levels sorted by ID.
func Builtin() ([]core.Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("levels: reading builtin levels: %w", err)
	}

	var levels []core.Level
	for _, e := range entries {
		name := path.Join("builtin", e.Name())
		if e.IsDir() || !IsLevelFile(name) {
			continue
		}
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", name, err)
		}
		lvl, err := parseByExtension(data, strings.ToLower(path.Ext(name)))
		if err != nil {
			return nil, fmt.Errorf("levels: parsing %s: %w", name, err)
		}
		levels = append(levels, lvl)
	}
	sortByID(levels)
	return levels, nil
}

// Campaign builds the playable level sequence. The built-in levels come
// first; levels found in dir replace built-in levels with the same id and
// the rest are appended in ID order. An empty dir means built-in only.
// Invalid files in dir are skipped silently.
func Campaign(dir string) (*core.Campaign, error) {
	return LoadCampaign(dir, nil)
}

// LoadCampaign is Campaign with onSkip called for every invalid file in dir.
func LoadCampaign(dir string, onSkip func(file string, err error)) (*core.Campaign, error) {
	levels, err := Builtin()
	if err != nil {
		return nil, err
	}

	if dir != "" {
		custom, err := (&Loader{Root: dir, OnSkip: onSkip}).LoadAll()
		if err != nil {
			return nil, err
		}
		for _, c := range custom {
			i := slices.IndexFunc(levels, func(l core.Level) bool { return l.ID == c.ID })
			if i >= 0 {
				levels[i] = c
				continue
			}
			levels = append(levels, c)
		}
	}

	return core.NewCampaign(levels)
}

// IsLevelFile reports whether file has a supported level file extension.
func IsLevelFile(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	return slices.Contains(formats.FormatExtensions(), ext)
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (core.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return core.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func sortByID(levels []core.Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}

func ids(levels []core.Level) []string {
	out := make([]string, len(levels))
	for i, lvl := range levels {
		out[i] = lvl.ID
	}
	return out
}
