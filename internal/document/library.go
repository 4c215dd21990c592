package document

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PartFileExt is the extension for part description files.
const PartFileExt = ".json"

// Library is a filesystem-backed part source: each <name>.json file under
// Dir describes one Part. It implements Resolver, letting headless users
// feed real geometry to the engine without a CAD host.
//
// Files are read on every Resolve — the library holds no state, so edits
// on disk are picked up immediately.
type Library struct {
	Dir string
}

// NewLibrary creates a part library rooted at dir. The directory is
// created lazily on Save; a missing directory just resolves nothing.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// DefaultLibraryDir returns the standard part library location,
// ~/.cadscout/parts.
func DefaultLibraryDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cadscout", "parts")
}

// partPath returns the file path for a part name.
func (l *Library) partPath(name string) string {
	return filepath.Join(l.Dir, name+PartFileExt)
}

// Resolve loads the named part file. Malformed files resolve as missing —
// a broken library entry must not make the whole engine unusable.
func (l *Library) Resolve(name string) (any, bool) {
	p, err := l.Load(name)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Load reads and decodes one part file.
func (l *Library) Load(name string) (*Part, error) {
	data, err := os.ReadFile(l.partPath(name))
	if err != nil {
		return nil, fmt.Errorf("reading part %q: %w", name, err)
	}
	var p Part
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing part %q: %w", name, err)
	}
	return &p, nil
}

// Save writes a part description to the library, creating the directory
// if needed.
func (l *Library) Save(name string, p *Part) error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return fmt.Errorf("creating part library: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding part %q: %w", name, err)
	}
	if err := os.WriteFile(l.partPath(name), data, 0o644); err != nil {
		return fmt.Errorf("writing part %q: %w", name, err)
	}
	return nil
}

// PartNames lists the names of all part files in the library, sorted.
// A missing directory yields an empty list.
func (l *Library) PartNames() []string {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), PartFileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), PartFileExt))
	}
	sort.Strings(names)
	return names
}
