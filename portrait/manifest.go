// Package portrait resolves entrant names to display images.
//
// Images are located through a precomputed manifest of the image directory
// rather than by probing candidate paths one at a time. Lookups try the same
// name variants an operator would (spacing, punctuation, case, separators)
// and finally an accent-insensitive match, then fall back to a default image.
package portrait

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultImage is shown when no portrait matches.
const DefaultImage = "https://img1.hscicdn.com/image/upload/f_auto,t_ds_square_w_320,q_50/lsci/db/PICTURES/CMS/319000/319095.jpg"

// Extensions are the recognised image extensions, in preference order.
var Extensions = []string{".png", ".jpg", ".jpeg", ".avif", ".webp"}

// Manifest maps image file stems to file names within Root.
type Manifest struct {
	Root    string            `yaml:"root"`
	Default string            `yaml:"default,omitempty"`
	Entries map[string]string `yaml:"entries"`

	folded map[string]string
}

// BuildManifest scans dir (non-recursively) for images. When one stem exists
// with several extensions, the earliest in Extensions wins.
func BuildManifest(dir string) (*Manifest, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read portrait directory: %w", err)
	}

	m := &Manifest{Root: dir, Entries: map[string]string{}}
	rank := map[string]int{}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		r := slices.Index(Extensions, ext)
		if r < 0 {
			continue
		}
		stem := strings.TrimSuffix(f.Name(), filepath.Ext(f.Name()))
		if prev, ok := rank[stem]; ok && prev <= r {
			continue
		}
		rank[stem] = r
		m.Entries[stem] = f.Name()
	}
	m.index()
	return m, nil
}

// LoadManifest reads a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Entries == nil {
		m.Entries = map[string]string{}
	}
	m.index()
	return &m, nil
}

// WriteFile saves m as YAML.
func (m *Manifest) WriteFile(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func (m *Manifest) index() {
	m.folded = make(map[string]string, len(m.Entries))
	// Sorted so that colliding folded keys resolve the same way every run.
	for _, stem := range slices.Sorted(maps.Keys(m.Entries)) {
		key := Fold(stem)
		if _, ok := m.folded[key]; !ok {
			m.folded[key] = m.Entries[stem]
		}
	}
}

// Find returns the path of name's portrait, trying each of Variants(name)
// and then an accent-insensitive match. ok is false when nothing matches.
func (m *Manifest) Find(name string) (path string, ok bool) {
	for _, v := range Variants(name) {
		if file, found := m.Entries[v]; found {
			return filepath.Join(m.Root, file), true
		}
	}
	if file, found := m.folded[Fold(name)]; found {
		return filepath.Join(m.Root, file), true
	}
	return "", false
}

// DefaultURL returns the manifest's fallback image.
func (m *Manifest) DefaultURL() string {
	if m.Default != "" {
		return m.Default
	}
	return DefaultImage
}
