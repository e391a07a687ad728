package functionset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTemplate names the built-in Legato forwarding API function set.
const DefaultTemplate = "legato-c"

const templateExt = ".tpl"

// Template engines a manifest may name. EnginePongo2 keeps integers intact;
// EngineGoTemplate converts render data through JSON, so numbers reach the
// template as floats and print through the integer filter.
const (
	EnginePongo2     = "pongo2"
	EngineGoTemplate = "go-template"
)

// ErrUnknownTemplate is returned when a function set name is not registered.
var ErrUnknownTemplate = errors.New("functionset: unknown template")

var suffixPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Template is one function set: a pongo2 template rendered once per
// coordinate, plus the ordered identifier suffixes every rendered block must
// declare.
type Template struct {
	Name        string
	Description string
	// Path is the template name relative to Files, without extension.
	Path string
	// Prelude optionally names a template rendered once before all blocks.
	Prelude string
	// Engine names the template engine; EnginePongo2 when the manifest is silent.
	Engine    string
	Functions []string
	Files     fs.FS
	Source    string
}

// HasPrelude reports whether the set ships a prelude template.
func (t Template) HasPrelude() bool {
	return t.Prelude != ""
}

// Store holds function sets keyed by name.
type Store struct {
	templates map[string]Template
}

type manifestFile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Template    string   `yaml:"template"`
	Prelude     string   `yaml:"prelude"`
	Engine      string   `yaml:"engine"`
	Functions   []string `yaml:"functions"`
}

// LoadFS walks fsys for YAML manifests. Each manifest names its template
// (defaulting to the manifest's base name) and lists the functions it
// declares.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{templates: make(map[string]Template)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		switch strings.ToLower(path.Ext(name)) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("functionset: read %s: %w", name, err)
		}
		tmpl, err := parseManifest(fsys, name, data)
		if err != nil {
			return err
		}
		if existing, exists := store.templates[tmpl.Name]; exists {
			return fmt.Errorf("functionset: duplicate template %q (files %s, %s)", tmpl.Name, existing.Source, name)
		}
		store.templates[tmpl.Name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Template returns the function set registered under name.
func (s *Store) Template(name string) (Template, bool) {
	if s == nil {
		return Template{}, false
	}
	t, ok := s.templates[name]
	return t, ok
}

// Lookup is Template with an ErrUnknownTemplate error naming the known sets.
func (s *Store) Lookup(name string) (Template, error) {
	t, ok := s.Template(name)
	if !ok {
		return Template{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownTemplate, name, strings.Join(s.Names(), ", "))
	}
	return t, nil
}

// Names returns the registered set names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a store holding the receiver's sets overlaid with other's.
func (s *Store) Merge(other *Store) *Store {
	out := &Store{templates: make(map[string]Template)}
	for _, src := range []*Store{s, other} {
		if src == nil {
			continue
		}
		for name, t := range src.templates {
			out.templates[name] = t
		}
	}
	return out
}

func parseManifest(fsys fs.FS, name string, data []byte) (Template, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Template{}, fmt.Errorf("functionset: parse %s: %w", name, err)
	}

	dir := path.Dir(name)
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))

	tmpl := Template{
		Name:        strings.TrimSpace(raw.Name),
		Description: strings.TrimSpace(raw.Description),
		Path:        strings.TrimSuffix(strings.TrimSpace(raw.Template), templateExt),
		Prelude:     strings.TrimSuffix(strings.TrimSpace(raw.Prelude), templateExt),
		Engine:      strings.ToLower(strings.TrimSpace(raw.Engine)),
		Files:       fsys,
		Source:      name,
	}
	if tmpl.Name == "" {
		tmpl.Name = base
	}
	if tmpl.Path == "" {
		tmpl.Path = base
	}
	switch tmpl.Engine {
	case "":
		tmpl.Engine = EnginePongo2
	case EnginePongo2, EngineGoTemplate:
	default:
		return Template{}, fmt.Errorf("functionset: %s: unknown engine %q (known: %s, %s)", name, tmpl.Engine, EnginePongo2, EngineGoTemplate)
	}
	tmpl.Path = path.Join(dir, tmpl.Path)
	if tmpl.Prelude != "" {
		tmpl.Prelude = path.Join(dir, tmpl.Prelude)
	}

	if len(raw.Functions) == 0 {
		return Template{}, fmt.Errorf("functionset: %s lists no functions", name)
	}
	seen := make(map[string]struct{}, len(raw.Functions))
	for _, fn := range raw.Functions {
		fn = strings.TrimSpace(fn)
		if !suffixPattern.MatchString(fn) {
			return Template{}, fmt.Errorf("functionset: %s: function %q is not a C identifier", name, fn)
		}
		if _, dup := seen[fn]; dup {
			return Template{}, fmt.Errorf("functionset: %s: function %q listed twice", name, fn)
		}
		seen[fn] = struct{}{}
		tmpl.Functions = append(tmpl.Functions, fn)
	}

	for _, p := range []string{tmpl.Path, tmpl.Prelude} {
		if p == "" {
			continue
		}
		if _, err := fs.Stat(fsys, p+templateExt); err != nil {
			return Template{}, fmt.Errorf("functionset: %s: template %s: %w", name, p+templateExt, err)
		}
	}
	return tmpl, nil
}
