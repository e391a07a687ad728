package platform

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Store holds platform definitions keyed by name.
type Store struct {
	platforms map[string]Platform
}

// NewStore validates the supplied platforms and indexes them by name.
func NewStore(platforms ...Platform) (*Store, error) {
	store := &Store{platforms: make(map[string]Platform, len(platforms))}
	for _, p := range platforms {
		if err := store.add(p.withDefaults()); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON, YAML, or HCL platform file. A nil
// filesystem yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{platforms: make(map[string]Platform)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPlatformFile(name) {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("platform: read %s: %w", name, err)
		}

		defs, err := parseDocument(data, name)
		if err != nil {
			return err
		}
		for _, def := range defs {
			def.Source = name
			if err := store.add(def.withDefaults()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Platform returns the definition registered under name.
func (s *Store) Platform(name string) (Platform, bool) {
	if s == nil {
		return Platform{}, false
	}
	p, ok := s.platforms[name]
	return p, ok
}

// Names returns the registered platform names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.platforms))
	for name := range s.platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any platform.
func (s *Store) Empty() bool {
	return s == nil || len(s.platforms) == 0
}

// Merge returns a new store holding the receiver's platforms overlaid with
// other's. Definitions in other replace same-named ones.
func (s *Store) Merge(other *Store) *Store {
	out := &Store{platforms: make(map[string]Platform)}
	if s != nil {
		for name, p := range s.platforms {
			out.platforms[name] = p
		}
	}
	if other != nil {
		for name, p := range other.platforms {
			out.platforms[name] = p
		}
	}
	return out
}

func (s *Store) add(p Platform) error {
	if err := p.Validate(); err != nil {
		if p.Source != "" {
			return fmt.Errorf("%w (file %s)", err, p.Source)
		}
		return err
	}
	if existing, exists := s.platforms[p.Name]; exists {
		return fmt.Errorf("platform: duplicate platform %q (files %s, %s)", p.Name, existing.Source, p.Source)
	}
	s.platforms[p.Name] = p
	return nil
}

type documentFile struct {
	Platforms map[string]platformFile `json:"platforms" yaml:"platforms"`
}

type platformFile struct {
	Description string  `json:"description" yaml:"description"`
	Units       int     `json:"units" yaml:"units"`
	Pins        int     `json:"pins" yaml:"pins"`
	Suffix      string  `json:"suffix" yaml:"suffix"`
	Addressing  string  `json:"addressing" yaml:"addressing"`
	Prefix      string  `json:"prefix" yaml:"prefix"`
	Symbols     Symbols `json:"symbols" yaml:"symbols"`
}

type hclDocument struct {
	Platforms []hclPlatform `hcl:"platform,block"`
}

type hclPlatform struct {
	Name        string      `hcl:"name,label"`
	Description string      `hcl:"description,optional"`
	Units       int         `hcl:"units"`
	Pins        int         `hcl:"pins"`
	Suffix      string      `hcl:"suffix,optional"`
	Addressing  string      `hcl:"addressing,optional"`
	Prefix      string      `hcl:"prefix,optional"`
	Symbols     *hclSymbols `hcl:"symbols,block"`
}

type hclSymbols struct {
	Driver          string `hcl:"driver,optional"`
	Descriptor      string `hcl:"descriptor,optional"`
	DescriptorArray string `hcl:"descriptor_array,optional"`
	PinTable        string `hcl:"pin_table,optional"`
	HandlerRecords  string `hcl:"handler_records,optional"`
	IndexConstant   string `hcl:"index_constant,optional"`
}

func isPlatformFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml", ".hcl":
		return true
	default:
		return false
	}
}

func parseDocument(data []byte, source string) ([]Platform, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("platform: file %s is empty", source)
	}

	switch strings.ToLower(path.Ext(source)) {
	case ".hcl":
		return parseHCL(data, source)
	case ".json":
		var doc documentFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("platform: parse %s: %w", source, err)
		}
		return fromDocument(doc, source)
	default:
		var doc documentFile
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("platform: parse %s: %w", source, err)
		}
		return fromDocument(doc, source)
	}
}

func fromDocument(doc documentFile, source string) ([]Platform, error) {
	if len(doc.Platforms) == 0 {
		return nil, fmt.Errorf("platform: file %s defines no platforms", source)
	}
	names := make([]string, 0, len(doc.Platforms))
	for name := range doc.Platforms {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Platform, 0, len(names))
	for _, name := range names {
		raw := doc.Platforms[name]
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("platform: file %s defines an empty platform name", source)
		}
		out = append(out, Platform{
			Name:        name,
			Description: raw.Description,
			Units:       raw.Units,
			Pins:        raw.Pins,
			Suffix:      SuffixMode(strings.TrimSpace(raw.Suffix)),
			Addressing:  raw.Addressing,
			Prefix:      raw.Prefix,
			Symbols:     raw.Symbols,
		})
	}
	return out, nil
}

func parseHCL(data []byte, source string) ([]Platform, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, source)
	if diags.HasErrors() {
		return nil, fmt.Errorf("platform: parse %s: %s", source, diags.Error())
	}

	var doc hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("platform: decode %s: %s", source, diags.Error())
	}
	if len(doc.Platforms) == 0 {
		return nil, fmt.Errorf("platform: file %s defines no platforms", source)
	}

	out := make([]Platform, 0, len(doc.Platforms))
	for _, raw := range doc.Platforms {
		p := Platform{
			Name:        raw.Name,
			Description: raw.Description,
			Units:       raw.Units,
			Pins:        raw.Pins,
			Suffix:      SuffixMode(strings.TrimSpace(raw.Suffix)),
			Addressing:  raw.Addressing,
			Prefix:      raw.Prefix,
		}
		if raw.Symbols != nil {
			p.Symbols = Symbols{
				Driver:          raw.Symbols.Driver,
				Descriptor:      raw.Symbols.Descriptor,
				DescriptorArray: raw.Symbols.DescriptorArray,
				PinTable:        raw.Symbols.PinTable,
				HandlerRecords:  raw.Symbols.HandlerRecords,
				IndexConstant:   raw.Symbols.IndexConstant,
			}
		}
		out = append(out, p)
	}
	return out, nil
}
