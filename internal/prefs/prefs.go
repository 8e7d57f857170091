// Package prefs stores the dashboard's user preferences: panel visibility
// flags and the alert sort order. Values are strings, flags are "true" or
// "false", and every key carries a dirty bit that readers clear once they
// have reacted to a change.
package prefs

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/rileyhilliard/rfdash/internal/errors"
	"gopkg.in/yaml.v3"
)

// Store is a preference set, optionally backed by a YAML file. Saving
// rewrites only the keys it owns and keeps the rest of the document,
// comments included.
type Store struct {
	path   string
	values map[string]string
	dirty  map[string]bool
	doc    yaml.Node
}

// NewMemory creates a store that is never written to disk.
func NewMemory() *Store {
	return &Store{
		values: make(map[string]string),
		dirty:  make(map[string]bool),
	}
}

// Open loads preferences from path. A missing file is an empty store that
// will be created on the first Save.
func Open(path string) (*Store, error) {
	s := NewMemory()
	s.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot read preferences: "+path,
			"Check file permissions, or remove the file to start fresh")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	if err := yaml.Unmarshal(data, &s.doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPrefs,
			"Preferences file is not valid YAML: "+path,
			"Fix or remove the file")
	}

	root := s.mapping()
	if root == nil {
		return nil, errors.New(errors.ErrPrefs,
			"Preferences file must be a mapping: "+path,
			"Fix or remove the file")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind == yaml.ScalarNode && v.Kind == yaml.ScalarNode {
			s.values[k.Value] = v.Value
		}
	}
	return s, nil
}

// Path returns the backing file, or "" for a memory store.
func (s *Store) Path() string {
	return s.path
}

// FetchOpt returns the stored value for key, or "" when unset.
func (s *Store) FetchOpt(key string) string {
	return s.values[key]
}

// SetOpt stores a value and sets its dirty bit when dirty is true.
func (s *Store) SetOpt(key, value string, dirty bool) {
	s.values[key] = value
	if dirty {
		s.dirty[key] = true
	}
}

// FetchOptDirty reports whether key changed since its dirty bit was cleared.
func (s *Store) FetchOptDirty(key string) bool {
	return s.dirty[key]
}

// SetOptDirty sets or clears the dirty bit for key.
func (s *Store) SetOptDirty(key string, dirty bool) {
	if dirty {
		s.dirty[key] = true
		return
	}
	delete(s.dirty, key)
}

// Visible evaluates a boolean flag. A default-on flag is visible unless it
// is explicitly "false"; a default-off flag is visible only when "true".
func (s *Store) Visible(key string, def Default) bool {
	v, ok := s.values[key]
	if def == DefaultOn {
		return !ok || v == "" || v == "true"
	}
	return v == "true"
}

// Toggle flips a flag relative to its current visibility, marks it dirty
// and saves. It returns the new visibility.
func (s *Store) Toggle(key string, def Default) (bool, error) {
	next := !s.Visible(key, def)
	value := "false"
	if next {
		value = "true"
	}
	s.SetOpt(key, value, true)
	return next, s.Save()
}

// Keys returns every stored key, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the store to its file. Memory stores do nothing.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}

	root := s.mapping()
	if root == nil {
		root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		s.doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
	}

	for _, key := range s.Keys() {
		setMapValue(root, key, s.values[key])
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&s.doc); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs, "Cannot encode preferences", "")
	}
	encoder.Close()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot create preferences directory", "Check permissions on "+filepath.Dir(s.path))
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Cannot save preferences: "+s.path, "Check file permissions")
	}
	return nil
}

// mapping returns the document's top-level mapping node, if any.
func (s *Store) mapping() *yaml.Node {
	if s.doc.Kind != yaml.DocumentNode || len(s.doc.Content) == 0 {
		return nil
	}
	if root := s.doc.Content[0]; root.Kind == yaml.MappingNode {
		return root
	}
	return nil
}

// findMapValue finds a value in a mapping node by key name.
func findMapValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if k := node.Content[i]; k.Kind == yaml.ScalarNode && k.Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// setMapValue updates key in place, or appends it. Values are always
// written as strings so "true" survives a round trip unchanged.
func setMapValue(node *yaml.Node, key, value string) {
	if v := findMapValue(node, key); v != nil {
		v.Kind = yaml.ScalarNode
		v.Tag = "!!str"
		v.Value = value
		v.Content = nil
		return
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
