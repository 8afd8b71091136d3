package domain

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Option is a named boolean feature switch controlling how a dependency is built.
type Option struct {
	Name  string `json:"name" yaml:"name"`
	Value bool   `json:"value" yaml:"value"`
}

// String renders the option as name=True or name=False.
func (o Option) String() string {
	if o.Value {
		return o.Name + "=True"
	}
	return o.Name + "=False"
}

// OptionSet is an ordered set of options. Order is insertion order.
// The zero value is an empty set.
type OptionSet struct {
	items []Option
}

// NewOptionSet builds an OptionSet from the given options, rejecting duplicate names.
func NewOptionSet(opts ...Option) (OptionSet, error) {
	seen := make(map[string]struct{}, len(opts))
	items := make([]Option, 0, len(opts))
	for _, o := range opts {
		if _, dup := seen[o.Name]; dup {
			return OptionSet{}, zerr.With(ErrDuplicateOption, "option", o.Name)
		}
		seen[o.Name] = struct{}{}
		items = append(items, o)
	}
	return OptionSet{items: items}, nil
}

// OptionSetFromMap builds an OptionSet from a map, ordering options by name.
func OptionSetFromMap(m map[string]bool) OptionSet {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	items := make([]Option, 0, len(names))
	for _, name := range names {
		items = append(items, Option{Name: name, Value: m[name]})
	}
	return OptionSet{items: items}
}

// Len returns the number of options.
func (s OptionSet) Len() int {
	return len(s.items)
}

// Options returns a copy of the options in order.
func (s OptionSet) Options() []Option {
	return slices.Clone(s.items)
}

// Get returns the value of the named option and whether it is present.
func (s OptionSet) Get(name string) (value, ok bool) {
	for _, o := range s.items {
		if o.Name == name {
			return o.Value, true
		}
	}
	return false, false
}

// Has reports whether the named option is present.
func (s OptionSet) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Keys returns the option names in order.
func (s OptionSet) Keys() []string {
	keys := make([]string, len(s.items))
	for i, o := range s.items {
		keys[i] = o.Name
	}
	return keys
}

// Map returns the options as a map.
func (s OptionSet) Map() map[string]bool {
	m := make(map[string]bool, len(s.items))
	for _, o := range s.items {
		m[o.Name] = o.Value
	}
	return m
}

// With returns a copy of the set with the named option set to value.
// An existing option keeps its position; a new option is appended.
func (s OptionSet) With(name string, value bool) OptionSet {
	items := slices.Clone(s.items)
	for i := range items {
		if items[i].Name == name {
			items[i].Value = value
			return OptionSet{items: items}
		}
	}
	return OptionSet{items: append(items, Option{Name: name, Value: value})}
}

// Equal reports whether both sets hold the same options in the same order.
func (s OptionSet) Equal(other OptionSet) bool {
	return slices.Equal(s.items, other.items)
}

// String renders the set as a comma separated list of name=Value pairs.
func (s OptionSet) String() string {
	parts := make([]string, len(s.items))
	for i, o := range s.items {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}

// canonical renders the options sorted by name, used for hashing.
func (s OptionSet) canonical() string {
	sorted := slices.Clone(s.items)
	slices.SortFunc(sorted, func(a, b Option) int { return strings.Compare(a.Name, b.Name) })

	var b strings.Builder
	for _, o := range sorted {
		b.WriteString(o.Name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatBool(o.Value))
		b.WriteByte(';')
	}
	return b.String()
}

// MarshalJSON encodes the set as an ordered list of options.
func (s OptionSet) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, o := range s.items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(o.Name))
		b.WriteByte(':')
		b.WriteString(strconv.FormatBool(o.Value))
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes an object of boolean options, keeping the key order.
func (s *OptionSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = OptionSet{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return zerr.New("options must be a JSON object")
	}

	var items []Option
	seen := make(map[string]struct{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := keyTok.(string)
		var value bool
		if err := dec.Decode(&value); err != nil {
			return zerr.With(zerr.Wrap(err, "option value must be a boolean"), "option", name)
		}
		if _, dup := seen[name]; dup {
			return zerr.With(ErrDuplicateOption, "option", name)
		}
		seen[name] = struct{}{}
		items = append(items, Option{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = OptionSet{items: items}
	return nil
}

// Collection option keys, in declaration order.
const (
	OptHeaderOnly            = "header_only"
	OptWithoutTest           = "without_test"
	OptWithoutProgramOptions = "without_program_options"
	OptWithoutGraph          = "without_graph"
	OptWithoutSerialization  = "without_serialization"
	OptWithoutWave           = "without_wave"
	OptWithoutLog            = "without_log"
	OptWithoutRandom         = "without_random"
)

// CollectionOptionKeys returns the eight option keys of the general-purpose
// library collection in declaration order.
func CollectionOptionKeys() []string {
	return []string{
		OptHeaderOnly,
		OptWithoutTest,
		OptWithoutProgramOptions,
		OptWithoutGraph,
		OptWithoutSerialization,
		OptWithoutWave,
		OptWithoutLog,
		OptWithoutRandom,
	}
}

// CollectionOptions is the closed option schema for the general-purpose library collection.
type CollectionOptions struct {
	HeaderOnly            bool `yaml:"header_only"`
	WithoutTest           bool `yaml:"without_test"`
	WithoutProgramOptions bool `yaml:"without_program_options"`
	WithoutGraph          bool `yaml:"without_graph"`
	WithoutSerialization  bool `yaml:"without_serialization"`
	WithoutWave           bool `yaml:"without_wave"`
	WithoutLog            bool `yaml:"without_log"`
	WithoutRandom         bool `yaml:"without_random"`
}

// OptionSet renders the eight toggles in declaration order.
func (c CollectionOptions) OptionSet() OptionSet {
	return OptionSet{items: []Option{
		{Name: OptHeaderOnly, Value: c.HeaderOnly},
		{Name: OptWithoutTest, Value: c.WithoutTest},
		{Name: OptWithoutProgramOptions, Value: c.WithoutProgramOptions},
		{Name: OptWithoutGraph, Value: c.WithoutGraph},
		{Name: OptWithoutSerialization, Value: c.WithoutSerialization},
		{Name: OptWithoutWave, Value: c.WithoutWave},
		{Name: OptWithoutLog, Value: c.WithoutLog},
		{Name: OptWithoutRandom, Value: c.WithoutRandom},
	}}
}

// ParseCollectionOptions converts an OptionSet into the closed schema.
// Keys outside the schema are rejected; absent keys stay false.
func ParseCollectionOptions(set OptionSet) (CollectionOptions, error) {
	var c CollectionOptions
	fields := map[string]*bool{
		OptHeaderOnly:            &c.HeaderOnly,
		OptWithoutTest:           &c.WithoutTest,
		OptWithoutProgramOptions: &c.WithoutProgramOptions,
		OptWithoutGraph:          &c.WithoutGraph,
		OptWithoutSerialization:  &c.WithoutSerialization,
		OptWithoutWave:           &c.WithoutWave,
		OptWithoutLog:            &c.WithoutLog,
		OptWithoutRandom:         &c.WithoutRandom,
	}
	for _, o := range set.items {
		field, ok := fields[o.Name]
		if !ok {
			return CollectionOptions{}, zerr.With(ErrUnknownOption, "option", o.Name)
		}
		*field = o.Value
	}
	return c, nil
}
