package topofile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/topograph/connect"
)

// Load parses one experiment document from r. Decoding is strict:
// unknown keys fail, as do unknown kind/rule/mask/field names, missing
// or duplicate layer names and dangling layer references. Parameter
// values are checked later, by the constructors BuildLayers and Passes
// invoke.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidSpec)
		}
		return nil, fmt.Errorf("topofile: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile opens path and delegates to Load.
func LoadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("topofile: %w", err)
	}
	defer r.Close()
	return Load(r)
}

func (f *File) validate() error {
	if len(f.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidSpec)
	}

	names := make(map[string]struct{}, len(f.Layers))
	for i := range f.Layers {
		l := &f.Layers[i]
		if l.Name == "" {
			return fmt.Errorf("%w: layer %d has no name", ErrInvalidSpec, i)
		}
		if _, dup := names[l.Name]; dup {
			return fmt.Errorf("%w: duplicate layer %q", ErrInvalidSpec, l.Name)
		}
		names[l.Name] = struct{}{}
		if l.Kind != "grid" && l.Kind != "free" {
			return fmt.Errorf("%w: %q (layer %q)", ErrUnknownKind, l.Kind, l.Name)
		}
		if l.Planes < 0 {
			return fmt.Errorf("%w: layer %q: negative planes", ErrInvalidSpec, l.Name)
		}
	}

	for i := range f.Connections {
		c := &f.Connections[i]
		if _, ok := names[c.From]; !ok {
			return fmt.Errorf("%w: %q (connection %d)", ErrUnknownLayer, c.From, i)
		}
		if _, ok := names[c.To]; !ok {
			return fmt.Errorf("%w: %q (connection %d)", ErrUnknownLayer, c.To, i)
		}
		if _, err := parseRule(c.Rule); err != nil {
			return fmt.Errorf("%w (connection %d)", err, i)
		}
		if c.Count < 0 {
			return fmt.Errorf("%w: negative count (connection %d)", ErrInvalidSpec, i)
		}
		if c.Mask != nil {
			if err := checkMaskType(c.Mask); err != nil {
				return fmt.Errorf("%w (connection %d)", err, i)
			}
		}
		for _, fs := range []*FieldSpec{c.Kernel, c.Weight, c.Delay} {
			if err := checkFieldType(fs); err != nil {
				return fmt.Errorf("%w (connection %d)", err, i)
			}
		}
	}
	return nil
}

func parseRule(s string) (connect.Rule, error) {
	switch s {
	case "target-driven":
		return connect.TargetDriven, nil
	case "source-driven":
		return connect.SourceDriven, nil
	case "convergent":
		return connect.Convergent, nil
	case "divergent":
		return connect.Divergent, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRule, s)
}

func checkMaskType(s *MaskSpec) error {
	switch s.Type {
	case "ball", "box", "donut":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMask, s.Type)
}

func checkFieldType(s *FieldSpec) error {
	if s == nil {
		return nil
	}
	switch s.Type {
	case "constant", "linear", "exponential", "gaussian", "gaussian2d",
		"uniform", "discrete":
	case "combination":
		for i := range s.Terms {
			if err := checkFieldType(&s.Terms[i].Field); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, s.Type)
	}
	return nil
}
