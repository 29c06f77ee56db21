package methodology

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog is the ordered, immutable set of methodology definitions.
type Catalog struct {
	defs []*Definition
	byID map[ID]*Definition
}

var defaultCatalog = MustParseCatalog(catalogYAML)

// Default returns the embedded catalog.
func Default() *Catalog {
	return defaultCatalog
}

// Lookup finds a definition in the embedded catalog.
func Lookup(id ID) (*Definition, error) {
	return defaultCatalog.Get(id)
}

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Methodologies []*Definition `yaml:"methodologies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Methodologies) == 0 {
		return nil, fmt.Errorf("catalog has no methodologies")
	}

	c := &Catalog{byID: make(map[ID]*Definition, len(doc.Methodologies))}
	for _, d := range doc.Methodologies {
		if err := checkDefinition(d); err != nil {
			return nil, err
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate methodology %q", d.ID)
		}
		c.byID[d.ID] = d
		c.defs = append(c.defs, d)
	}
	return c, nil
}

// MustParseCatalog is ParseCatalog for compile-time catalogs.
func MustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// checkDefinition enforces the shape every template relies on: exactly one
// required field, placed first, and a non-empty closing paragraph.
func checkDefinition(d *Definition) error {
	if d.ID == "" {
		return fmt.Errorf("methodology without id")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("methodology %q has no fields", d.ID)
	}
	if !d.Fields[0].Required {
		return fmt.Errorf("methodology %q: first field %q must be required", d.ID, d.Fields[0].Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	required := 0
	for _, f := range d.Fields {
		if f.Name == "" || f.Heading == "" {
			return fmt.Errorf("methodology %q: field needs a name and a heading", d.ID)
		}
		if seen[f.Name] {
			return fmt.Errorf("methodology %q: duplicate field %q", d.ID, f.Name)
		}
		seen[f.Name] = true
		if f.Required {
			required++
		}
	}
	if required != 1 {
		return fmt.Errorf("methodology %q has %d required fields, want 1", d.ID, required)
	}
	if d.Closing == "" {
		return fmt.Errorf("methodology %q has no closing paragraph", d.ID)
	}
	return nil
}

// All returns the definitions in catalog order.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Get returns the definition for id or ErrUnknown.
func (c *Catalog) Get(id ID) (*Definition, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return d, nil
}

// IDs returns the methodology ids in catalog order.
func (c *Catalog) IDs() []ID {
	ids := make([]ID, 0, len(c.defs))
	for _, d := range c.defs {
		ids = append(ids, d.ID)
	}
	return ids
}
