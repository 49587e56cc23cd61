package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/roadsign/internal/errs"
)

// Catalog holds the road signs with precomputed indices.
// It is never mutated after Load and is safe for concurrent reads.
type Catalog struct {
	version       string
	signs         []Sign
	ids           []string
	byID          map[string]*Sign
	byKind        map[Kind][]Sign
	bySubcategory map[Subcategory][]Sign
}

// document is the versioned on-disk form. A bare JSON array of signs is
// accepted as well.
type document struct {
	Version string       `json:"version"`
	Signs   []signRecord `json:"signs"`
}

type signRecord struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Category         categoryJSON `json:"category"`
	Image            string       `json:"image"`
	Description      string       `json:"description"`
	Rules            []string     `json:"rules"`
	TypicalLocations []string     `json:"typical_locations"`
	Shape            *string      `json:"shape"`
	CommonMistakes   []string     `json:"common_mistakes"`
}

// Load parses and validates a catalog source. Every problem found is
// reported in a single error wrapping errs.ErrInvalidArgument.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc document
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, fmt.Errorf("catalog source is empty: %w", errs.ErrInvalidArgument)
	case trimmed[0] == '[':
		err = json.Unmarshal(trimmed, &doc.Signs)
	default:
		err = json.Unmarshal(trimmed, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %v: %w", err, errs.ErrInvalidArgument)
	}

	signs, err := validateRecords(doc)
	if err != nil {
		return nil, err
	}
	return build(doc.Version, signs), nil
}

// LoadFile loads a catalog from a JSON file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// build constructs the indices. signs must already be validated.
func build(version string, signs []Sign) *Catalog {
	c := &Catalog{
		version:       version,
		signs:         signs,
		ids:           lo.Map(signs, func(s Sign, _ int) string { return s.ID }),
		byID:          make(map[string]*Sign, len(signs)),
		byKind:        make(map[Kind][]Sign),
		bySubcategory: make(map[Subcategory][]Sign),
	}
	for i := range c.signs {
		s := &c.signs[i]
		c.byID[s.ID] = s
		c.byKind[s.Category.Kind] = append(c.byKind[s.Category.Kind], *s)
		c.bySubcategory[s.Category.Subcategory] = append(c.bySubcategory[s.Category.Subcategory], *s)
	}
	return c
}

// Version returns the data version declared by the source, or "" if none.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of signs.
func (c *Catalog) Len() int {
	return len(c.signs)
}

// Get returns a single sign by ID.
func (c *Catalog) Get(id string) (Sign, error) {
	s, ok := c.byID[id]
	if !ok {
		return Sign{}, fmt.Errorf("sign %q: %w", id, errs.ErrNotFound)
	}
	return *s, nil
}

// GetByID resolves ids in input order. Duplicates are resolved each time.
// Any unknown ID fails the whole call with errs.ErrNotFound.
func (c *Catalog) GetByID(ids []string) ([]Sign, error) {
	out := make([]Sign, 0, len(ids))
	for _, id := range ids {
		s, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ByCategory returns the signs of one kind in load order. An empty slice
// is returned for a kind with no members.
func (c *Catalog) ByCategory(kind Kind) []Sign {
	return slices.Clone(c.byKind[kind])
}

// BySubcategory returns the signs of one subcategory in load order.
func (c *Catalog) BySubcategory(sub Subcategory) []Sign {
	return slices.Clone(c.bySubcategory[sub])
}

// AllIDs returns every sign ID in load order.
func (c *Catalog) AllIDs() []string {
	return slices.Clone(c.ids)
}

// Signs returns every sign in load order.
func (c *Catalog) Signs() []Sign {
	return slices.Clone(c.signs)
}

// IDs returns the IDs of the given signs, preserving order.
func IDs(signs []Sign) []string {
	return lo.Map(signs, func(s Sign, _ int) string { return s.ID })
}
