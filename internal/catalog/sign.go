package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/roadsign/internal/errs"
)

// Kind is the top-level sign category.
type Kind string

const (
	KindRegulatory  Kind = "regulatory"
	KindWarning     Kind = "warning"
	KindInformation Kind = "information"
)

// AllKinds returns all kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindRegulatory, KindWarning, KindInformation}
}

// ParseKind accepts a kind name in any letter case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindRegulatory, KindWarning, KindInformation:
		return k, nil
	}
	return "", fmt.Errorf("unknown sign category %q: %w", s, errs.ErrInvalidArgument)
}

// DisplayName returns the French category heading.
func (k Kind) DisplayName() string {
	switch k {
	case KindRegulatory:
		return "Panneaux réglementaires"
	case KindWarning:
		return "Panneaux d'avertissement"
	case KindInformation:
		return "Panneaux d'information"
	default:
		return string(k)
	}
}

// Label returns the short French label used in formatted sign cards.
func (k Kind) Label() string {
	switch k {
	case KindRegulatory:
		return "Reglementaire"
	case KindWarning:
		return "Avertissement"
	case KindInformation:
		return "Informationnel"
	default:
		return string(k)
	}
}

// DefaultDescription returns the generic description of the kind.
func (k Kind) DefaultDescription() string {
	switch k {
	case KindRegulatory:
		return "Panneaux informant les usagers de la route des lois et réglementations de circulation"
	case KindWarning:
		return "Panneaux avertissant les usagers des conditions dangereuses de la route"
	case KindInformation:
		return "Panneaux fournissant des informations sur les destinations, services et installations"
	default:
		return ""
	}
}

// Subcategory narrows a Kind. Each subcategory belongs to exactly one kind.
type Subcategory string

const (
	SubPriority Subcategory = "priority"
	SubSpeed    Subcategory = "speed"
	SubMovement Subcategory = "movement"
	SubParking  Subcategory = "parking"

	SubRoadConditions Subcategory = "road_conditions"
	SubIntersections  Subcategory = "intersections"
	SubPedestrian     Subcategory = "pedestrian"
	SubWeather        Subcategory = "weather"

	SubDirection  Subcategory = "direction"
	SubServices   Subcategory = "services"
	SubDistances  Subcategory = "distances"
	SubFacilities Subcategory = "facilities"
)

var subcategories = map[Kind][]Subcategory{
	KindRegulatory:  {SubPriority, SubSpeed, SubMovement, SubParking},
	KindWarning:     {SubRoadConditions, SubIntersections, SubPedestrian, SubWeather},
	KindInformation: {SubDirection, SubServices, SubDistances, SubFacilities},
}

// Subcategories returns the subcategories allowed for k.
func (k Kind) Subcategories() []Subcategory {
	return append([]Subcategory(nil), subcategories[k]...)
}

// Allows reports whether sub is one of k's subcategories.
func (k Kind) Allows(sub Subcategory) bool {
	for _, s := range subcategories[k] {
		if s == sub {
			return true
		}
	}
	return false
}

// Category is the tagged union of the three sign families: a kind tag plus
// a subcategory scoped to that kind.
type Category struct {
	Kind        Kind
	Subcategory Subcategory
	Description string
}

// NewCategory builds a category, rejecting a subcategory foreign to kind.
func NewCategory(kind Kind, sub Subcategory) (Category, error) {
	if !kind.Allows(sub) {
		return Category{}, fmt.Errorf("subcategory %q is not valid for %s signs: %w", sub, kind, errs.ErrInvalidArgument)
	}
	return Category{Kind: kind, Subcategory: sub, Description: kind.DefaultDescription()}, nil
}

// Name returns the French category heading.
func (c Category) Name() string {
	return c.Kind.DisplayName()
}

type categoryJSON struct {
	Name        string      `json:"name"`
	Subcategory Subcategory `json:"subcategory"`
	Description string      `json:"description,omitempty"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(categoryJSON{
		Name:        string(c.Kind),
		Subcategory: c.Subcategory,
		Description: c.Description,
	})
}

// Sign is an immutable catalog entry.
type Sign struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         Category `json:"category"`
	Image            string   `json:"image"`
	Description      string   `json:"description"`
	Rules            []string `json:"rules"`
	TypicalLocations []string `json:"typical_locations"`
	Shape            string   `json:"shape,omitempty"`
	CommonMistakes   []string `json:"common_mistakes,omitempty"`
}
