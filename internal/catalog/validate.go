package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/roadsign/internal/errs"
)

// validateRecords checks every record and converts the valid ones.
// Returns a combined error describing all problems found, or the signs.
func validateRecords(doc document) ([]Sign, error) {
	var problems []string

	if doc.Version != "" && !semver.IsValid(doc.Version) {
		problems = append(problems, fmt.Sprintf("catalog version %q is not a valid semantic version (want vMAJOR.MINOR.PATCH)", doc.Version))
	}
	if len(doc.Signs) == 0 {
		problems = append(problems, "catalog contains no signs")
	}

	seen := make(map[string]bool, len(doc.Signs))
	signs := make([]Sign, 0, len(doc.Signs))

	for i, r := range doc.Signs {
		prefix := fmt.Sprintf("sign #%d", i)
		if r.ID != "" {
			prefix = fmt.Sprintf("sign %q", r.ID)
		}

		if strings.TrimSpace(r.ID) == "" {
			problems = append(problems, prefix+": id is required")
		} else if seen[r.ID] {
			problems = append(problems, fmt.Sprintf("duplicate sign ID: %q", r.ID))
		}
		seen[r.ID] = true

		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, prefix+": name is required")
		}
		if strings.TrimSpace(r.Image) == "" {
			problems = append(problems, prefix+": image is required")
		}
		if strings.TrimSpace(r.Description) == "" {
			problems = append(problems, prefix+": description is required")
		}
		if len(r.Rules) == 0 {
			problems = append(problems, prefix+": at least one rule is required")
		}

		cat, err := categoryFromRecord(r.Category)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", prefix, err))
		}

		s := Sign{
			ID:               r.ID,
			Name:             r.Name,
			Category:         cat,
			Image:            r.Image,
			Description:      r.Description,
			Rules:            r.Rules,
			TypicalLocations: r.TypicalLocations,
			CommonMistakes:   r.CommonMistakes,
		}
		if r.Shape != nil {
			s.Shape = *r.Shape
		}
		signs = append(signs, s)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("catalog validation failed:\n  %s\n%w", strings.Join(problems, "\n  "), errs.ErrInvalidArgument)
	}
	return signs, nil
}

func categoryFromRecord(r categoryJSON) (Category, error) {
	if r.Name == "" {
		return Category{}, fmt.Errorf("category name is required")
	}
	kind, err := ParseKind(r.Name)
	if err != nil {
		return Category{}, err
	}
	cat, err := NewCategory(kind, r.Subcategory)
	if err != nil {
		return Category{}, err
	}
	if r.Description != "" {
		cat.Description = r.Description
	}
	return cat, nil
}
