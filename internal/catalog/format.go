package catalog

import (
	"fmt"
	"strings"
)

// FormatSign renders a sign as a WhatsApp markdown card.
// Optional sections are left out when the sign has no data for them.
func FormatSign(s Sign) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n\n", s.Name)
	fmt.Fprintf(&b, "*Categorie*: %s\n", s.Category.Kind.Label())
	fmt.Fprintf(&b, "*Description*: %s\n", s.Description)

	writeList(&b, "Règles à suivre :", s.Rules)
	writeList(&b, "Lieux typiques :", s.TypicalLocations)

	if s.Shape != "" {
		fmt.Fprintf(&b, "\n*Forme :* %s\n", s.Shape)
	}

	writeList(&b, "Erreurs courantes :", s.CommonMistakes)

	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n*%s*\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// Summary is the compact one-line projection used as prompt context:
// name, id and the description cut to width runes.
func Summary(s Sign, width int) string {
	return fmt.Sprintf("%s (%s): %s", s.Name, s.ID, Truncate(s.Description, width))
}

// Detail renders every teaching field of a sign for the sign-quiz prompt.
func Detail(s Sign) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %s\n", s.ID)
	fmt.Fprintf(&b, "nom: %s\n", s.Name)
	fmt.Fprintf(&b, "catégorie: %s (%s)\n", s.Category.Name(), s.Category.Subcategory)
	fmt.Fprintf(&b, "description: %s\n", s.Description)
	if len(s.Rules) > 0 {
		fmt.Fprintf(&b, "règles: %s\n", strings.Join(s.Rules, "; "))
	}
	if len(s.TypicalLocations) > 0 {
		fmt.Fprintf(&b, "lieux typiques: %s\n", strings.Join(s.TypicalLocations, "; "))
	}
	if s.Shape != "" {
		fmt.Fprintf(&b, "forme: %s\n", s.Shape)
	}
	if len(s.CommonMistakes) > 0 {
		fmt.Fprintf(&b, "erreurs courantes: %s\n", strings.Join(s.CommonMistakes, "; "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
