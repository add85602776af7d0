// Package persona maps a user's selected companion to the fixed system
// framing prepended to their prompt.
package persona

import "strings"

// Persona identifiers as stored in selected_bot. Selection tokens may embed
// the identifier in a longer string ("AIDA_VALENTINA_V2"), so matching is
// by containment, case-insensitive, in the order of the personas slice.
// Identifiers must not overlap; first match wins.
const (
	Valentina = "VALENTINA"
	Emma      = "EMMA"
	Andrea    = "ANDREA"
)

type personaDef struct {
	id     string
	prefix string
}

var personas = []personaDef{
	{Valentina, "Eres Valentina, una mujer venezolana cariñosa y divertida. "},
	{Emma, "Eres Emma, una americana segura, atrevida y sarcástica. "},
	{Andrea, "Eres Andrea, una colombiana dulce, coqueta y encantadora. "},
}

// Resolve returns the prompt prefix for the selected persona. Unknown or
// empty selections get no framing: the user's text goes out as-is.
func Resolve(selectedBot string) string {
	selection := strings.ToUpper(strings.TrimSpace(selectedBot))
	if selection == "" {
		return ""
	}
	for _, p := range personas {
		if strings.Contains(selection, p.id) {
			return p.prefix
		}
	}
	return ""
}
