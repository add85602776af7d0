package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		selectedBot string
		wantName    string
	}{
		{"exact identifier", "VALENTINA", "Valentina"},
		{"identifier embedded in longer token", "AIDA_VALENTINA_V2", "Valentina"},
		{"lowercase selection", "valentina", "Valentina"},
		{"emma", "EMMA", "Emma"},
		{"andrea with surrounding whitespace", "  ANDREA  ", "Andrea"},
		{"unknown persona", "SOFIA", ""},
		{"empty selection", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix := Resolve(tt.selectedBot)
			if tt.wantName == "" {
				assert.Empty(t, prefix)
				return
			}
			assert.True(t, strings.HasPrefix(prefix, "Eres "+tt.wantName))
			assert.True(t, strings.HasSuffix(prefix, ". "), "prefix must end so the user text follows verbatim")
		})
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	// A token containing two identifiers resolves to the earlier one in
	// the priority list.
	prefix := Resolve("VALENTINA_EMMA")
	assert.True(t, strings.HasPrefix(prefix, "Eres Valentina"))
}
