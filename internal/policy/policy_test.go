package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActorPolicy_Blocks(t *testing.T) {
	p := DefaultActorPolicy()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"exact", "User", true},
		{"case-insensitive", "end USER", true},
		{"surrounding whitespace", "  Customer \t", true},
		{"allowlisted", "IT Admin", false},
		{"substring is not a match", "Admin Console Operator", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Blocks(tt.input))
		})
	}
}

func TestTermPolicy_Blocks(t *testing.T) {
	p := DefaultTermPolicy()

	assert.True(t, p.Blocks("api"))
	assert.True(t, p.Blocks(" TL;DR "))
	assert.False(t, p.Blocks("churn rate"))
	assert.True(t, contains(p.Allowlist, "Churn Rate"))
}

func TestTermPolicy_SynonymsOf(t *testing.T) {
	p := DefaultTermPolicy()
	assert.Nil(t, p.SynonymsOf("cart"))

	p.Synonyms["Cart"] = []string{"basket"}
	assert.Equal(t, []string{"basket"}, p.SynonymsOf(" cart"))
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.ActorPolicy.Blocklist[0] = "mutated"

	b := Default()
	assert.Equal(t, "Admin", b.ActorPolicy.Blocklist[0])
}
