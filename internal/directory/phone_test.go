package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{"trunk zero", "0501234567", "+233", "+233501234567"},
		{"spaces and dashes", "050-123 4567", "+233", "+233501234567"},
		{"already international", "+233501234567", "+233", "+233501234567"},
		{"double zero prefix", "00233501234567", "+233", "+233501234567"},
		{"parentheses", "(050) 123-4567", "+233", "+233501234567"},
		{"plus only kept at start", "050+1234567", "+233", "+233501234567"},
		{"default region", "0501234567", "", "+233501234567"},
		{"other region", "07123456789", "+44", "+447123456789"},
		{"empty", "", "+233", ""},
		{"letters dropped", "call 0501234567 now", "+233", "+233501234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw, tt.region))
		})
	}
}

func TestNormalizePhone_VariantsAgree(t *testing.T) {
	variants := []string{"0501234567", "050 123 4567", "+233 50 123 4567", "00233501234567"}
	for _, v := range variants {
		assert.Equal(t, "+233501234567", NormalizePhone(v, "+233"), "variant %q", v)
	}
}

func TestFoldName(t *testing.T) {
	assert.Equal(t, "cafe kumasi", FoldName("Café  Kumasi"))
	assert.Equal(t, "accra gadgets", FoldName("  ACCRA   Gadgets "))
	assert.Equal(t, FoldName("Résumé Shop"), FoldName("resume shop"))
	assert.Equal(t, "", FoldName("   "))
}
