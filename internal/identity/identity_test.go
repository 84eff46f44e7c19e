package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"international with country code", "5511987654321", "+5511987654321"},
		{"formatted international", "+55 (11) 98765-4321", "+5511987654321"},
		{"domestic 11 digits drops mobile digit", "11987654321", "+551187654321"},
		{"domestic 10 digits passes through", "1187654321", "+551187654321"},
		{"trunk zero then 11 digits", "011987654321", "+551187654321"},
		{"trunk zero then 10 digits", "01187654321", "+551187654321"},
		{"formatted domestic", "(11) 8765-4321", "+551187654321"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePhone_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "123", "123456789012345"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NormalizePhone(raw)
			assert.ErrorIs(t, err, ErrInvalidPhone)
		})
	}
}

func TestCustomerID_DeterministicAndNamespaced(t *testing.T) {
	a := CustomerID("+551187654321")
	b := CustomerID("+551187654321")

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "cus_"))
	// 20-byte digest hex encoded after the namespace tag.
	assert.Len(t, a, len("cus_")+40)
}

func TestCustomerID_IgnoresFormatting(t *testing.T) {
	// The digest covers the digits only, so formatting differences in the
	// canonical form cannot split one customer into two.
	assert.Equal(t, CustomerID("+551187654321"), CustomerID("551187654321"))
}

func TestCustomerID_DistinctPhones(t *testing.T) {
	assert.NotEqual(t, CustomerID("+551187654321"), CustomerID("+551187654322"))
}
