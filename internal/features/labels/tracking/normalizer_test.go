package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_RealIdentifierUnchanged(t *testing.T) {
	id, surrogate := Normalize("FLX123", Seed{OrderID: "101"})
	assert.Equal(t, "FLX123", id)
	assert.False(t, surrogate)

	id, _ = Normalize("  TH0123456789  ", Seed{})
	assert.Equal(t, "TH0123456789", id)
}

func TestNormalize_PlaceholderIsDeterministic(t *testing.T) {
	seed := Seed{OrderID: "55", OrderNumber: "PD1001"}

	first, surrogate := Normalize("แบบABC", seed)
	second, _ := Normalize("แบบABC", seed)

	assert.True(t, surrogate)
	assert.Equal(t, first, second)
	assert.Len(t, first, 12)
	// "55PD1001" sums to 448.
	assert.Equal(t, "FLE000000448", first)
}

func TestNormalize_EmptyRawUsesSurrogate(t *testing.T) {
	a, surrogate := Normalize("", Seed{OrderID: "55", OrderNumber: "PD1001"})
	b, _ := Normalize("แบบ", Seed{OrderID: "55", OrderNumber: "PD1001"})
	assert.True(t, surrogate)
	assert.Equal(t, a, b)
}

func TestSeed_String(t *testing.T) {
	tests := []struct {
		name string
		seed Seed
		want string
	}{
		{name: "IDAndNumber", seed: Seed{OrderID: "55", OrderNumber: "PD1001", RecipientName: "x"}, want: "55PD1001"},
		{name: "IDAndRecipient", seed: Seed{OrderID: "55", RecipientName: "สมชาย"}, want: "55สมชาย"},
		{name: "OnlyID", seed: Seed{OrderID: "55"}, want: "55"},
		{name: "Empty", seed: Seed{}, want: "UNASSIGNED"},
		{name: "Whitespace", seed: Seed{OrderID: " ", OrderNumber: " "}, want: "UNASSIGNED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seed.String())
		})
	}
}

func TestNormalize_NeverEmpty(t *testing.T) {
	for _, raw := range []string{"", " ", "แบบ", "แบบXYZ"} {
		id, surrogate := Normalize(raw, Seed{})
		assert.NotEmpty(t, id)
		assert.True(t, surrogate)
		assert.Len(t, id, 12)
	}
}

func TestFormat_Surrogate(t *testing.T) {
	t.Run("CustomPrefix", func(t *testing.T) {
		id := Format{Prefix: "jt", Length: 12}.Surrogate(Seed{OrderID: "55", OrderNumber: "PD1001"})
		assert.Equal(t, "JT0000000448", id)
	})

	t.Run("TruncatesToRightmostDigits", func(t *testing.T) {
		id := Format{Prefix: "AB", Length: 4}.Surrogate(Seed{OrderID: "55", OrderNumber: "PD1001"})
		assert.Equal(t, "AB48", id)
	})

	t.Run("InvalidLengthFallsBack", func(t *testing.T) {
		id := Format{Prefix: "XYZ", Length: 2}.Surrogate(Seed{OrderID: "1"})
		assert.Len(t, id, 12)
		assert.Equal(t, "XYZ", id[:3])
	})

	t.Run("ThaiSeedUsesCodeUnits", func(t *testing.T) {
		// "ก" is U+0E01 (3585).
		id := Default.Surrogate(Seed{RecipientName: "ก"})
		assert.Equal(t, "FLE000003585", id)
	})
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(""))
	assert.True(t, IsPlaceholder("แบบ1"))
	assert.False(t, IsPlaceholder("FLE000000448"))
	assert.False(t, IsPlaceholder("ABแบบ"))
}
