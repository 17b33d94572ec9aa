package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SelectAliases(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		key  string
		want string
	}{
		{key: "flash", want: KeyFlash},
		{key: " FLASH ", want: KeyFlash},
		{key: "flash-express", want: KeyFlash},
		{key: "kerry-flash", want: KeyFlash},
		{key: "jnt", want: KeyJNT},
		{key: "J&T", want: KeyJNT},
		{key: "jt", want: KeyJNT},
		{key: "jnt-express", want: KeyJNT},
		{key: "tiktok", want: KeyTikTokFlash},
		{key: "TikTokShop", want: KeyTikTokFlash},
		{key: "tiktok-flash", want: KeyTikTokFlash},
		{key: "", want: KeyStandard},
		{key: "unknown-carrier", want: KeyStandard},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Select(tt.key, Format100x150).Key)
		})
	}
}

func TestCatalog_SelectIsPure(t *testing.T) {
	catalog := NewCatalog()
	a := catalog.Select("flash", Format100x75)
	b := catalog.Select("flash", Format100x75)
	assert.Equal(t, a, b)

	a.Sections[0] = "mutated"
	assert.Equal(t, SectionHeader, catalog.Select("flash", Format100x75).Sections[0])
}

func TestCatalog_Formats(t *testing.T) {
	catalog := NewCatalog()

	t.Run("UnknownFormatUsesDefault", func(t *testing.T) {
		tpl := catalog.Select("jnt", "a4")
		assert.Equal(t, Format100x150, tpl.Format)
		assert.Equal(t, PageBox{WidthMM: 100, HeightMM: 150}, tpl.Page)
	})

	t.Run("Auto", func(t *testing.T) {
		tpl := catalog.Select("flash", FormatAuto)
		assert.True(t, tpl.Page.Auto())
		assert.Zero(t, tpl.MaxProductRows)
		assert.Empty(t, tpl.Page.CSSSize())
	})

	t.Run("Small", func(t *testing.T) {
		tpl := catalog.Select("flash", "100×75mm")
		assert.Equal(t, Format100x75, tpl.Format)
		assert.Equal(t, 1, tpl.MaxProductRows)
		assert.False(t, tpl.Has(SectionSender))
		assert.LessOrEqual(t, tpl.Barcode.Height, 40)
	})
}

func TestCatalog_TemplateCompleteness(t *testing.T) {
	catalog := NewCatalog()
	for _, key := range catalog.Keys() {
		for _, format := range Formats {
			tpl := catalog.Select(key, format)
			assert.True(t, tpl.Has(SectionHeader), "%s/%s header", key, format)
			assert.True(t, tpl.Has(SectionBarcode), "%s/%s barcode", key, format)
			assert.True(t, tpl.Has(SectionRecipient), "%s/%s recipient", key, format)
			assert.True(t, tpl.Has(SectionProducts), "%s/%s products", key, format)
			assert.True(t, tpl.Has(SectionCOD), "%s/%s cod", key, format)
			assert.NotEmpty(t, tpl.Tracking.Prefix)
			assert.Greater(t, tpl.Page.WidthMM, 0.0)
		}
	}
}

func TestCatalog_QROnlyForCarriersThatDefineIt(t *testing.T) {
	catalog := NewCatalog()
	assert.True(t, catalog.Select("flash", "").ShowsQR())
	assert.True(t, catalog.Select("tiktok", "").ShowsQR())
	assert.False(t, catalog.Select("jnt", "").ShowsQR())
	assert.False(t, catalog.Select("standard", "").ShowsQR())

	spec := catalog.Select("flash", Format100x100).SymbolSpec()
	assert.True(t, spec.QR)
	assert.Equal(t, 90, spec.QRSize)
}

func TestCatalog_List(t *testing.T) {
	list := NewCatalog().List()
	require.Len(t, list, 4)
	assert.Equal(t, KeyFlash, list[0].Key)
	assert.Equal(t, KeyJNT, list[1].Key)
	assert.Equal(t, KeyStandard, list[2].Key)
	assert.Equal(t, KeyTikTokFlash, list[3].Key)
	for _, tpl := range list {
		assert.Equal(t, Format100x150, tpl.Format)
	}
}

func TestParsePageFormat(t *testing.T) {
	f, ok := ParsePageFormat("100X100")
	assert.True(t, ok)
	assert.Equal(t, Format100x100, f)

	_, ok = ParsePageFormat("")
	assert.False(t, ok)
}

func TestPageBox(t *testing.T) {
	assert.Equal(t, "100mm 150mm", Format100x150.Box().CSSSize())

	w, h := FormatAuto.Box().Inches()
	assert.InDelta(t, 3.937, w, 0.001)
	assert.InDelta(t, 5.905, h, 0.001)
}
