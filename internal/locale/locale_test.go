package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		tag  string
		want string
		ok   bool
	}{
		{"en", "en", true},
		{"ja", "ja", true},
		{"ja-JP", "ja", true},
		{"en-US", "en", true},
		{" ja ", "ja", true},
		{"fr", "", false},
		{"", "", false},
		{"not a tag!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, ok := Match(tt.tag)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_EverySupportedLanguage(t *testing.T) {
	for _, code := range Codes {
		d, err := Load(code)
		require.NoError(t, err, code)
		assert.Equal(t, code, d.Language())
		assert.NotEmpty(t, d.Text("header.button", ""))
		assert.NotEmpty(t, d.Text("category.banners.default.title", ""))
	}
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("fr")
	assert.Error(t, err)
}

func TestDictionary_Text(t *testing.T) {
	d, err := Load("en")
	require.NoError(t, err)

	assert.Equal(t, "Living Room Collection", d.Text("category.banners.living.title", ""))
	assert.Equal(t, "Explore All", d.Text("category.banners.default.buttonText", ""))
	assert.Equal(t, "日本語", d.Text("language.names.ja", ""))
	assert.Equal(t, "fallback", d.Text("category.banners.missing.title", "fallback"))
	assert.Equal(t, "fallback", d.Text("category.banners", "fallback"), "non-string node")
	assert.Equal(t, "fallback", d.Text("header.button.deeper", "fallback"))
}

func TestDictionary_Lookup(t *testing.T) {
	d, err := Load("en")
	require.NoError(t, err)

	links, ok := d.Lookup("header.navLinks")
	require.True(t, ok)
	assert.Len(t, links, 5)

	_, ok = d.Lookup("nope")
	assert.False(t, ok)
}

func TestDictionary_TreeIsACopy(t *testing.T) {
	d, err := Load("en")
	require.NoError(t, err)

	tree := d.Tree()
	header, ok := tree["header"].(map[string]any)
	require.True(t, ok)
	header["button"] = "changed"
	links, ok := header["navLinks"].([]any)
	require.True(t, ok)
	links[0] = "changed"
	delete(tree, "category")

	assert.Equal(t, "Shop Now", d.Text("header.button", ""))
	assert.Equal(t, "Living Room Collection", d.Text("category.banners.living.title", ""))
	again, ok := d.Lookup("header.navLinks")
	require.True(t, ok)
	assert.NotEqual(t, "changed", again.([]any)[0])
}

func TestDictionary_LookupIsACopy(t *testing.T) {
	d, err := Load("en")
	require.NoError(t, err)

	node, ok := d.Lookup("category.banners.living")
	require.True(t, ok)
	node.(map[string]any)["title"] = "changed"

	assert.Equal(t, "Living Room Collection", d.Text("category.banners.living.title", ""))
}

func TestDictionary_Format(t *testing.T) {
	en, err := Load("en")
	require.NoError(t, err)
	ja, err := Load("ja")
	require.NoError(t, err)

	assert.Equal(t, "3 products available", en.Format("category.productsFound", "", map[string]any{"count": 3}))
	assert.Equal(t, "3件の商品", ja.Format("category.productsFound", "", map[string]any{"count": 3}))
	assert.Equal(t, `Search results for "sofa"`, en.Format("search.results.title", "", map[string]any{"query": "sofa"}))
	assert.Equal(t, "2 items", en.Format("missing", "{count} items", map[string]any{"count": 2}))
}
