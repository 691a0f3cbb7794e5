// Package locale resolves supported languages and serves the embedded
// translation dictionaries.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Default is the language used when no preference is stored.
const Default = "en"

var supported = []language.Tag{language.English, language.Japanese}

// Codes lists the supported two-letter codes; the order matches supported.
var Codes = []string{"en", "ja"}

var matcher = language.NewMatcher(supported)

//go:embed locales/*.json
var files embed.FS

// Match resolves a BCP 47 tag such as "ja-JP" to a supported code. It
// reports false when the tag is malformed or no supported language is a
// reasonable match.
func Match(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		return "", false
	}
	return Codes[idx], true
}

// Dictionary is a read-only nested translation tree for one language.
type Dictionary struct {
	lang string
	tree map[string]any
}

// Load returns the dictionary for a supported code.
func Load(code string) (*Dictionary, error) {
	data, err := files.ReadFile("locales/" + code + ".json")
	if err != nil {
		return nil, fmt.Errorf("read %s translations: %w", code, err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode %s translations: %w", code, err)
	}
	return &Dictionary{lang: code, tree: tree}, nil
}

// Language returns the code the dictionary was loaded for.
func (d *Dictionary) Language() string {
	return d.lang
}

// Tree returns a copy of the whole translation tree.
func (d *Dictionary) Tree() map[string]any {
	return cloneNode(d.tree).(map[string]any)
}

// cloneNode deep-copies the objects and arrays of a decoded JSON tree.
func cloneNode(node any) any {
	switch n := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[k] = cloneNode(v)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, v := range n {
			out[i] = cloneNode(v)
		}
		return out
	default:
		return n
	}
}

// Lookup walks a dot-separated path such as "category.banners.living".
// Object and array nodes are returned as copies.
func (d *Dictionary) Lookup(path string) (any, bool) {
	var node any = d.tree
	for _, part := range strings.Split(path, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cloneNode(node), true
}

// Text returns the string at path, or fallback when it is missing or not a
// string.
func (d *Dictionary) Text(path, fallback string) string {
	v, ok := d.Lookup(path)
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// Format is Text with "{name}" placeholders replaced from args.
func (d *Dictionary) Format(path, fallback string, args map[string]any) string {
	s := d.Text(path, fallback)
	for k, v := range args {
		s = strings.ReplaceAll(s, "{"+k+"}", fmt.Sprint(v))
	}
	return s
}
