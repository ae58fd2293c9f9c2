package catalog

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResolvesIdentities(t *testing.T) {
	doc, err := Decode("test", []byte(`{
		"sourceRoot": "/library",
		"items": [
			{"id": "a1", "displayName": "Alpha"},
			{"shortId": "b1", "displayName": "Beta"},
			{"displayName": "Gamma", "relativeDirectory": "nature\\rocks\\gamma"},
			null
		]
	}`))
	require.NoError(t, err)
	require.Len(t, doc.Items, 3)

	assert.Equal(t, "a1", doc.Items[0].ID)
	assert.Equal(t, "b1", doc.Items[1].ID)
	assert.Equal(t, "nature/rocks/gamma", doc.Items[2].RelDir)
	assert.Equal(t, SyntheticID(doc.Items[2]), doc.Items[2].ID)
	assert.Equal(t, "/library", doc.SourceRoot)
}

func TestSyntheticIdentityIsStableAcrossLoads(t *testing.T) {
	payload := []byte(`{"items": [{"displayName": "Rock", "relDir": "nature/rock"}, {"displayName": "Rock", "relDir": "nature/rock2"}]}`)
	first, err := Decode("a", payload)
	require.NoError(t, err)
	second, err := Decode("b", payload)
	require.NoError(t, err)

	assert.Equal(t, first.Items[0].ID, second.Items[0].ID)
	assert.NotEqual(t, first.Items[0].ID, first.Items[1].ID)
}

func TestPrepareDeduplicatesIdentities(t *testing.T) {
	doc := &Document{Items: []*Item{
		{ID: "a", DisplayName: "one"},
		{ID: "a#2", DisplayName: "two"},
		{ID: "a", DisplayName: "three"},
		{ID: "b", DisplayName: "four"},
	}}
	notices := doc.Prepare()

	ids := make([]string, 0, len(doc.Items))
	for _, it := range doc.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "a#2", "a#3", "b"}, ids)
	require.Len(t, notices, 1)
	assert.Contains(t, notices[0], "a#3")
}

func TestPrepareFillsDisplayName(t *testing.T) {
	doc := &Document{Items: []*Item{
		{ID: "x", Slug: "slugged"},
		{ID: "y", RelDir: "props/crate"},
		{ID: "z"},
	}}
	doc.Prepare()
	assert.Equal(t, "slugged", doc.Items[0].DisplayName)
	assert.Equal(t, "crate", doc.Items[1].DisplayName)
	assert.Equal(t, "z", doc.Items[2].DisplayName)
}

func TestSearchTextIncludesTags(t *testing.T) {
	it := &Item{DisplayName: "Oak Chair", Tags: []string{"Wood"}, AutoTags: []string{"Furniture"}}
	assert.Equal(t, "oak chair wood furniture", it.SearchText())
}

func TestEmptyItemsIsValidCatalog(t *testing.T) {
	doc, err := Decode("empty", []byte(`{"items": []}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
}

func TestParseErrorCarriesExcerpt(t *testing.T) {
	_, err := Decode("broken.json", []byte(`{"items": [ {"id": "a", } ]}`))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "broken.json", parseErr.Source)
	assert.Contains(t, parseErr.Excerpt, `"id": "a",`)
	assert.Contains(t, err.Error(), "broken.json")
}

func TestParseErrorExcerptIsBounded(t *testing.T) {
	payload := `{"items": [` + strings.Repeat(`{"id":"x"},`, 50) + `oops]}`
	_, err := Decode("long.json", []byte(payload))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Excerpt, "oops")
	assert.LessOrEqual(t, len(parseErr.Excerpt), excerptLimit+2*len("…"))
	assert.True(t, strings.HasPrefix(parseErr.Excerpt, "…"))
}

func TestParseErrorExcerptKeepsRunesWhole(t *testing.T) {
	data := []byte(strings.Repeat("é", 100))
	got := excerpt(data, 101)
	assert.True(t, utf8.ValidString(got), "excerpt split a rune: %q", got)
	assert.True(t, strings.HasPrefix(got, "…é"))
	assert.True(t, strings.HasSuffix(got, "é…"))
	assert.NotContains(t, fmt.Sprintf("%q", got), `\x`)
}

func TestFacets(t *testing.T) {
	cats, types := Facets([]*Item{
		{Category: "wood", Type: "material"},
		{Category: "stone", Type: "asset"},
		{Category: "wood", Type: "asset"},
		{},
	})
	assert.Equal(t, []string{"stone", "wood"}, cats)
	assert.Equal(t, []string{"asset", "material"}, types)
}

func TestNormalizeDir(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"/a/b/":          "a/b",
		"a\\b\\c":        "a/b/c",
		"a//b/./c":       "a/b/c",
		"  furniture/x ": "furniture/x",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDir(in), "input %q", in)
	}
}
