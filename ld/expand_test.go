// Copyright 2015-2017 Piprate Limited
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ld

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Expand_SimpleNodeObject(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{"name": "http://schema.org/name"},
		"@id":      "http://example.com/bob",
		"name":     "Bob",
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	assert.Equal(t, "http://example.com/bob", node["@id"])

	names := node["http://schema.org/name"].([]interface{})
	require.Len(t, names, 1)
	assert.Equal(t, "Bob", names[0].(map[string]interface{})["@value"])
}

func TestProcessor_Expand_FreeFloatingNodeWithOnlyIdDropped(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{},
		"@id":      "http://example.com/bob",
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestProcessor_Expand_EmptyObjectDropped(t *testing.T) {
	expanded, err := NewJsonLdProcessor().Expand(map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Empty(t, expanded)
}

func TestProcessor_Expand_TypeValueExpandedAgainstVocab(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{"@vocab": "http://schema.org/"},
		"@id":      "http://example.com/bob",
		"@type":    "Person",
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	assert.Equal(t, []interface{}{"http://schema.org/Person"}, node["@type"])
}

func TestProcessor_Expand_LanguageMapContainer(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{
			"label": map[string]interface{}{
				"@id":        "http://example.com/label",
				"@container": "@language",
			},
		},
		"@id": "http://example.com/bob",
		"label": map[string]interface{}{
			"en": "Hello",
			"fr": []interface{}{"Bonjour", "Salut"},
		},
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	labels := node["http://example.com/label"].([]interface{})
	require.Len(t, labels, 3)

	seen := map[string]int{}
	for _, l := range labels {
		lm := l.(map[string]interface{})
		seen[lm["@value"].(string)] = 1
		if lm["@value"] == "Hello" {
			assert.Equal(t, "en", lm["@language"])
		} else {
			assert.Equal(t, "fr", lm["@language"])
		}
	}
	assert.Len(t, seen, 3)
}

func TestProcessor_Expand_IndexMapContainer(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{
			"term": map[string]interface{}{
				"@id":        "http://example.com/term",
				"@container": "@index",
			},
		},
		"@id": "http://example.com/bob",
		"term": map[string]interface{}{
			"idx1": map[string]interface{}{"@id": "http://example.com/a"},
			"idx2": map[string]interface{}{"@id": "http://example.com/b"},
		},
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	items := node["http://example.com/term"].([]interface{})
	require.Len(t, items, 2)

	indexByID := map[string]string{}
	for _, item := range items {
		im := item.(map[string]interface{})
		indexByID[im["@id"].(string)] = im["@index"].(string)
	}
	assert.Equal(t, "idx1", indexByID["http://example.com/a"])
	assert.Equal(t, "idx2", indexByID["http://example.com/b"])
}

func TestProcessor_Expand_ReverseProperty(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{},
		"@id":      "http://example.com/bob",
		"@reverse": map[string]interface{}{
			"http://example.com/parent": map[string]interface{}{"@id": "http://example.com/alice"},
		},
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	reverseMap := node["@reverse"].(map[string]interface{})
	parents := reverseMap["http://example.com/parent"].([]interface{})
	require.Len(t, parents, 1)
	assert.Equal(t, "http://example.com/alice", parents[0].(map[string]interface{})["@id"])
}

func TestProcessor_Expand_ListContainer(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{
			"track": map[string]interface{}{
				"@id":        "http://example.com/track",
				"@container": "@list",
			},
		},
		"@id":   "http://example.com/playlist",
		"track": []interface{}{"one", "two"},
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	track := node["http://example.com/track"].([]interface{})
	require.Len(t, track, 1)

	listObj := track[0].(map[string]interface{})
	listVal := listObj["@list"].([]interface{})
	require.Len(t, listVal, 2)
	assert.Equal(t, "one", listVal[0].(map[string]interface{})["@value"])
	assert.Equal(t, "two", listVal[1].(map[string]interface{})["@value"])
}

func TestExpand_ListOfListsRejected(t *testing.T) {
	api := NewJsonLdApi()
	ctx := NewContext(nil, nil)
	opts := NewJsonLdOptions("")

	element := []interface{}{
		[]interface{}{"a"},
	}

	_, err := api.Expand(ctx, "@list", element, opts)
	require.Error(t, err)

	var ldErr *JsonLdError
	require.ErrorAs(t, err, &ldErr)
	assert.Equal(t, ListOfLists, ldErr.Code)
}

func TestProcessor_Expand_UnmappedKeyDropped(t *testing.T) {
	input := map[string]interface{}{
		"@context": map[string]interface{}{},
		"@id":      "http://example.com/bob",
		"unmapped": "value",
	}

	expanded, err := NewJsonLdProcessor().Expand(input, nil)
	require.NoError(t, err)
	require.Len(t, expanded, 1)

	node := expanded[0].(map[string]interface{})
	assert.Equal(t, "http://example.com/bob", node["@id"])
	assert.NotContains(t, node, "unmapped")
}

func TestProcessor_Expand_ValueObjectWithDisallowedKeysRejected(t *testing.T) {
	api := NewJsonLdApi()
	ctx := NewContext(nil, nil)
	opts := NewJsonLdOptions("")

	element := map[string]interface{}{
		"@value": "hello",
		"@id":    "http://example.com/bob",
	}

	_, err := api.Expand(ctx, "prop", element, opts)
	require.Error(t, err)

	var ldErr *JsonLdError
	require.ErrorAs(t, err, &ldErr)
	assert.Equal(t, InvalidValueObject, ldErr.Code)
}
