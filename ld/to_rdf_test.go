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

func expandedFixture() []interface{} {
	return []interface{}{
		map[string]interface{}{
			"@id": "http://example.com/bob",
			"http://schema.org/name": []interface{}{
				map[string]interface{}{"@value": "Bob"},
			},
			"http://schema.org/knows": []interface{}{
				map[string]interface{}{"@id": "http://example.com/alice"},
			},
		},
		map[string]interface{}{
			"@id": "http://example.com/alice",
			"http://schema.org/name": []interface{}{
				map[string]interface{}{"@value": "Alice"},
			},
		},
	}
}

func TestToRDF_BasicTriples(t *testing.T) {
	api := NewJsonLdApi()
	opts := NewJsonLdOptions("")

	dataset, err := api.ToRDF(expandedFixture(), opts)
	require.NoError(t, err)

	quads := dataset.GetQuads("@default")
	require.Len(t, quads, 3)

	var foundName, foundKnows bool
	for _, q := range quads {
		if q.Subject.GetValue() == "http://example.com/bob" && q.Predicate.GetValue() == "http://schema.org/name" {
			lit, isLit := q.Object.(*Literal)
			require.True(t, isLit)
			assert.Equal(t, "Bob", lit.Value)
			foundName = true
		}
		if q.Subject.GetValue() == "http://example.com/bob" && q.Predicate.GetValue() == "http://schema.org/knows" {
			assert.Equal(t, "http://example.com/alice", q.Object.GetValue())
			foundKnows = true
		}
	}
	assert.True(t, foundName)
	assert.True(t, foundKnows)
}

func TestToRDF_DeterministicBlankNodeNumbering(t *testing.T) {
	element := []interface{}{
		map[string]interface{}{
			"@id": "_:z",
			"http://schema.org/name": []interface{}{
				map[string]interface{}{"@value": "Z"},
			},
		},
		map[string]interface{}{
			"@id": "_:a",
			"http://schema.org/name": []interface{}{
				map[string]interface{}{"@value": "A"},
			},
		},
	}

	opts := NewJsonLdOptions("")

	var firstRun []string
	for i := 0; i < 5; i++ {
		api := NewJsonLdApi()
		dataset, err := api.ToRDF(element, opts)
		require.NoError(t, err)

		var subjects []string
		for _, q := range dataset.GetQuads("@default") {
			subjects = append(subjects, q.Subject.GetValue())
		}

		if firstRun == nil {
			firstRun = subjects
		} else {
			assert.Equal(t, firstRun, subjects)
		}
	}

	// node-map generation walks the input slice in array order (not Go's
	// randomized map order), so "_:z" is always issued "_:b0" and "_:a"
	// is always issued "_:b1" regardless of how many times this runs.
	assert.Equal(t, []string{"_:b0", "_:b1"}, firstRun)
}

func TestToRDF_ListMaterialization(t *testing.T) {
	element := []interface{}{
		map[string]interface{}{
			"@id": "http://example.com/playlist",
			"http://schema.org/track": []interface{}{
				map[string]interface{}{
					"@list": []interface{}{
						map[string]interface{}{"@value": "one"},
						map[string]interface{}{"@value": "two"},
					},
				},
			},
		},
	}

	api := NewJsonLdApi()
	opts := NewJsonLdOptions("")

	dataset, err := api.ToRDF(element, opts)
	require.NoError(t, err)

	quads := dataset.GetQuads("@default")
	// one triple linking playlist -> first list node, plus two rdf:first
	// and two rdf:rest triples for the two-element list.
	require.Len(t, quads, 5)

	var terminatesInNil bool
	for _, q := range quads {
		if q.Predicate.GetValue() == RDFRest && q.Object.GetValue() == RDFNil {
			terminatesInNil = true
		}
	}
	assert.True(t, terminatesInNil)
}

func TestToRDF_InvalidLanguageTagDropped(t *testing.T) {
	element := []interface{}{
		map[string]interface{}{
			"@id": "http://example.com/bob",
			"http://schema.org/name": []interface{}{
				map[string]interface{}{"@value": "Bob", "@language": "not a valid tag!!"},
			},
		},
	}

	api := NewJsonLdApi()
	opts := NewJsonLdOptions("")

	dataset, err := api.ToRDF(element, opts)
	require.NoError(t, err)

	assert.Empty(t, dataset.GetQuads("@default"))
}
