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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeString_HappyPath(t *testing.T) {
	doc := `{
		"@context": {"name": "http://schema.org/name"},
		"@id": "http://example.com/alice",
		"name": "Alice"
	}`

	dataset, err := DecodeString(doc, nil)
	require.NoError(t, err)

	quads := dataset.GetQuads("@default")
	require.Len(t, quads, 1)
	assert.Equal(t, "http://example.com/alice", quads[0].Subject.GetValue())
	assert.Equal(t, "http://schema.org/name", quads[0].Predicate.GetValue())

	lit, isLit := quads[0].Object.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "Alice", lit.Value)
}

func TestDecode_SyntaxError(t *testing.T) {
	_, err := Decode([]byte("{not valid json"), nil)
	require.Error(t, err)

	var ldErr *JsonLdError
	require.True(t, errors.As(err, &ldErr))
	assert.Equal(t, SyntaxError, ldErr.Code)
}

func TestDecodeString_ReverseProperty(t *testing.T) {
	// spec.md §8 concrete scenario 5: {"@id":"http://a","@reverse":{"http://p":{"@id":"http://b"}}}
	// must produce the single swapped triple (<http://b>,<http://p>,<http://a>).
	doc := `{
		"@id": "http://a",
		"@reverse": {
			"http://p": {"@id": "http://b"}
		}
	}`

	dataset, err := DecodeString(doc, nil)
	require.NoError(t, err)

	quads := dataset.GetQuads("@default")
	require.Len(t, quads, 1)
	assert.Equal(t, "http://b", quads[0].Subject.GetValue())
	assert.Equal(t, "http://p", quads[0].Predicate.GetValue())
	assert.Equal(t, "http://a", quads[0].Object.GetValue())
}

func TestDecodeString_CustomBase(t *testing.T) {
	doc := `{
		"@context": {"@vocab": "http://schema.org/"},
		"@id": "relative-alice",
		"name": "Alice"
	}`

	opts := NewJsonLdOptions("http://example.com/")
	dataset, err := DecodeString(doc, opts)
	require.NoError(t, err)

	quads := dataset.GetQuads("@default")
	require.Len(t, quads, 1)
	assert.Equal(t, "http://example.com/relative-alice", quads[0].Subject.GetValue())
}
