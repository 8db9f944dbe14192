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
)

func TestGetCanonicalDouble(t *testing.T) {
	assert.Equal(t, "1.0E0", GetCanonicalDouble(1.0))
	assert.Equal(t, "1.5E0", GetCanonicalDouble(1.5))
	assert.Equal(t, "1.0E2", GetCanonicalDouble(100.0))
	assert.Equal(t, "1.23E1", GetCanonicalDouble(12.3))
}

func TestInvalidNode_IRI(t *testing.T) {
	assert.False(t, InvalidNode(NewIRI("http://example.com/foo")))
	assert.False(t, InvalidNode(NewIRI("urn:isbn:0451450523")))
	assert.True(t, InvalidNode(NewIRI("http://")))
}

func TestInvalidNode_Literal(t *testing.T) {
	assert.False(t, InvalidNode(NewLiteral("hello", "", "en")))
	assert.True(t, InvalidNode(NewLiteral("hello", "", "not a tag!!")))

	assert.False(t, InvalidNode(NewLiteral("42", XSDInteger, "")))
	assert.True(t, InvalidNode(NewLiteral("42", "http://", "")))
}

func TestInvalidNode_BlankNode(t *testing.T) {
	assert.False(t, InvalidNode(NewBlankNode("_:b0")))
}

func TestQuad_Equal(t *testing.T) {
	s := NewIRI("http://example.com/s")
	p := NewIRI("http://example.com/p")
	o := NewLiteral("v", XSDString, "")

	q1 := NewQuad(s, p, o, "")
	q2 := NewQuad(NewIRI("http://example.com/s"), NewIRI("http://example.com/p"), NewLiteral("v", XSDString, ""), "")

	assert.True(t, q1.Equal(q2))

	q3 := NewQuad(s, p, o, "http://example.com/graph")
	assert.False(t, q1.Equal(q3))
}

func TestQuad_Valid(t *testing.T) {
	validQuad := NewQuad(NewIRI("http://example.com/s"), NewIRI("http://example.com/p"), NewIRI("http://example.com/o"), "")
	assert.True(t, validQuad.Valid())

	invalidQuad := NewQuad(NewIRI("http://"), NewIRI("http://example.com/p"), NewIRI("http://example.com/o"), "")
	assert.False(t, invalidQuad.Valid())
}

func TestRDFDataset_GraphNamesSorted(t *testing.T) {
	ds := NewRDFDataset()
	ds.Graphs["http://example.com/z"] = []*Quad{}
	ds.Graphs["http://example.com/a"] = []*Quad{}

	names := ds.GraphNames()
	assert.Equal(t, []string{"@default", "http://example.com/a", "http://example.com/z"}, names)
}
