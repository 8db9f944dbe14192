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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectToRDF_Boolean(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": true}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "true", lit.Value)
	assert.Equal(t, XSDBoolean, lit.Datatype)
}

func TestObjectToRDF_DoubleFloat64(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": 1.5}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "1.5E0", lit.Value)
	assert.Equal(t, XSDDouble, lit.Datatype)
}

func TestObjectToRDF_IntegerFromJSONNumber(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": json.Number("42")}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "42", lit.Value)
	assert.Equal(t, XSDInteger, lit.Datatype)
}

func TestObjectToRDF_DoubleFromJSONNumber(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": json.Number("1.23")}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "1.23E0", lit.Value)
	assert.Equal(t, XSDDouble, lit.Datatype)
}

func TestObjectToRDF_IntegerForcedDoubleByType(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": float64(2), "@type": XSDDouble}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "2.0E0", lit.Value)
	assert.Equal(t, XSDDouble, lit.Datatype)
}

func TestObjectToRDF_PlainString(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": "hello"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "hello", lit.Value)
	assert.Equal(t, XSDString, lit.Datatype)
}

func TestObjectToRDF_LangString(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": "bonjour", "@language": "fr"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "bonjour", lit.Value)
	assert.Equal(t, RDFLangString, lit.Datatype)
	assert.Equal(t, "fr", lit.Language)
}

func TestObjectToRDF_CustomDatatype(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@value": "2020-01-01", "@type": "http://www.w3.org/2001/XMLSchema#date"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	lit, isLit := node.(*Literal)
	require.True(t, isLit)
	assert.Equal(t, "2020-01-01", lit.Value)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#date", lit.Datatype)
}

func TestObjectToRDF_BlankNodeReference(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@id": "_:x"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	bn, isBlank := node.(*BlankNode)
	require.True(t, isBlank)
	assert.Equal(t, "_:x", bn.Attribute)
}

func TestObjectToRDF_IRIReference(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@id": "http://example.com/alice"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	iri, isIRI := node.(*IRI)
	require.True(t, isIRI)
	assert.Equal(t, "http://example.com/alice", iri.Value)
}

func TestObjectToRDF_RelativeIriDropped(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	item := map[string]interface{}{"@id": "relative"}
	node, _ := objectToRDF(item, issuer, "@default", nil)

	assert.Nil(t, node)
}

func TestListToRDF_Empty(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	node, triples := listToRDF(nil, issuer, "@default", nil)

	iri, isIRI := node.(*IRI)
	require.True(t, isIRI)
	assert.Equal(t, RDFNil, iri.Value)
	assert.Empty(t, triples)
}

func TestListToRDF_SingleElement(t *testing.T) {
	issuer := NewBlankNodeIssuer()

	list := []interface{}{
		map[string]interface{}{"@value": "only"},
	}
	node, triples := listToRDF(list, issuer, "@default", nil)

	bn, isBlank := node.(*BlankNode)
	require.True(t, isBlank)
	assert.Equal(t, "_:b0", bn.Attribute)

	require.Len(t, triples, 2)
	assert.Equal(t, RDFFirst, triples[0].Predicate.GetValue())
	assert.Equal(t, RDFRest, triples[1].Predicate.GetValue())
	assert.Equal(t, RDFNil, triples[1].Object.GetValue())
}
