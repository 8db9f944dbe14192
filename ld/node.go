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
	"fmt"
	"strconv"
	"strings"
)

// Node is the value of a subject, predicate or object: an IRI reference,
// a blank node, or a literal.
type Node interface {
	// GetValue returns the node's value.
	GetValue() string

	// Equal returns true if this node is equal to the given node.
	Equal(n Node) bool
}

// Literal represents a literal value.
type Literal struct {
	Value    string
	Datatype string
	Language string
}

// NewLiteral creates a new instance of Literal.
func NewLiteral(value string, datatype string, language string) *Literal {
	l := &Literal{
		Value:    value,
		Language: language,
	}

	if datatype != "" {
		l.Datatype = datatype
	} else {
		l.Datatype = XSDString
	}

	return l
}

// GetValue returns the node's value.
func (l *Literal) GetValue() string {
	return l.Value
}

// Equal returns true if this node is equal to the given node.
func (l *Literal) Equal(n Node) bool {
	ol, ok := n.(*Literal)
	if !ok {
		return false
	}
	return l.Value == ol.Value && l.Language == ol.Language && l.Datatype == ol.Datatype
}

// IRI represents an IRI value.
type IRI struct {
	Value string
}

// NewIRI creates a new instance of IRI.
func NewIRI(iri string) *IRI {
	return &IRI{Value: iri}
}

// GetValue returns the node's value.
func (iri *IRI) GetValue() string {
	return iri.Value
}

// Equal returns true if this node is equal to the given node.
func (iri *IRI) Equal(n Node) bool {
	if oiri, ok := n.(*IRI); ok {
		return iri.Value == oiri.Value
	}
	return false
}

// BlankNode represents a blank node value.
type BlankNode struct {
	Attribute string
}

// NewBlankNode creates a new instance of BlankNode.
func NewBlankNode(attribute string) *BlankNode {
	return &BlankNode{Attribute: attribute}
}

// GetValue returns the node's value.
func (bn *BlankNode) GetValue() string {
	return bn.Attribute
}

// Equal returns true if this node is equal to the given node.
func (bn *BlankNode) Equal(n Node) bool {
	if obn, ok := n.(*BlankNode); ok {
		return bn.Attribute == obn.Attribute
	}
	return false
}

// IsBlankNode returns true if the given node is a blank node.
func IsBlankNode(node Node) bool {
	_, isBlankNode := node.(*BlankNode)
	return isBlankNode
}

// IsIRI returns true if the given node is an IRI node.
func IsIRI(node Node) bool {
	_, isIRI := node.(*IRI)
	return isIRI
}

// IsLiteral returns true if the given node is a literal node.
func IsLiteral(node Node) bool {
	_, isLiteral := node.(*Literal)
	return isLiteral
}

// objectToRDF converts a JSON-LD value object to an RDF literal, or a
// JSON-LD node object/string/list object to an RDF resource, per
// spec.md §4.3 object_to_rdf.
func objectToRDF(item interface{}, issuer *BlankNodeIssuer, graphName string, triples []*Quad) (Node, []*Quad) {
	if IsValue(item) {
		itemMap := item.(map[string]interface{})
		value := itemMap["@value"]
		datatype := itemMap["@type"]

		booleanVal, isBool := value.(bool)
		floatVal, isFloat := value.(float64)

		if !isBool && !isFloat {
			// a decoder configured with json.Decoder.UseNumber() yields
			// json.Number instead of float64 for numeric literals
			if number, isNumber := value.(json.Number); isNumber {
				var floatErr error
				floatVal, floatErr = number.Float64()
				isFloat = floatErr == nil
			}
		}

		isInteger := isFloat && floatVal == float64(int64(floatVal))

		datatypeStr, _ := datatype.(string)
		switch {
		case isBool:
			if datatype == nil {
				return NewLiteral(strconv.FormatBool(booleanVal), XSDBoolean, ""), triples
			}
			return NewLiteral(strconv.FormatBool(booleanVal), datatypeStr, ""), triples
		case isFloat:
			if !isInteger || XSDDouble == datatypeStr {
				canonicalDouble := GetCanonicalDouble(floatVal)
				if datatype == nil {
					return NewLiteral(canonicalDouble, XSDDouble, ""), triples
				}
				return NewLiteral(canonicalDouble, datatypeStr, ""), triples
			}
			if datatype == nil {
				return NewLiteral(fmt.Sprintf("%d", int64(floatVal)), XSDInteger, ""), triples
			}
			return NewLiteral(fmt.Sprintf("%d", int64(floatVal)), datatypeStr, ""), triples
		default:
			if langVal, hasLang := itemMap["@language"]; hasLang {
				if datatype == nil {
					return NewLiteral(value.(string), RDFLangString, langVal.(string)), triples
				}
				return NewLiteral(value.(string), datatypeStr, langVal.(string)), triples
			}
			if datatype == nil {
				return NewLiteral(value.(string), XSDString, ""), triples
			}
			return NewLiteral(value.(string), datatypeStr, ""), triples
		}
	} else if IsList(item) {
		return listToRDF(item.(map[string]interface{})["@list"].([]interface{}), issuer, graphName, triples)
	}

	// string or node object reference
	var id string
	if itemMap, isMap := item.(map[string]interface{}); isMap {
		id = itemMap["@id"].(string)
		if IsRelativeIri(id) {
			return nil, triples
		}
	} else {
		id = item.(string)
	}
	if strings.HasPrefix(id, "_:") {
		return NewBlankNode(id), triples
	}
	return NewIRI(id), triples
}

// listToRDF materializes a JSON-LD @list as a linked rdf:first/rdf:rest
// chain of blank nodes terminated by rdf:nil, per spec.md §4.3 list_to_rdf.
// The numbering of the intermediate blank nodes isn't semantically
// significant (spec.md Design Notes), only the chain shape is.
func listToRDF(list []interface{}, issuer *BlankNodeIssuer, graphName string, triples []*Quad) (Node, []*Quad) {
	var res Node
	var last interface{}

	if len(list) > 0 {
		last = list[len(list)-1]
		res = NewBlankNode(issuer.GetId(""))
	} else {
		res = nilIRI
	}
	subj := res

	var obj Node
	for i := 0; i < len(list)-1; i++ {
		obj, triples = objectToRDF(list[i], issuer, graphName, triples)
		next := NewBlankNode(issuer.GetId(""))
		triples = append(triples,
			NewQuad(subj, first, obj, graphName),
			NewQuad(subj, rest, next, graphName),
		)
		subj = next
	}

	if last != nil {
		obj, triples = objectToRDF(last, issuer, graphName, triples)
		triples = append(triples,
			NewQuad(subj, first, obj, graphName),
			NewQuad(subj, rest, nilIRI, graphName),
		)
	}

	return res, triples
}
