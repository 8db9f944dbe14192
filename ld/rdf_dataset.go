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
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// Quad represents an RDF quad.
type Quad struct {
	Subject   Node
	Predicate Node
	Object    Node
	Graph     Node
}

// NewQuad creates a new instance of Quad.
func NewQuad(subject Node, predicate Node, object Node, graph string) *Quad {
	q := &Quad{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}

	if graph != "" && graph != "@default" {
		if strings.HasPrefix(graph, "_:") {
			q.Graph = NewBlankNode(graph)
		} else {
			q.Graph = NewIRI(graph)
		}
	}
	return q
}

// Equal returns true if this quad is equal to the given quad.
func (q *Quad) Equal(o *Quad) bool {
	if o == nil {
		return false
	}

	if (q.Graph != nil && !q.Graph.Equal(o.Graph)) || (q.Graph == nil && o.Graph != nil) {
		return false
	}

	return q.Subject.Equal(o.Subject) && q.Predicate.Equal(o.Predicate) && q.Object.Equal(o.Object)
}

// Valid returns false if any term of the quad fails RDF well-formedness
// (spec.md §4.3: invalid triples are dropped rather than erroring).
func (q *Quad) Valid() bool {
	if q.Subject != nil && InvalidNode(q.Subject) {
		return false
	}
	if q.Predicate != nil && InvalidNode(q.Predicate) {
		return false
	}
	if q.Object != nil && InvalidNode(q.Object) {
		return false
	}
	if q.Graph != nil && InvalidNode(q.Graph) {
		return false
	}
	return true
}

// RDFDataset is an internal representation of an RDF dataset: a
// collection of named graphs, each holding an unordered list of quads.
type RDFDataset struct {
	Graphs map[string][]*Quad
}

// RDFSerializer can serialize RDFDatasets.
type RDFSerializer interface {
	Serialize(dataset *RDFDataset) (interface{}, error)
}

// RDFSerializerTo can serialize RDFDatasets into io.Writer.
type RDFSerializerTo interface {
	SerializeTo(w io.Writer, dataset *RDFDataset) error
}

// NewRDFDataset creates a new instance of RDFDataset.
func NewRDFDataset() *RDFDataset {
	ds := &RDFDataset{
		Graphs: make(map[string][]*Quad),
	}
	ds.Graphs["@default"] = make([]*Quad, 0)
	return ds
}

// GetQuads returns a list of quads for the given graph.
func (ds *RDFDataset) GetQuads(graphName string) []*Quad {
	return ds.Graphs[graphName]
}

// GraphNames returns the names of every graph in the dataset, in
// lexicographic order.
func (ds *RDFDataset) GraphNames() []string {
	names := make([]string, 0, len(ds.Graphs))
	for name := range ds.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var first = NewIRI(RDFFirst)
var rest = NewIRI(RDFRest)
var nilIRI = NewIRI(RDFNil)

// GraphToRDF creates the RDF triples for the given graph's node map and
// stores them on the dataset under graphName, per spec.md §4.3
// node_to_rdf/graph_to_rdf.
//
// Subject ids are visited in lexicographic order, on top of the
// already-ordered per-subject property iteration (GetOrderedKeys): the
// teacher iterates the node map in Go's unspecified map order, which
// would make blank-node numbering nondeterministic across runs. This is
// a deliberate deviation to satisfy spec.md's determinism invariant.
func (ds *RDFDataset) GraphToRDF(graphName string, graph map[string]interface{}, issuer *BlankNodeIssuer,
	produceGeneralizedRdf bool) {
	triples := make([]*Quad, 0)

	for _, id := range GetOrderedKeys(graph) {
		if IsRelativeIri(id) {
			continue
		}

		node := graph[id].(map[string]interface{})
		for _, property := range GetOrderedKeys(node) {
			var values []interface{}
			switch {
			case property == "@type":
				values = node["@type"].([]interface{})
				property = RDFType
			case IsKeyword(property):
				continue
			case strings.HasPrefix(property, "_:") && !produceGeneralizedRdf:
				continue
			case IsRelativeIri(property):
				continue
			default:
				values = node[property].([]interface{})
			}

			var subject Node
			if strings.HasPrefix(id, "_:") {
				subject = NewBlankNode(id)
			} else {
				subject = NewIRI(id)
			}

			var predicate Node
			if strings.HasPrefix(property, "_:") {
				predicate = NewBlankNode(property)
			} else {
				predicate = NewIRI(property)
			}

			for _, item := range values {
				var object Node
				object, triples = objectToRDF(item, issuer, graphName, triples)
				if object != nil {
					triples = append(triples, NewQuad(subject, predicate, object, graphName))
				}
			}
		}
	}

	sanitisedTriples := make([]*Quad, 0, len(triples))
	for _, t := range triples {
		if t.Valid() {
			sanitisedTriples = append(sanitisedTriples, t)
		}
	}
	ds.Graphs[graphName] = sanitisedTriples
}

var canonicalDoubleRegEx = regexp.MustCompile(`(\d)0*E\+?0*(\d)`)

// GetCanonicalDouble returns a canonical string representation of a float64 number.
func GetCanonicalDouble(v float64) string {
	return canonicalDoubleRegEx.ReplaceAllString(fmt.Sprintf("%1.15E", v), "${1}E${2}")
}

var validLanguageRegex = regexp.MustCompile("^[a-zA-Z]+(-[a-zA-Z0-9]+)*$")

// InvalidNode reports whether a node fails RDF well-formedness: an IRI
// that isn't a valid absolute IRI, or a literal with a malformed
// language tag or datatype IRI.
func InvalidNode(node Node) bool {
	switch v := node.(type) {
	case *IRI:
		if !validIRI(v.Value) {
			return true
		}
	case *Literal:
		if v.Language != "" && !validLanguageRegex.MatchString(v.Language) {
			return true
		}
		if v.Datatype != "" && !validIRI(v.Datatype) {
			return true
		}
	}
	return false
}
