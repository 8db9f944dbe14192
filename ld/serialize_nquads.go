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
	"bytes"
	"fmt"
	"io"
	"strings"
)

// NQuadRDFSerializer serializes an RDFDataset as N-Quads. Parsing N-Quads
// back into a dataset is out of scope (spec.md Non-goals: FromRDF).
type NQuadRDFSerializer struct {
}

// SerializeTo writes dataset to w in N-Quads form, one graph at a time in
// the dataset's lexicographic graph order.
func (s *NQuadRDFSerializer) SerializeTo(w io.Writer, dataset *RDFDataset) error {
	for _, graphName := range dataset.GraphNames() {
		outputGraphName := graphName
		if outputGraphName == "@default" {
			outputGraphName = ""
		}
		for _, triple := range dataset.Graphs[graphName] {
			quad := toNQuad(triple, outputGraphName)
			if _, err := fmt.Fprint(w, quad); err != nil {
				return NewJsonLdError(IOError, err)
			}
		}
	}
	return nil
}

// Serialize renders dataset as an N-Quads string.
func (s *NQuadRDFSerializer) Serialize(dataset *RDFDataset) (interface{}, error) {
	buf := bytes.NewBuffer(nil)
	if err := s.SerializeTo(buf, dataset); err != nil {
		return nil, err
	}
	return buf.String(), nil
}

func toNQuad(triple *Quad, graphName string) string {
	s := triple.Subject
	p := triple.Predicate
	o := triple.Object

	quad := ""

	if IsIRI(s) {
		quad += "<" + escape(s.GetValue()) + ">"
	} else {
		quad += s.GetValue()
	}

	if IsIRI(p) {
		quad += " <" + escape(p.GetValue()) + "> "
	} else {
		quad += " " + escape(p.GetValue()) + " "
	}

	if IsIRI(o) {
		quad += "<" + escape(o.GetValue()) + ">"
	} else if IsBlankNode(o) {
		quad += o.GetValue()
	} else {
		literal := o.(*Literal)
		escaped := escape(literal.GetValue())
		quad += "\"" + escaped + "\""
		if literal.Datatype == RDFLangString {
			quad += "@" + literal.Language
		} else if literal.Datatype != XSDString {
			quad += "^^<" + escape(literal.Datatype) + ">"
		}
	}

	if graphName != "" {
		if strings.HasPrefix(graphName, "_:") {
			quad += " " + graphName
		} else {
			quad += " <" + escape(graphName) + ">"
		}
	}

	quad += " .\n"

	return quad
}

func escape(str string) string {
	str = strings.ReplaceAll(str, "\\", "\\\\")
	str = strings.ReplaceAll(str, "\"", "\\\"")
	str = strings.ReplaceAll(str, "\n", "\\n")
	str = strings.ReplaceAll(str, "\r", "\\r")
	str = strings.ReplaceAll(str, "\t", "\\t")
	return str
}
