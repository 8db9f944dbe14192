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
	"strings"
)

// JsonLdProcessor implements the subset of the JsonLdProcessor interface
// this module supports: Expansion and to-RDF materialization.
// See http://www.w3.org/TR/json-ld-api/#the-jsonldprocessor-interface
type JsonLdProcessor struct { //nolint:stylecheck
}

// NewJsonLdProcessor creates an instance of JsonLdProcessor.
func NewJsonLdProcessor() *JsonLdProcessor { //nolint:stylecheck
	return &JsonLdProcessor{}
}

// Expand operation expands the given input according to the steps in the
// Expansion algorithm: http://www.w3.org/TR/json-ld-api/#expansion-algorithm
func (jldp *JsonLdProcessor) Expand(input interface{}, opts *JsonLdOptions) ([]interface{}, error) {
	if opts == nil {
		opts = NewJsonLdOptions("")
	}
	return jldp.expand(input, opts)
}

func (jldp *JsonLdProcessor) expand(input interface{}, opts *JsonLdOptions) ([]interface{}, error) {
	var remoteContext string

	if iri, isString := input.(string); isString && strings.Contains(iri, ":") {
		rd, err := opts.DocumentLoader.LoadDocument(iri)
		if err != nil {
			return nil, err
		}
		if rd.Document == "" {
			return nil, NewJsonLdError(LoadingDocumentFailed, err)
		}
		input = rd.Document
		iri = rd.DocumentURL

		// only override base if it isn't already set in options
		if opts.Base == "" {
			opts.Base = iri
		}

		if rd.ContextURL != "" {
			remoteContext = rd.ContextURL
		}
	}

	activeCtx := NewContext(nil, opts)

	if opts.ExpandContext != nil {
		exCtx := opts.ExpandContext
		if exCtxMap, isMap := exCtx.(map[string]interface{}); isMap {
			if ctx, hasCtx := exCtxMap["@context"]; hasCtx {
				exCtx = ctx
			}
		}

		var err error
		activeCtx, err = activeCtx.Parse(exCtx)
		if err != nil {
			return nil, err
		}
	}

	if remoteContext != "" {
		var err error
		if activeCtx, err = activeCtx.Parse(remoteContext); err != nil {
			return nil, err
		}
	}

	api := NewJsonLdApi()
	expanded, err := api.Expand(activeCtx, "", input, opts)
	if err != nil {
		return nil, err
	}

	expandedMap, isMap := expanded.(map[string]interface{})

	if isMap && len(expandedMap) == 0 {
		expanded = nil
	}

	graph, hasGraph := expandedMap["@graph"]
	if isMap && hasGraph && len(expandedMap) == 1 {
		expanded = graph
	} else if expanded == nil {
		expanded = make([]interface{}, 0)
	}

	if expandedList, isList := expanded.([]interface{}); isList {
		return expandedList, nil
	}

	return []interface{}{expanded}, nil
}

var rdfSerializers = map[string]RDFSerializer{
	"application/nquads": &NQuadRDFSerializer{},
}

// ToRDF outputs the RDF dataset found in the given JSON-LD document.
//
// input: the JSON-LD input.
// opts: the options to use, including [base] the base IRI to use.
// format: the serializer to pass the resulting dataset through
// ('application/nquads' for N-Quads); "" returns the *RDFDataset itself.
func (jldp *JsonLdProcessor) ToRDF(input interface{}, opts *JsonLdOptions, format string) (interface{}, error) {
	if opts == nil {
		opts = NewJsonLdOptions("")
	}

	expandedInput, err := jldp.expand(input, opts)
	if err != nil {
		return nil, err
	}

	api := NewJsonLdApi()
	dataset, err := api.ToRDF(expandedInput, opts)
	if err != nil {
		return nil, err
	}

	if format != "" {
		serializer, hasSerializer := rdfSerializers[format]
		if !hasSerializer {
			return nil, NewJsonLdError(UnknownError, "unknown RDF serialization format: "+format)
		}
		return serializer.Serialize(dataset)
	}

	return dataset, nil
}
