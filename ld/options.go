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

const (
	JsonLd_1_0 = "json-ld-1.0" //nolint:stylecheck
)

// JsonLdOptions type as specified in the JSON-LD-API specification:
// http://www.w3.org/TR/json-ld-api/#the-jsonldoptions-type
//
// Only the subset of the spec's option surface that applies to JSON-LD 1.0
// expansion and RDF serialization is carried here. Framing and compaction
// options are out of scope (spec.md Non-goals) so they aren't modelled.
type JsonLdOptions struct { //nolint:stylecheck

	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-base
	Base string
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-expandContext
	ExpandContext interface{}
	// http://www.w3.org/TR/json-ld-api/#widl-JsonLdOptions-documentLoader
	DocumentLoader DocumentLoader

	// RDF conversion options: http://www.w3.org/TR/json-ld-api/#serialize-rdf-as-json-ld-algorithm
	ProduceGeneralizedRdf bool
}

// NewJsonLdOptions creates and returns a new instance of JsonLdOptions with the given base.
func NewJsonLdOptions(base string) *JsonLdOptions { //nolint:stylecheck
	return &JsonLdOptions{
		Base:                  base,
		DocumentLoader:        NewDefaultDocumentLoader(nil),
		ProduceGeneralizedRdf: false,
	}
}

// Copy creates a shallow copy of the JsonLdOptions object.
func (opt *JsonLdOptions) Copy() *JsonLdOptions {
	return &JsonLdOptions{
		Base:                  opt.Base,
		ExpandContext:         opt.ExpandContext,
		DocumentLoader:        opt.DocumentLoader,
		ProduceGeneralizedRdf: opt.ProduceGeneralizedRdf,
	}
}
