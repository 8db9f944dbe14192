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
	"encoding/json"
)

// Decode parses input as a JSON-LD document and materializes it into an
// RDFDataset: expansion (spec.md §3) followed by to-RDF (spec.md §4).
//
// opts may be nil, in which case default options are used.
func Decode(input []byte, opts *JsonLdOptions) (*RDFDataset, error) {
	var document interface{}
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	if err := dec.Decode(&document); err != nil {
		return nil, NewJsonLdError(SyntaxError, err)
	}

	return decodeDocument(document, opts)
}

// DecodeString is Decode for callers that already hold the document as a
// string.
func DecodeString(input string, opts *JsonLdOptions) (*RDFDataset, error) {
	return Decode([]byte(input), opts)
}

func decodeDocument(document interface{}, opts *JsonLdOptions) (*RDFDataset, error) {
	if opts == nil {
		opts = NewJsonLdOptions("")
	}

	processor := NewJsonLdProcessor()

	result, err := processor.ToRDF(document, opts, "")
	if err != nil {
		return nil, err
	}

	dataset, isDataset := result.(*RDFDataset)
	if !isDataset {
		return nil, NewJsonLdError(UnknownError, "ToRDF did not return an RDFDataset")
	}

	return dataset, nil
}
