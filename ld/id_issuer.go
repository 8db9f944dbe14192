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

import "strconv"

// blankNodePrefix is the only label prefix this module ever issues under:
// unlike a general-purpose identifier minter, this package has exactly one
// consumer of fresh ids (node map generation and to-RDF list/subject
// labeling), so the prefix isn't a caller-supplied parameter.
const blankNodePrefix = "_:b"

// BlankNodeIssuer hands out fresh blank-node labels and remembers the
// mapping from a document's original label to the one it was issued, so
// that two references to the same original label resolve to the same
// fresh one. It has no notion of replay order: that's only needed by
// normalization (URDNA2012), which this module doesn't implement, so the
// teacher's parallel existingOrder bookkeeping has no reason to exist
// here.
type BlankNodeIssuer struct {
	relabeled map[string]string
	nextSeq   int
}

// NewBlankNodeIssuer creates an issuer with an empty relabeling table.
func NewBlankNodeIssuer() *BlankNodeIssuer {
	return &BlankNodeIssuer{relabeled: make(map[string]string)}
}

// Clone returns an independent issuer carrying the same relabeling table
// and sequence position as ii, so branching a traversal can't let one
// branch's fresh labels leak into another's.
func (ii *BlankNodeIssuer) Clone() *BlankNodeIssuer {
	fork := NewBlankNodeIssuer()
	fork.nextSeq = ii.nextSeq
	for original, issued := range ii.relabeled {
		fork.relabeled[original] = issued
	}
	return fork
}

// take mints the next sequential label and advances the counter.
func (ii *BlankNodeIssuer) take() string {
	label := blankNodePrefix + strconv.Itoa(ii.nextSeq)
	ii.nextSeq++
	return label
}

// GetId returns the label previously issued for original, minting and
// recording a new one on first sight. Passing "" always mints a throwaway
// label that is never recorded, matching the JSON-LD list/subject
// generation steps that need a fresh blank node with nothing to key it by.
func (ii *BlankNodeIssuer) GetId(original string) string {
	if original == "" {
		return ii.take()
	}
	if issued, known := ii.relabeled[original]; known {
		return issued
	}
	issued := ii.take()
	ii.relabeled[original] = issued
	return issued
}

// HasId reports whether original has already been assigned a label.
func (ii *BlankNodeIssuer) HasId(original string) bool {
	_, known := ii.relabeled[original]
	return known
}
