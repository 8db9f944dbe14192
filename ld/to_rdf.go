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

import "sort"

// ToRDF generates the node map for the expanded input, then adds RDF
// triples for each of its graphs to a fresh RDFDataset.
//
// Graph names are visited in lexicographic order rather than the node
// map's natural (unordered) map iteration: spec.md's determinism
// invariant requires that the blank-node identifiers issued by issuer
// depend only on the input document, not on Go's randomized map
// iteration order.
func (api *JsonLdApi) ToRDF(input interface{}, opts *JsonLdOptions) (*RDFDataset, error) {
	issuer := NewBlankNodeIssuer()

	nodeMap := make(map[string]interface{})
	nodeMap["@default"] = make(map[string]interface{})
	if _, err := api.GenerateNodeMap(input, nodeMap, "@default", issuer, "", "", nil); err != nil {
		return nil, err
	}

	graphNames := make([]string, 0, len(nodeMap))
	for graphName := range nodeMap {
		if IsRelativeIri(graphName) {
			continue
		}
		graphNames = append(graphNames, graphName)
	}
	sort.Strings(graphNames)

	dataset := NewRDFDataset()
	for _, graphName := range graphNames {
		graph := nodeMap[graphName].(map[string]interface{})
		dataset.GraphToRDF(graphName, graph, issuer, opts.ProduceGeneralizedRdf)
	}

	return dataset, nil
}
