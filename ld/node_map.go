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
	"strings"
)

// flattener carries the state that's threaded through every recursive step
// of node map generation: the graph-by-graph subject table being built and
// the blank-node issuer shared across the whole traversal. Packaging them
// as receiver state (instead of passing graphMap/issuer down every call, as
// a plain recursive function would) keeps the per-call argument list down
// to what actually changes between recursive steps: the element being
// visited and where it attaches.
type flattener struct {
	graphs map[string]interface{}
	labels *BlankNodeIssuer
}

// GenerateNodeMap recursively flattens the subjects in the given expanded
// JSON-LD input into a node map: graph name -> subject id -> node object,
// per spec.md §4's Node Map Generation contract.
func (api *JsonLdApi) GenerateNodeMap(element interface{}, graphMap map[string]interface{}, activeGraph string,
	issuer *BlankNodeIssuer, activeSubject interface{}, activeProperty string, list map[string]interface{}) (map[string]interface{}, error) {

	f := &flattener{graphs: graphMap, labels: issuer}
	return f.visit(element, activeGraph, activeSubject, activeProperty, list)
}

func (f *flattener) visit(element interface{}, graphName string, subject interface{}, property string, list map[string]interface{}) (map[string]interface{}, error) {
	if items, isList := element.([]interface{}); isList {
		return f.visitEach(items, graphName, subject, property, list)
	}

	entry, isObject := element.(map[string]interface{})
	if !isObject {
		return nil, fmt.Errorf("expected map or list to GenerateNodeMap, got %T", element)
	}

	f.relabelBlankTypes(entry, element)

	switch {
	case IsValue(element):
		f.attach(entry, graphName, subject, property, list)
		return list, nil
	case IsList(element):
		return f.visitListObject(entry, graphName, subject, property, list)
	default:
		return list, f.visitNodeObject(entry, graphName, subject, property)
	}
}

func (f *flattener) visitEach(items []interface{}, graphName string, subject interface{}, property string, list map[string]interface{}) (map[string]interface{}, error) {
	for _, item := range items {
		var err error
		list, err = f.visit(item, graphName, subject, property, list)
		if err != nil {
			return nil, err
		}
	}
	return list, nil
}

// relabelBlankTypes rewrites any blank-node label appearing as an @type
// value to the label this traversal's issuer has assigned it, so a type
// used as a node reference (rather than a vocabulary term) gets the same
// treatment as any other blank-node reference.
func (f *flattener) relabelBlankTypes(entry map[string]interface{}, element interface{}) {
	typeVal, hasType := entry["@type"]
	if !hasType {
		return
	}
	types := Arrayify(typeVal)
	relabeled := make([]interface{}, len(types))
	for i, t := range types {
		typeStr := t.(string)
		if strings.HasPrefix(typeStr, "_:") {
			typeStr = f.labels.GetId(typeStr)
		}
		relabeled[i] = typeStr
	}
	if IsValue(element) {
		entry["@type"] = relabeled[0]
	} else {
		entry["@type"] = relabeled
	}
}

// attach records a value object against either the enclosing list (if
// present) or the active subject's property, per spec.md §4's treatment
// of value objects.
func (f *flattener) attach(entry map[string]interface{}, graphName string, subject interface{}, property string, list map[string]interface{}) {
	if list == nil {
		AddValue(f.subjectNode(graphName, subject), property, entry, true, false)
		return
	}
	list["@list"] = append(list["@list"].([]interface{}), entry)
}

func (f *flattener) visitListObject(entry map[string]interface{}, graphName string, subject interface{}, property string, list map[string]interface{}) (map[string]interface{}, error) {
	flattenedList := map[string]interface{}{"@list": []interface{}{}}
	flattenedList, err := f.visit(entry["@list"], graphName, subject, property, flattenedList)
	if err != nil {
		return nil, err
	}
	if list == nil {
		AddValue(f.subjectNode(graphName, subject), property, flattenedList, true, false)
	} else {
		list["@list"] = append(list["@list"].([]interface{}), flattenedList)
	}
	return list, nil
}

// subjectNode resolves where a value, list, or node reference attaches:
// the graph root itself when there's no enclosing subject, the already
// flattened node keyed by subject's id, or (when subject is itself a node
// object rather than an id, as happens mid-@reverse-traversal) a throwaway
// map that nothing downstream reads back out of.
func (f *flattener) subjectNode(graphName string, subject interface{}) interface{} {
	graph := f.graph(graphName)
	if subject == nil {
		return graph
	}
	if subjectID, isString := subject.(string); isString {
		return graph[subjectID]
	}
	return make(map[string]interface{})
}

func (f *flattener) graph(graphName string) map[string]interface{} {
	if existing, found := f.graphs[graphName]; found {
		return existing.(map[string]interface{})
	}
	created := make(map[string]interface{})
	f.graphs[graphName] = created
	return created
}

func (f *flattener) visitNodeObject(entry map[string]interface{}, graphName string, subject interface{}, property string) error {
	id := f.subjectID(entry["@id"])

	node := f.nodeFor(graphName, id)

	f.recordReference(node, graphName, subject, property, id)

	if typeVal, hasType := entry["@type"]; hasType {
		AddValue(node, "@type", typeVal, true, false)
	}

	if err := f.recordIndex(node, entry); err != nil {
		return err
	}

	if err := f.visitReverseRefs(entry, graphName, id); err != nil {
		return err
	}

	if nestedGraph, hasGraph := entry["@graph"]; hasGraph {
		if _, err := f.visit(nestedGraph, id, nil, "", nil); err != nil {
			return err
		}
	}

	return f.visitProperties(entry, graphName, id, node)
}

// subjectID resolves the @id value of a node object to the label it
// should be keyed under in the node map, relabeling blank-node ids
// through the shared issuer and minting a fresh one when @id is absent.
func (f *flattener) subjectID(rawID interface{}) string {
	if rawID == nil {
		return f.labels.GetId("")
	}
	id := rawID.(string)
	if strings.HasPrefix(id, "_:") {
		return f.labels.GetId(id)
	}
	return id
}

func (f *flattener) nodeFor(graphName, id string) map[string]interface{} {
	graph := f.graph(graphName)
	if existing, found := graph[id]; found {
		return existing.(map[string]interface{})
	}
	node := map[string]interface{}{"@id": id}
	graph[id] = node
	return node
}

// recordReference links a freshly visited node object back to whatever
// referenced it: as the target of a reverse-property expansion when
// subject is itself already a node object (built by visitReverseRefs), or
// otherwise as an ordinary forward-property value on the enclosing
// subject.
func (f *flattener) recordReference(node map[string]interface{}, graphName string, subject interface{}, property string, id string) {
	if subjectNode, isReverse := subject.(map[string]interface{}); isReverse {
		AddValue(node, property, subjectNode, true, false)
		return
	}
	if property == "" {
		return
	}
	AddValue(f.subjectNode(graphName, subject), property, map[string]interface{}{"@id": id}, true, false)
}

func (f *flattener) recordIndex(node map[string]interface{}, entry map[string]interface{}) error {
	indexVal, hasIndex := entry["@index"]
	if !hasIndex {
		return nil
	}
	if existing, found := node["@index"]; found && existing != indexVal {
		return NewJsonLdError(ConflictingIndexes, "conflicting @index property detected")
	}
	node["@index"] = indexVal
	return nil
}

func (f *flattener) visitReverseRefs(entry map[string]interface{}, graphName string, id string) error {
	reverseVal, hasReverse := entry["@reverse"]
	if !hasReverse {
		return nil
	}
	referencedNode := map[string]interface{}{"@id": id}
	reverseMap := reverseVal.(map[string]interface{})
	for _, reverseProperty := range GetOrderedKeys(reverseMap) {
		for _, v := range reverseMap[reverseProperty].([]interface{}) {
			if _, err := f.visit(v, graphName, referencedNode, reverseProperty, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *flattener) visitProperties(entry map[string]interface{}, graphName string, id string, node map[string]interface{}) error {
	for _, property := range GetOrderedKeys(entry) {
		switch property {
		case "@id", "@type", "@index", "@reverse", "@graph":
			continue
		}

		value := entry[property]

		destProperty := property
		if strings.HasPrefix(property, "_:") {
			destProperty = f.labels.GetId(property)
		}

		if _, found := node[destProperty]; !found {
			node[destProperty] = []interface{}{}
		}
		if _, err := f.visit(value, graphName, id, destProperty, nil); err != nil {
			return err
		}
	}
	return nil
}
