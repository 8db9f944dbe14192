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

// JsonLdApi groups the core JSON-LD 1.0 algorithms (expansion, node map
// generation, to-RDF) as methods, mirroring how the JSON-LD API spec
// describes them as operations of a single processor.
type JsonLdApi struct { //nolint:stylecheck
}

// NewJsonLdApi creates a new instance of JsonLdApi.
func NewJsonLdApi() *JsonLdApi { //nolint:stylecheck
	return &JsonLdApi{}
}

// Expand recursively expands element against activeCtx, per the
// Expansion algorithm: http://www.w3.org/TR/json-ld-api/#expansion-algorithm
func (api *JsonLdApi) Expand(activeCtx *Context, activeProperty string, element interface{}, opts *JsonLdOptions) (interface{}, error) {
	if element == nil {
		return nil, nil
	}

	switch elem := element.(type) {
	case []interface{}:
		return api.expandArray(activeCtx, activeProperty, elem, opts)
	case map[string]interface{}:
		return api.expandMapElement(activeCtx, activeProperty, elem, opts)
	default:
		return api.expandScalar(activeCtx, activeProperty, element)
	}
}

// expandArray expands each item of a JSON array in turn, flattening any
// item that itself expanded to an array, and rejecting a list nested
// inside another list.
func (api *JsonLdApi) expandArray(activeCtx *Context, activeProperty string, elem []interface{}, opts *JsonLdOptions) (interface{}, error) {
	expanded := make([]interface{}, 0, len(elem))
	for _, item := range elem {
		v, err := api.Expand(activeCtx, activeProperty, item, opts)
		if err != nil {
			return nil, err
		}

		if activeProperty == "@list" || activeCtx.HasContainerMapping(activeProperty, "@list") {
			if isListValued(v) {
				return nil, NewJsonLdError(ListOfLists, "lists of lists are not permitted.")
			}
		}

		if v == nil {
			continue
		}
		if vList, isList := v.([]interface{}); isList {
			expanded = append(expanded, vList...)
		} else {
			expanded = append(expanded, v)
		}
	}
	return expanded, nil
}

// isListValued reports whether v is a bare list or a list object (has a
// @list key), the two shapes a list-container item may never nest.
func isListValued(v interface{}) bool {
	if _, isList := v.([]interface{}); isList {
		return true
	}
	vMap, isMap := v.(map[string]interface{})
	_, hasList := vMap["@list"]
	return isMap && hasList
}

// expandScalar expands a primitive leaf value, dropping it entirely at
// document/@graph top level where a bare scalar can't attach to anything.
func (api *JsonLdApi) expandScalar(activeCtx *Context, activeProperty string, element interface{}) (interface{}, error) {
	if activeProperty == "" || activeProperty == "@graph" {
		return nil, nil
	}
	return activeCtx.ExpandValue(activeProperty, element)
}

// expandMapElement expands a JSON object, first applying any embedded
// @context, then running the per-key expansion (expandObject) and finally
// the result-shape checks that decide whether the expanded object
// survives, collapses to a bare value, or vanishes as free-floating.
func (api *JsonLdApi) expandMapElement(activeCtx *Context, activeProperty string, elem map[string]interface{}, opts *JsonLdOptions) (interface{}, error) {
	if ctx, hasContext := elem["@context"]; hasContext {
		newCtx, err := activeCtx.Parse(ctx)
		if err != nil {
			return nil, err
		}
		activeCtx = newCtx
	}

	expandedActiveProperty, err := activeCtx.ExpandIri(activeProperty, false, true, nil, nil)
	if err != nil {
		return nil, err
	}

	resultMap := make(map[string]interface{})
	if err := api.expandObject(activeCtx, activeProperty, expandedActiveProperty, elem, resultMap, opts); err != nil {
		return nil, err
	}

	if _, hasValue := resultMap["@value"]; hasValue {
		collapsesToNil, err := validateValueObject(resultMap)
		if err != nil {
			return nil, err
		}
		if collapsesToNil {
			return nil, nil
		}
	} else if rtype, hasType := resultMap["@type"]; hasType {
		if _, isList := rtype.([]interface{}); !isList {
			resultMap["@type"] = []interface{}{rtype}
		}
	} else if rset, returnNow, err := unwrapBareSetOrList(resultMap); err != nil {
		return nil, err
	} else if returnNow {
		return rset, nil
	}

	return pruneFreeFloatingNode(resultMap, activeProperty), nil
}

// validateValueObject enforces the shape rules for an object carrying
// @value: only @value/@index/@language/@type keys, never both @language
// and @type, and a @type or @language value consistent with @value's
// type. It reports collapsesToNil when @value itself is null, in which
// case the caller must treat the whole object as absent.
func validateValueObject(resultMap map[string]interface{}) (collapsesToNil bool, err error) {
	allowedKeys := map[string]struct{}{"@value": {}, "@index": {}, "@language": {}, "@type": {}}
	for key := range resultMap {
		if _, allowed := allowedKeys[key]; !allowed {
			return false, NewJsonLdError(InvalidValueObject, "value object has unknown keys")
		}
	}

	_, hasLanguage := resultMap["@language"]
	typeValue, hasType := resultMap["@type"]
	if hasLanguage && hasType {
		return false, NewJsonLdError(InvalidValueObject,
			"an element containing @value may not contain both @type and @language")
	}

	rval := resultMap["@value"]
	if rval == nil {
		return true, nil
	}

	if hasLanguage {
		for _, v := range Arrayify(rval) {
			if _, isString := v.(string); !(isString || isEmptyObject(v)) {
				return false, NewJsonLdError(InvalidLanguageTaggedValue, "only strings may be language-tagged")
			}
		}
	} else if hasType {
		for _, v := range Arrayify(typeValue) {
			vStr, isString := v.(string)
			if !(isEmptyObject(v) || (isString && IsAbsoluteIri(vStr) && !strings.HasPrefix(vStr, "_:"))) {
				return false, NewJsonLdError(InvalidTypedValue,
					"an element containing @value and @type must have an absolute IRI for the value of @type")
			}
		}
	}
	return false, nil
}

// unwrapBareSetOrList handles an object whose only substantive key is
// @set or @list: it may carry nothing besides @index, and a bare @set
// collapses straight to its contents (returnNow), while @list is left in
// place for the caller to return as-is.
func unwrapBareSetOrList(resultMap map[string]interface{}) (value interface{}, returnNow bool, err error) {
	rset, hasSet := resultMap["@set"]
	_, hasList := resultMap["@list"]
	if !hasSet && !hasList {
		return nil, false, nil
	}

	maxSize := 1
	if _, hasIndex := resultMap["@index"]; hasIndex {
		maxSize = 2
	}
	if len(resultMap) > maxSize {
		return nil, false, NewJsonLdError(InvalidSetOrListObject, "@set or @list may only contain @index")
	}
	if hasSet {
		return rset, true, nil
	}
	return nil, false, nil
}

// pruneFreeFloatingNode collapses a lone @language-only result to nil,
// and (at document/@graph top level) drops a node that carries nothing
// but @value, @list, or a bare @id - these can never be referenced so
// they'd otherwise survive expansion as unreachable litter.
func pruneFreeFloatingNode(resultMap map[string]interface{}, activeProperty string) interface{} {
	if _, hasLanguage := resultMap["@language"]; hasLanguage && len(resultMap) == 1 {
		return nil
	}
	if activeProperty != "" && activeProperty != "@graph" {
		return resultMap
	}

	_, hasValue := resultMap["@value"]
	_, hasList := resultMap["@list"]
	_, hasID := resultMap["@id"]
	if len(resultMap) == 0 || hasValue || hasList {
		return nil
	}
	if hasID && len(resultMap) == 1 {
		return nil
	}
	return resultMap
}

// keywordFrame bundles the context a keyword handler needs to run: the
// active context/property pair it was invoked under, the options driving
// any nested Expand call, and the result object it writes into.
type keywordFrame struct {
	api            *JsonLdApi
	activeCtx      *Context
	activeProperty string
	opts           *JsonLdOptions
	resultMap      map[string]interface{}
}

// keywordHandler expands the value of a single JSON-LD keyword. It
// returns the value to store under that keyword (nil to store nothing),
// and handled=true when the handler already did all the work the keyword
// needs (writing directly into resultMap, or deliberately discarding the
// value) so the dispatcher must not also store the returned value.
type keywordHandler func(f *keywordFrame, value interface{}) (expandedValue interface{}, handled bool, err error)

var keywordHandlers = map[string]keywordHandler{
	"@id":       expandIDKeyword,
	"@type":     expandTypeKeyword,
	"@graph":    expandGraphKeyword,
	"@value":    expandValueKeyword,
	"@language": expandLanguageKeyword,
	"@index":    expandIndexKeyword,
	"@list":     expandListKeyword,
	"@set":      expandSetKeyword,
	"@reverse":  expandReverseKeyword,
}

func expandIDKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	valueStr, isString := value.(string)
	if !isString {
		return nil, false, NewJsonLdError(InvalidIDValue, "value of @id must be a string")
	}
	expanded, err := f.activeCtx.ExpandIri(valueStr, true, false, nil, nil)
	return expanded, false, err
}

func expandTypeKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	switch v := value.(type) {
	case []interface{}:
		expanded := make([]interface{}, 0, len(v))
		for _, listElem := range v {
			listElemStr, isString := listElem.(string)
			if !isString {
				return nil, false, NewJsonLdError(InvalidTypeValue, "@type value must be a string or array of strings")
			}
			newVal, err := f.activeCtx.ExpandIri(listElemStr, true, true, nil, nil)
			if err != nil {
				return nil, false, err
			}
			expanded = append(expanded, newVal)
		}
		return expanded, false, nil
	case string:
		expanded, err := f.activeCtx.ExpandIri(v, true, true, nil, nil)
		return expanded, false, err
	default:
		return nil, false, NewJsonLdError(InvalidTypeValue, "@type value must be a string or array of strings")
	}
}

func expandGraphKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	expanded, err := f.api.Expand(f.activeCtx, "@graph", value, f.opts)
	if err != nil {
		return nil, false, err
	}
	return Arrayify(expanded), false, nil
}

func expandValueKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	_, isMap := value.(map[string]interface{})
	_, isList := value.([]interface{})
	if value != nil && (isMap || isList) {
		return nil, false, NewJsonLdError(InvalidValueObjectValue, "value of @value must be a scalar or null")
	}
	if value == nil {
		f.resultMap["@value"] = nil
		return nil, true, nil
	}
	return value, false, nil
}

func expandLanguageKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	vStr, isString := value.(string)
	if !isString {
		return nil, false, NewJsonLdError(InvalidLanguageTaggedString, "@language value must be a string")
	}
	return strings.ToLower(vStr), false, nil
}

func expandIndexKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	if _, isString := value.(string); !isString {
		return nil, false, NewJsonLdError(InvalidIndexValue, "Value of @index must be a string")
	}
	return value, false, nil
}

// expandListKeyword expands a @list value, rejecting nested lists. A
// @list appearing where there's no active subject or graph to attach it
// to (top-level or under @graph) is simply dropped.
func expandListKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	if f.activeProperty == "" || f.activeProperty == "@graph" {
		return nil, true, nil
	}

	expandedValue, err := f.api.Expand(f.activeCtx, f.activeProperty, value, f.opts)
	if err != nil {
		return nil, false, err
	}
	items, isList := expandedValue.([]interface{})
	if !isList {
		items = []interface{}{expandedValue}
		expandedValue = items
	}
	for _, o := range items {
		oMap, isMap := o.(map[string]interface{})
		if _, containsList := oMap["@list"]; isMap && containsList {
			return nil, false, NewJsonLdError(ListOfLists, "A list may not contain another list")
		}
	}
	return expandedValue, false, nil
}

func expandSetKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	expandedValue, _ := f.api.Expand(f.activeCtx, f.activeProperty, value, f.opts)
	return expandedValue, false, nil
}

// expandReverseKeyword expands a @reverse value map and merges it into
// resultMap: any doubly-reversed property (a @reverse inside the
// @reverse value) folds back in as a forward property, while everything
// else accumulates under resultMap["@reverse"]. It always writes
// directly into resultMap, so the dispatcher never stores its return
// value.
func expandReverseKeyword(f *keywordFrame, value interface{}) (interface{}, bool, error) {
	if _, isMap := value.(map[string]interface{}); !isMap {
		return nil, true, NewJsonLdError(InvalidReverseValue, "@reverse value must be an object")
	}

	expandedValue, err := f.api.Expand(f.activeCtx, "@reverse", value, f.opts)
	if err != nil {
		return nil, true, err
	}
	expandedValueMap := expandedValue.(map[string]interface{})
	resultMap := f.resultMap

	doubleReversed, containsDoubleReversed := expandedValueMap["@reverse"]
	if containsDoubleReversed {
		mergeDoubleReversedProperties(resultMap, doubleReversed.(map[string]interface{}))
	}

	maxSize := 0
	if containsDoubleReversed {
		maxSize = 1
	}
	if len(expandedValueMap) > maxSize {
		if err := mergeReverseProperties(resultMap, expandedValueMap); err != nil {
			return nil, true, err
		}
	}
	return nil, true, nil
}

// mergeDoubleReversedProperties folds a @reverse-of-@reverse back into an
// ordinary forward property on resultMap.
func mergeDoubleReversedProperties(resultMap map[string]interface{}, doubleReversed map[string]interface{}) {
	for property, item := range doubleReversed {
		propertyList, _ := resultMap[property].([]interface{})
		if propertyList == nil {
			propertyList = make([]interface{}, 0)
		}
		if itemList, isList := item.([]interface{}); isList {
			propertyList = append(propertyList, itemList...)
		} else {
			propertyList = append(propertyList, item)
		}
		resultMap[property] = propertyList
	}
}

// mergeReverseProperties accumulates the remaining (genuinely reversed)
// properties of a @reverse value into resultMap["@reverse"], rejecting
// any that resolved to a value object or list object - a reverse
// property may only ever point at a node.
func mergeReverseProperties(resultMap map[string]interface{}, expandedValueMap map[string]interface{}) error {
	reverseMap, _ := resultMap["@reverse"].(map[string]interface{})
	if reverseMap == nil {
		reverseMap = make(map[string]interface{})
		resultMap["@reverse"] = reverseMap
	}

	for property, propertyValue := range expandedValueMap {
		if property == "@reverse" {
			continue
		}
		for _, item := range propertyValue.([]interface{}) {
			itemMap := item.(map[string]interface{})
			_, containsValue := itemMap["@value"]
			_, containsList := itemMap["@list"]
			if containsValue || containsList {
				return NewJsonLdError(InvalidReversePropertyValue, nil)
			}
			propertyValueList, _ := reverseMap[property].([]interface{})
			reverseMap[property] = append(propertyValueList, item)
		}
	}
	return nil
}

// expandObject runs step 7 of the Expansion algorithm: visiting every
// key of a JSON object in lexicographic order, dispatching keywords to
// their handlers and everything else through the generic term-expansion
// path, and recording each result onto resultMap (as a forward or
// reverse property, per the active context's term definitions).
func (api *JsonLdApi) expandObject(activeCtx *Context, activeProperty string, expandedActiveProperty string,
	elem map[string]interface{}, resultMap map[string]interface{}, opts *JsonLdOptions) error {

	for _, key := range GetOrderedKeys(elem) {
		value := elem[key]
		if key == "@context" {
			continue
		}

		expandedProperty, err := activeCtx.ExpandIri(key, false, true, nil, nil)
		if err != nil {
			return err
		}
		if expandedProperty == "" || (!strings.Contains(expandedProperty, ":") && !IsKeyword(expandedProperty)) {
			continue
		}

		if IsKeyword(expandedProperty) {
			if expandedActiveProperty == "@reverse" {
				return NewJsonLdError(InvalidReversePropertyMap, "a keyword cannot be used as a @reverse property")
			}
			if _, collides := resultMap[expandedProperty]; collides {
				return NewJsonLdError(CollidingKeywords, expandedProperty+" already exists in result")
			}

			handler, hasHandler := keywordHandlers[expandedProperty]
			if !hasHandler {
				// A keyword this processor recognizes but doesn't act on
				// (e.g. @vocab, @container used as an object key) carries
				// no expansion value of its own.
				continue
			}

			frame := &keywordFrame{api: api, activeCtx: activeCtx, activeProperty: activeProperty, opts: opts, resultMap: resultMap}
			expandedValue, handled, err := handler(frame, value)
			if err != nil {
				return err
			}
			if !handled && expandedValue != nil {
				resultMap[expandedProperty] = expandedValue
			}
			continue
		}

		expandedValue, err := api.expandTermValue(activeCtx, activeProperty, expandedActiveProperty, key, expandedProperty, value, opts)
		if err != nil {
			return err
		}
		if expandedValue == nil {
			continue
		}

		if activeCtx.HasContainerMapping(key, "@list") {
			expandedValue = wrapAsListObject(expandedValue)
		}

		if activeCtx.IsReverseProperty(key) {
			if err := recordReverseProperty(resultMap, expandedProperty, expandedValue); err != nil {
				return err
			}
		} else {
			recordForwardProperty(resultMap, expandedProperty, expandedValue)
		}
	}

	return nil
}

// expandTermValue expands the value bound to an ordinary (non-keyword)
// term, choosing among the @language-map, @index-map, @list/@set, and
// plain-recursive treatments per the term's container mapping.
func (api *JsonLdApi) expandTermValue(activeCtx *Context, activeProperty, expandedActiveProperty, key, expandedProperty string,
	value interface{}, opts *JsonLdOptions) (interface{}, error) {

	valueMap, isMap := value.(map[string]interface{})

	switch {
	case activeCtx.HasContainerMapping(key, "@language") && isMap:
		return expandLanguageMap(activeCtx, valueMap)
	case activeCtx.HasContainerMapping(key, "@index") && isMap:
		return api.expandIndexMap(activeCtx, key, valueMap, opts)
	case expandedProperty == "@list" || expandedProperty == "@set":
		nextActiveProperty := activeProperty
		if expandedProperty == "@list" && expandedActiveProperty == "@graph" {
			nextActiveProperty = ""
		}
		expandedValue, err := api.Expand(activeCtx, nextActiveProperty, value, opts)
		if err != nil {
			return nil, err
		}
		if expandedProperty == "@list" && IsList(expandedValue) {
			return nil, NewJsonLdError(ListOfLists, "lists of lists are not permitted")
		}
		return expandedValue, nil
	default:
		return api.Expand(activeCtx, key, value, opts)
	}
}

// expandLanguageMap expands a container: @language term's value map,
// pairing each string entry with the (lowercased) language key it was
// found under, per spec.md §4.1's treatment of language-keyed term
// containers.
func expandLanguageMap(activeCtx *Context, valueMap map[string]interface{}) (interface{}, error) {
	var expanded []interface{}
	for _, language := range GetOrderedKeys(valueMap) {
		expandedLanguage, err := activeCtx.ExpandIri(language, false, true, nil, nil)
		if err != nil {
			return nil, err
		}
		for _, item := range Arrayify(valueMap[language]) {
			if item == nil {
				continue
			}
			if _, isString := item.(string); !isString {
				return nil, NewJsonLdError(InvalidLanguageMapValue, fmt.Sprintf("expected %v to be a string", item))
			}
			v := map[string]interface{}{"@value": item}
			if expandedLanguage != "@none" {
				v["@language"] = strings.ToLower(language)
			}
			expanded = append(expanded, v)
		}
	}
	return expanded, nil
}

// expandIndexMap expands a container: @index term's value map, per
// spec.md §4.1's treatment of index-keyed term containers.
func (api *JsonLdApi) expandIndexMap(activeCtx *Context, activeProperty string, value map[string]interface{}, opts *JsonLdOptions) (interface{}, error) {
	var expanded []interface{}
	for _, index := range GetOrderedKeys(value) {
		items, err := api.Expand(activeCtx, activeProperty, Arrayify(value[index]), opts)
		if err != nil {
			return nil, err
		}
		for _, itemValue := range items.([]interface{}) {
			item := itemValue.(map[string]interface{})
			if _, hasIndex := item["@index"]; !hasIndex {
				item["@index"] = index
			}
			expanded = append(expanded, item)
		}
	}
	return expanded, nil
}

// wrapAsListObject coerces an expanded value into list-object shape
// ({"@list": [...]}), for a term whose container mapping is @list but
// whose expansion didn't already produce one.
func wrapAsListObject(expandedValue interface{}) interface{} {
	expandedValueMap, isMap := expandedValue.(map[string]interface{})
	if _, containsList := expandedValueMap["@list"]; isMap && containsList {
		return expandedValue
	}
	if vList, isList := expandedValue.([]interface{}); isList {
		return map[string]interface{}{"@list": vList}
	}
	return map[string]interface{}{"@list": []interface{}{expandedValue}}
}

// recordReverseProperty accumulates a term's expanded value under
// resultMap["@reverse"][expandedProperty], rejecting any value object or
// list object - a reverse property may only point at a node.
func recordReverseProperty(resultMap map[string]interface{}, expandedProperty string, expandedValue interface{}) error {
	reverseMap, _ := resultMap["@reverse"].(map[string]interface{})
	if reverseMap == nil {
		reverseMap = make(map[string]interface{})
		resultMap["@reverse"] = reverseMap
	}

	items, isList := expandedValue.([]interface{})
	if !isList {
		items = []interface{}{expandedValue}
	}

	existing, _ := reverseMap[expandedProperty].([]interface{})
	for _, item := range items {
		switch v := item.(type) {
		case map[string]interface{}:
			_, containsValue := v["@value"]
			_, containsList := v["@list"]
			if containsValue || containsList {
				return NewJsonLdError(InvalidReversePropertyValue, nil)
			}
			existing = append(existing, v)
		case []interface{}:
			existing = append(existing, v...)
		default:
			existing = append(existing, v)
		}
	}
	reverseMap[expandedProperty] = existing
	return nil
}

// recordForwardProperty accumulates a term's expanded value under
// resultMap[expandedProperty] as an array, per the ordinary (non-reverse)
// property storage step.
func recordForwardProperty(resultMap map[string]interface{}, expandedProperty string, expandedValue interface{}) {
	existing, _ := resultMap[expandedProperty].([]interface{})
	if existing == nil {
		existing = make([]interface{}, 0)
	}
	if valueList, isList := expandedValue.([]interface{}); isList {
		existing = append(existing, valueList...)
	} else {
		existing = append(existing, expandedValue)
	}
	resultMap[expandedProperty] = existing
}
