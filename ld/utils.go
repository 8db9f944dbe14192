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

// Arrayify returns v, if v is an array, otherwise returns an array
// containing v as the only element.
func Arrayify(v interface{}) []interface{} {
	av, isArray := v.([]interface{})
	if isArray {
		return av
	}
	return []interface{}{v}
}

// IsValue returns true if the given value is a JSON-LD value object.
func IsValue(v interface{}) bool {
	vMap, isMap := v.(map[string]interface{})
	_, containsValue := vMap["@value"]
	return isMap && containsValue
}

// IsList returns true if the given value is a JSON-LD list object.
func IsList(v interface{}) bool {
	vMap, isMap := v.(map[string]interface{})
	_, hasList := vMap["@list"]
	return isMap && hasList
}

func isEmptyObject(v interface{}) bool {
	vMap, isMap := v.(map[string]interface{})
	return isMap && len(vMap) == 0
}

// GetKeys returns all keys in the given object, in unspecified order.
func GetKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

// GetOrderedKeys returns all keys in the given object, sorted
// lexicographically. Expansion and to-RDF rely on this order for
// deterministic output (spec.md §4.1 step 2, §4.3 iteration order).
func GetOrderedKeys(m map[string]interface{}) []string {
	keys := GetKeys(m)
	sort.Strings(keys)
	return keys
}

// CompareValues compares two JSON-LD values for equality.
//
// Two JSON-LD values are considered equal if:
//  1. They are both primitives of the same type and value.
//  2. They are both value objects with the same @value, @type, @language, and @index, or
//  3. They both have @ids and the @ids are the same.
func CompareValues(v1 interface{}, v2 interface{}) bool {
	v1Map, isv1Map := v1.(map[string]interface{})
	v2Map, isv2Map := v2.(map[string]interface{})

	if !isv1Map && !isv2Map && v1 == v2 {
		return true
	}

	if IsValue(v1) && IsValue(v2) {
		if v1Map["@value"] == v2Map["@value"] &&
			v1Map["@type"] == v2Map["@type"] &&
			v1Map["@language"] == v2Map["@language"] &&
			v1Map["@index"] == v2Map["@index"] {
			return true
		}
	}

	id1, v1containsID := v1Map["@id"]
	id2, v2containsID := v2Map["@id"]
	if (isv1Map && v1containsID) && (isv2Map && v2containsID) && (id1 == id2) {
		return true
	}

	return false
}

// HasValue determines if the given value is already a property of the given subject.
func HasValue(subject interface{}, property string, value interface{}) bool {
	subjMap, isMap := subject.(map[string]interface{})
	if !isMap {
		return false
	}
	val, found := subjMap[property]
	if !found {
		return false
	}

	isList := IsList(val)
	if valArray, isArray := val.([]interface{}); isArray || isList {
		if isList {
			valArray = val.(map[string]interface{})["@list"].([]interface{})
		}
		for _, v := range valArray {
			if CompareValues(value, v) {
				return true
			}
		}
		return false
	}

	if _, isArray := value.([]interface{}); !isArray {
		return CompareValues(value, val)
	}
	return false
}

// AddValue adds a value to a subject. If the value is an array, all values in
// the array are added individually.
//
// propertyIsArray: true if the property must always be stored as an array.
// allowDuplicate: false to skip a value already present under the property.
func AddValue(subject interface{}, property string, value interface{}, propertyIsArray, allowDuplicate bool) {
	subjMap, _ := subject.(map[string]interface{})

	if valueArray, isArray := value.([]interface{}); isArray {
		if len(valueArray) == 0 && propertyIsArray {
			if _, found := subjMap[property]; !found {
				subjMap[property] = make([]interface{}, 0)
			}
		}
		for _, v := range valueArray {
			AddValue(subject, property, v, propertyIsArray, allowDuplicate)
		}
		return
	}

	propVal, propertyFound := subjMap[property]
	if propertyFound {
		hasValue := !allowDuplicate && HasValue(subject, property, value)

		valArray, isArray := propVal.([]interface{})
		if !isArray && (!hasValue || propertyIsArray) {
			valArray = []interface{}{propVal}
			subjMap[property] = valArray
		}

		if !hasValue {
			subjMap[property] = append(subjMap[property].([]interface{}), value)
		}
	} else if propertyIsArray {
		subjMap[property] = []interface{}{value}
	} else {
		subjMap[property] = value
	}
}
