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

import "regexp"

// ignoredKeywordPattern matches any token of the form "@" followed only by
// letters: the reserved-for-future-use keyword shape a JSON-LD 1.0 processor
// must silently ignore rather than treat as a term or an error.
var ignoredKeywordPattern = regexp.MustCompile("^@[a-zA-Z]+$")

// IsKeyword returns whether or not the given value is one of the fixed
// JSON-LD 1.0 keywords.
func IsKeyword(key interface{}) bool {
	if _, isString := key.(string); !isString {
		return false
	}
	switch key {
	case "@base", "@container", "@context", "@default", "@embed", "@explicit",
		"@graph", "@id", "@index", "@language", "@list", "@none", "@omitDefault",
		"@preserve", "@reverse", "@set", "@type", "@value", "@vocab":
		return true
	default:
		return false
	}
}
