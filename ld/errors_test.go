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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJsonLdError_Error(t *testing.T) {
	err := NewJsonLdError(InvalidIRIMapping, "not an absolute IRI: foo")
	assert.Equal(t, "invalid IRI mapping: not an absolute IRI: foo", err.Error())

	bare := NewJsonLdError(ListOfLists, nil)
	assert.Equal(t, "list of lists", bare.Error())
}

func TestJsonLdError_ErrorsAs(t *testing.T) {
	var err error = NewJsonLdError(CyclicIRIMapping, "term")

	var ldErr *JsonLdError
	assert.True(t, errors.As(err, &ldErr))
	assert.Equal(t, CyclicIRIMapping, ldErr.Code)
}
