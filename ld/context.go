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
	"fmt"
	"regexp"
	"strings"
)

// iriLikeTermPattern matches a term that looks enough like an IRI (contains
// a slash, or a colon followed by a character other than a colon) that its own IRI expansion
// must be cross-checked against its @id mapping.
var iriLikeTermPattern = regexp.MustCompile(`(?::[^:])|/`)

// nonTermDefKeys lists the @context entries that configure the active
// context itself rather than defining a term, per spec.md §6.5.
var nonTermDefKeys = map[string]bool{
	"@base":     true,
	"@language": true,
	"@vocab":    true,
}

// Context represents a JSON-LD context and provides easy access to specific
// keys and operations.
type Context struct {
	values          map[string]interface{}
	options         *JsonLdOptions
	termDefinitions map[string]interface{}
	previousContext *Context
}

// NewContext creates and returns a new Context object.
func NewContext(values map[string]interface{}, options *JsonLdOptions) *Context {
	if options == nil {
		options = NewJsonLdOptions("")
	}

	context := &Context{
		values:          make(map[string]interface{}),
		options:         options,
		termDefinitions: make(map[string]interface{}),
	}

	context.values["@base"] = options.Base

	for k, v := range values {
		context.values[k] = v
	}

	return context
}

// AsMap returns a debug-friendly view of the context's internal state.
func (c *Context) AsMap() map[string]interface{} {
	res := map[string]interface{}{
		"values":          c.values,
		"termDefinitions": c.termDefinitions,
	}
	if c.previousContext != nil {
		res["previousContext"] = c.previousContext.AsMap()
	}
	return res
}

// CopyContext creates a full copy of the given context.
func CopyContext(ctx *Context) *Context {
	context := NewContext(ctx.values, ctx.options)

	for k, v := range ctx.termDefinitions {
		context.termDefinitions[k] = v
	}

	if ctx.previousContext != nil {
		context.previousContext = CopyContext(ctx.previousContext)
	}

	return context
}

// Parse processes a local context, retrieving any URLs as necessary, and
// returns a new active context.
// Refer to http://www.w3.org/TR/json-ld-api/#context-processing-algorithms for details
func (c *Context) Parse(localContext interface{}) (*Context, error) {
	return c.parse(localContext, make([]string, 0))
}

// parse folds each entry of localContext into a fresh copy of c in turn,
// threading remoteContexts through so a cycle of mutually-including
// remote contexts is caught regardless of how deep the recursion goes.
func (c *Context) parse(localContext interface{}, remoteContexts []string) (*Context, error) {
	contexts := Arrayify(localContext)
	if len(contexts) == 0 {
		return c, nil
	}

	result := CopyContext(c)
	for _, entry := range contexts {
		merged, nextRemote, err := result.mergeContextEntry(entry, remoteContexts)
		if err != nil {
			return nil, err
		}
		result = merged
		remoteContexts = nextRemote
	}
	return result, nil
}

// mergeContextEntry folds a single @context array entry into result: nil
// resets to a fresh context, a *Context is substituted wholesale, a
// string is dereferenced as a remote context, and an object's @base,
// @language, @vocab and term definitions are applied in place.
func (result *Context) mergeContextEntry(entry interface{}, remoteContexts []string) (*Context, []string, error) {
	if entry == nil {
		return NewContext(nil, result.options), remoteContexts, nil
	}

	var contextMap map[string]interface{}
	switch v := entry.(type) {
	case *Context:
		return v, remoteContexts, nil
	case string:
		return result.dereferenceRemoteContext(v, remoteContexts)
	case map[string]interface{}:
		contextMap = v
	default:
		return nil, remoteContexts, NewJsonLdError(InvalidLocalContext, entry)
	}

	if nestedContext := contextMap["@context"]; nestedContext != nil {
		nestedContextMap, isMap := nestedContext.(map[string]interface{})
		if !isMap {
			return nil, remoteContexts, NewJsonLdError(InvalidLocalContext, nestedContext)
		}
		contextMap = nestedContextMap
	}

	if err := result.applyBaseOverride(contextMap, len(remoteContexts)); err != nil {
		return nil, remoteContexts, err
	}
	if err := result.applyLanguageOverride(contextMap); err != nil {
		return nil, remoteContexts, err
	}
	if err := result.applyVocabOverride(contextMap); err != nil {
		return nil, remoteContexts, err
	}
	if err := result.defineAllTerms(contextMap); err != nil {
		return nil, remoteContexts, err
	}

	return result, remoteContexts, nil
}

// dereferenceRemoteContext loads the context document named by a string
// @context entry, rejecting one already on the inclusion chain, then
// recursively parses its own @context against result.
func (result *Context) dereferenceRemoteContext(ref string, remoteContexts []string) (*Context, []string, error) {
	uri := Resolve(result.values["@base"].(string), ref)
	for _, seen := range remoteContexts {
		if seen == uri {
			return nil, remoteContexts, NewJsonLdError(RecursiveContextInclusion, uri)
		}
	}
	remoteContexts = append(remoteContexts, uri)

	rd, err := result.options.DocumentLoader.LoadDocument(uri)
	if err != nil {
		return nil, remoteContexts, NewJsonLdError(LoadingRemoteContextFailed,
			fmt.Errorf("dereferencing a URL did not result in a valid JSON-LD context (%s): %w", uri, err))
	}
	remoteContextMap, isMap := rd.Document.(map[string]interface{})
	remoteContext, hasContextKey := remoteContextMap["@context"]
	if !isMap || !hasContextKey {
		return nil, remoteContexts, NewJsonLdError(InvalidRemoteContext, remoteContext)
	}

	chain := make([]string, len(remoteContexts))
	copy(chain, remoteContexts)
	next, err := result.parse(remoteContext, chain)
	if err != nil {
		return nil, remoteContexts, err
	}
	return next, remoteContexts, nil
}

// applyBaseOverride applies a local context's @base entry, but only at
// the top of the inclusion chain - a remote context may not redirect
// @base for the document that included it.
func (result *Context) applyBaseOverride(contextMap map[string]interface{}, remoteDepth int) error {
	baseValue, present := contextMap["@base"]
	if remoteDepth != 0 || !present {
		return nil
	}
	if baseValue == nil {
		delete(result.values, "@base")
		return nil
	}
	baseString, isString := baseValue.(string)
	if !isString {
		return NewJsonLdError(InvalidBaseIRI, "the value of @base in a @context must be a string or null")
	}
	if IsAbsoluteIri(baseString) {
		result.values["@base"] = baseValue
		return nil
	}
	baseURI := result.values["@base"].(string)
	if !IsAbsoluteIri(baseURI) {
		return NewJsonLdError(InvalidBaseIRI, baseURI)
	}
	result.values["@base"] = Resolve(baseURI, baseString)
	return nil
}

func (result *Context) applyLanguageOverride(contextMap map[string]interface{}) error {
	languageValue, present := contextMap["@language"]
	if !present {
		return nil
	}
	if languageValue == nil {
		delete(result.values, "@language")
		return nil
	}
	languageString, isString := languageValue.(string)
	if !isString {
		return NewJsonLdError(InvalidDefaultLanguage, languageValue)
	}
	result.values["@language"] = strings.ToLower(languageString)
	return nil
}

func (result *Context) applyVocabOverride(contextMap map[string]interface{}) error {
	vocabValue, present := contextMap["@vocab"]
	if !present {
		return nil
	}
	if vocabValue == nil {
		delete(result.values, "@vocab")
		return nil
	}
	vocabString, isString := vocabValue.(string)
	if !isString {
		return NewJsonLdError(InvalidVocabMapping, "@vocab must be a string or null")
	}
	if !IsAbsoluteIri(vocabString) {
		return NewJsonLdError(InvalidVocabMapping, "@vocab must be an absolute IRI in 1.0 mode")
	}
	expanded, err := result.ExpandIri(vocabString, true, true, nil, nil)
	if err != nil {
		return err
	}
	result.values["@vocab"] = expanded
	return nil
}

// defineAllTerms runs createTermDefinition over every key of contextMap
// that isn't one of the context-level configuration entries handled
// separately (@base/@language/@vocab).
func (result *Context) defineAllTerms(contextMap map[string]interface{}) error {
	defined := make(map[string]bool)
	for key := range contextMap {
		if nonTermDefKeys[key] {
			continue
		}
		if err := result.createTermDefinition(contextMap, key, defined); err != nil {
			return err
		}
	}
	return nil
}

// beginTermDefinition implements the cycle guard shared by every entry
// into createTermDefinition: a term already fully resolved this pass is
// a no-op, one still mid-resolution further up the call stack is a
// cyclic IRI mapping.
func beginTermDefinition(term string, defined map[string]bool) (done bool, err error) {
	status, inProgress := defined[term]
	if inProgress {
		if status {
			return true, nil
		}
		return true, NewJsonLdError(CyclicIRIMapping, term)
	}
	defined[term] = false
	return false, nil
}

// isNullTermDefinition reports whether a term's raw @context value marks
// it as explicitly undefined: a bare null, or a map whose @id is null.
func isNullTermDefinition(value interface{}) bool {
	if value == nil {
		return true
	}
	mapValue, isMap := value.(map[string]interface{})
	if !isMap {
		return false
	}
	idValue, hasID := mapValue["@id"]
	return hasID && idValue == nil
}

// normalizeTermValue coerces a term's raw @context value to its map
// shape: a bare string is shorthand for {"@id": value} (a simple term),
// anything else must already be a map.
func normalizeTermValue(value interface{}) (mapValue map[string]interface{}, simpleTerm bool, err error) {
	if strVal, isString := value.(string); isString {
		return map[string]interface{}{"@id": strVal}, true, nil
	}
	mapValue, isMap := value.(map[string]interface{})
	if !isMap {
		return nil, false, NewJsonLdError(InvalidTermDefinition, value)
	}
	return mapValue, false, nil
}

func validateTermDefinitionKeys(mapValue map[string]interface{}) error {
	validKeys := map[string]bool{
		"@container": true,
		"@id":        true,
		"@language":  true,
		"@reverse":   true,
		"@type":      true,
	}
	for k := range mapValue {
		if !validKeys[k] {
			return NewJsonLdError(InvalidTermDefinition, fmt.Sprintf("a term definition must not contain %s", k))
		}
	}
	return nil
}

// createTermDefinition creates a term definition in the active context for
// term, as described by value in the local context, per the Create Term
// Definition algorithm (http://www.w3.org/TR/json-ld-api/#create-term-definition).
func (c *Context) createTermDefinition(context map[string]interface{}, term string, defined map[string]bool) error {
	if done, err := beginTermDefinition(term, defined); done {
		return err
	}

	value := context[term]
	if isNullTermDefinition(value) {
		c.termDefinitions[term] = nil
		defined[term] = true
		return nil
	}

	mapValue, simpleTerm, err := normalizeTermValue(value)
	if err != nil {
		return err
	}

	if IsKeyword(term) {
		return NewJsonLdError(KeywordRedefinition, term)
	}
	if ignoredKeywordPattern.MatchString(term) {
		// Terms beginning with '@' are reserved for future use and ignored.
		return nil
	}

	delete(c.termDefinitions, term)

	if err := validateTermDefinitionKeys(mapValue); err != nil {
		return err
	}

	colonIndex := strings.Index(term, ":")
	b := &termDefBuilder{
		ctx:          c,
		context:      context,
		term:         term,
		defined:      defined,
		mapValue:     mapValue,
		simpleTerm:   simpleTerm,
		termHasColon: colonIndex > 0,
		colonIndex:   colonIndex,
		definition:   map[string]interface{}{"@reverse": false},
	}

	if skip, err := b.applyReverseOrID(); err != nil {
		return err
	} else if skip {
		return nil
	}
	if err := b.applyImplicitID(); err != nil {
		return err
	}

	defined[term] = true

	if err := b.applyType(); err != nil {
		return err
	}
	if err := b.applyContainer(); err != nil {
		return err
	}
	if err := b.applyLanguage(); err != nil {
		return err
	}
	if err := rejectAliasOfReservedKeywords(b.definition); err != nil {
		return err
	}

	c.termDefinitions[term] = b.definition
	return nil
}

// termDefBuilder carries the fixed inputs and in-progress definition of
// a single createTermDefinition call as receiver state, so the
// individual resolution steps (reverse/@id, implicit @id, @type,
// @container, @language) read as short, independently testable methods
// instead of one long function threading the same half-dozen values
// through every branch.
type termDefBuilder struct {
	ctx          *Context
	context      map[string]interface{}
	term         string
	defined      map[string]bool
	mapValue     map[string]interface{}
	simpleTerm   bool
	termHasColon bool
	colonIndex   int
	definition   map[string]interface{}
}

// applyReverseOrID resolves an explicit @reverse or @id entry in the
// term's raw definition into b.definition["@id"] (and, for @reverse,
// ["@reverse"]=true). skip reports a reserved-keyword value that must
// silently abort the whole term definition.
func (b *termDefBuilder) applyReverseOrID() (skip bool, err error) {
	val := b.mapValue

	if reverseValue, present := val["@reverse"]; present {
		if _, idPresent := val["@id"]; idPresent {
			return false, NewJsonLdError(InvalidReverseProperty, "an @reverse term definition must not contain @id.")
		}
		reverseStr, isString := reverseValue.(string)
		if !isString {
			return false, NewJsonLdError(InvalidIRIMapping,
				fmt.Sprintf("expected string for @reverse value. got %v", reverseValue))
		}
		id, err := b.ctx.ExpandIri(reverseStr, false, true, b.context, b.defined)
		if err != nil {
			return false, err
		}
		if !IsAbsoluteIri(id) {
			return false, NewJsonLdError(InvalidIRIMapping, fmt.Sprintf(
				"@context @reverse value must be an absolute IRI or a blank node identifier, got %s", id))
		}
		if ignoredKeywordPattern.MatchString(reverseStr) {
			return true, nil
		}

		b.definition["@id"] = id
		b.definition["@reverse"] = true
		return false, nil
	}

	idValue, hasID := val["@id"]
	if !hasID {
		return false, nil
	}

	idStr, isString := idValue.(string)
	if !isString {
		return false, NewJsonLdError(InvalidIRIMapping, "expected value of @id to be a string")
	}
	if b.term == idStr {
		return false, nil
	}
	if !IsKeyword(idStr) && ignoredKeywordPattern.MatchString(idStr) {
		return true, nil
	}

	res, err := b.ctx.ExpandIri(idStr, false, true, b.context, b.defined)
	if err != nil {
		return false, err
	}
	if !IsKeyword(res) && !IsAbsoluteIri(res) {
		return false, NewJsonLdError(InvalidIRIMapping,
			"resulting IRI mapping should be a keyword, absolute IRI or blank node")
	}
	if res == "@context" {
		return false, NewJsonLdError(InvalidKeywordAlias, "cannot alias @context")
	}
	b.definition["@id"] = res

	if iriLikeTermPattern.MatchString(b.term) {
		b.defined[b.term] = true
		termIRI, err := b.ctx.ExpandIri(b.term, false, true, b.context, b.defined)
		if err != nil {
			return false, err
		}
		if termIRI != res {
			return false, NewJsonLdError(InvalidIRIMapping,
				fmt.Sprintf("term %s expands to %s, not %s", b.term, res, termIRI))
		}
		delete(b.defined, b.term)
	}

	b.definition["_prefix"] = !b.termHasColon && hasIRISuffix(res) && b.simpleTerm
	return false, nil
}

// hasIRISuffix reports whether an IRI ends in a character after which a
// compact-IRI suffix can be appended directly (a generic-delimiter or
// the colon/at-sign JSON-LD also treats as one).
func hasIRISuffix(iri string) bool {
	if len(iri) == 0 {
		return false
	}
	switch iri[len(iri)-1] {
	case ':', '/', '?', '#', '[', ']', '@':
		return true
	default:
		return false
	}
}

// applyImplicitID fills in b.definition["@id"] when neither @reverse nor
// @id supplied one explicitly: a colon-containing term borrows its
// prefix's mapping (defining the prefix first, if needed), and
// otherwise the active context's @vocab is prepended.
func (b *termDefBuilder) applyImplicitID() error {
	if _, hasID := b.definition["@id"]; hasID {
		return nil
	}

	if b.termHasColon {
		prefix := b.term[0:b.colonIndex]
		if _, containsPrefix := b.context[prefix]; containsPrefix {
			if err := b.ctx.createTermDefinition(b.context, prefix, b.defined); err != nil {
				return err
			}
		}
		if termDef, hasTermDef := b.ctx.termDefinitions[prefix]; hasTermDef {
			termDefMap, _ := termDef.(map[string]interface{})
			suffix := b.term[b.colonIndex+1:]
			b.definition["@id"] = termDefMap["@id"].(string) + suffix
		} else {
			b.definition["@id"] = b.term
		}
		return nil
	}

	if vocabValue, containsVocab := b.ctx.values["@vocab"]; containsVocab {
		b.definition["@id"] = vocabValue.(string) + b.term
		return nil
	}
	return NewJsonLdError(InvalidIRIMapping, "relative term definition without vocab mapping")
}

func (b *termDefBuilder) applyType() error {
	typeValue, present := b.mapValue["@type"]
	if !present {
		return nil
	}
	typeStr, isString := typeValue.(string)
	if !isString {
		return NewJsonLdError(InvalidTypeMapping, typeValue)
	}
	if typeStr != "@id" && typeStr != "@vocab" {
		expanded, err := b.ctx.ExpandIri(typeStr, false, true, b.context, b.defined)
		if err != nil {
			var ldErr *JsonLdError
			if ok := errors.As(err, &ldErr); !ok || ldErr.Code != InvalidIRIMapping {
				return err
			}
			return NewJsonLdError(InvalidTypeMapping, typeStr)
		}
		if !IsAbsoluteIri(expanded) {
			return NewJsonLdError(InvalidTypeMapping, "an @context @type value must be an absolute IRI")
		}
		if strings.HasPrefix(expanded, "_:") {
			return NewJsonLdError(InvalidTypeMapping, "an @context @type values must be an IRI, not a blank node identifier")
		}
		typeStr = expanded
	}

	b.definition["@type"] = typeStr
	return nil
}

func (b *termDefBuilder) applyContainer() error {
	containerVal, hasContainer := b.mapValue["@container"]
	if !hasContainer {
		return nil
	}
	containerValue, isString := containerVal.(string)
	if !isString {
		return NewJsonLdError(InvalidContainerMapping, "@container must be a string")
	}

	validContainers := map[string]bool{"@list": true, "@set": true, "@index": true, "@language": true}
	if !validContainers[containerValue] {
		allowed := make([]string, 0, len(validContainers))
		for k := range validContainers {
			allowed = append(allowed, k)
		}
		return NewJsonLdError(InvalidContainerMapping, fmt.Sprintf(
			"@context @container value must be one of the following: %q", allowed))
	}

	if reverseVal, hasReverse := b.definition["@reverse"]; hasReverse && reverseVal.(bool) {
		if containerValue != "@index" && containerValue != "@set" {
			return NewJsonLdError(InvalidReverseProperty,
				"@context @container value for an @reverse type definition must be @index or @set")
		}
	}

	b.definition["@container"] = []interface{}{containerVal}
	return nil
}

func (b *termDefBuilder) applyLanguage() error {
	_, hasType := b.mapValue["@type"]
	languageVal, hasLanguage := b.mapValue["@language"]
	if !hasLanguage || hasType {
		return nil
	}
	if languageVal == nil {
		b.definition["@language"] = nil
		return nil
	}
	language, isString := languageVal.(string)
	if !isString {
		return NewJsonLdError(InvalidLanguageMapping, "@language must be a string or null")
	}
	b.definition["@language"] = strings.ToLower(language)
	return nil
}

func rejectAliasOfReservedKeywords(definition map[string]interface{}) error {
	id := definition["@id"]
	if id == "@context" || id == "@preserve" {
		return NewJsonLdError(InvalidKeywordAlias, "@context and @preserve cannot be aliased")
	}
	return nil
}

// RevertToPreviousContext reverts any scoped context in this active context
// to the previous context, if one was tracked.
func (c *Context) RevertToPreviousContext() *Context {
	if c.previousContext == nil {
		return c
	}
	return c.previousContext
}

// ExpandIri performs IRI expansion, as described in
// http://www.w3.org/TR/json-ld-api/#iri-expansion.
func (c *Context) ExpandIri(value string, relative bool, vocab bool, context map[string]interface{},
	defined map[string]bool) (string, error) {
	if IsKeyword(value) {
		return value, nil
	}
	if ignoredKeywordPattern.MatchString(value) {
		return "", nil
	}

	if err := c.ensureTermDefined(context, value, defined); err != nil {
		return "", err
	}

	if vocab {
		if iri, handled := c.expandViaTermDefinition(value); handled {
			return iri, nil
		}
	}

	if colonIndex := strings.Index(value, ":"); colonIndex > 0 {
		iri, handled, err := c.expandViaPrefix(value, colonIndex, context, defined)
		if err != nil {
			return "", err
		}
		if handled {
			return iri, nil
		}
	}

	return c.expandIriFallback(value, relative, vocab, context)
}

// ensureTermDefined makes sure key has a term definition before it's
// used to resolve an IRI, running createTermDefinition on demand for a
// key that's present in context but not yet defined this pass.
func (c *Context) ensureTermDefined(context map[string]interface{}, key string, defined map[string]bool) error {
	if context == nil {
		return nil
	}
	if _, present := context[key]; !present || defined[key] {
		return nil
	}
	return c.createTermDefinition(context, key, defined)
}

// expandViaTermDefinition looks up value as a full term, returning its
// @id mapping - or the empty string, for a term explicitly defined as
// unusable (mapped to null). handled is false only when value has no
// term definition at all, letting the caller fall through to
// compact-IRI/vocab/base resolution instead.
func (c *Context) expandViaTermDefinition(value string) (iri string, handled bool) {
	termDef, hasTermDef := c.termDefinitions[value]
	if !hasTermDef {
		return "", false
	}
	termDefMap, isMap := termDef.(map[string]interface{})
	if isMap && termDefMap != nil {
		return termDefMap["@id"].(string), true
	}
	return "", true
}

// expandViaPrefix resolves value's colon-prefix as a term in its own
// right: "_:..." and a "//"-leading suffix (an absolute IRI with a
// scheme) are already final, a defined prefix with a usable IRI mapping
// is concatenated with the suffix, and otherwise an already-absolute
// value is returned unchanged.
func (c *Context) expandViaPrefix(value string, colonIndex int, context map[string]interface{}, defined map[string]bool) (iri string, handled bool, err error) {
	prefix := value[0:colonIndex]
	suffix := value[colonIndex+1:]
	if prefix == "_" || strings.HasPrefix(suffix, "//") {
		return value, true, nil
	}

	if err := c.ensureTermDefined(context, prefix, defined); err != nil {
		return "", false, err
	}

	termDef, hasPrefix := c.termDefinitions[prefix]
	if hasPrefix && termDef.(map[string]interface{})["@id"] != "" && termDef.(map[string]interface{})["_prefix"].(bool) {
		termDefMap := termDef.(map[string]interface{})
		return termDefMap["@id"].(string) + suffix, true, nil
	}
	if IsAbsoluteIri(value) {
		return value, true, nil
	}
	return "", false, nil
}

// expandIriFallback applies the final IRI-expansion steps once value
// has no term or prefix mapping of its own: prepend @vocab, resolve
// against @base, or reject/pass through a bare relative string.
func (c *Context) expandIriFallback(value string, relative bool, vocab bool, context map[string]interface{}) (string, error) {
	if vocabValue, containsVocab := c.values["@vocab"]; vocab && containsVocab {
		return vocabValue.(string) + value, nil
	}
	if relative {
		baseValue, hasBase := c.values["@base"]
		base := ""
		if hasBase {
			base = baseValue.(string)
		}
		return Resolve(base, value), nil
	}
	if context != nil && IsRelativeIri(value) {
		return "", NewJsonLdError(InvalidIRIMapping, "not an absolute IRI: "+value)
	}
	return value, nil
}

// GetContainer retrieves the container mapping for the given property.
func (c *Context) GetContainer(property string) []interface{} {
	propertyMap, isMap := c.termDefinitions[property].(map[string]interface{})
	if isMap {
		if container, hasContainer := propertyMap["@container"]; hasContainer {
			return container.([]interface{})
		}
	}

	return []interface{}{}
}

// HasContainerMapping returns true if property has val among its container
// mappings.
func (c *Context) HasContainerMapping(property string, val string) bool {
	for _, container := range c.GetContainer(property) {
		if container == val {
			return true
		}
	}
	return false
}

// IsReverseProperty returns true if the given property is a reverse property.
func (c *Context) IsReverseProperty(property string) bool {
	td := c.GetTermDefinition(property)
	if td == nil {
		return false
	}
	reverse, containsReverse := td["@reverse"]
	return containsReverse && reverse.(bool)
}

// GetTypeMapping returns the type mapping for the given property.
func (c *Context) GetTypeMapping(property string) string {
	if td := c.GetTermDefinition(property); td != nil {
		if val, contains := td["@type"]; contains && val != nil {
			return val.(string)
		}
	}
	if defaultType, hasDefault := c.values["@type"]; hasDefault {
		return defaultType.(string)
	}
	return ""
}

// GetLanguageMapping returns the language mapping for the given property.
func (c *Context) GetLanguageMapping(property string) interface{} {
	if td := c.GetTermDefinition(property); td != nil {
		if val, found := td["@language"]; found {
			return val
		}
	}
	if defaultLang, hasDefault := c.values["@language"]; hasDefault {
		return defaultLang
	}
	return nil
}

// GetTermDefinition returns a term definition for the given key.
func (c *Context) GetTermDefinition(key string) map[string]interface{} {
	value, _ := c.termDefinitions[key].(map[string]interface{})
	return value
}

// ExpandValue expands value by using the coercion and keyword rules in the
// context, per the Value Expansion algorithm
// (http://www.w3.org/TR/json-ld-api/#value-expansion).
func (c *Context) ExpandValue(activeProperty string, value interface{}) (interface{}, error) {
	td := c.GetTermDefinition(activeProperty)

	if typeMapping, _ := td["@type"].(string); typeMapping == "@id" || typeMapping == "@vocab" {
		return c.expandValueAsReference(typeMapping, value)
	}

	rval := map[string]interface{}{"@value": value}
	if typeVal, containsType := td["@type"]; td != nil && containsType && typeVal != "@id" && typeVal != "@vocab" {
		rval["@type"] = typeVal
	} else if _, isString := value.(string); isString {
		// a language mapping explicitly set to null suppresses the
		// default language, per W3C JSON-LD 1.0 §7.4.
		langVal, containsLang := td["@language"]
		if containsLang {
			if langVal != nil {
				rval["@language"] = langVal.(string)
			}
		} else if defaultLangVal, hasDefaultLang := c.values["@language"]; hasDefaultLang {
			rval["@language"] = defaultLangVal
		}
	}
	return rval, nil
}

// expandValueAsReference implements the @id/@vocab type-mapping branch
// of value expansion: a string value becomes a node reference via IRI
// expansion, anything else is kept as a bare value.
func (c *Context) expandValueAsReference(typeMapping string, value interface{}) (interface{}, error) {
	strVal, isString := value.(string)
	if !isString {
		return map[string]interface{}{"@value": value}, nil
	}
	id, err := c.ExpandIri(strVal, true, typeMapping == "@vocab", nil, nil)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"@id": id}, nil
}
