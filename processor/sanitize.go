// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/eventscrub/eventscrub/event"
)

var _ Processor = &SanitizeSensitiveFields{}

// SanitizeSensitiveFields redacts sensitive key/value pairs in stack-frame
// local variables and HTTP request data, and masks matching values inside
// query-string blobs. Non-matching entries are left byte-for-byte untouched.
type SanitizeSensitiveFields struct {
	// Mask replaces each redacted value. It belongs to the processor, not
	// the process, so chains with different masks can coexist.
	Mask string

	keys   *KeyMatcher
	values *ValueMatcher
}

// requestFields are the request sub-mappings subject to per-key redaction.
var requestFields = []string{"data", "env", "headers", "cookies"}

// NewSanitizeSensitiveFields builds the processor. extraKeys extends the
// default vocabulary rather than replacing it, and valuePatterns extends the
// built-in card-shape check. An empty mask falls back to DefaultMask.
func NewSanitizeSensitiveFields(mask string, extraKeys []string, valuePatterns []string) (*SanitizeSensitiveFields, error) {
	if mask == "" {
		mask = DefaultMask
	}
	vm, err := NewValueMatcher(valuePatterns)
	if err != nil {
		return nil, err
	}
	return &SanitizeSensitiveFields{
		Mask:   mask,
		keys:   NewKeyMatcher(append(DefaultSensitiveKeys(), extraKeys...)),
		values: vm,
	}, nil
}

func (p *SanitizeSensitiveFields) ID() string {
	return "sanitize_sensitive_fields"
}

// Process redacts the document in place and returns it. Missing or
// wrong-shaped subtrees are skipped; absence is not an error.
func (p *SanitizeSensitiveFields) Process(doc event.Document) (event.Document, error) {
	p.filterStacktraces(doc)
	p.filterRequest(doc)
	return doc, nil
}

// filterStacktraces visits every frame's vars mapping under
// exception.values[*].stacktrace.frames[*].
func (p *SanitizeSensitiveFields) filterStacktraces(doc event.Document) {
	exc, ok := event.GetMap(doc, "exception")
	if !ok {
		return
	}
	values, ok := event.GetSlice(exc, "values")
	if !ok {
		return
	}
	for _, v := range values {
		value, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		stack, ok := event.GetMap(value, "stacktrace")
		if !ok {
			continue
		}
		frames, ok := event.GetSlice(stack, "frames")
		if !ok {
			continue
		}
		for _, f := range frames {
			frame, ok := f.(map[string]interface{})
			if !ok {
				continue
			}
			if vars, ok := event.GetMap(frame, "vars"); ok {
				p.sanitizeMap(vars)
			}
		}
	}
}

// filterRequest applies per-key redaction to each request sub-mapping and
// handles query_string in either of its two representations.
func (p *SanitizeSensitiveFields) filterRequest(doc event.Document) {
	request, ok := event.GetMap(doc, "request")
	if !ok {
		return
	}
	for _, field := range requestFields {
		if sub, ok := event.GetMap(request, field); ok {
			p.sanitizeMap(sub)
		}
	}
	switch qs := request["query_string"].(type) {
	case string:
		request["query_string"] = p.sanitizeQueryString(qs)
	case map[string]interface{}:
		p.sanitizeMap(qs)
	}
}

// sanitizeMap applies Sanitize to every entry of m in place.
func (p *SanitizeSensitiveFields) sanitizeMap(m map[string]interface{}) {
	for k, v := range m {
		m[k] = p.Sanitize(k, v)
	}
}

// Sanitize applies the redaction rule to one key/value pair and returns the
// value that should be stored: the mask when the key name matches the
// vocabulary or a stringable value matches a sensitive shape, the original
// value otherwise. Containers are walked recursively; sequence elements
// inherit the nearest enclosing key name.
func (p *SanitizeSensitiveFields) Sanitize(key string, value interface{}) interface{} {
	if value == nil {
		return nil
	}
	if p.keys.Matches(key) {
		return p.Mask
	}
	switch v := value.(type) {
	case map[string]interface{}:
		p.sanitizeMap(v)
		return v
	case []interface{}:
		for i, elem := range v {
			v[i] = p.Sanitize(key, elem)
		}
		return v
	default:
		if s, ok := stringify(v); ok && p.values.Matches(s) {
			return p.Mask
		}
		return value
	}
}

// sanitizeQueryString masks the value portion of each k=v pair whose key
// matches the vocabulary, preserving pair order and the exact bytes of every
// other pair. A pair with no '=' is passed through unmodified rather than
// coerced into k=mask form.
func (p *SanitizeSensitiveFields) sanitizeQueryString(qs string) string {
	pairs := strings.Split(qs, "&")
	for i, pair := range pairs {
		key, _, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if p.keys.Matches(key) {
			pairs[i] = key + "=" + p.Mask
		}
	}
	return strings.Join(pairs, "&")
}

// stringify renders scalar values for shape matching. Numbers keep their
// source digits; booleans and other types have no sensitive shape.
func stringify(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	default:
		return "", false
	}
}
