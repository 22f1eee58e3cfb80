// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package event holds the document type for one captured error report and
// the accessors processors use to probe it without assuming its shape.
package event

import (
	"encoding/json"
	"errors"
	"io"
)

// Document is one captured error-report payload: an untyped tree of
// JSON-shaped values (objects, arrays, strings, numbers, booleans, null)
// keyed by string at the top level.
type Document map[string]interface{}

// Decode reads a single JSON-encoded event document from r. Numbers are kept
// in their source representation so that re-encoding does not alter them.
func Decode(r io.Reader) (Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeAll reads a stream of JSON-encoded event documents from r until EOF.
func DecodeAll(r io.Reader) ([]Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	docs := make([]Document, 0)
	for {
		var doc Document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return docs, err
		}
		docs = append(docs, doc)
	}
}

// Encode writes the document to w as a single line of JSON.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	return enc.Encode(d)
}

// GetMap returns the mapping stored at key. ok is false when m is nil, the
// key is absent, or the value is not a mapping, so callers can treat a
// wrong-shaped subtree exactly like a missing one.
func GetMap(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]interface{})
	return sub, ok
}

// GetSlice returns the sequence stored at key, with the same absence rules
// as GetMap.
func GetSlice(m map[string]interface{}, key string) ([]interface{}, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	s, ok := v.([]interface{})
	return s, ok
}

// GetString returns the string stored at key, with the same absence rules
// as GetMap.
func GetString(m map[string]interface{}, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetPath walks nested mappings along path and returns the value at the end.
// Any absent or non-mapping intermediate level resolves to ok=false.
func GetPath(m map[string]interface{}, path ...string) (interface{}, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := m
	for _, key := range path[:len(path)-1] {
		next, ok := GetMap(cur, key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	v, ok := cur[path[len(path)-1]]
	return v, ok
}
