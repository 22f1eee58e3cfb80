// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventscrub/eventscrub/event"
)

var errFake = errors.New("uh oh a fake error")

var _ Processor = &MockProcessor{}

// MockProcessor marks the document with its own id so tests can observe
// which processors ran and in what order.
type MockProcessor struct {
	id  string
	err error

	calls int
}

func NewMockProcessor(id string) *MockProcessor {
	return &MockProcessor{id: id}
}

func (p *MockProcessor) ID() string {
	return p.id
}

func (p *MockProcessor) Process(doc event.Document) (event.Document, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	order, _ := doc["order"].([]interface{})
	doc["order"] = append(order, p.id)
	return doc, nil
}

func TestChain_Process(t *testing.T) {
	chain := NewChain(
		NewMockProcessor("first"),
		NewMockProcessor("second"),
		NewMockProcessor("third"),
	)

	result, err := chain.Process(event.Document{})
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"first", "second", "third"}, result["order"])
}

func TestChain_AbortsOnError(t *testing.T) {
	bad := NewMockProcessor("bad")
	bad.err = errFake
	after := NewMockProcessor("after")
	chain := NewChain(NewMockProcessor("before"), bad, after)

	result, err := chain.Process(event.Document{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, errFake)
	assert.Contains(t, err.Error(), "bad", "error names the failed processor")
	assert.Nil(t, result, "no partially processed document is returned")
	assert.Equal(t, 0, after.calls, "later processors must not run")
}

// TestChain_OrderMatters proves chain order is configuration: removing stack
// locals first leaves the sanitizer nothing to redact in frames.
func TestChain_OrderMatters(t *testing.T) {
	sanitize, err := NewSanitizeSensitiveFields("", nil, nil)
	require.NoError(t, err)
	chain := NewChain(RemoveStackLocals{}, sanitize)

	result, err := chain.Process(stackTraceData())
	require.NoError(t, err)

	exc, _ := event.GetMap(result, "exception")
	values, _ := event.GetSlice(exc, "values")
	for _, v := range values {
		stack, _ := event.GetMap(v.(map[string]interface{}), "stacktrace")
		frames, _ := event.GetSlice(stack, "frames")
		for _, f := range frames {
			_, present := f.(map[string]interface{})["vars"]
			assert.False(t, present, "no vars survive regardless of content")
		}
	}
}

func TestExclude(t *testing.T) {
	testTable := []struct {
		desc       string
		matchers   []string
		processors []Processor
		expect     int
	}{
		{
			desc:     "Can exclude none",
			matchers: []string{"hello"},
			processors: []Processor{
				NewMockProcessor("nope"),
				NewMockProcessor("nah"),
			},
			expect: 2,
		},
		{
			desc:     "Can exclude one",
			matchers: []string{"hi"},
			processors: []Processor{
				NewMockProcessor("hi"),
			},
			expect: 0,
		},
		{
			desc:     "Can exclude glob *",
			matchers: []string{"remove_*"},
			processors: []Processor{
				RemovePostData{},
				RemoveStackLocals{},
				NewMockProcessor("keep"),
			},
			expect: 1,
		},
	}

	for _, tc := range testTable {
		res, err := Exclude(tc.matchers, tc.processors)
		assert.NoError(t, err, tc.desc)
		assert.Len(t, res, tc.expect, tc.desc)
	}
}

func TestSelect(t *testing.T) {
	testTable := []struct {
		desc       string
		matchers   []string
		processors []Processor
		expect     int
	}{
		{
			desc:     "Can select none",
			matchers: []string{"hello"},
			processors: []Processor{
				NewMockProcessor("nope"),
			},
			expect: 0,
		},
		{
			desc:     "Can select some",
			matchers: []string{"remove_*"},
			processors: []Processor{
				RemovePostData{},
				RemoveStackLocals{},
				NewMockProcessor("skip"),
			},
			expect: 2,
		},
	}

	for _, tc := range testTable {
		res, err := Select(tc.matchers, tc.processors)
		assert.NoError(t, err, tc.desc)
		assert.Len(t, res, tc.expect, tc.desc)
	}
}
