// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package agent

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventscrub/eventscrub/event"
	"github.com/eventscrub/eventscrub/hcl"
)

func TestAgent_Run(t *testing.T) {
	input := strings.NewReader(
		`{"request": {"query_string": "foo=bar&password=hello"}}` + "\n" +
			`{"message": "clean"}`,
	)
	output := new(bytes.Buffer)

	a := NewAgent(Config{Input: input, Output: output}, hclog.NewNullLogger())
	err := a.Run()
	require.NoError(t, err)

	assert.Equal(t, 2, a.NumEvents)
	assert.Equal(t, 0, a.NumErrors)
	require.Len(t, a.Ops(), 2)
	for _, o := range a.Ops() {
		assert.Equal(t, Success, o.Status)
	}

	docs, err := event.DecodeAll(output)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	request, ok := event.GetMap(docs[0], "request")
	require.True(t, ok)
	assert.Equal(t, "foo=bar&password=********", request["query_string"])
	assert.Equal(t, "clean", docs[1]["message"])
}

func TestAgent_RunWithScrubConfig(t *testing.T) {
	input := strings.NewReader(`{"request": {"data": {"password": "hunter2"}, "method": "GET"}}`)
	output := new(bytes.Buffer)

	cfg := Config{
		Scrub: &hcl.Scrub{
			Processors: []string{"remove_post_data"},
		},
		Input:  input,
		Output: output,
	}
	a := NewAgent(cfg, hclog.NewNullLogger())
	require.NoError(t, a.Run())

	docs, err := event.DecodeAll(output)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	request, ok := event.GetMap(docs[0], "request")
	require.True(t, ok)
	_, present := request["data"]
	assert.False(t, present)
	assert.Equal(t, "GET", request["method"])
}

func TestAgent_RunSetupError(t *testing.T) {
	cfg := Config{
		Scrub:  &hcl.Scrub{Processors: []string{"bogus"}},
		Input:  strings.NewReader(`{"message": "hi"}`),
		Output: new(bytes.Buffer),
	}
	a := NewAgent(cfg, hclog.NewNullLogger())

	err := a.Run()
	assert.Error(t, err)
	assert.Empty(t, a.Ops(), "no document is processed without a valid chain")
}

func TestAgent_RunDecodeError(t *testing.T) {
	input := strings.NewReader(`{"message": "hi"}` + "\n" + `not json`)
	output := new(bytes.Buffer)

	a := NewAgent(Config{Input: input, Output: output}, hclog.NewNullLogger())
	err := a.Run()
	assert.Error(t, err)

	// The document decoded before the fault is still sanitized and written.
	assert.Equal(t, 1, a.NumEvents)
	assert.Equal(t, 1, a.NumErrors)
	docs, decErr := event.DecodeAll(output)
	require.NoError(t, decErr)
	assert.Len(t, docs, 1)
}
