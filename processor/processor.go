// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package processor implements the sanitization pipeline applied to event
// documents before they leave the machine: stateless transforms that redact
// or strip sensitive data, composed into an ordered chain.
package processor

import (
	"fmt"
	"path/filepath"

	"github.com/eventscrub/eventscrub/event"
)

// Processor transforms an event document, returning the sanitized document.
// Processors hold no per-document state; one configured instance may be used
// for any number of documents, concurrently.
type Processor interface {
	ID() string
	Process(doc event.Document) (event.Document, error)
}

// Chain applies processors in order, threading each processor's output into
// the next. Order is caller-specified configuration: removing stack locals
// before sanitizing them is a different pipeline than the reverse.
type Chain struct {
	Processors []Processor
}

// NewChain wraps an ordered set of processors.
func NewChain(processors ...Processor) *Chain {
	return &Chain{Processors: processors}
}

// Process runs the document through the chain. The first processor error
// aborts the remainder and is returned to the caller; a partially sanitized
// document must never be handed on as if it were clean.
func (c *Chain) Process(doc event.Document) (event.Document, error) {
	for _, p := range c.Processors {
		var err error
		doc, err = p.Process(doc)
		if err != nil {
			return nil, fmt.Errorf("processor failed, id=%s: %w", p.ID(), err)
		}
	}
	return doc, nil
}

// Exclude takes a slice of matcher strings and a slice of processors. If any
// of the processor identifiers match an exclude according to filepath.Match()
// then it will not be present in the returned slice.
func Exclude(excludes []string, processors []Processor) ([]Processor, error) {
	keep := make([]Processor, 0)
	for _, p := range processors {
		var match bool
		var err error
		for _, matcher := range excludes {
			match, err = filepath.Match(matcher, p.ID())
			if err != nil {
				return keep, fmt.Errorf("filter error: '%s' for '%s'", err, matcher)
			}
			if match {
				break
			}
		}
		if !match {
			keep = append(keep, p)
		}
	}
	return keep, nil
}

// Select takes a slice of matcher strings and a slice of processors. The only
// processors returned will be those matching the given select strings
// according to filepath.Match().
func Select(selects []string, processors []Processor) ([]Processor, error) {
	keep := make([]Processor, 0)
	for _, p := range processors {
		var match bool
		var err error
		for _, matcher := range selects {
			match, err = filepath.Match(matcher, p.ID())
			if err != nil {
				return keep, fmt.Errorf("filter error: '%s' for '%s'", err, matcher)
			}
			if match {
				break
			}
		}
		if match {
			keep = append(keep, p)
		}
	}
	return keep, nil
}
