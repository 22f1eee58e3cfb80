// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package agent orchestrates a sanitization run: it builds the processor
// chain from configuration, feeds each event document through it, and writes
// the sanitized documents out.
package agent

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/eventscrub/eventscrub/event"
	"github.com/eventscrub/eventscrub/hcl"
	"github.com/eventscrub/eventscrub/processor"
)

// Agent holds the configured chain and the results of applying it to a
// stream of event documents.
type Agent struct {
	l     hclog.Logger
	chain *processor.Chain
	ops   []Op

	Start     time.Time `json:"started_at"`
	End       time.Time `json:"ended_at"`
	Duration  string    `json:"duration"`
	NumEvents int       `json:"num_events"`
	NumErrors int       `json:"num_errors"`
	Config    Config    `json:"configuration"`
}

func NewAgent(config Config, logger hclog.Logger) *Agent {
	return &Agent{
		l:      logger,
		Config: config,
	}
}

// Run manages the agent's lifecycle: build the chain from config, read the
// event documents, sanitize each one, and write the clean documents to the
// output. Per-event failures are collected rather than ending the run early;
// config and setup failures end it immediately since no document can be
// processed safely without a valid chain.
func (a *Agent) Run() error {
	var mErr *multierror.Error

	a.Start = time.Now()

	a.l.Debug("Building processor chain")
	if err := a.Setup(); err != nil {
		a.l.Error("Failed to build processor chain", "error", err)
		a.recordEnd()
		return multierror.Append(mErr, err).ErrorOrNil()
	}

	docs, errDecode := event.DecodeAll(a.Config.Input)
	if errDecode != nil {
		// Documents decoded before the fault are still processed below.
		a.l.Error("Failed reading events", "error", errDecode)
		a.ops = append(a.ops, newOp(len(docs), Unknown, errDecode))
		mErr = multierror.Append(mErr, errDecode)
	}
	a.NumEvents = len(docs)

	a.l.Info("Sanitizing events", "count", len(docs))
	for i, doc := range docs {
		clean, err := a.chain.Process(doc)
		if err != nil {
			a.l.Error("Failed sanitizing event", "event", i, "error", err)
			a.ops = append(a.ops, newOp(i, Fail, err))
			mErr = multierror.Append(mErr, fmt.Errorf("event %d: %w", i, err))
			continue
		}
		if err := clean.Encode(a.Config.Output); err != nil {
			a.l.Error("Failed writing event", "event", i, "error", err)
			a.ops = append(a.ops, newOp(i, Fail, err))
			mErr = multierror.Append(mErr, fmt.Errorf("event %d: %w", i, err))
			continue
		}
		a.ops = append(a.ops, newOp(i, Success, nil))
	}

	a.recordEnd()
	a.l.Info("Sanitization complete",
		"events", a.NumEvents,
		"errors", a.NumErrors,
		"duration", a.Duration,
	)
	return mErr.ErrorOrNil()
}

// Setup builds the processor chain from the agent's scrub config.
func (a *Agent) Setup() error {
	chain, err := hcl.BuildChain(a.Config.Scrub)
	if err != nil {
		return err
	}
	a.chain = chain
	return nil
}

// Ops returns the per-event outcomes of the last run.
func (a *Agent) Ops() []Op {
	return a.ops
}

func (a *Agent) recordEnd() {
	a.End = time.Now()
	a.Duration = fmt.Sprintf("%v seconds", a.End.Sub(a.Start).Seconds())
	a.NumErrors = 0
	for _, o := range a.ops {
		if o.Status != Success {
			a.NumErrors++
		}
	}
}
