// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package agent

import "fmt"

// Status describes the result of sanitizing one event document.
type Status string

const (
	// Success means the document passed through the whole chain.
	Success Status = "success"
	// Fail means a processor error aborted the chain for this document; the
	// document was withheld from output because a partially sanitized event
	// is a leak, not a degraded result.
	Fail Status = "fail"
	// Unknown means the document could not be read at all.
	Unknown Status = "unknown"
)

// Op records the outcome for a single event document in a run.
type Op struct {
	Event     int    `json:"event"`
	Status    Status `json:"status"`
	ErrString string `json:"error"` // this simplifies json marshaling
	Error     error  `json:"-"`
}

func newOp(event int, status Status, err error) Op {
	o := Op{
		Event:  event,
		Status: status,
		Error:  err,
	}
	if err != nil {
		o.ErrString = fmt.Sprintf("%s", err)
	}
	return o
}
