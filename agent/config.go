// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package agent

import (
	"io"

	"github.com/eventscrub/eventscrub/hcl"
)

type Config struct {
	// Scrub holds the chain configuration, usually decoded from an HCL file.
	// Nil means the default chain with default mask and vocabulary.
	Scrub *hcl.Scrub `json:"scrub"`

	// Input supplies a stream of JSON event documents.
	Input io.Reader `json:"-"`

	// Output receives one line of JSON per successfully sanitized document.
	Output io.Writer `json:"-"`
}
