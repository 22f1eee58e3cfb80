// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package hcl maps the on-disk configuration surface onto a configured
// processor chain.
package hcl

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/eventscrub/eventscrub/processor"
)

type HCL struct {
	Scrub *Scrub `hcl:"scrub,block" json:"scrub"`
}

// Scrub configures one sanitization chain.
type Scrub struct {
	// Mask replaces each redacted value. Empty means processor.DefaultMask.
	Mask string `hcl:"mask,optional" json:"mask"`

	// SensitiveKeys extends the default field-name vocabulary.
	SensitiveKeys []string `hcl:"sensitive_keys,optional" json:"sensitive_keys"`

	// ValuePatterns are additional sensitive value shapes as regular
	// expressions, layered on the built-in card-shape check.
	ValuePatterns []string `hcl:"value_patterns,optional" json:"value_patterns"`

	// Processors names and orders the chain. Empty enables only
	// sanitize_sensitive_fields.
	Processors []string `hcl:"processors,optional" json:"processors"`

	// Excludes and Selects filter the enabled chain by processor ID,
	// glob-style. Selects wins when both are set.
	Excludes []string `hcl:"excludes,optional" json:"excludes"`
	Selects  []string `hcl:"selects,optional" json:"selects"`
}

// DefaultProcessors is the chain enabled when the config names none.
var DefaultProcessors = []string{"sanitize_sensitive_fields"}

// Parse takes a file path and decodes the file from disk into HCL types.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, err
	}
	return h, nil
}

// BuildChain maps a scrub config onto an ordered processor chain. No chain
// is returned if any part of the config is invalid; configuration problems
// surface here, before any document is touched.
func BuildChain(cfg *Scrub) (*processor.Chain, error) {
	if cfg == nil {
		cfg = &Scrub{}
	}
	if err := ValidatePatterns(cfg.ValuePatterns); err != nil {
		return nil, err
	}

	ids := cfg.Processors
	if len(ids) == 0 {
		ids = DefaultProcessors
	}
	hclog.L().Debug("hcl.BuildChain()", "processors", ids)

	processors := make([]processor.Processor, 0, len(ids))
	for _, id := range ids {
		switch id {
		case "sanitize_sensitive_fields":
			p, err := processor.NewSanitizeSensitiveFields(cfg.Mask, cfg.SensitiveKeys, cfg.ValuePatterns)
			if err != nil {
				return nil, err
			}
			processors = append(processors, p)
		case "remove_post_data":
			processors = append(processors, processor.RemovePostData{})
		case "remove_stack_locals":
			processors = append(processors, processor.RemoveStackLocals{})
		default:
			return nil, fmt.Errorf("invalid processor name, name=%s", id)
		}
	}

	processors, err := filterProcessors(cfg, processors)
	if err != nil {
		return nil, err
	}
	return processor.NewChain(processors...), nil
}

// filterProcessors applies the config's Selects or Excludes to the built
// processor set, preserving order.
func filterProcessors(cfg *Scrub, processors []processor.Processor) ([]processor.Processor, error) {
	if len(cfg.Selects) > 0 {
		return processor.Select(cfg.Selects, processors)
	}
	if len(cfg.Excludes) > 0 {
		return processor.Exclude(cfg.Excludes, processors)
	}
	return processors, nil
}

// ValidatePatterns ensures every configured value pattern compiles.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		_, err := regexp.Compile(p)
		if err != nil {
			return fmt.Errorf("could not compile value pattern, matcher=%s, err=%s", p, err)
		}
	}
	return nil
}
