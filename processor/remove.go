// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package processor

import (
	"github.com/eventscrub/eventscrub/event"
)

var (
	_ Processor = RemovePostData{}
	_ Processor = RemoveStackLocals{}
)

// RemovePostData strips the request body entirely. The data key is deleted,
// not masked, for operators who want no request body at all; every other
// request field is left untouched.
type RemovePostData struct{}

func (RemovePostData) ID() string {
	return "remove_post_data"
}

func (RemovePostData) Process(doc event.Document) (event.Document, error) {
	if request, ok := event.GetMap(doc, "request"); ok {
		delete(request, "data")
	}
	return doc, nil
}

// RemoveStackLocals deletes the vars mapping from every stack frame across
// every exception value. Frame count and order are unchanged. A missing
// level anywhere short-circuits only that branch.
type RemoveStackLocals struct{}

func (RemoveStackLocals) ID() string {
	return "remove_stack_locals"
}

func (RemoveStackLocals) Process(doc event.Document) (event.Document, error) {
	exc, ok := event.GetMap(doc, "exception")
	if !ok {
		return doc, nil
	}
	values, ok := event.GetSlice(exc, "values")
	if !ok {
		return doc, nil
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
			if frame, ok := f.(map[string]interface{}); ok {
				delete(frame, "vars")
			}
		}
	}
	return doc, nil
}
