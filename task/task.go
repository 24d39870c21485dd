// Package task defines the request and outcome types exchanged with the
// browser-worker dispatch client.
package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action identifies the kind of work a browser worker should perform.
type Action string

// Action constants for the browser-worker task types.
const (
	// ActionSendMessage sends a direct message to a fan on the target platform.
	ActionSendMessage Action = "send_message"
	// ActionFetchMessages pulls new inbound messages for a creator account.
	ActionFetchMessages Action = "fetch_messages"
	// ActionSyncProfile refreshes cached profile and subscription data.
	ActionSyncProfile Action = "sync_profile"
	// ActionPublishPost publishes a scheduled content post.
	ActionPublishPost Action = "publish_post"
)

// Request describes one unit of work to dispatch to a remote worker.
// It is caller-constructed, immutable, and lives only for the duration of
// a single dispatch call.
type Request struct {
	// Action is the kind of work to perform. The Action constants cover
	// the known worker capabilities; custom actions are passed through.
	Action Action `json:"action"`

	// TargetID identifies the account or conversation the action applies to.
	TargetID string `json:"target_id"`

	// Payload is an opaque JSON document passed through to the worker
	// unchanged.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Timeout overrides the client's dispatch timeout for this request.
	// Zero means use the client default.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Validate checks the request shape. An invalid request is a programmer
// error and is the only condition under which Dispatch returns an error
// instead of an Outcome.
func (r Request) Validate() error {
	if r.Action == "" {
		return fmt.Errorf("task: request missing action")
	}
	if r.TargetID == "" {
		return fmt.Errorf("task: request missing target id")
	}
	return nil
}

// Outcome is the uniform result record returned for every dispatch call,
// regardless of which internal stage failed.
type Outcome struct {
	// Success reports whether the worker produced a result within the
	// dispatch timeout.
	Success bool `json:"success"`

	// TaskID is the correlation id generated for this dispatch. Operators
	// cross-reference it against worker logs and the result store.
	TaskID string `json:"task_id"`

	// Data is the decoded result payload written by the worker. Present
	// only on success. A result that exists but cannot be parsed decodes
	// to an empty object rather than failing the dispatch.
	Data any `json:"data,omitempty"`

	// Error describes the failure for unsuccessful dispatches.
	Error string `json:"error,omitempty"`

	// State is the terminal state the dispatch ended in.
	State State `json:"state"`

	// Duration is the wall-clock time the dispatch took.
	Duration time.Duration `json:"duration"`
}
