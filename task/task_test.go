package task_test

import (
	"encoding/json"
	"testing"

	"github.com/chrlshc/Huntaze-sub003/task"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     task.Request
		wantErr bool
	}{
		{
			name: "valid",
			req:  task.Request{Action: task.ActionSendMessage, TargetID: "fan-42"},
		},
		{
			name: "valid with payload",
			req: task.Request{
				Action:   task.ActionPublishPost,
				TargetID: "creator-7",
				Payload:  json.RawMessage(`{"caption":"hi"}`),
			},
		},
		{
			name: "custom action passes through",
			req:  task.Request{Action: "warm_cache", TargetID: "creator-7"},
		},
		{
			name:    "missing action",
			req:     task.Request{TargetID: "fan-42"},
			wantErr: true,
		},
		{
			name:    "missing target id",
			req:     task.Request{Action: task.ActionSendMessage},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestState_Terminal(t *testing.T) {
	terminal := []task.State{
		task.StateSucceeded,
		task.StateTimedOut,
		task.StateSubmissionFailed,
		task.StateCancelled,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("State(%q).Terminal() = false, want true", s)
		}
	}

	nonTerminal := []task.State{task.StateSubmitting, task.StatePolling, ""}
	for _, s := range nonTerminal {
		if s.Terminal() {
			t.Errorf("State(%q).Terminal() = true, want false", s)
		}
	}
}
