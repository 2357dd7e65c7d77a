package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		state    JobState
		terminal bool
	}{
		{StatePending, false},
		{StateProcessing, false},
		{StateCompleted, true},
		{StateFailed, true},
	}

	for _, tc := range cases {
		job := &JobRecord{ID: "tlk_1", State: tc.state}
		assert.Equal(t, tc.terminal, job.IsTerminal(), "state %s", tc.state)
	}
}

func TestToStatusResponseCompleted(t *testing.T) {
	job := &JobRecord{
		ID:        "tlk_done",
		State:     StateCompleted,
		ResultURL: "https://x/v.mp4",
	}

	resp := job.ToStatusResponse()

	assert.Equal(t, "tlk_done", resp.ID)
	assert.Equal(t, StateCompleted, resp.Status)
	assert.Equal(t, "https://x/v.mp4", resp.VideoURL)
	assert.Empty(t, resp.Message)
}

func TestToStatusResponsePending(t *testing.T) {
	job := &JobRecord{ID: "tlk_wait", State: StatePending}

	resp := job.ToStatusResponse()

	assert.Equal(t, StatePending, resp.Status)
	assert.Empty(t, resp.VideoURL)
	assert.Equal(t, "Video is still processing", resp.Message)
}

func TestToStatusResponseFailed(t *testing.T) {
	job := &JobRecord{ID: "tlk_err", State: StateFailed}

	resp := job.ToStatusResponse()

	assert.Equal(t, StateFailed, resp.Status)
	assert.Empty(t, resp.VideoURL)
	assert.Equal(t, "Video generation failed", resp.Message)
}
