package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseApprovalState(t *testing.T) {
	for _, raw := range []string{"0", "1", "2", "3"} {
		state, err := ParseApprovalState(raw)
		assert.NoError(t, err)
		assert.Equal(t, ApprovalState(raw), state)
	}

	for _, raw := range []string{"", "4", "pending", "10"} {
		_, err := ParseApprovalState(raw)
		assert.Error(t, err, "value %q", raw)
	}
}

func TestApprovalStateDisplay(t *testing.T) {
	tests := []struct {
		name  string
		state ApprovalState
		want  DisplayState
	}{
		{
			name:  "pending shows content set 2 with OTP prompt",
			state: ApprovalPending,
			want:  DisplayState{ContentSet: ContentSetPending, ShowOTPPrompt: true, Defined: true},
		},
		{
			name:  "approved shows content set 1",
			state: ApprovalApproved,
			want:  DisplayState{ContentSet: ContentSetApproved, Defined: true},
		},
		{
			name:  "rejected shows content set 3",
			state: ApprovalRejected,
			want:  DisplayState{ContentSet: ContentSetRejected, Defined: true},
		},
		{
			name:  "under review renders nothing and is flagged undefined",
			state: ApprovalUnderReview,
			want:  DisplayState{ContentSet: ContentSetNone, Defined: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Display())
		})
	}
}
