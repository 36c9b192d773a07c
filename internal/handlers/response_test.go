package handlers

import (
	"net/http"
	"testing"

	"github.com/openjam/jam-backend/internal/services"
)

func TestStatusForCode(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{services.CodeTaskProgressNotFound, http.StatusNotFound},
		{services.CodeChallengeAnswerNotFound, http.StatusNotFound},
		{services.CodeChallengeNotFound, http.StatusNotFound},
		{services.CodeClueNotFound, http.StatusNotFound},
		{services.CodeClueAlreadyOpened, http.StatusConflict},
		{services.CodeChallengeNotInProgress, http.StatusConflict},
		{services.CodeTaskAlreadyCompleted, http.StatusConflict},
		{services.CodeChallengeAlreadyStarted, http.StatusConflict},
		{services.CodeLockUnavailable, http.StatusServiceUnavailable},
		{"SOMETHING_ELSE", http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := statusForCode(tc.code); got != tc.want {
			t.Errorf("statusForCode(%s) = %d, want %d", tc.code, got, tc.want)
		}
	}
}
