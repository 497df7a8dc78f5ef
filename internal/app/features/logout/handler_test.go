package logout_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/assisberlanda/sousolidario/internal/app/features/logout"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func TestServeLogout_ExpiresCookie(t *testing.T) {
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-must-be-32-chars-long", "test-session", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	r := chi.NewRouter()
	logout.MountRoutes(r, logout.NewHandler(sm, logger))

	rec := testutil.NewRecorder()
	r.ServeHTTP(rec, testutil.NewRequest("POST", "/logout"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"loggedOut":true`)
	var expired bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge < 0 {
			expired = true
		}
	}
	if !expired {
		t.Error("expected the session cookie to be expired")
	}
}
