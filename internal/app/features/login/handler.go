// internal/app/features/login/handler.go
package login

// Terminology: User Identifiers
//   - UserID / userID / user_id: the numeric id of the user record
//   - Login / login: the name users type to sign in (unique ignoring case)

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/services/accounts"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/ratelimit"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Accounts   *accounts.Service
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger

	// Limiter throttles sign-in attempts; nil disables it.
	Limiter *ratelimit.LoginLimiter
}

func NewHandler(acct *accounts.Service, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Accounts:   acct,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleLoginPost handles POST /api/auth/login.
//
// On success the session cookie is set and the account is returned. A wrong
// password and an unknown login both answer 401 with the same body.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "login", err)
		return
	}
	if h.Limiter != nil {
		if ok, wait, msg := h.Limiter.Check(r, in.Login); !ok {
			h.Log.Warn("login rate limited", zap.String("login", in.Login), zap.String("ip", ratelimit.ClientIP(r)))
			ratelimit.TooMany(w, wait, msg)
			return
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	u, ok, err := h.Accounts.Authenticate(ctx, in.Login, in.Password)
	if err != nil {
		h.ErrLog.Respond(w, r, "login", err)
		return
	}
	if !ok {
		h.Log.Info("login failed", zap.String("login", in.Login))
		httpjson.Message(w, http.StatusUnauthorized, "invalid_credentials", "Login or password is incorrect.")
		return
	}

	if err := h.SessionMgr.Login(w, r, u.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "login: save session", err, "Unable to sign in right now.")
		return
	}
	if h.Limiter != nil {
		h.Limiter.ResetLogin(in.Login)
	}
	h.Log.Info("user signed in", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	httpjson.Write(w, http.StatusOK, u)
}

// HandleRegisterPost handles POST /api/auth/register. The new account is
// signed in right away.
func (h *Handler) HandleRegisterPost(w http.ResponseWriter, r *http.Request) {
	var in accounts.RegisterInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "register", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register")
	defer cancel()

	u, err := h.Accounts.Register(ctx, in)
	if err != nil {
		h.ErrLog.Respond(w, r, "register", err)
		return
	}
	if err := h.SessionMgr.Login(w, r, u.ID); err != nil {
		// The account exists; the client can still sign in explicitly.
		h.Log.Warn("register: save session", zap.Int64("user_id", u.ID), zap.Error(err))
	}
	h.Log.Info("account registered", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	httpjson.Write(w, http.StatusCreated, u)
}
