// internal/app/features/profile/profile.go
package profile

import (
	"net/http"

	uierrors "github.com/assisberlanda/sousolidario/internal/app/features/errors"
	"github.com/assisberlanda/sousolidario/internal/app/services/accounts"
	"github.com/assisberlanda/sousolidario/internal/app/system/auth"
	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeMe handles GET /api/auth/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get profile")
	defer cancel()

	u, found, err := h.Accounts.Get(ctx, cu.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "get profile", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Account")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// DeleteMe handles DELETE /api/auth/me. Campaigns the account created are
// kept; the session ends.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r)
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete account")
	defer cancel()

	deleted, err := h.Accounts.Delete(ctx, cu.ID)
	if err != nil {
		h.ErrLog.Respond(w, r, "delete account", err)
		return
	}
	if !deleted {
		uierrors.RenderNotFound(w, r, "Account")
		return
	}
	if err := h.SessionMgr.Logout(w, r); err != nil {
		h.Log.Warn("delete account: clear session", zap.Error(err))
	}
	h.Log.Info("account deleted", zap.Int64("user_id", cu.ID))
	httpjson.Write(w, http.StatusOK, map[string]any{"id": cu.ID, "deleted": true})
}

// UpdatePaymentAccount handles PUT /api/auth/me/payment-account. Financial
// donations to the user's campaigns are routed to this account from now on;
// pledges already made keep their snapshot.
func (h *Handler) UpdatePaymentAccount(w http.ResponseWriter, r *http.Request) {
	cu, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r)
		return
	}
	var in accounts.PaymentAccountInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		h.ErrLog.Respond(w, r, "update payment account", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update payment account")
	defer cancel()

	u, found, err := h.Accounts.SetPaymentAccount(ctx, cu.ID, in)
	if err != nil {
		h.ErrLog.Respond(w, r, "update payment account", err)
		return
	}
	if !found {
		uierrors.RenderNotFound(w, r, "Account")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}
