package health

import (
	"context"
	"net/http"

	"github.com/assisberlanda/sousolidario/internal/app/system/httpjson"
	"github.com/assisberlanda/sousolidario/internal/app/system/timeouts"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks. Client and Redis are
// nil when the matching backend is not in use.
type Handler struct {
	Backend string
	Client  *mongo.Client
	Redis   *redis.Client
	Log     *zap.Logger
}

// NewHandler constructs a health Handler for the given storage backend.
func NewHandler(backend string, client *mongo.Client, rdb *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: backend,
		Client:  client,
		Redis:   rdb,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Database string `json:"database,omitempty"`
	IDs      string `json:"ids,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "storage":"mongo", "database":"connected" }
//
// On backend failure: 503 and
//
//	{ "status":"error", "storage":"mongo", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:  "ok",
		Storage: h.Backend,
	}

	if h.Client != nil {
		resp.Database = "connected"
		if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			httpjson.Write(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	if h.Redis != nil {
		resp.IDs = "connected"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			h.Log.Error("health-check: redis ping failed", zap.Error(err))
			resp.Status = "error"
			resp.IDs = "disconnected"
			resp.Message = "Id allocator unavailable"
			resp.Error = err.Error()
			httpjson.Write(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	httpjson.Write(w, http.StatusOK, resp)
}
