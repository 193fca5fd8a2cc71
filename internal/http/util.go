package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"

	"ower-data/internal/domain"
	"ower-data/internal/service"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error kinds onto HTTP statuses. Unclassified
// errors become a logged 400, matching the rest of the admin API surface.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, Fail(err.Error()))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, Fail(err.Error()))
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
	}
}

func readBodyJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// pathID parses the trailing numeric path segment after prefix.
func pathID(r *http.Request, prefix string) (int64, error) {
	raw := r.URL.Path[len(prefix):]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation
	}
	return id, nil
}

// actorFromRequest extracts the acting user for audit entries. The auth
// middleware in front of this service sets X-User-Id.
func actorFromRequest(r *http.Request) service.Actor {
	actor := service.Actor{}
	if uid, err := strconv.ParseInt(r.Header.Get("X-User-Id"), 10, 64); err == nil {
		actor.UID = &uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	actor.ClientAddr = host
	return actor
}
