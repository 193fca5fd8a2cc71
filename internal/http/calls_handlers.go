package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type CallsHandler struct {
	svc    *service.CallService
	logger *zap.Logger
}

func NewCallsHandler(svc *service.CallService, logger *zap.Logger) *CallsHandler {
	return &CallsHandler{svc: svc, logger: logger}
}

// ServeCalls dispatches /debtor/api/v1/calls/{identifier}: GET lists the
// call log, POST appends to it. The identifier is either a numeric debtor id
// or a URL-encoded person name.
func (h *CallsHandler) ServeCalls(w http.ResponseWriter, r *http.Request) {
	identifier := strings.TrimPrefix(r.URL.Path, "/debtor/api/v1/calls/")
	if decoded, err := url.PathUnescape(identifier); err == nil {
		identifier = decoded
	}
	if identifier == "" {
		writeJSON(w, http.StatusBadRequest, Fail("identifier is required"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		calls, err := h.svc.ListCalls(r.Context(), identifier)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(calls))
	case http.MethodPost:
		var body struct {
			CallDate  string `json:"call_date"`
			CallTopic string `json:"call_topic"`
		}
		if err := readBodyJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}

		call, err := h.svc.CreateCall(r.Context(), service.CreateCallRequest{
			Identifier: identifier,
			CallDate:   body.CallDate,
			CallTopic:  body.CallTopic,
			Actor:      actorFromRequest(r),
		})
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, Ok(call))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
