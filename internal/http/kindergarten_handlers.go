package httpapi

import (
	"net/http"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type KindergartenHandler struct {
	svc    *service.KindergartenService
	logger *zap.Logger
}

func NewKindergartenHandler(svc *service.KindergartenService, logger *zap.Logger) *KindergartenHandler {
	return &KindergartenHandler{svc: svc, logger: logger}
}

func (h *KindergartenHandler) Filter(w http.ResponseWriter, r *http.Request) {
	body, err := parseFilterBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	page, err := h.svc.FilterDebts(r.Context(), service.FilterKindergartenRequest{
		Page:    body.Page,
		Limit:   body.Limit,
		Title:   body.Title,
		Filters: body.Filters,
		Actor:   actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *KindergartenHandler) Info(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/kindergarten/api/v1/info/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debt id"))
		return
	}

	debt, err := h.svc.GetDebt(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(debt))
}

func (h *KindergartenHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/kindergarten/api/v1/generate/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debt id"))
		return
	}

	doc, err := h.svc.GenerateDocument(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", "attachment; filename=generated.docx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *KindergartenHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/kindergarten/api/v1/print/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debt id"))
		return
	}

	payload, err := h.svc.PrintData(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payload))
}
