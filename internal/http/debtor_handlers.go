package httpapi

import (
	"net/http"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type DebtorHandler struct {
	svc    *service.DebtorService
	logger *zap.Logger
}

func NewDebtorHandler(svc *service.DebtorService, logger *zap.Logger) *DebtorHandler {
	return &DebtorHandler{svc: svc, logger: logger}
}

// filterBody is the shared shape of the POST .../filter bodies: paging and
// sorting keys plus arbitrary structured filter fields.
type filterBody struct {
	Page          int
	Limit         int
	Title         string
	SortBy        string
	SortDirection string
	Filters       map[string]any
}

// parseFilterBody splits the known paging/sorting keys out of the JSON body;
// whatever remains is treated as filter fields (allow-listed downstream).
func parseFilterBody(r *http.Request) (filterBody, error) {
	raw := map[string]any{}
	if err := readBodyJSON(r, &raw); err != nil {
		return filterBody{}, err
	}

	body := filterBody{Page: 1, Limit: 16}
	if v, ok := raw["page"].(float64); ok {
		body.Page = int(v)
	}
	if v, ok := raw["limit"].(float64); ok {
		body.Limit = int(v)
	}
	if v, ok := raw["title"].(string); ok {
		body.Title = v
	}
	if v, ok := raw["sort_by"].(string); ok {
		body.SortBy = v
	}
	if v, ok := raw["sort_direction"].(string); ok {
		body.SortDirection = v
	}
	for _, key := range []string{"page", "limit", "title", "sort_by", "sort_direction"} {
		delete(raw, key)
	}
	body.Filters = raw
	return body, nil
}

func (h *DebtorHandler) Filter(w http.ResponseWriter, r *http.Request) {
	body, err := parseFilterBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	page, err := h.svc.FilterDebts(r.Context(), service.FilterDebtsRequest{
		Page:          body.Page,
		Limit:         body.Limit,
		Title:         body.Title,
		SortBy:        body.SortBy,
		SortDirection: body.SortDirection,
		Filters:       body.Filters,
		Actor:         actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *DebtorHandler) Info(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/debtor/api/v1/info/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debtor id"))
		return
	}

	debtor, err := h.svc.GetDebtor(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(debtor))
}

func (h *DebtorHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/debtor/api/v1/generate/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debtor id"))
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

func (h *DebtorHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/debtor/api/v1/print/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debtor id"))
		return
	}

	payload, err := h.svc.PrintData(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payload))
}

func (h *DebtorHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, err := parseFilterBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	items, err := h.svc.ExportDebts(r.Context(), service.FilterDebtsRequest{
		Title:         body.Title,
		SortBy:        body.SortBy,
		SortDirection: body.SortDirection,
		Filters:       body.Filters,
		Actor:         actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	file, err := GenerateDebtorExport(items)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=debtors.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}

func (h *DebtorHandler) SavePhone(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/debtor/api/v1/phone/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid debtor id"))
		return
	}

	var body struct {
		Phone string `json:"phone"`
	}
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := h.svc.SavePhone(r.Context(), service.SavePhoneRequest{
		DebtorID: id,
		Phone:    body.Phone,
		Actor:    actorFromRequest(r),
	}); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
}
