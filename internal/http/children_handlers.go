package httpapi

import (
	"net/http"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type ChildrenHandler struct {
	svc    *service.ChildrenService
	logger *zap.Logger
}

func NewChildrenHandler(svc *service.ChildrenService, logger *zap.Logger) *ChildrenHandler {
	return &ChildrenHandler{svc: svc, logger: logger}
}

type childBody struct {
	ChildName   string `json:"child_name"`
	ParentName  string `json:"parent_name"`
	PhoneNumber string `json:"phone_number"`
	GroupID     int64  `json:"group_id"`
}

func (h *ChildrenHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page          int    `json:"page"`
		Limit         int    `json:"limit"`
		SortBy        string `json:"sort_by"`
		SortDirection string `json:"sort_direction"`
		ChildName     string `json:"child_name"`
		ParentName    string `json:"parent_name"`
		GroupID       *int64 `json:"group_id"`
	}
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	page, err := h.svc.FilterChildren(r.Context(), service.FilterChildrenRequest{
		Page:          body.Page,
		Limit:         body.Limit,
		ChildName:     body.ChildName,
		ParentName:    body.ParentName,
		GroupID:       body.GroupID,
		SortBy:        body.SortBy,
		SortDirection: body.SortDirection,
		Actor:         actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ChildrenHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body childBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	child, err := h.svc.CreateChild(r.Context(), service.ChildRequest{
		ChildName:   body.ChildName,
		ParentName:  body.ParentName,
		PhoneNumber: body.PhoneNumber,
		GroupID:     body.GroupID,
		Actor:       actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(child))
}

// ServeChildByID dispatches GET/PUT/DELETE /children/api/v1/{id}.
func (h *ChildrenHandler) ServeChildByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/children/api/v1/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid roster entry id"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		child, err := h.svc.GetChild(r.Context(), id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(child))
	case http.MethodPut:
		var body childBody
		if err := readBodyJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}

		child, err := h.svc.UpdateChild(r.Context(), id, service.ChildRequest{
			ChildName:   body.ChildName,
			ParentName:  body.ParentName,
			PhoneNumber: body.PhoneNumber,
			GroupID:     body.GroupID,
			Actor:       actorFromRequest(r),
		})
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(child))
	case http.MethodDelete:
		if err := h.svc.DeleteChild(r.Context(), id, actorFromRequest(r)); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *ChildrenHandler) Export(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ExportRoster(r.Context(), actorFromRequest(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	file, err := GenerateRosterExport(items)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=children_roster.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}
