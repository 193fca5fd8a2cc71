package httpapi

import (
	"net/http"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type GroupsHandler struct {
	svc    *service.GroupService
	logger *zap.Logger
}

func NewGroupsHandler(svc *service.GroupService, logger *zap.Logger) *GroupsHandler {
	return &GroupsHandler{svc: svc, logger: logger}
}

type groupBody struct {
	KindergartenName string `json:"kindergarten_name"`
	GroupName        string `json:"group_name"`
	GroupType        string `json:"group_type"`
}

func (h *GroupsHandler) Filter(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Page             int    `json:"page"`
		Limit            int    `json:"limit"`
		SortBy           string `json:"sort_by"`
		SortDirection    string `json:"sort_direction"`
		KindergartenName string `json:"kindergarten_name"`
		GroupName        string `json:"group_name"`
		GroupType        string `json:"group_type"`
	}
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	page, err := h.svc.FilterGroups(r.Context(), service.FilterGroupsRequest{
		Page:             body.Page,
		Limit:            body.Limit,
		KindergartenName: body.KindergartenName,
		GroupName:        body.GroupName,
		GroupType:        body.GroupType,
		SortBy:           body.SortBy,
		SortDirection:    body.SortDirection,
		Actor:            actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *GroupsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body groupBody
	if err := readBodyJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	group, err := h.svc.CreateGroup(r.Context(), service.GroupRequest{
		KindergartenName: body.KindergartenName,
		GroupName:        body.GroupName,
		GroupType:        body.GroupType,
		Actor:            actorFromRequest(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(group))
}

// ServeGroupByID dispatches PUT/DELETE /kindergarten/api/v1/groups/{id}.
func (h *GroupsHandler) ServeGroupByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "/kindergarten/api/v1/groups/")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid group id"))
		return
	}

	switch r.Method {
	case http.MethodPut:
		var body groupBody
		if err := readBodyJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}

		group, err := h.svc.UpdateGroup(r.Context(), id, service.GroupRequest{
			KindergartenName: body.KindergartenName,
			GroupName:        body.GroupName,
			GroupType:        body.GroupType,
			Actor:            actorFromRequest(r),
		})
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(group))
	case http.MethodDelete:
		if err := h.svc.DeleteGroup(r.Context(), id, actorFromRequest(r)); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"success": true}))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
