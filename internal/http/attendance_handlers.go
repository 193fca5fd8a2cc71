package httpapi

import (
	"net/http"

	"ower-data/internal/service"

	"go.uber.org/zap"
)

type AttendanceHandler struct {
	svc    *service.AttendanceService
	logger *zap.Logger
}

func NewAttendanceHandler(svc *service.AttendanceService, logger *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, logger: logger}
}

// attendanceRequest maps the shared filter body onto the service request.
// group_id is pulled out of the filter fields: it constrains the roster join,
// not an attendance column.
func attendanceRequest(body filterBody, r *http.Request) service.FilterAttendanceRequest {
	req := service.FilterAttendanceRequest{
		Page:          body.Page,
		Limit:         body.Limit,
		Title:         body.Title,
		SortBy:        body.SortBy,
		SortDirection: body.SortDirection,
		Filters:       body.Filters,
		Actor:         actorFromRequest(r),
	}
	if v, ok := body.Filters["group_id"].(float64); ok {
		id := int64(v)
		req.GroupID = &id
		delete(body.Filters, "group_id")
	}
	return req
}

func (h *AttendanceHandler) Filter(w http.ResponseWriter, r *http.Request) {
	body, err := parseFilterBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	page, err := h.svc.FilterAttendance(r.Context(), attendanceRequest(body, r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *AttendanceHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, err := parseFilterBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	items, err := h.svc.ExportAttendance(r.Context(), attendanceRequest(body, r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	file, err := GenerateAttendanceExport(items)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=attendance.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file)
}
