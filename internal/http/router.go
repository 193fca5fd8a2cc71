package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router wraps the standard library http.ServeMux; method dispatch happens
// inside the handlers. Every request gets a uuid request id for logging.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)

	start := time.Now()
	r.mux.ServeHTTP(w, req)

	r.logger.Debug("request handled",
		zap.String("request_id", requestID),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Duration("duration", time.Since(start)))
}

// RegisterDebtorRoutes wires the debtor listing, documents, phone recording
// and the call log.
func (r *Router) RegisterDebtorRoutes(h *DebtorHandler, c *CallsHandler) {
	r.Handle("/debtor/api/v1/filter", requireMethod(http.MethodPost, h.Filter))
	r.Handle("/debtor/api/v1/filter/export", requireMethod(http.MethodPost, h.Export))
	r.Handle("/debtor/api/v1/info/", requireMethod(http.MethodGet, h.Info))
	r.Handle("/debtor/api/v1/generate/", requireMethod(http.MethodGet, h.Generate))
	r.Handle("/debtor/api/v1/print/", requireMethod(http.MethodGet, h.Print))
	r.Handle("/debtor/api/v1/phone/", requireMethod(http.MethodPost, h.SavePhone))
	r.Handle("/debtor/api/v1/calls/", c.ServeCalls)
}

// RegisterKindergartenRoutes wires the fee debts and the groups CRUD.
func (r *Router) RegisterKindergartenRoutes(h *KindergartenHandler, g *GroupsHandler) {
	r.Handle("/kindergarten/api/v1/filter", requireMethod(http.MethodPost, h.Filter))
	r.Handle("/kindergarten/api/v1/info/", requireMethod(http.MethodGet, h.Info))
	r.Handle("/kindergarten/api/v1/generate/", requireMethod(http.MethodGet, h.Generate))
	r.Handle("/kindergarten/api/v1/print/", requireMethod(http.MethodGet, h.Print))

	r.Handle("/kindergarten/api/v1/groups/filter", requireMethod(http.MethodPost, g.Filter))
	r.Handle("/kindergarten/api/v1/groups", requireMethod(http.MethodPost, g.Create))
	r.Handle("/kindergarten/api/v1/groups/", g.ServeGroupByID)
}

// RegisterAttendanceRoutes wires the attendance listing and its Excel export.
func (r *Router) RegisterAttendanceRoutes(h *AttendanceHandler) {
	r.Handle("/attendance/api/v1/filter", requireMethod(http.MethodPost, h.Filter))
	r.Handle("/attendance/api/v1/filter/export", requireMethod(http.MethodPost, h.Export))
}

// RegisterChildrenRoutes wires the roster CRUD and the Excel export.
func (r *Router) RegisterChildrenRoutes(h *ChildrenHandler) {
	r.Handle("/children/api/v1/filter", requireMethod(http.MethodPost, h.Filter))
	r.Handle("/children/api/v1/export", requireMethod(http.MethodGet, h.Export))
	r.Handle("/children/api/v1", requireMethod(http.MethodPost, h.Create))
	r.Handle("/children/api/v1/", h.ServeChildByID)
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
