package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const apiPrefix = "/admin/api/v1"

// Router wraps http.ServeMux.
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
	r.mux.ServeHTTP(w, req)
}

// only restricts h to the given methods, replying 405 otherwise.
func only(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if !methodAllowed(w, req, methods...) {
			return
		}
		h(w, req)
	}
}

// byID serves GET prefix{id}, replying 404 for an empty or nested id.
func byID(prefix string, h func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if !methodAllowed(w, req, http.MethodGet) {
			return
		}
		id := strings.TrimPrefix(req.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, req, id)
	}
}

// RegisterDashboardRoutes mounts the admin dashboard API.
func (r *Router) RegisterDashboardRoutes(d *DashboardHandler) {
	get, post, put := http.MethodGet, http.MethodPost, http.MethodPut

	r.Handle("/health", only(d.Health, get))
	r.Handle(apiPrefix+"/snapshot", only(d.GetSnapshot, get))

	r.Handle(apiPrefix+"/dashboard/stats", only(d.GetStats, get))
	r.Handle(apiPrefix+"/insights", only(d.GetInsights, get))

	r.Handle(apiPrefix+"/inspections", only(d.ListInspections, get))
	r.Handle(apiPrefix+"/inspections/", byID(apiPrefix+"/inspections/", d.GetInspection))
	r.Handle(apiPrefix+"/clients", only(d.ListClients, get))
	r.Handle(apiPrefix+"/buildings", only(d.ListBuildings, get))

	r.Handle(apiPrefix+"/ceeb/pending", only(d.ListPending, get))
	r.Handle(apiPrefix+"/ceeb/risk", only(d.GetRisk, get))
	r.Handle(apiPrefix+"/ceeb/reports", only(d.ListReports, get))
	r.Handle(apiPrefix+"/ceeb/submissions", only(d.ListSubmissions, get))
	r.Handle(apiPrefix+"/ceeb/submissions/", byID(apiPrefix+"/ceeb/submissions/", d.GetSubmission))
	r.Handle(apiPrefix+"/ceeb/selection", only(d.Selection, get, post))
	r.Handle(apiPrefix+"/ceeb/submit", only(d.Submit, post))
	r.Handle(apiPrefix+"/ceeb/xml", only(d.CeebXML, get))

	r.Handle(apiPrefix+"/map/regions", only(d.GetRegions, get))
	r.Handle(apiPrefix+"/settings", only(d.Settings, get, put))
	r.Handle(apiPrefix+"/export", only(d.Export, get))
}
