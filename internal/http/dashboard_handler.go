package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gabrielwysoczanski31/aurora-sub001/internal/ceeb"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/domain"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/export"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/filter"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/service"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/settings"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"
)

// DashboardHandler serves the admin dashboard API.
type DashboardHandler struct {
	svc    *service.DashboardService
	logger *zap.Logger
}

func NewDashboardHandler(svc *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// GET /admin/api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Stats()))
}

// GET /admin/api/v1/insights
func (h *DashboardHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Insights()))
}

// GET /admin/api/v1/inspections
// params: search, date_from, date_to, result, city, type, ceeb_status,
// page (default 1), size (default 10), sort (id|date|city|result), direction (1 asc, -1 desc)
func (h *DashboardHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	items := h.svc.Inspections(c)
	writeJSON(w, http.StatusOK, Ok(sortedPage(r, items)))
}

func sortedPage(r *http.Request, items []domain.Inspection) ListResult[domain.Inspection] {
	q := r.URL.Query()
	sortKey := q.Get("sort")
	direction := parseInt(q.Get("direction"), 1)
	if sortKey != "" {
		filter.SortInspections(items, sortKey, direction < 0)
	}
	pageItems, p := filter.Paginate(items, parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 10))
	return ListResult[domain.Inspection]{
		Items:      pageItems,
		Pagination: BackendPagination{Size: p.Size, Page: p.Page, Count: p.Count, Sort: sortKey, Direction: direction},
	}
}

// GET /admin/api/v1/inspections/{id}
func (h *DashboardHandler) GetInspection(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid inspection id"))
		return
	}
	in, err := h.svc.Inspection(id)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	building, _ := h.svc.Snapshot().BuildingByID(in.BuildingID)
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"inspection": in,
		"building":   building,
		"type_label": in.Type.Label(),
	}))
}

// GET /admin/api/v1/clients?search=&city=&page=&size=
func (h *DashboardHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.svc.Clients(filter.ClientCriteria{Search: q.Get("search"), City: q.Get("city")})
	pageItems, p := filter.Paginate(items, parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 10))
	writeJSON(w, http.StatusOK, Ok(ListResult[domain.Client]{
		Items:      pageItems,
		Pagination: BackendPagination{Size: p.Size, Page: p.Page, Count: p.Count},
	}))
}

// GET /admin/api/v1/buildings?search=&city=&heating=&client_id=&page=&size=
func (h *DashboardHandler) ListBuildings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := h.svc.Buildings(filter.BuildingCriteria{
		Search:   q.Get("search"),
		City:     q.Get("city"),
		Heating:  q.Get("heating"),
		ClientID: parseInt(q.Get("client_id"), 0),
	})
	pageItems, p := filter.Paginate(items, parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 10))
	writeJSON(w, http.StatusOK, Ok(ListResult[domain.Building]{
		Items:      pageItems,
		Pagination: BackendPagination{Size: p.Size, Page: p.Page, Count: p.Count},
	}))
}

// GET /admin/api/v1/ceeb/pending (same filters as inspections)
func (h *DashboardHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sortedPage(r, h.svc.Pending(c))))
}

// GET /admin/api/v1/ceeb/risk
func (h *DashboardHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Risk()))
}

// GET /admin/api/v1/ceeb/reports
func (h *DashboardHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Reports()))
}

// GET /admin/api/v1/ceeb/submissions?page=&size=
func (h *DashboardHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 20)
	items, total, err := h.svc.Submissions(r.Context(), page, size)
	if err != nil {
		h.logger.Error("ListSubmissions failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail(fmt.Sprintf("failed to list submissions: %v", err)))
		return
	}
	writeJSON(w, http.StatusOK, Ok(ListResult[domain.Submission]{
		Items:      items,
		Pagination: BackendPagination{Size: size, Page: page, Count: total},
	}))
}

// GET /admin/api/v1/ceeb/submissions/{id}
func (h *DashboardHandler) GetSubmission(w http.ResponseWriter, r *http.Request, id string) {
	sub, err := h.svc.Submission(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusOK, Fail("submission not found"))
		return
	}
	if err != nil {
		h.logger.Error("GetSubmission failed", zap.String("submission_id", id), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to load submission"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sub))
}

// GET|POST /admin/api/v1/ceeb/selection
// The selection is pruned to the pending view described by the query filters.
func (h *DashboardHandler) Selection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, err := criteriaFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	user := userID(r)

	var ids []int
	if r.Method == http.MethodPost {
		var req selectionRequest
		if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		ids, err = h.svc.SetSelection(ctx, user, req.IDs, c)
	} else {
		ids, err = h.svc.Selection(ctx, user, c)
	}
	if err != nil {
		h.logger.Error("Selection failed", zap.String("user", user), zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to access selection"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(selectionResponse{IDs: ids, Count: len(ids)}))
}

// POST /admin/api/v1/ceeb/submit {"ids":[...]}
// Without ids in the body the caller's stored selection is submitted.
func (h *DashboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userID(r)

	var req submitRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	var (
		sub *domain.Submission
		err error
	)
	if req.IDs == nil {
		sub, err = h.svc.SubmitSelection(ctx, user)
	} else {
		sub, err = h.svc.Submit(ctx, user, req.IDs)
	}
	if err != nil {
		if !errors.Is(err, ceeb.ErrEmptySelection) && !errors.Is(err, ceeb.ErrNothingPending) && !errors.Is(err, ceeb.ErrSnapshotChanged) {
			h.logger.Error("CEEB submit failed", zap.String("user", user), zap.Error(err))
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(sub))
}

// GET /admin/api/v1/ceeb/xml?ids=1,2,3[&download=1]
func (h *DashboardHandler) CeebXML(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids, err := parseIDs(q["ids"])
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	doc, err := h.svc.CeebXML(r.Context(), userID(r), ids)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if q.Get("download") == "1" || q.Get("download") == "true" {
		w.Header().Set("Content-Disposition", "attachment; filename=ceeb-submission.xml")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// GET /admin/api/v1/map/regions
func (h *DashboardHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Regions()))
}

// GET|PUT /admin/api/v1/settings
func (h *DashboardHandler) Settings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method == http.MethodGet {
		s, err := h.svc.Settings(ctx)
		if err != nil {
			h.logger.Error("Loading settings failed", zap.Error(err))
			writeJSON(w, http.StatusOK, Fail("failed to load settings"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(s))
		return
	}

	var in domain.Settings
	if err := readBodyJSON(r, maxBodyBytes, &in); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	saved, err := h.svc.SaveSettings(ctx, in)
	if err != nil {
		if !errors.Is(err, settings.ErrInvalidSettings) {
			h.logger.Error("Saving settings failed", zap.Error(err))
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(saved))
}

// GET /admin/api/v1/export?format=xlsx|csv|xml plus inspection filters
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}

	file, err := h.svc.Export(r.Context(), userID(r), format, c)
	if err != nil {
		if !errors.Is(err, export.ErrUnsupportedFormat) {
			h.logger.Error("Export failed", zap.String("format", format), zap.Error(err))
		}
		writeJSON(w, http.StatusOK, Fail(err.Error()))
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+file.Name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// GET /admin/api/v1/snapshot returns the cached snapshot JSON.
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.CachedSnapshot(r.Context())
	if err != nil {
		if !errors.Is(err, store.ErrMiss) {
			h.logger.Warn("Reading cached snapshot failed", zap.Error(err))
		}
		writeJSON(w, http.StatusOK, Fail("snapshot not available"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"code":%d,"type":"success","message":"ok","result":%s}`+"\n", ResultSuccess, raw)
}

// GET /health
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.svc.Health(r.Context())))
}
