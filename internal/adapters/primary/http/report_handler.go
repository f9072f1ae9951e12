package http

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ravelli-czy/dashboard-care-teams/internal/adapters/secondary/csvfile"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	apperrors "github.com/ravelli-czy/dashboard-care-teams/internal/core/errors"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/ports"
)

const (
	fileField     = "file"
	settingsField = "settings"
	cacheHeader   = "X-Report-Cache"
)

// ReportHandler turns an uploaded CSV export into the aggregate report.
// Identical file + settings + filter combinations are served from the cache;
// the X-Report-Cache header says which path a response took.
type ReportHandler struct {
	ingest       ports.IngestService
	reports      ports.ReportService
	compare      ports.CompareService
	cache        ports.ReportCache
	defaults     domain.ReportSettings
	maxUpload    int64
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	ingest ports.IngestService,
	reports ports.ReportService,
	compare ports.CompareService,
	cache ports.ReportCache,
	defaults domain.ReportSettings,
	maxUpload int64,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		ingest:       ingest,
		reports:      reports,
		compare:      compare,
		cache:        cache,
		defaults:     defaults,
		maxUpload:    maxUpload,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// ReportResponse is the full payload returned for one upload.
type ReportResponse struct {
	Report      *domain.Report     `json:"report"`
	Comparison  *domain.Comparison `json:"comparison"`
	DroppedRows int                `json:"droppedRows"`
	Assignees   []string           `json:"assignees"`
	MinMonth    string             `json:"minMonth,omitempty"`
	MaxMonth    string             `json:"maxMonth,omitempty"`
}

// HandleCreateReport handles POST /api/v1/reports
func (h *ReportHandler) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.errorHandler.Handle(w, r, apperrors.NewPayloadTooLargeError(h.maxUpload))
			return
		}
		h.errorHandler.Handle(w, r, apperrors.NewBadRequestError(err, "Request is not a valid multipart form"))
		return
	}

	file, _, err := r.FormFile(fileField)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	payload, err := io.ReadAll(file)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}

	settings, settingsRaw, err := h.resolveSettings(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	filter := filterFromQuery(r)

	key := cacheKey(payload, settingsRaw, filter)
	if cached, ok := h.cache.Get(key); ok {
		h.logger.InfoContext(r.Context(), "report served from cache", "cache_key", key)
		WriteJSONWithHeaders(w, http.StatusOK, json.RawMessage(cached), map[string]string{cacheHeader: "hit"})
		return
	}

	response, err := h.buildReport(payload, filter, settings)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	body, err := json.Marshal(response)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}
	h.cache.Set(key, body)

	h.logger.InfoContext(r.Context(), "report built",
		"tickets", response.Report.KPIs.Total,
		"dropped_rows", response.DroppedRows,
		"cache_key", key,
	)

	WriteJSONWithHeaders(w, http.StatusOK, json.RawMessage(body), map[string]string{cacheHeader: "miss"})
}

func (h *ReportHandler) buildReport(payload []byte, filter domain.Filter, settings domain.ReportSettings) (*ReportResponse, error) {
	rows, err := csvfile.ReadRows(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, err)
	}

	result := h.ingest.Normalize(rows)
	if len(result.Tickets) == 0 {
		return nil, apperrors.NewNoUsableRowsError(result.DroppedRows)
	}

	return &ReportResponse{
		Report:      h.reports.Build(result.Tickets, filter, settings),
		Comparison:  h.compare.Compare(result.Tickets, filter, settings),
		DroppedRows: result.DroppedRows,
		Assignees:   result.Assignees,
		MinMonth:    result.MinMonth(),
		MaxMonth:    result.MaxMonth(),
	}, nil
}

// resolveSettings merges an optional settings part over the configured
// defaults. Absent fields keep their defaults; only explicit keys override.
func (h *ReportHandler) resolveSettings(r *http.Request) (domain.ReportSettings, []byte, error) {
	settings := h.defaults
	raw := r.FormValue(settingsField)
	if raw == "" {
		return settings, nil, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSettings, err)
	}
	return settings, []byte(raw), nil
}

func filterFromQuery(r *http.Request) domain.Filter {
	q := r.URL.Query()
	return domain.Filter{
		FromMonth:    q.Get("from"),
		ToMonth:      q.Get("to"),
		Organization: q.Get("org"),
		Assignee:     q.Get("assignee"),
		Status:       q.Get("status"),
	}
}

// cacheKey fingerprints the exact inputs of one report: file bytes, raw
// settings payload and the filter fields.
func cacheKey(payload, settingsRaw []byte, f domain.Filter) string {
	h := sha256.New()
	h.Write(payload)
	h.Write([]byte{0})
	h.Write(settingsRaw)
	fmt.Fprintf(h, "|%s|%s|%s|%s|%s", f.FromMonth, f.ToMonth, f.Organization, f.Assignee, f.Status)
	return hex.EncodeToString(h.Sum(nil))
}

// RegisterRoutes registers report routes on the router
func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/reports", h.HandleCreateReport)
}
