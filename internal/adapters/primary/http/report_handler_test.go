package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravelli-czy/dashboard-care-teams/internal/adapters/secondary/memcache"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/domain"
	"github.com/ravelli-czy/dashboard-care-teams/internal/core/services"
)

const sampleCSV = "Clave de incidencia,Creada,Estado,Persona asignada,Campo personalizado (Organizations),Campo personalizado (Time to first response),Calificación de satisfacción\n" +
	"CARE-1,19/ene/26 12:47 PM,Open,Ana,Acme,-0:30,4\n" +
	"CARE-2,20/ene/26 09:00 AM,Hold,Beto,Acme,,\n" +
	"CARE-3,15/feb/26 03:15 PM,Closed,Ana,Globex,2.5,5\n" +
	"CARE-4,not a date,Open,Ana,Acme,,\n"

func newReportRouter(t *testing.T) chi.Router {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	staffing := services.NewStaffingService()

	handler := NewReportHandler(
		services.NewIngestService(),
		services.NewReportService(staffing),
		services.NewCompareService(staffing),
		memcache.NewStore(time.Minute, time.Minute),
		domain.ReportSettings{
			TPP:                 domain.TPPThresholds{CapacityMax: 30, OptimalMax: 60, LimitMax: 90},
			CompareWindowMonths: 12,
		},
		1<<20,
		NewErrorHandler(logger),
		logger,
	)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return r
}

func multipartBody(t *testing.T, csv string, settings string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if csv != "" {
		part, err := writer.CreateFormFile("file", "tickets.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(csv))
		require.NoError(t, err)
	}
	if settings != "" {
		require.NoError(t, writer.WriteField("settings", settings))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func postReport(t *testing.T, router chi.Router, target, csv, settings string) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, csv, settings)
	req := httptest.NewRequest(stdhttp.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestReportHandler_CreateReport(t *testing.T) {
	t.Run("builds a report from a multipart upload", func(t *testing.T) {
		router := newReportRouter(t)

		recorder := postReport(t, router, "/api/v1/reports", sampleCSV, "")
		require.Equal(t, stdhttp.StatusOK, recorder.Code, recorder.Body.String())
		assert.Equal(t, "miss", recorder.Header().Get("X-Report-Cache"))
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var response ReportResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

		assert.Equal(t, 2, response.Report.KPIs.Total, "hold row excluded, bad date dropped")
		assert.Equal(t, 1, response.DroppedRows)
		assert.Equal(t, []string{"Ana"}, response.Assignees)
		assert.Equal(t, "2026-01", response.MinMonth)
		assert.Equal(t, "2026-02", response.MaxMonth)
		assert.InDelta(t, 50, response.Report.KPIs.SLACompliancePct, 1e-9)
		require.NotNil(t, response.Comparison)
	})

	t.Run("identical uploads are served from cache", func(t *testing.T) {
		router := newReportRouter(t)

		first := postReport(t, router, "/api/v1/reports", sampleCSV, "")
		require.Equal(t, stdhttp.StatusOK, first.Code)
		assert.Equal(t, "miss", first.Header().Get("X-Report-Cache"))

		second := postReport(t, router, "/api/v1/reports", sampleCSV, "")
		require.Equal(t, stdhttp.StatusOK, second.Code)
		assert.Equal(t, "hit", second.Header().Get("X-Report-Cache"))
		assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("different filter misses the cache", func(t *testing.T) {
		router := newReportRouter(t)

		first := postReport(t, router, "/api/v1/reports", sampleCSV, "")
		require.Equal(t, stdhttp.StatusOK, first.Code)

		second := postReport(t, router, "/api/v1/reports?org=Acme", sampleCSV, "")
		require.Equal(t, stdhttp.StatusOK, second.Code)
		assert.Equal(t, "miss", second.Header().Get("X-Report-Cache"))

		var response ReportResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Report.KPIs.Total)
	})

	t.Run("settings part overrides the defaults", func(t *testing.T) {
		router := newReportRouter(t)

		settings := `{"compareWindowMonths":3,"roles":{"map":{"Ana":"Ignorar"}}}`
		recorder := postReport(t, router, "/api/v1/reports", sampleCSV, settings)
		require.Equal(t, stdhttp.StatusOK, recorder.Code, recorder.Body.String())

		var response ReportResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Comparison.Window)
		assert.Nil(t, response.Report.KPIs.TicketsPerPerson, "the only assignee is ignored")
	})

	t.Run("missing file part is a bad request", func(t *testing.T) {
		router := newReportRouter(t)

		recorder := postReport(t, router, "/api/v1/reports", "", "")
		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "MISSING_FILE", response.Code)
	})

	t.Run("no usable rows is unprocessable", func(t *testing.T) {
		router := newReportRouter(t)

		csv := "creada,estado\nnot a date,Open\nalso bad,Open\n"
		recorder := postReport(t, router, "/api/v1/reports", csv, "")
		require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "NO_USABLE_ROWS", response.Code)
		assert.EqualValues(t, 2, response.Details["droppedRows"])
	})

	t.Run("malformed settings payload is a bad request", func(t *testing.T) {
		router := newReportRouter(t)

		recorder := postReport(t, router, "/api/v1/reports", sampleCSV, "{not json")
		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "INVALID_SETTINGS", response.Code)
	})

	t.Run("unparseable csv is a bad request", func(t *testing.T) {
		router := newReportRouter(t)

		recorder := postReport(t, router, "/api/v1/reports", "creada\n\"broken\n", "")
		require.Equal(t, stdhttp.StatusBadRequest, recorder.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "INVALID_CSV", response.Code)
	})
}
