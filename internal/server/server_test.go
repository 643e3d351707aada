package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyunsoo-an/purchase-review/internal/common"
	"github.com/hyunsoo-an/purchase-review/internal/entity"
	"github.com/hyunsoo-an/purchase-review/internal/export"
	"github.com/hyunsoo-an/purchase-review/internal/policy"
	"github.com/hyunsoo-an/purchase-review/internal/repository"
	"github.com/hyunsoo-an/purchase-review/internal/review"
)

// Metrics register against the default registry, so tests share one instance.
var (
	metricsOnce sync.Once
	testMetrics *Metrics
)

func sharedMetrics() *Metrics {
	metricsOnce.Do(func() { testMetrics = NewMetrics() })
	return testMetrics
}

type memoryCaseRepo struct {
	mu      sync.Mutex
	results map[uuid.UUID]*entity.ReviewResult
}

func newMemoryCaseRepo() *memoryCaseRepo {
	return &memoryCaseRepo{results: make(map[uuid.UUID]*entity.ReviewResult)}
}

func (m *memoryCaseRepo) SaveResult(_ context.Context, _ entity.CaseInput, result *entity.ReviewResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.CaseID] = result
	return nil
}

func (m *memoryCaseRepo) GetResult(_ context.Context, caseID uuid.UUID) (*entity.ReviewResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.results[caseID]; ok {
		return r, nil
	}
	return nil, common.NewAppError("CASE_NOT_FOUND", "no result for case", common.ErrNotFound)
}

func (m *memoryCaseRepo) ListRecent(_ context.Context, _ int) ([]repository.CaseSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.CaseSummary
	for id, r := range m.results {
		out = append(out, repository.CaseSummary{
			CaseID:        id,
			ApplicantKind: string(r.ApplicantKind),
			FindingCount:  len(r.Supplementary),
			Complete:      r.IsReviewComplete(),
		})
	}
	return out, nil
}

func newTestServer(t *testing.T) (*Server, *memoryCaseRepo) {
	t.Helper()
	reviewSvc, err := review.NewService(policy.Default(), nil)
	require.NoError(t, err)
	repo := newMemoryCaseRepo()
	srv := New(reviewSvc, export.NewService(nil), repo, nil, sharedMetrics(), nil)
	return srv, repo
}

func submitBody(t *testing.T) []byte {
	t.Helper()
	input := entity.CaseInput{
		CaseID: uuid.New(),
		Files: []entity.ExtractedFile{
			{
				FileName: "application.pdf",
				Label:    "주택매도신청서",
				Payload: map[string]any{
					"written_date": "2025-03-04",
					"owner":        map[string]any{"name": "홍길동"},
				},
			},
		},
	}
	data, err := json.Marshal(input)
	require.NoError(t, err)
	return data
}

func TestSubmitCase(t *testing.T) {
	srv, repo := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/v1/cases", bytes.NewReader(submitBody(t)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var result entity.ReviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEqual(t, uuid.Nil, result.CaseID)
	assert.NotEmpty(t, result.Supplementary)

	stored, err := repo.GetResult(context.Background(), result.CaseID)
	require.NoError(t, err)
	assert.Equal(t, result.CaseID, stored.CaseID)
}

func TestSubmitCaseBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodPost, "/v1/cases", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitEmptyCase(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	body, err := json.Marshal(entity.CaseInput{CaseID: uuid.New()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/cases", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetResultNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/"+uuid.NewString()+"/result", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResultBadID(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/not-a-uuid/result", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReportXLSX(t *testing.T) {
	srv, repo := newTestServer(t)
	router := srv.Router()

	result := entity.NewReviewResult(uuid.New())
	require.NoError(t, repo.SaveResult(context.Background(), entity.CaseInput{}, result))

	req := httptest.NewRequest(http.MethodGet, "/v1/cases/"+result.CaseID.String()+"/report.xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestListCases(t *testing.T) {
	srv, repo := newTestServer(t)
	router := srv.Router()

	result := entity.NewReviewResult(uuid.New())
	require.NoError(t, repo.SaveResult(context.Background(), entity.CaseInput{}, result))

	req := httptest.NewRequest(http.MethodGet, "/v1/cases", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []repository.CaseSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, result.CaseID, summaries[0].CaseID)
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
