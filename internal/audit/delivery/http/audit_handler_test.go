package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"due-diligence-backend/internal/audit/dto"
	"due-diligence-backend/internal/audit/service"
	"due-diligence-backend/internal/entity"
	"due-diligence-backend/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditService struct {
	response *dto.AuditResponse
	err      error
	gotReq   *dto.CreateAuditRequest
}

func (f *fakeAuditService) RunAudit(ctx context.Context, req *dto.CreateAuditRequest) (*dto.AuditResponse, error) {
	f.gotReq = req
	return f.response, f.err
}

type fakeRecordService struct {
	recordSet *dto.RecordSetResponse
	listing   *dto.ListCompaniesResponse
	err       error
	gotSearch string
	gotPage   int
	gotSize   int
}

func (f *fakeRecordService) GetByCompanyName(ctx context.Context, companyName string) (*dto.RecordSetResponse, error) {
	return f.recordSet, f.err
}

func (f *fakeRecordService) ListCompanies(ctx context.Context, search string, page, pageSize int) (*dto.ListCompaniesResponse, error) {
	f.gotSearch, f.gotPage, f.gotSize = search, page, pageSize
	return f.listing, f.err
}

type fakeSummaryService struct {
	response *dto.SummaryResponse
	err      error
}

func (f *fakeSummaryService) Summarize(ctx context.Context, companyName string) (*dto.SummaryResponse, error) {
	return f.response, f.err
}

type handlerFixture struct {
	echo    *echo.Echo
	audits  *fakeAuditService
	records *fakeRecordService
	summary *fakeSummaryService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		echo:    echo.New(),
		audits:  &fakeAuditService{},
		records: &fakeRecordService{},
		summary: &fakeSummaryService{},
	}
	h := NewAuditHandler(f.audits, f.records, f.summary, logger.NewNop())
	h.RegisterRoutes(f.echo.Group("/api/v1/audits"))
	return f
}

func (f *handlerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestCreateAudit_SyncReturnsCreated(t *testing.T) {
	f := newHandlerFixture(t)
	f.audits.response = &dto.AuditResponse{
		CompanyName: "Acme",
		Mode:        service.ModeSync,
		Statuses: map[string]dto.CategoryStatus{
			"profile": {Status: entity.StatusCommitted},
		},
		Profile: &entity.AuditRecord{CompanyName: "Acme"},
	}

	rec := f.do(http.MethodPost, "/api/v1/audits",
		`{"company_name":"Acme","website_url":"https://acme.example.com","mode":"sync"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, f.audits.gotReq)
	assert.Equal(t, "Acme", f.audits.gotReq.CompanyName)

	var response dto.AuditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, service.ModeSync, response.Mode)
	require.NotNil(t, response.Profile)
	assert.Equal(t, "Acme", response.Profile.CompanyName)
}

func TestCreateAudit_AsyncReturnsAccepted(t *testing.T) {
	f := newHandlerFixture(t)
	f.audits.response = &dto.AuditResponse{
		CompanyName: "Acme",
		Mode:        service.ModeAsync,
		Statuses: map[string]dto.CategoryStatus{
			"profile":     {Status: entity.StatusPending},
			"competitors": {Status: entity.StatusPending},
		},
	}

	rec := f.do(http.MethodPost, "/api/v1/audits",
		`{"company_name":"Acme","website_url":"https://acme.example.com"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var response dto.AuditResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.Profile)
	assert.Equal(t, entity.StatusPending, response.Statuses["competitors"].Status)
}

func TestCreateAudit_ValidationErrorIsBadRequest(t *testing.T) {
	f := newHandlerFixture(t)
	f.audits.err = service.ErrValidation

	rec := f.do(http.MethodPost, "/api/v1/audits", `{"company_name":"Acme"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAudit_MalformedBodyIsBadRequest(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/audits", `{"company_name":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var response dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Invalid request payload", response.Error)
}

func TestCreateAudit_InFlightIsConflict(t *testing.T) {
	f := newHandlerFixture(t)
	f.audits.err = service.ErrAuditInFlight

	rec := f.do(http.MethodPost, "/api/v1/audits",
		`{"company_name":"Acme","website_url":"https://acme.example.com"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetAudit_UnknownCompanyIsNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	f.records.err = service.ErrNotFound

	rec := f.do(http.MethodGet, "/api/v1/audits/Nobody", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAudit_ReturnsRecordSet(t *testing.T) {
	f := newHandlerFixture(t)
	f.records.recordSet = &dto.RecordSetResponse{
		CompanyName: "Acme",
		Profile:     &entity.AuditRecord{CompanyName: "Acme"},
		Statuses: map[string]dto.CategoryStatus{
			"profile":    {Status: entity.StatusCommitted},
			"financials": {Status: entity.StatusFailed, Error: "all sub-sources failed"},
		},
	}

	rec := f.do(http.MethodGet, "/api/v1/audits/Acme", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var response dto.RecordSetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Nil(t, response.Financials, "never-committed categories serialize as null")
	assert.Equal(t, "all sub-sources failed", response.Statuses["financials"].Error)
}

func TestListCompanies_PassesQueryParams(t *testing.T) {
	f := newHandlerFixture(t)
	f.records.listing = &dto.ListCompaniesResponse{
		Items:    []dto.CompanyListItem{{CompanyName: "Acme"}},
		Total:    1,
		Page:     2,
		PageSize: 5,
	}

	rec := f.do(http.MethodGet, "/api/v1/audits?search=acme&page=2&page_size=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acme", f.records.gotSearch)
	assert.Equal(t, 2, f.records.gotPage)
	assert.Equal(t, 5, f.records.gotSize)
}

func TestGetSummary_UnavailableIsServiceUnavailable(t *testing.T) {
	f := newHandlerFixture(t)
	f.summary.err = service.ErrSummaryUnavailable

	rec := f.do(http.MethodGet, "/api/v1/audits/Acme/summary", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetSummary_ReturnsSummary(t *testing.T) {
	f := newHandlerFixture(t)
	f.summary.response = &dto.SummaryResponse{CompanyName: "Acme", Summary: "Low overall risk."}

	rec := f.do(http.MethodGet, "/api/v1/audits/Acme/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var response dto.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Low overall risk.", response.Summary)
}
