package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/syscompta/ledger/internal/apperrors"
	"github.com/syscompta/ledger/internal/core/domain"
	portssvc "github.com/syscompta/ledger/internal/core/ports/services"
	"github.com/syscompta/ledger/internal/dto"
	"github.com/syscompta/ledger/internal/handlers"
	"github.com/syscompta/ledger/internal/middleware"
)

// --- Mock EntryService ---
type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) CreateEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) GetEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, companyID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockEntryService) UpdateDraftEntry(ctx context.Context, companyID, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) DeleteDraftEntry(ctx context.Context, companyID, entryID string, userID string) error {
	args := m.Called(ctx, companyID, entryID, userID)
	return args.Error(0)
}
func (m *MockEntryService) CheckEntry(ctx context.Context, companyID, entryID string) (*domain.ValidationErrors, error) {
	args := m.Called(ctx, companyID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationErrors), args.Error(1)
}
func (m *MockEntryService) ValidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) ValidateAndPost(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) UnvalidateEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockEntryService) CloseEntry(ctx context.Context, companyID, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.EntrySvcFacade = (*MockEntryService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockEntryService *MockEntryService
	jwtSecret        string
}

func (suite *EntryHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEntryService = new(MockEntryService)

	company := suite.router.Group("/api/v1/companies/:company_id")
	handlers.RegisterEntryRoutes(company, suite.mockEntryService)
}

func TestEntryHandler(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}

func (suite *EntryHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		Date:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Label: "Cash sale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountNumber: "571", Debit: decimal.NewFromInt(100), Order: 1},
			{AccountNumber: "701", Credit: decimal.NewFromInt(100), Order: 2},
		},
	}
	expected := &domain.JournalEntry{
		EntryID:   uuid.NewString(),
		CompanyID: companyID,
		Date:      reqBody.Date,
		Reference: "ECR-202403-0001",
		Label:     reqBody.Label,
		Status:    domain.EntryDraft,
	}

	suite.mockEntryService.On("CreateEntry",
		mock.Anything, companyID,
		mock.MatchedBy(func(r dto.CreateEntryRequest) bool { return r.Label == "Cash sale" && len(r.Lines) == 2 }),
		userID,
	).Return(expected, nil).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries", companyID), reqBody, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.EntryID, resp.EntryID)
	suite.Equal("ECR-202403-0001", resp.Reference)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_RejectsBadAccountNumber() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		Date:  time.Now(),
		Label: "Bad account",
		Lines: []dto.CreateEntryLineRequest{
			{AccountNumber: "9X1", Debit: decimal.NewFromInt(100), Order: 1},
			{AccountNumber: "701", Credit: decimal.NewFromInt(100), Order: 2},
		},
	}

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries", companyID), reqBody, userID)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEntryService.AssertNotCalled(suite.T(), "CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_ValidationFailureReturns422() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	reqBody := dto.CreateEntryRequest{
		Date:  time.Now(),
		Label: "Unbalanced",
		Lines: []dto.CreateEntryLineRequest{
			{AccountNumber: "571", Debit: decimal.NewFromInt(100), Order: 1},
			{AccountNumber: "701", Credit: decimal.NewFromInt(90), Order: 2},
		},
	}
	verrs := &domain.ValidationErrors{}
	verrs.Add(domain.ViolationUnbalanced, -1, "debits sum to 100 but credits sum to 90")

	suite.mockEntryService.On("CreateEntry", mock.Anything, companyID, mock.AnythingOfType("dto.CreateEntryRequest"), userID).
		Return(nil, verrs).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries", companyID), reqBody, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(w.Body.String(), "UNBALANCED")
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestGetEntry_NotFound() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockEntryService.On("GetEntryByID", mock.Anything, companyID, entryID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/entries/%s", companyID, entryID), nil, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *EntryHandlerTestSuite) TestValidateEntry_ConflictOnWrongStatus() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockEntryService.On("ValidateEntry", mock.Anything, companyID, entryID, userID).
		Return(nil, fmt.Errorf("wrapped: %w", apperrors.ErrConflict)).Once()

	w := suite.doRequest(http.MethodPost, fmt.Sprintf("/api/v1/companies/%s/entries/%s/validate", companyID, entryID), nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *EntryHandlerTestSuite) TestCheckEntry_ReturnsReport() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()
	verrs := &domain.ValidationErrors{}
	verrs.Add(domain.ViolationEmptyLine, 2, "line carries neither a debit nor a credit")

	suite.mockEntryService.On("CheckEntry", mock.Anything, companyID, entryID).
		Return(verrs, nil).Once()

	w := suite.doRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/entries/%s/check", companyID, entryID), nil, userID)

	suite.Equal(http.StatusOK, w.Code)
	var report dto.ValidationReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.Equal(entryID, report.EntryID)
	suite.False(report.IsValid)
	suite.Require().Len(report.Violations, 1)
	suite.Equal("EMPTY_LINE", report.Violations[0].Code)
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_NoContent() {
	companyID := uuid.NewString()
	userID := uuid.NewString()
	entryID := uuid.NewString()

	suite.mockEntryService.On("DeleteDraftEntry", mock.Anything, companyID, entryID, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, fmt.Sprintf("/api/v1/companies/%s/entries/%s", companyID, entryID), nil, userID)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockEntryService.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestMissingToken_Unauthorized() {
	companyID := uuid.NewString()
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/companies/%s/entries", companyID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}
