package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kvillagran/bancal_backend/internal/core/domain"
	portssvc "github.com/kvillagran/bancal_backend/internal/core/ports/services"
	"github.com/kvillagran/bancal_backend/internal/core/services"
	"github.com/kvillagran/bancal_backend/internal/dto"
	"github.com/kvillagran/bancal_backend/internal/handlers"
	"github.com/kvillagran/bancal_backend/internal/platform/config"
)

// --- Mock TransferenceService ---

type MockTransferenceService struct {
	mock.Mock
}

var _ portssvc.TransferenceSvcFacade = (*MockTransferenceService)(nil)

func (m *MockTransferenceService) CreateTransference(ctx context.Context, req dto.CreateTransferenceRequest) (*domain.Transference, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transference), args.Error(1)
}

func (m *MockTransferenceService) CancelTransference(ctx context.Context, transferenceID string) (*domain.Transference, error) {
	args := m.Called(ctx, transferenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transference), args.Error(1)
}

func (m *MockTransferenceService) ListTransferencesByAccount(ctx context.Context, accountID string, params dto.ListTransferencesParams) (int64, []domain.Transference, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(1) == nil {
		return args.Get(0).(int64), nil, args.Error(2)
	}
	return args.Get(0).(int64), args.Get(1).([]domain.Transference), args.Error(2)
}

// --- Test Suite ---

const testJWTSecret = "test-secret-for-handler-tests"

type TransferenceHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	transferenceSvc *MockTransferenceService
	token           string
}

func (s *TransferenceHandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = dto.RegisterCustomValidations(v)
	}
}

func (s *TransferenceHandlerTestSuite) SetupTest() {
	s.transferenceSvc = new(MockTransferenceService)

	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	container := &portssvc.ServiceContainer{Transference: s.transferenceSvc}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, container)

	claims := jwt.RegisteredClaims{
		Subject:   "test-user",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	s.Require().NoError(err)
	s.token = token
}

func TestTransferenceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransferenceHandlerTestSuite))
}

func (s *TransferenceHandlerTestSuite) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TransferenceHandlerTestSuite) validRequest() dto.CreateTransferenceRequest {
	return dto.CreateTransferenceRequest{
		AccountGiven:    uuid.NewString(),
		AccountReceiver: uuid.NewString(),
		Quantity:        decimal.NewFromInt(200),
		Currency:        uuid.NewString(),
		Description:     "rent",
	}
}

func (s *TransferenceHandlerTestSuite) TestCreateTransference_Created() {
	req := s.validRequest()
	transference := &domain.Transference{
		TransferenceID:    uuid.NewString(),
		AccountGivenID:    req.AccountGiven,
		AccountReceiverID: req.AccountReceiver,
		Quantity:          req.Quantity,
		CurrencyID:        req.Currency,
		AmountDebited:     req.Quantity,
		AmountCredited:    req.Quantity,
		Status:            domain.StatusActive,
		CreatedAt:         time.Now().UTC(),
	}
	s.transferenceSvc.On("CreateTransference", mock.Anything, mock.AnythingOfType("dto.CreateTransferenceRequest")).
		Return(transference, nil)

	w := s.do(http.MethodPost, "/api/v1/transferences", req, true)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.TransferenceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(transference.TransferenceID, resp.TransferenceID)
	s.Equal("ACTIVE", resp.Status)
}

func (s *TransferenceHandlerTestSuite) TestCreateTransference_Unauthorized() {
	w := s.do(http.MethodPost, "/api/v1/transferences", s.validRequest(), false)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.transferenceSvc.AssertNotCalled(s.T(), "CreateTransference", mock.Anything, mock.Anything)
}

func (s *TransferenceHandlerTestSuite) TestCreateTransference_InvalidBody() {
	req := s.validRequest()
	req.Quantity = decimal.NewFromInt(-5) // fails decimalgt0 binding

	w := s.do(http.MethodPost, "/api/v1/transferences", req, true)

	s.Equal(http.StatusBadRequest, w.Code)
	s.transferenceSvc.AssertNotCalled(s.T(), "CreateTransference", mock.Anything, mock.Anything)
}

func (s *TransferenceHandlerTestSuite) TestCreateTransference_ErrorMapping() {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"self transfer", services.ErrSelfTransferNotAllowed, http.StatusBadRequest},
		{"currency missing", services.ErrCurrencyNotFound, http.StatusNotFound},
		{"account missing", services.ErrAccountNotFound, http.StatusNotFound},
		{"over limit", services.ErrTransferLimitExceeded, http.StatusUnprocessableEntity},
		{"no rate", services.ErrRateUnavailable, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			svc := new(MockTransferenceService)
			cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
			router := gin.New()
			handlers.RegisterRoutes(router, cfg, &portssvc.ServiceContainer{Transference: svc})
			svc.On("CreateTransference", mock.Anything, mock.Anything).Return(nil, tc.err)

			var buf bytes.Buffer
			s.Require().NoError(json.NewEncoder(&buf).Encode(s.validRequest()))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transferences", &buf)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+s.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			s.Equal(tc.status, w.Code)
		})
	}
}

func (s *TransferenceHandlerTestSuite) TestCancelTransference_OK() {
	id := uuid.NewString()
	transference := &domain.Transference{
		TransferenceID: id,
		Status:         domain.StatusInactive,
		Quantity:       decimal.NewFromInt(200),
	}
	s.transferenceSvc.On("CancelTransference", mock.Anything, id).Return(transference, nil)

	w := s.do(http.MethodDelete, "/api/v1/transferences/"+id, nil, true)

	s.Equal(http.StatusOK, w.Code)
	var resp dto.TransferenceResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("INACTIVE", resp.Status)
}

func (s *TransferenceHandlerTestSuite) TestCancelTransference_NotFound() {
	id := uuid.NewString()
	s.transferenceSvc.On("CancelTransference", mock.Anything, id).Return(nil, services.ErrTransferenceNotFound)

	w := s.do(http.MethodDelete, "/api/v1/transferences/"+id, nil, true)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TransferenceHandlerTestSuite) TestCancelTransference_Expired() {
	id := uuid.NewString()
	s.transferenceSvc.On("CancelTransference", mock.Anything, id).Return(nil, services.ErrCancellationExpired)

	w := s.do(http.MethodDelete, "/api/v1/transferences/"+id, nil, true)

	s.Equal(http.StatusConflict, w.Code)
}
