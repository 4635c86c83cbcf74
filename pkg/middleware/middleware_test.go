package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/sales-ledger-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler)

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/reports", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := authmocks.NewMockAuthenticator(ctrl)
	admin := &domain.Claims{OperatorName: "ana", RoleID: RoleAdmin}

	var seen *domain.Claims
	captureHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(mockAuth)(captureHandler)

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		setup      func()
		wantStatus int
		wantClaims *domain.Claims
	}{
		{name: "healthcheck é público", method: http.MethodGet, path: "/healthcheck", setup: func() {}, wantStatus: http.StatusOK},
		{name: "leitura sem token", method: http.MethodGet, path: "/v1/reports/latest", setup: func() {}, wantStatus: http.StatusOK},
		{name: "escrita sem cabeçalho", method: http.MethodPost, path: "/v1/reports", setup: func() {}, wantStatus: http.StatusUnauthorized},
		{name: "escrita sem Bearer", method: http.MethodPost, path: "/v1/reports", header: "Basic abc", setup: func() {}, wantStatus: http.StatusUnauthorized},
		{
			name:   "token inválido",
			method: http.MethodPost,
			path:   "/v1/reports",
			header: "Bearer ruim",
			setup: func() {
				mockAuth.EXPECT().ValidateToken("ruim").
					Return(nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "assinatura"))
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "token válido",
			method: http.MethodPost,
			path:   "/v1/reports",
			header: "Bearer bom",
			setup: func() {
				mockAuth.EXPECT().ValidateToken("bom").Return(admin, nil)
			},
			wantStatus: http.StatusOK,
			wantClaims: admin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			tt.setup()

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantClaims, seen)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	withClaims := func(claims *domain.Claims) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/v1/cron/all/run", nil)
		if claims == nil {
			return req
		}
		return req.WithContext(contextWithClaims(req, claims))
	}

	tests := []struct {
		name       string
		enabled    bool
		claims     *domain.Claims
		wantStatus int
	}{
		{name: "autenticação desabilitada", enabled: false, wantStatus: http.StatusTeapot},
		{name: "sem claims", enabled: true, wantStatus: http.StatusUnauthorized},
		{name: "perfil visualizador", enabled: true, claims: &domain.Claims{RoleID: RoleViewer}, wantStatus: http.StatusForbidden},
		{name: "administrador", enabled: true, claims: &domain.Claims{RoleID: RoleAdmin}, wantStatus: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			AdminOnly(tt.enabled)(okHandler).ServeHTTP(rec, withClaims(tt.claims))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLoggingMiddleware_SetsCorrelationID(t *testing.T) {
	log.SetupTestLogger()

	var correlationID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	require.NotEmpty(t, correlationID)
	assert.Equal(t, correlationID, rec.Header().Get(CorrelationIDHeader))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500 µs", formatDuration(500_000))
	assert.Equal(t, "12 ms", formatDuration(12_000_000))
	assert.Equal(t, "1.50 s", formatDuration(1_500_000_000))
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyClaims, claims)
}
