package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/cache"
	httpmw "github.com/aftermeet-app/aftermeet/internal/infrastructure/http/middleware"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
	"github.com/aftermeet-app/aftermeet/pkg/config"
	"github.com/aftermeet-app/aftermeet/pkg/jwt"
	"github.com/aftermeet-app/aftermeet/pkg/otp"
	pkgvalidator "github.com/aftermeet-app/aftermeet/pkg/validator"
)

type memoryUserRepo struct {
	byEmail map[string]*entities.User
	byID    map[uuid.UUID]*entities.User
}

func (m *memoryUserRepo) Create(_ context.Context, u *entities.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, usecaseerrors.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, usecaseerrors.ErrNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) Update(_ context.Context, u *entities.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

type captureSender struct{ lastCode string }

func (s *captureSender) SendOTP(_ context.Context, _, code string) error {
	s.lastCode = code
	return nil
}

func newAuthTestServer(t *testing.T) (*echo.Echo, *captureSender) {
	t.Helper()

	users := &memoryUserRepo{
		byEmail: make(map[string]*entities.User),
		byID:    make(map[uuid.UUID]*entities.User),
	}
	sender := &captureSender{}
	gen := otp.NewGenerator(nil, 6)
	manager := jwt.NewManager("test-access", "test-refresh", 15*time.Minute, 24*time.Hour)
	svc := auth.NewService(users, cache.NewMemoryStore(), gen, manager, sender,
		config.OTPConfig{CodeLength: 6, Expiry: 5 * time.Minute, MaxAttempts: 5}, zap.NewNop())

	e := echo.New()
	e.Validator = pkgvalidator.New()

	h := NewAuth(svc, zap.NewNop())
	mw := httpmw.NewAuthMiddleware(svc)
	e.POST("/v1/auth/otp/request", h.RequestCode)
	e.POST("/v1/auth/otp/verify", h.VerifyCode)
	e.GET("/v1/auth/me", h.Me, mw.Authenticate)
	return e, sender
}

func postJSON(e *echo.Echo, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestOTPLoginFlow(t *testing.T) {
	e, sender := newAuthTestServer(t)

	rec := postJSON(e, "/v1/auth/otp/request", map[string]string{"email": "alice@example.com"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("request code status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(sender.lastCode) != 6 {
		t.Fatalf("delivered code = %q, want 6 digits", sender.lastCode)
	}

	rec = postJSON(e, "/v1/auth/otp/verify", map[string]string{
		"email": "alice@example.com",
		"code":  sender.lastCode,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to parse verify response: %v", err)
	}
	if envelope.Data.AccessToken == "" || envelope.Data.TokenType != "Bearer" {
		t.Fatalf("token payload = %+v", envelope.Data)
	}

	// The issued token authenticates /me.
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.AccessToken)
	meRec := httptest.NewRecorder()
	e.ServeHTTP(meRec, req)
	if meRec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body = %s", meRec.Code, meRec.Body.String())
	}
	if !strings.Contains(meRec.Body.String(), "alice@example.com") {
		t.Errorf("me body = %s", meRec.Body.String())
	}
}

func TestVerifyRejectsWrongCode(t *testing.T) {
	e, sender := newAuthTestServer(t)

	postJSON(e, "/v1/auth/otp/request", map[string]string{"email": "bob@example.com"}, nil)
	wrong := "000000"
	if wrong == sender.lastCode {
		wrong = "000001"
	}

	rec := postJSON(e, "/v1/auth/otp/verify", map[string]string{
		"email": "bob@example.com",
		"code":  wrong,
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong code status = %d, want 401", rec.Code)
	}
}

func TestRequestCodeValidation(t *testing.T) {
	e, _ := newAuthTestServer(t)

	rec := postJSON(e, "/v1/auth/otp/request", map[string]string{"email": "not-an-email"}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid email status = %d, want 400", rec.Code)
	}
}

func TestMeRequiresToken(t *testing.T) {
	e, _ := newAuthTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", rec.Code)
	}
}
