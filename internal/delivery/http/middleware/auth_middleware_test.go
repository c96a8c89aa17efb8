package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mockSvc "piquant/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// okHandler records whether the middleware let the request through.
func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return c.NoContent(http.StatusOK)
	}
}

func performAuthRequest(t *testing.T, tokenSvc *mockSvc.MockTokenService, build func(*http.Request)) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sauces", nil)
	if build != nil {
		build(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	return rec, called, c
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)

	rec, called, _ := performAuthRequest(t, tokenSvc, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	tokenSvc.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestAuthenticate_WrongScheme(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)

	rec, called, _ := performAuthRequest(t, tokenSvc, func(req *http.Request) {
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	tokenSvc.AssertNotCalled(t, "Verify", mock.Anything)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	tokenSvc.On("Verify", "garbage").Return(uuid.Nil, assert.AnError)

	rec, called, _ := performAuthRequest(t, tokenSvc, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer garbage")
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_ValidTokenSetsContext(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	rec, called, c := performAuthRequest(t, tokenSvc, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer good.token")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, userID, c.Get(ContextUserIDKey))
}

func TestAuthenticate_BodyIdentityMismatch(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	e := echo.New()
	body := `{"userId":"` + uuid.New().String() + `","like":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/sauces/x/like", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good.token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticate_BodyIdentityMatchPassesAndRestoresBody(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	e := echo.New()
	body := `{"userId":"` + userID.String() + `","like":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/sauces/x/like", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good.token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	// Downstream handlers must still be able to bind the payload.
	restored, err := io.ReadAll(c.Request().Body)
	require.NoError(t, err)
	assert.JSONEq(t, body, string(restored))
}

func TestAuthenticate_BodyWithoutUserIDPasses(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sauces", strings.NewReader(`{"name":"Ghost Reaper"}`))
	req.Header.Set("Authorization", "Bearer good.token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthenticate_OversizedBodySurvivesIntact(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	e := echo.New()
	body := `{"pad":"` + strings.Repeat("a", maxInspectedBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/sauces", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer good.token")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	// The gateway only peeks at a bounded prefix; the handler must still
	// receive every byte, including the tail beyond the inspection limit.
	restored, err := io.ReadAll(c.Request().Body)
	require.NoError(t, err)
	assert.Len(t, restored, len(body))
}

func TestAuthenticate_NonJSONBodyIsNotInspected(t *testing.T) {
	tokenSvc := new(mockSvc.MockTokenService)
	userID := uuid.New()
	tokenSvc.On("Verify", "good.token").Return(userID, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/sauces", strings.NewReader("--boundary--"))
	req.Header.Set("Authorization", "Bearer good.token")
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=boundary")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var called bool
	handler := NewAuthMiddleware(tokenSvc).Authenticate(okHandler(&called))
	require.NoError(t, handler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
