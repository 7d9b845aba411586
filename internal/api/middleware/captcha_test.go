package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goldenview/realty/internal/captcha"
)

// MockTurnstileVerifier
type MockTurnstileVerifier struct {
	mock.Mock
	enabled bool
}

func (m *MockTurnstileVerifier) Enabled() bool { return m.enabled }

func (m *MockTurnstileVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	args := m.Called(ctx, token, remoteIP)
	return args.Bool(0), args.Error(1)
}

func (m *MockTurnstileVerifier) IssuePass(ip, session string, ttl time.Duration) (string, error) {
	args := m.Called(ip, session, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockTurnstileVerifier) CheckPass(pass, ip, session string) bool {
	args := m.Called(pass, ip, session)
	return args.Bool(0)
}

const testPassTTL = 30 * time.Minute

func setupCaptchaTestEngine(verifier captcha.ITurnstileVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CaptchaMiddleware(verifier, testPassTTL))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"is_human": c.GetBool(ContextKeyIsHumanVerified)})
	})
	r.POST("/book", RequireHuman(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func captchaRequest(t *testing.T, r http.Handler, method, path string, headers map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.9:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body struct {
		IsHuman bool `json:"is_human"`
	}
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body.IsHuman
}

func TestCaptchaMiddleware_DisabledTrustsEveryone(t *testing.T) {
	router := setupCaptchaTestEngine(&MockTurnstileVerifier{enabled: false})

	_, isHuman := captchaRequest(t, router, "GET", "/test", nil)
	assert.True(t, isHuman)

	w, _ := captchaRequest(t, router, "POST", "/book", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCaptchaMiddleware_NoHeaders(t *testing.T) {
	mockVerifier := &MockTurnstileVerifier{enabled: true}
	router := setupCaptchaTestEngine(mockVerifier)

	_, isHuman := captchaRequest(t, router, "GET", "/test", nil)
	assert.False(t, isHuman)

	w, _ := captchaRequest(t, router, "POST", "/book", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockVerifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptchaMiddleware_SolvedChallengeIssuesPass(t *testing.T) {
	mockVerifier := &MockTurnstileVerifier{enabled: true}
	router := setupCaptchaTestEngine(mockVerifier)

	mockVerifier.On("Verify", mock.Anything, "turnstile-response", "203.0.113.9").Return(true, nil)
	mockVerifier.On("IssuePass", "203.0.113.9", "tab-1", testPassTTL).Return("signed-pass", nil)

	w, isHuman := captchaRequest(t, router, "GET", "/test", map[string]string{
		HeaderCaptchaToken: "turnstile-response",
		HeaderSession:      "tab-1",
	})
	assert.True(t, isHuman)
	assert.Equal(t, "signed-pass", w.Header().Get(HeaderCaptchaPass))
	mockVerifier.AssertExpectations(t)
}

func TestCaptchaMiddleware_FailedChallenge(t *testing.T) {
	mockVerifier := &MockTurnstileVerifier{enabled: true}
	router := setupCaptchaTestEngine(mockVerifier)

	mockVerifier.On("Verify", mock.Anything, "rejected", mock.Anything).Return(false, nil)
	mockVerifier.On("Verify", mock.Anything, "unreachable", mock.Anything).Return(false, errors.New("timeout"))

	for _, token := range []string{"rejected", "unreachable"} {
		w, isHuman := captchaRequest(t, router, "GET", "/test", map[string]string{HeaderCaptchaToken: token})
		assert.False(t, isHuman, token)
		assert.Empty(t, w.Header().Get(HeaderCaptchaPass), token)
	}
	mockVerifier.AssertNotCalled(t, "IssuePass", mock.Anything, mock.Anything, mock.Anything)
}

func TestCaptchaMiddleware_Pass(t *testing.T) {
	mockVerifier := &MockTurnstileVerifier{enabled: true}
	router := setupCaptchaTestEngine(mockVerifier)

	mockVerifier.On("CheckPass", "good-pass", "203.0.113.9", "tab-1").Return(true)
	mockVerifier.On("CheckPass", "stale-pass", "203.0.113.9", "tab-1").Return(false)

	w, _ := captchaRequest(t, router, "POST", "/book", map[string]string{HeaderCaptchaPass: "good-pass", HeaderSession: "tab-1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = captchaRequest(t, router, "POST", "/book", map[string]string{HeaderCaptchaPass: "stale-pass", HeaderSession: "tab-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	mockVerifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}
