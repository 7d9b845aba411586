package captcha

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"goldenview/realty/internal/config"
)

const passIssuer = "goldenview-captcha"

// ITurnstileVerifier checks Cloudflare Turnstile challenges and issues short
// lived passes so a visitor who solved one is not challenged on every form.
type ITurnstileVerifier interface {
	Enabled() bool
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
	IssuePass(ip, session string, ttl time.Duration) (string, error)
	CheckPass(pass, ip, session string) bool
}

// siteVerifyResponse is the expected structure from the siteverify endpoint.
type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
	Hostname   string   `json:"hostname"`
	Action     string   `json:"action"`
}

// turnstileVerifier implements ITurnstileVerifier.
type turnstileVerifier struct {
	secretKey  string
	verifyURL  string
	passSecret []byte
	httpClient *http.Client
}

// NewTurnstileVerifier creates a new Turnstile verifier. Passes are signed
// with the JWT secret.
func NewTurnstileVerifier(cfg *config.Config) ITurnstileVerifier {
	if cfg.CloudflareTurnstileSecretKey == "" {
		log.Println("WARN: Cloudflare Turnstile secret key not configured. Captcha checks are disabled.")
	}
	return &turnstileVerifier{
		secretKey:  cfg.CloudflareTurnstileSecretKey,
		verifyURL:  cfg.CloudflareSiteVerifyURL,
		passSecret: []byte(cfg.JwtSecret),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *turnstileVerifier) Enabled() bool {
	return v.secretKey != ""
}

// Verify calls the Cloudflare siteverify endpoint.
func (v *turnstileVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}

	form := map[string]string{"secret": v.secretKey, "response": token}
	if remoteIP != "" {
		form["remoteip"] = remoteIP
	}
	body, err := json.Marshal(form)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to create turnstile request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to contact turnstile service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return false, fmt.Errorf("failed to read turnstile response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("turnstile verification failed with status %d", resp.StatusCode)
	}

	var out siteVerifyResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, fmt.Errorf("failed to parse turnstile response: %w", err)
	}
	if !out.Success {
		log.Printf("Turnstile verification unsuccessful. Error codes: %v", out.ErrorCodes)
	}
	return out.Success, nil
}

// passClaims binds a pass to the client address and browser session it was issued to.
type passClaims struct {
	IP      string `json:"ip"`
	Session string `json:"ses"`
	jwt.RegisteredClaims
}

// IssuePass signs a pass proving the holder solved a challenge.
func (v *turnstileVerifier) IssuePass(ip, session string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &passClaims{
		IP:      ip,
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    passIssuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.passSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign captcha pass: %w", err)
	}
	return signed, nil
}

// CheckPass reports whether pass is unexpired and was issued to this ip and session.
func (v *turnstileVerifier) CheckPass(pass, ip, session string) bool {
	claims := &passClaims{}
	token, err := jwt.ParseWithClaims(pass, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.passSecret, nil
	}, jwt.WithIssuer(passIssuer))
	if err != nil || !token.Valid {
		return false
	}
	return claims.IP == ip && claims.Session == session
}
