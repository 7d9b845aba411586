package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/captcha"
)

const (
	// ContextKeyIsHumanVerified holds the key for captcha status in Gin context.
	ContextKeyIsHumanVerified = "isHumanVerified"

	// HeaderCaptchaToken carries a freshly solved Turnstile challenge.
	HeaderCaptchaToken = "X-Captcha-Token"
	// HeaderCaptchaPass carries a pass issued after an earlier challenge.
	HeaderCaptchaPass = "X-Captcha-Pass"
	// HeaderSession identifies the browser tab session a pass is bound to.
	HeaderSession = "X-Session"
)

// CaptchaMiddleware records whether the request comes from a visitor who has
// solved a Turnstile challenge. A solved challenge is answered with a pass in
// the X-Captcha-Pass response header that later requests may present instead.
func CaptchaMiddleware(verifier captcha.ITurnstileVerifier, passTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !verifier.Enabled() {
			c.Set(ContextKeyIsHumanVerified, true)
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		session := c.GetHeader(HeaderSession)
		isHuman := false

		if pass := c.GetHeader(HeaderCaptchaPass); pass != "" {
			isHuman = verifier.CheckPass(pass, clientIP, session)
		}

		if token := c.GetHeader(HeaderCaptchaToken); !isHuman && token != "" {
			verified, err := verifier.Verify(c.Request.Context(), token, clientIP)
			if err != nil {
				log.Printf("Error verifying Turnstile token: %v", err)
			} else if verified {
				isHuman = true
				pass, err := verifier.IssuePass(clientIP, session, passTTL)
				if err != nil {
					log.Printf("Error issuing captcha pass: %v", err)
				} else {
					c.Header(HeaderCaptchaPass, pass)
				}
			}
		}

		c.Set(ContextKeyIsHumanVerified, isHuman)
		c.Next()
	}
}

// RequireHuman rejects requests CaptchaMiddleware could not verify.
func RequireHuman() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextKeyIsHumanVerified) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Captcha verification required"})
			return
		}
		c.Next()
	}
}
