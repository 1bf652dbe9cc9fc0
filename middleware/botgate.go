package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"clothing-store/libs"
	"clothing-store/metrics"
	"clothing-store/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	maxInspectedBody = 1 << 20
	parsedBodyKey    = "botgate_body"
)

var errBodyTooLarge = errors.New("request body too large")

var honeypotFields = []string{"website", "hp", "honeypot"}

var (
	captchaBodyFields   = []string{"captchaToken", "recaptchaToken", "captcha", "token", "g-recaptcha-response", "cf-turnstile-response"}
	captchaHeaderFields = []string{"X-Captcha-Token", "X-Recaptcha-Token"}
	captchaQueryFields  = []string{"captchaToken", "captcha"}
)

// Honeypot rejects submissions that fill any hidden trap field.
func Honeypot() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := inspectBody(c)
		if err != nil {
			abortBodyTooLarge(c)
			return
		}
		for _, field := range honeypotFields {
			if nonEmpty(body[field]) || strings.TrimSpace(c.PostForm(field)) != "" {
				metrics.BotGateRejected(routeName(c), "honeypot")
				c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
					Success: false,
					Error:   "Invalid submission",
				})
				return
			}
		}
		c.Next()
	}
}

// Captcha verifies the client's captcha token. With enabled false the gate
// is a no-op.
func Captcha(verifier libs.CaptchaVerifier, enabled bool, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		token, err := captchaToken(c)
		if err != nil {
			abortBodyTooLarge(c)
			return
		}
		if token == "" {
			metrics.BotGateRejected(routeName(c), "captcha_missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   "Captcha token is required",
			})
			return
		}

		err = verifier.Verify(c.Request.Context(), token, c.ClientIP())
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, libs.ErrCaptchaRejected):
			metrics.BotGateRejected(routeName(c), "captcha_rejected")
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   "Captcha verification failed",
			})
		default:
			log.WithError(err).Error("Captcha verification unavailable")
			metrics.BotGateRejected(routeName(c), "captcha_unavailable")
			c.AbortWithStatusJSON(http.StatusBadGateway, models.ErrorResponse{
				Success: false,
				Error:   "Captcha service unavailable",
			})
		}
	}
}

func captchaToken(c *gin.Context) (string, error) {
	body, err := inspectBody(c)
	if err != nil {
		return "", err
	}
	for _, field := range captchaBodyFields {
		if s, ok := body[field].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), nil
		}
	}
	for _, header := range captchaHeaderFields {
		if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
			return v, nil
		}
	}
	for _, field := range captchaQueryFields {
		if v := strings.TrimSpace(c.Query(field)); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// inspectBody decodes a JSON body once per request and puts the raw bytes
// back so handlers can still bind it. Bodies over maxInspectedBody are
// refused rather than truncated.
func inspectBody(c *gin.Context) (map[string]interface{}, error) {
	if cached, ok := c.Get(parsedBodyKey); ok {
		if err, isErr := cached.(error); isErr {
			return nil, err
		}
		return cached.(map[string]interface{}), nil
	}

	parsed := map[string]interface{}{}
	if c.Request.Body == nil || !strings.Contains(c.ContentType(), "json") {
		c.Set(parsedBodyKey, parsed)
		return parsed, nil
	}

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInspectedBody+1))
	c.Request.Body.Close()
	if len(raw) > maxInspectedBody {
		c.Set(parsedBodyKey, errBodyTooLarge)
		return nil, errBodyTooLarge
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	c.Set(parsedBodyKey, parsed)
	if err != nil {
		return parsed, nil
	}
	_ = json.Unmarshal(raw, &parsed)
	return parsed, nil
}

func abortBodyTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
		Success: false,
		Error:   "Request body too large",
	})
}

func nonEmpty(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	default:
		return true
	}
}

func routeName(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}
