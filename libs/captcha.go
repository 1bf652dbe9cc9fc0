package libs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sethvargo/go-retry"
)

var (
	ErrCaptchaRejected    = errors.New("captcha verification failed")
	ErrCaptchaUnavailable = errors.New("captcha service unavailable")
)

type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

// SiteVerifier talks to a reCAPTCHA/Turnstile style siteverify endpoint.
// Transport failures and 5xx responses are retried exactly once; a 4xx or
// an explicit success=false is final.
type SiteVerifier struct {
	client    *http.Client
	secret    string
	verifyURL string
	backoff   time.Duration
}

func NewSiteVerifier(secret, verifyURL string, timeout time.Duration) *SiteVerifier {
	client := cleanhttp.DefaultPooledClient()
	client.Timeout = timeout
	return &SiteVerifier{
		client:    client,
		secret:    secret,
		verifyURL: verifyURL,
		backoff:   300 * time.Millisecond,
	}
}

// WithBackoff changes the pause before the single retry.
func (v *SiteVerifier) WithBackoff(d time.Duration) *SiteVerifier {
	v.backoff = d
	return v
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

func (v *SiteVerifier) Verify(ctx context.Context, token, remoteIP string) error {
	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	backoff := retry.WithMaxRetries(1, retry.NewConstant(v.backoff))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := v.client.Do(req)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrCaptchaUnavailable, err))
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("%w: status %d", ErrCaptchaUnavailable, resp.StatusCode))
		case resp.StatusCode >= 400:
			return fmt.Errorf("%w: status %d", ErrCaptchaRejected, resp.StatusCode)
		}

		var body siteVerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrCaptchaUnavailable, err)
		}
		if !body.Success {
			return fmt.Errorf("%w: %s", ErrCaptchaRejected, strings.Join(body.ErrorCodes, ","))
		}
		return nil
	})
}
