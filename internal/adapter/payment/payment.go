// Package payment holds the client for the hosted payment gateway.
// The gateway initializes a transaction for an amount in minor units
// and answers with a hosted authorization URL the client is
// redirected to.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/retry"
)

var _ port.PaymentGateway = (*Gateway)(nil)

var ErrGatewayRejected = errors.New("gateway rejected transaction")

const initPath = "/transaction/initialize"

type Gateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

func NewGateway(baseURL, secretKey string) Gateway {
	return Gateway{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type (
	initRequest struct {
		Amount      int64  `json:"amount"`
		Currency    string `json:"currency"`
		Reference   string `json:"reference"`
		Email       string `json:"email"`
		CallbackURL string `json:"callback_url"`
	}

	initResponse struct {
		Status bool   `json:"status"`
		Msg    string `json:"message"`
		Data   struct {
			AuthorizationURL string `json:"authorization_url"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
)

func (g Gateway) InitTransaction(
	ctx context.Context, pr port.PaymentRequest,
) (string, error) {
	const op = "Gateway.InitTransaction"

	body, err := json.Marshal(initRequest{
		Amount:      pr.Amount,
		Currency:    pr.Currency,
		Reference:   pr.Reference,
		Email:       pr.Email,
		CallbackURL: pr.CallbackURL,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.ExponentialBackoff(200 * time.Millisecond),
		ShouldRetry: isRetryable,
	}

	url, err := retry.DoWithResult(ctx, retryCfg, func() (string, error) {
		return g.postInit(ctx, body)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return url, nil
}

func (g Gateway) postInit(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, g.baseURL+initPath, bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, res.Body)
		_ = res.Body.Close()
	}()

	if res.StatusCode >= http.StatusInternalServerError {
		return "", &serverError{res.StatusCode}
	}

	var parsed initResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK || !parsed.Status {
		return "", fmt.Errorf("%w: %s", ErrGatewayRejected, parsed.Msg)
	}
	return parsed.Data.AuthorizationURL, nil
}

type serverError struct {
	code int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("gateway answered %d", e.code)
}

// isRetryable: network failures and 5xx answers are worth another
// attempt, an explicit rejection is not.
func isRetryable(err error) bool {
	var se *serverError
	if errors.As(err, &se) {
		return true
	}
	return !errors.Is(err, ErrGatewayRejected)
}
