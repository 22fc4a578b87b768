package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/magicstars/ops-api/internal/application/ports"
	"github.com/magicstars/ops-api/internal/domain"
)

var _ ports.WebhookForwarder = (*Client)(nil)

// DefaultMaxResponseBytes límite de lectura del cuerpo de respuesta del servidor.
const DefaultMaxResponseBytes int64 = 8 << 20

// Client adaptador HTTP hacia el servidor de automatización. Se construye una vez
// por proceso y reutiliza el mismo *http.Client.
type Client struct {
	router     *Router
	httpClient *http.Client
	maxBytes   int64
}

// NewClient construye el cliente con el router de endpoints y el timeout de red.
func NewClient(router *Router, timeout time.Duration) *Client {
	return &Client{
		router:     router,
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   DefaultMaxResponseBytes,
	}
}

// WithMaxResponseBytes cambia el límite de lectura de respuestas. n <= 0 se ignora.
func (c *Client) WithMaxResponseBytes(n int64) *Client {
	if n > 0 {
		c.maxBytes = n
	}
	return c
}

// Forward hace POST al endpoint lógico y devuelve el status y cuerpo tal cual.
func (c *Client) Forward(ctx context.Context, endpoint string, body []byte) (*ports.WebhookResponse, error) {
	url, err := c.router.URL(endpoint)
	if err != nil {
		return nil, err
	}

	var reader io.Reader = http.NoBody
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: crear request %s: %w", domain.ErrWebhookUnavailable, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación en %s: %w", domain.ErrWebhookUnavailable, endpoint, ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada a %s fallida: %w", domain.ErrWebhookUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	// maxBytes+1: un byte extra detecta respuestas que exceden el límite.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta de %s: %w", domain.ErrWebhookUnavailable, endpoint, err)
	}
	if int64(len(raw)) > c.maxBytes {
		return nil, fmt.Errorf("%w: %s excede %d bytes", domain.ErrWebhookTooLarge, endpoint, c.maxBytes)
	}

	return &ports.WebhookResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}
