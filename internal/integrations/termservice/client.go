package termservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент сервиса термов согласия
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента термов
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetLatestTerm получает актуальный терм согласия
func (c *Client) GetLatestTerm(ctx context.Context) (*Term, error) {
	url := fmt.Sprintf("%s/internal/terms/latest", c.baseURL)
	return c.getTerm(ctx, url)
}

// GetTerm получает терм согласия по ID
// Используется для восстановления точного текста при генерации подписи
func (c *Client) GetTerm(ctx context.Context, termID int64) (*Term, error) {
	url := fmt.Sprintf("%s/internal/terms/%d", c.baseURL, termID)
	return c.getTerm(ctx, url)
}

func (c *Client) getTerm(ctx context.Context, url string) (*Term, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrTermNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var term Term
	if err := json.NewDecoder(resp.Body).Decode(&term); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &term, nil
}
