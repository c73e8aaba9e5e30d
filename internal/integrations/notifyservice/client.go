package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation передает подписанное подтверждение бронирования
// внешнему сервису рассылки
// Ошибка доставки не отменяет уже закоммиченное бронирование - решение о
// повторной отправке принимает вызывающая сторона
func (c *Client) SendBookingConfirmation(ctx context.Context, confirmation *BookingConfirmation) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmation", c.baseURL)

	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal confirmation: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("Booking confirmation sent: booking_id=%d", confirmation.BookingID)
	return nil
}
