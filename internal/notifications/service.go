package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelf/internal/config"
)

const userAgent = "Shelf-Go/0.1.0"

// Service defines the notification surface exposed to catalog operations.
type Service interface {
	NotifyLent(ctx context.Context, itemTitle, borrower string) error
	NotifyReturned(ctx context.Context, itemTitle string) error
	NotifyError(ctx context.Context, err error, detail string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		lending:  cfg.Notifications.Lending,
		errors:   cfg.Notifications.Errors,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	lending  bool
	errors   bool
	client   *http.Client
}

func (n *ntfyService) NotifyLent(ctx context.Context, itemTitle, borrower string) error {
	if !n.lending {
		return nil
	}
	itemTitle = strings.TrimSpace(itemTitle)
	borrower = strings.TrimSpace(borrower)
	data := payload{
		title:   "Shelf - Item Lent",
		message: fmt.Sprintf("%s lent to %s", itemTitle, borrower),
		tags:    []string{"shelf", "lending"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyReturned(ctx context.Context, itemTitle string) error {
	if !n.lending {
		return nil
	}
	itemTitle = strings.TrimSpace(itemTitle)
	data := payload{
		title:   "Shelf - Item Returned",
		message: fmt.Sprintf("%s returned", itemTitle),
		tags:    []string{"shelf", "lending"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, detail string) error {
	if !n.errors {
		return nil
	}
	message := "An error occurred"
	if err != nil {
		message = err.Error()
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		message = fmt.Sprintf("%s (%s)", message, detail)
	}
	data := payload{
		title:    "Shelf - Error",
		message:  message,
		tags:     []string{"shelf", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:   "Shelf - Test",
		message: "Notification test successful",
		tags:    []string{"shelf", "test"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyLent(context.Context, string, string) error { return nil }
func (noopService) NotifyReturned(context.Context, string) error     { return nil }
func (noopService) NotifyError(context.Context, error, string) error { return nil }
func (noopService) TestNotification(context.Context) error           { return nil }
