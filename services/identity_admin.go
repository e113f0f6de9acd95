package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// IdentityAdmin removes users from the hosted identity provider.
type IdentityAdmin interface {
	DeleteUser(ctx context.Context, userID string) error
}

// HTTPIdentityAdmin calls the provider's admin REST API with a service key.
type HTTPIdentityAdmin struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

func NewHTTPIdentityAdmin(baseURL, serviceKey string) *HTTPIdentityAdmin {
	return &HTTPIdentityAdmin{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

func (a *HTTPIdentityAdmin) DeleteUser(ctx context.Context, userID string) error {
	endpoint := fmt.Sprintf("%s/admin/users/%s", a.baseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.serviceKey)
	req.Header.Set("apikey", a.serviceKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("error deleting identity user: %w", err)
	}
	defer resp.Body.Close()

	// Already gone counts as deleted.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// NoopIdentityAdmin is used when no admin endpoint is configured.
type NoopIdentityAdmin struct{}

func (NoopIdentityAdmin) DeleteUser(context.Context, string) error { return nil }
