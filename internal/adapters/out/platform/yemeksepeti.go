package platform

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const yemeksepetiDefaultBaseURL = "https://api.yemeksepeti.com"

// YemeksepetiClient reports deliveries to the Yemeksepeti restaurant API
// using Bearer authentication.
type YemeksepetiClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYemeksepetiClient creates a client; an empty base URL selects the
// production API.
func NewYemeksepetiClient(baseURL string) *YemeksepetiClient {
	if baseURL == "" {
		baseURL = yemeksepetiDefaultBaseURL
	}
	return &YemeksepetiClient{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
	}
}

// ReportDelivered sets the order's status to delivered.
func (c *YemeksepetiClient) ReportDelivered(
	ctx context.Context, aggregate *order.Order, cred business.APICredential,
) error {
	if cred.Key == "" {
		return errs.NewValueIsRequiredError("yemeksepeti credentials")
	}

	url := fmt.Sprintf("%s/v1/orders/%s/status", c.baseURL, aggregate.OrderNumber())

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url,
		strings.NewReader(`{"status":"DELIVERED"}`))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cred.Key)
	req.Header.Set("Content-Type", "application/json")

	return doAndCheck(c.httpClient, req, "yemeksepeti")
}
