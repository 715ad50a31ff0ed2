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

const getirDefaultBaseURL = "https://food-api.getir.com"

// GetirClient reports deliveries to the Getir Yemek food API. Getir
// authenticates with a plain "token" header and expects a POST.
type GetirClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewGetirClient creates a client; an empty base URL selects the
// production API.
func NewGetirClient(baseURL string) *GetirClient {
	if baseURL == "" {
		baseURL = getirDefaultBaseURL
	}
	return &GetirClient{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
	}
}

// ReportDelivered marks the food order delivered.
func (c *GetirClient) ReportDelivered(
	ctx context.Context, aggregate *order.Order, cred business.APICredential,
) error {
	if cred.Key == "" {
		return errs.NewValueIsRequiredError("getir credentials")
	}

	url := fmt.Sprintf("%s/food-orders/%s/deliver", c.baseURL, aggregate.OrderNumber())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(`{}`))
	if err != nil {
		return err
	}
	req.Header.Set("token", cred.Key)
	req.Header.Set("Content-Type", "application/json")

	return doAndCheck(c.httpClient, req, "getir")
}
