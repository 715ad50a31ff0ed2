package platform

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"dispatch/internal/core/domain/model/business"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

const trendyolDefaultBaseURL = "https://api.trendyol.com/sapigw"

// TrendyolClient reports deliveries to the Trendyol Yemek supplier API.
// Shipment packages are addressed by supplier id and order number and
// authenticated with Basic auth over the API key.
type TrendyolClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewTrendyolClient creates a client; an empty base URL selects the
// production API.
func NewTrendyolClient(baseURL string) *TrendyolClient {
	if baseURL == "" {
		baseURL = trendyolDefaultBaseURL
	}
	return &TrendyolClient{
		httpClient: newHTTPClient(),
		baseURL:    baseURL,
	}
}

// ReportDelivered marks the order's shipment package delivered.
func (c *TrendyolClient) ReportDelivered(
	ctx context.Context, aggregate *order.Order, cred business.APICredential,
) error {
	if cred.Key == "" || cred.SupplierID == "" {
		return errs.NewValueIsRequiredError("trendyol credentials")
	}

	url := fmt.Sprintf("%s/suppliers/%s/shipment-packages/%s/delivered",
		c.baseURL, cred.SupplierID, aggregate.OrderNumber())

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url,
		strings.NewReader(`{"status":"Delivered"}`))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte(cred.Key+":")))
	req.Header.Set("Content-Type", "application/json")

	return doAndCheck(c.httpClient, req, "trendyol")
}
