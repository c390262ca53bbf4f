// Package accounting talks to the host ERP's accounting service over its
// JSON API. The dispatch core only needs three calls: raise an invoice, post
// it, and register a cash payment.
package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"smartdelivery/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// StatusError reports a non-success response from the accounting service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("accounting service returned %d: %s", e.StatusCode, e.Body)
}

// HTTPGateway implements ports.AccountingGateway over HTTP.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates the gateway against the service's base URL. A nil
// client gets a default with a request timeout.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &HTTPGateway{baseURL: baseURL, client: client}
}

type invoiceLinePayload struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type createInvoicePayload struct {
	PayerName  string               `json:"payer_name"`
	PayerPhone string               `json:"payer_phone"`
	Reference  string               `json:"reference"`
	Narration  string               `json:"narration"`
	Lines      []invoiceLinePayload `json:"lines"`
}

type createInvoiceResponse struct {
	InvoiceRef string `json:"invoice_ref"`
}

type paymentResponse struct {
	PaymentState string `json:"payment_state"`
}

// CreateInvoice raises a draft invoice and returns its handle.
func (g *HTTPGateway) CreateInvoice(ctx context.Context, req ports.InvoiceRequest) (string, error) {
	payload := createInvoicePayload{
		PayerName:  req.PayerName,
		PayerPhone: req.PayerPhone,
		Reference:  req.Reference,
		Narration:  req.Narration,
		Lines:      make([]invoiceLinePayload, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		payload.Lines = append(payload.Lines, invoiceLinePayload(line))
	}

	var resp createInvoiceResponse
	if err := g.post(ctx, "/api/invoices", payload, &resp); err != nil {
		return "", err
	}
	if resp.InvoiceRef == "" {
		return "", fmt.Errorf("accounting service returned empty invoice ref")
	}
	return resp.InvoiceRef, nil
}

// PostInvoice confirms a draft invoice.
func (g *HTTPGateway) PostInvoice(ctx context.Context, invoiceRef string) error {
	path := fmt.Sprintf("/api/invoices/%s/post", url.PathEscape(invoiceRef))
	return g.post(ctx, path, struct{}{}, nil)
}

// RegisterCashPayment records a cash payment against the invoice and returns
// the reconciliation state the service reports.
func (g *HTTPGateway) RegisterCashPayment(ctx context.Context, invoiceRef string) (ports.PaymentState, error) {
	path := fmt.Sprintf("/api/invoices/%s/payments/cash", url.PathEscape(invoiceRef))

	var resp paymentResponse
	if err := g.post(ctx, path, struct{}{}, &resp); err != nil {
		return "", err
	}
	return ports.PaymentState(resp.PaymentState), nil
}

// post issues one JSON POST and decodes the response into out when non-nil.
func (g *HTTPGateway) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
