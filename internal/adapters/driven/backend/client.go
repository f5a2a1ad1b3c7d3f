package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driven"
	"github.com/custodia-labs/siteassist/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Backend = (*Client)(nil)

// maxBodySize bounds how much of a response is read.
const maxBodySize = 16 << 20

// SettingsSource provides the current backend settings.
type SettingsSource interface {
	Backend() domain.BackendSettings
}

// StaticSettings is a SettingsSource with fixed values.
type StaticSettings domain.BackendSettings

// Backend returns the fixed settings.
func (s StaticSettings) Backend() domain.BackendSettings {
	return domain.BackendSettings(s)
}

// Client talks to the knowledge-base backend.
type Client struct {
	httpClient *http.Client
	settings   SettingsSource
	userAgent  string

	mu        sync.Mutex
	limiter   *rate.Limiter
	limitRate float64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a backend client. The HTTP client has no timeout of its
// own; a configured backend.timeout is applied per request.
func NewClient(settings SettingsSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		settings:   settings,
		userAgent:  "siteassist",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExtractURLs classifies the pages reachable from seed.
func (c *Client) ExtractURLs(ctx context.Context, seed string) (*domain.ClassifiedURLSet, error) {
	var resp extractResponse
	if err := c.post(ctx, pathExtractURLs, urlRequest{URL: seed}, &resp); err != nil {
		return nil, err
	}
	return domain.NewClassifiedURLSet(resp.DescURLs, resp.ProductServiceURLs), nil
}

// ProcessURLs submits one list to its kind's processing endpoint.
func (c *Client) ProcessURLs(ctx context.Context, kind domain.ListKind, urls []string) (*driven.ProcessReply, error) {
	path := pathProcessDescURLs
	if kind == domain.KindProduct {
		path = pathProcessProductURLs
	}
	return c.process(ctx, path, urlsRequest{URLs: urls})
}

// ProcessText submits a text blob to its kind's processing endpoint.
func (c *Client) ProcessText(ctx context.Context, kind domain.ListKind, text string) (*driven.ProcessReply, error) {
	path := pathProcessDescText
	if kind == domain.KindProduct {
		path = pathProcessProductText
	}
	return c.process(ctx, path, textRequest{Text: text})
}

func (c *Client) process(ctx context.Context, path string, body any) (*driven.ProcessReply, error) {
	var resp processResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	return &driven.ProcessReply{
		Message:  resp.Message,
		Products: productsToDomain(resp.Products),
	}, nil
}

// Chat sends one query and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, query string) (string, error) {
	var resp chatResponse
	if err := c.post(ctx, pathChatbot, queryRequest{Query: query}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// ListDescriptions returns every stored description document.
func (c *Client) ListDescriptions(ctx context.Context) ([]domain.KnowledgeDocument, error) {
	var resp descriptionsResponse
	if err := c.do(ctx, http.MethodGet, pathViewAllDescriptions, nil, &resp); err != nil {
		return nil, err
	}
	docs := make([]domain.KnowledgeDocument, 0, len(resp.Descriptions))
	for _, d := range resp.Descriptions {
		docs = append(docs, d.toDomain())
	}
	return docs, nil
}

// AddDescription stores a new description document.
func (c *Client) AddDescription(ctx context.Context, in domain.DescriptionInput) (string, error) {
	req := descriptionRequest{DocID: in.ID, Title: in.Title, Text: in.Text, Source: in.Source}
	return c.message(ctx, pathAddDescription, req)
}

// RemoveDescription deletes a description document by id.
func (c *Client) RemoveDescription(ctx context.Context, id string) (string, error) {
	return c.message(ctx, pathRemoveDescription, descriptionRequest{DocID: id})
}

// ManageDescription performs an action-tagged description change.
func (c *Client) ManageDescription(ctx context.Context, action domain.ManageAction, in domain.DescriptionInput) (string, error) {
	req := descriptionRequest{
		Action: string(action),
		DocID:  in.ID,
		Title:  in.Title,
		Text:   in.Text,
		Source: in.Source,
	}
	return c.message(ctx, pathManageDescription, req)
}

func (c *Client) message(ctx context.Context, path string, body any) (string, error) {
	var resp messageResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ListProducts returns every stored product.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, pathViewAllProducts, nil, &resp); err != nil {
		return nil, err
	}
	return productsToDomain(resp.Products), nil
}

// AddProduct stores a new product.
func (c *Client) AddProduct(ctx context.Context, p domain.Product) (*driven.ProductReply, error) {
	return c.writeProduct(ctx, pathAddProduct, p)
}

// UpdateProduct replaces an existing product.
func (c *Client) UpdateProduct(ctx context.Context, p domain.Product) (*driven.ProductReply, error) {
	return c.writeProduct(ctx, pathUpdateProduct, p)
}

func (c *Client) writeProduct(ctx context.Context, path string, p domain.Product) (*driven.ProductReply, error) {
	var resp productWriteResponse
	if err := c.post(ctx, path, productToWire(p), &resp); err != nil {
		return nil, err
	}
	product := resp.Product.toDomain()
	switch {
	case resp.ProductID != "":
		product.ID = resp.ProductID
	case product.ID == "":
		product.ID = p.ID
	}
	return &driven.ProductReply{Message: resp.Message, Product: product}, nil
}

// RemoveProduct deletes products matching the reference.
func (c *Client) RemoveProduct(ctx context.Context, ref domain.ProductRef) (*driven.RemoveReply, error) {
	var resp removeProductResponse
	req := removeProductRequest{ProductID: ref.ID, Name: ref.Name}
	if err := c.post(ctx, pathRemoveProduct, req, &resp); err != nil {
		return nil, err
	}
	return &driven.RemoveReply{Message: resp.Message, RemovedIDs: resp.RemovedIDs}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do performs a single request and decodes the reply into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	settings := c.settings.Backend()

	if err := c.wait(ctx, settings.RateLimit); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, settings.Endpoint(path), reader)
	if err != nil {
		return fmt.Errorf("creating %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Request(method, path, 0, time.Since(start))
		return transportError(err)
	}
	defer resp.Body.Close()
	logger.Request(method, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.BackendError{Status: resp.StatusCode, Message: parseErrorBody(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

// wait applies the configured requests-per-second cap. The limiter is
// rebuilt when the configured rate changes.
func (c *Client) wait(ctx context.Context, rps float64) error {
	if rps <= 0 {
		return nil
	}
	c.mu.Lock()
	if c.limiter == nil || c.limitRate != rps {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		c.limitRate = rps
	}
	limiter := c.limiter
	c.mu.Unlock()
	return limiter.Wait(ctx)
}

// transportError maps a failed round trip to ErrBackendUnavailable with a
// short reason suitable for "Error: <reason>" statuses.
func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	reason := err.Error()
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		reason = "timeout"
	default:
		var opErr *net.OpError
		if errors.As(err, &opErr) {
			reason = opErr.Op + " " + opErr.Net + ": " + opErr.Err.Error()
		}
	}
	return &unavailableError{reason: reason, cause: err}
}

// unavailableError reports a backend that could not be reached.
type unavailableError struct {
	reason string
	cause  error
}

func (e *unavailableError) Error() string {
	return e.reason
}

func (e *unavailableError) Unwrap() []error {
	return []error{domain.ErrBackendUnavailable, e.cause}
}
