package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Fixed field projections requested from the content source, one per record
// type. The service never mutates catalog documents, only orders.
const (
	cakesQuery = `*[_type == "cake"]{_id, slug, _updatedAt, name, description, price, category, seo, mainImage, designs, images}`

	hampersQuery = `*[_type == "giftHamper"]{_id, slug, _updatedAt, name, shortDescription, price, seo, images}`

	postsQuery = `*[_type == "blogPost"]{_id, slug, _updatedAt, title, excerpt, seo}`

	orderQuery = `*[_type == "order" && _id == $id][0]`
)

// Client talks to the headless CMS over its HTTP query and mutation APIs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	dataset    string
	token      string
	userAgent  string
}

type ClientOptions struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	BaseURL    string // overrides the project-derived base URL when set
	UserAgent  string
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.api.sanity.io/v%s", opts.ProjectID, opts.APIVersion)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		dataset:    opts.Dataset,
		token:      opts.Token,
		userAgent:  opts.UserAgent,
	}
}

func (c *Client) GetCakes(ctx context.Context) ([]Cake, error) {
	var cakes []Cake
	if err := c.query(ctx, cakesQuery, nil, &cakes); err != nil {
		return nil, fmt.Errorf("failed to fetch cakes: %w", err)
	}
	return cakes, nil
}

func (c *Client) GetGiftHampers(ctx context.Context) ([]GiftHamper, error) {
	var hampers []GiftHamper
	if err := c.query(ctx, hampersQuery, nil, &hampers); err != nil {
		return nil, fmt.Errorf("failed to fetch gift hampers: %w", err)
	}
	return hampers, nil
}

func (c *Client) GetBlogPosts(ctx context.Context) ([]BlogPost, error) {
	var posts []BlogPost
	if err := c.query(ctx, postsQuery, nil, &posts); err != nil {
		return nil, fmt.Errorf("failed to fetch blog posts: %w", err)
	}
	return posts, nil
}

// GetOrder returns the order with the given document ID, or nil when the
// content source holds no such document.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order *Order
	params := map[string]string{"$id": id}
	if err := c.query(ctx, orderQuery, params, &order); err != nil {
		return nil, fmt.Errorf("failed to fetch order %s: %w", id, err)
	}
	if order == nil || order.ID == "" {
		return nil, nil
	}
	return order, nil
}

// PatchOrder applies a partial update to an order document and returns the
// updated document.
func (c *Client) PatchOrder(ctx context.Context, id string, set map[string]interface{}) (*Order, error) {
	body := map[string]interface{}{
		"mutations": []map[string]interface{}{
			{"patch": map[string]interface{}{"id": id, "set": set}},
		},
	}

	var result struct {
		Results []struct {
			Document *Order `json:"document"`
		} `json:"results"`
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s?returnDocuments=true", c.baseURL, c.dataset)
	if err := c.post(ctx, endpoint, body, &result); err != nil {
		return nil, fmt.Errorf("failed to patch order %s: %w", id, err)
	}

	if len(result.Results) == 0 || result.Results[0].Document == nil {
		return nil, fmt.Errorf("patch of order %s returned no document", id)
	}

	return result.Results[0].Document, nil
}

// DeleteOrder permanently removes an order document.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	body := map[string]interface{}{
		"mutations": []map[string]interface{}{
			{"delete": map[string]interface{}{"id": id}},
		},
	}

	endpoint := fmt.Sprintf("%s/data/mutate/%s", c.baseURL, c.dataset)
	if err := c.post(ctx, endpoint, body, nil); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	return nil
}

// UploadImage stores an image asset and returns its asset reference.
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("%s/assets/images/%s?filename=%s", c.baseURL, c.dataset, url.QueryEscape(filename))

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var result struct {
		Document struct {
			ID string `json:"_id"`
		} `json:"document"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	if result.Document.ID == "" {
		return "", fmt.Errorf("image upload returned no asset ID")
	}

	return result.Document.ID, nil
}

// query runs a read-only query and decodes the result envelope into out.
func (c *Client) query(ctx context.Context, q string, params map[string]string, out interface{}) error {
	values := url.Values{}
	values.Set("query", q)
	for k, v := range params {
		// Parameter values travel as JSON literals.
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode query param %s: %w", k, err)
		}
		values.Set(k, string(encoded))
	}

	endpoint := fmt.Sprintf("%s/data/query/%s?%s", c.baseURL, c.dataset, values.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query content source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if envelope.Result == nil {
		return nil
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("failed to decode query result: %w", err)
	}

	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach content source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
