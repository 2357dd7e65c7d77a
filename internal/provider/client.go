package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error transporte le statut et le corps d'une réponse non-2xx du provider,
// tels quels, pour les propager au caller
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Client est l'adaptateur HTTP vers l'API D-ID. Stateless: le throttling
// est la responsabilité du gateway, jamais du client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateTalk soumet un job de génération (POST /talks)
func (c *Client) CreateTalk(ctx context.Context, req *TalkRequest) (*TalkResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal talk request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/talks", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build talk request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Basic "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	// D-ID répond 201 à la création
	if resp.StatusCode != http.StatusCreated {
		return nil, newProviderError(resp)
	}

	var talk TalkResponse
	if err := json.NewDecoder(resp.Body).Decode(&talk); err != nil {
		return nil, fmt.Errorf("failed to decode talk response: %w", err)
	}

	return &talk, nil
}

// GetTalk récupère le statut d'un talk (GET /talks/{id})
func (c *Client) GetTalk(ctx context.Context, id string) (*TalkResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/talks/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newProviderError(resp)
	}

	var talk TalkResponse
	if err := json.NewDecoder(resp.Body).Decode(&talk); err != nil {
		return nil, fmt.Errorf("failed to decode talk response: %w", err)
	}

	return &talk, nil
}

// ListPresenters récupère les avatars prédéfinis (GET /presenters)
func (c *Client) ListPresenters(ctx context.Context) ([]Presenter, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/presenters", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build presenters request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newProviderError(resp)
	}

	var result presentersResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode presenters response: %w", err)
	}

	return result.Presenters, nil
}

// FetchResult ouvre un flux sur la vidéo générée (result_url). Ne passe pas
// par le throttle: l'URL pointe sur le CDN du provider, pas sur son API.
func (c *Client) FetchResult(ctx context.Context, resultURL string) (io.ReadCloser, string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build result request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch result: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, "", newProviderError(resp)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}

	return resp.Body, contentType, nil
}

func newProviderError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return &Error{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
