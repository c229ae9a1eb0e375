package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"pubfinder/internal"
	"pubfinder/internal/config"
)

// Client fetches research outputs from the institution's registry search API.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
}

type searchRequest struct {
	Size               int    `json:"size"`
	Offset             int    `json:"offset"`
	PublishedAfterDate string `json:"publishedAfterDate"`
}

type searchResponse struct {
	Count int                       `json:"count"`
	Items []internal.RegistryRecord `json:"items"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}
}

// FetchAll pages through the registry search endpoint and accumulates every
// record. A network failure or non-2xx status mid-pagination does not abort
// the run: whatever was accumulated is returned with a partial outcome so the
// caller can decide how much to trust it.
func (c *Client) FetchAll(ctx context.Context) (internal.RegistryFetchResult, error) {
	if strings.TrimSpace(c.cfg.RegistryAPIKey) == "" {
		return internal.RegistryFetchResult{}, errors.New("missing REGISTRY_API_KEY")
	}

	size := c.cfg.RegistryPageSize
	if size <= 0 {
		size = 100
	}

	result := internal.RegistryFetchResult{
		Records: make([]internal.RegistryRecord, 0),
		Outcome: internal.FetchComplete,
	}

	var bar *progressbar.ProgressBar
	offset := 0
	for {
		page, err := c.searchPage(ctx, size, offset)
		if err != nil {
			result.Outcome = internal.FetchPartial
			result.PartialReason = err.Error()
			return result, nil
		}

		if bar == nil {
			fmt.Printf("total items to fetch from registry: %d\n", page.Count)
			bar = progressbar.Default(int64(page.Count), "registry records")
		}

		result.Records = append(result.Records, page.Items...)
		_ = bar.Add(len(page.Items))

		// A short page signals the last one, whatever count claimed.
		if len(page.Items) < size {
			break
		}
		offset += size
	}

	return result, nil
}

func (c *Client) searchPage(ctx context.Context, size, offset int) (searchResponse, error) {
	payload, err := json.Marshal(searchRequest{
		Size:               size,
		Offset:             offset,
		PublishedAfterDate: c.cfg.PublishedAfter,
	})
	if err != nil {
		return searchResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.RegistryAPIURL, bytes.NewReader(payload))
	if err != nil {
		return searchResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.cfg.RegistryAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return searchResponse{}, err
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return searchResponse{}, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return searchResponse{}, fmt.Errorf("registry api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var page searchResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return searchResponse{}, err
	}
	return page, nil
}
