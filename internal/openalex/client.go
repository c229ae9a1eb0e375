package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pubfinder/internal"
	"pubfinder/internal/config"
)

// Client fetches works for one institution from the OpenAlex API.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
}

type worksPage struct {
	Results []json.RawMessage `json:"results"`
	Meta    struct {
		NextCursor *string `json:"next_cursor"`
	} `json:"meta"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
	}
}

// FetchWorks pages through /works with cursor pagination and shapes every
// result. A non-2xx status is fatal for the run. A work that cannot be shaped
// is recorded in the skip diagnostics with its raw payload and pagination
// continues.
func (c *Client) FetchWorks(ctx context.Context) (internal.AggregatorFetchResult, error) {
	if strings.TrimSpace(c.cfg.InstitutionRORID) == "" {
		return internal.AggregatorFetchResult{}, errors.New("missing OPENALEX_ROR_ID")
	}

	result := internal.AggregatorFetchResult{Works: make(map[string]internal.Work)}
	seen := map[string]struct{}{}
	cursor := "*"

	fmt.Println("fetching works from OpenAlex...")
	for cursor != "" {
		page, err := c.worksPage(ctx, cursor)
		if err != nil {
			return internal.AggregatorFetchResult{}, err
		}

		for _, raw := range page.Results {
			work, err := c.toWork(raw)
			if err != nil {
				result.Skipped = append(result.Skipped, internal.SkippedWork{
					WorkID:  rawWorkID(raw),
					Reason:  err.Error(),
					RawJSON: string(raw),
				})
				continue
			}
			result.Works[work.ID] = work
		}

		if page.Meta.NextCursor == nil {
			break
		}
		if _, ok := seen[*page.Meta.NextCursor]; ok {
			break
		}
		seen[*page.Meta.NextCursor] = struct{}{}
		cursor = *page.Meta.NextCursor
	}

	fmt.Printf("total works fetched from OpenAlex: %d\n", len(result.Works))
	return result, nil
}

func (c *Client) worksPage(ctx context.Context, cursor string) (worksPage, error) {
	u, err := url.Parse(strings.TrimRight(c.cfg.OpenAlexBaseURL, "/") + "/works")
	if err != nil {
		return worksPage{}, err
	}
	q := u.Query()
	q.Set("filter", fmt.Sprintf("institutions.ror:%s,publication_year:%d-%d",
		c.cfg.InstitutionRORID, c.cfg.FromYear, c.cfg.ToYear))
	q.Set("per-page", "200")
	q.Set("cursor", cursor)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return worksPage{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return worksPage{}, err
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return worksPage{}, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return worksPage{}, fmt.Errorf("openalex api error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var page worksPage
	if err := json.Unmarshal(body, &page); err != nil {
		return worksPage{}, err
	}
	return page, nil
}

func (c *Client) toWork(raw json.RawMessage) (internal.Work, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return internal.Work{}, err
	}

	id, ok := m["id"].(string)
	if !ok || strings.TrimSpace(id) == "" {
		return internal.Work{}, errors.New("missing work id")
	}

	work := internal.Work{
		ID:              id,
		DOIs:            extractDOIs(m["ids"]),
		Title:           toStringPtr(m["title"]),
		PublicationYear: toIntPtr(m["publication_year"]),
		PublicationDate: toStringPtr(m["publication_date"]),
		Type:            toStringPtr(m["type"]),
	}

	authors, err := c.institutionAuthors(m["authorships"])
	if err != nil {
		return internal.Work{}, err
	}
	work.Authors = authors

	if oa, ok := m["open_access"].(map[string]any); ok {
		work.IsOA, _ = oa["is_oa"].(bool)
		work.OAStatus = toStringPtr(oa["oa_status"])
		work.OAURL = toStringPtr(oa["oa_url"])
	}

	if loc, ok := m["primary_location"].(map[string]any); ok {
		work.IsAccepted, _ = loc["is_accepted"].(bool)
		work.IsPublished, _ = loc["is_published"].(bool)
		work.License = toStringPtr(loc["license"])
		work.PDFURL = toStringPtr(loc["pdf_url"])
		if source, ok := loc["source"].(map[string]any); ok {
			work.SourceName = toStringPtr(source["display_name"])
		}
	}

	return work, nil
}

// institutionAuthors walks every (author, affiliation) pair and keeps, in
// encounter order, the pairs whose affiliation lists the configured
// institution's OpenAlex ID.
func (c *Client) institutionAuthors(v any) ([]internal.InstitutionAuthor, error) {
	authorships, ok := v.([]any)
	if !ok {
		return nil, nil
	}

	var out []internal.InstitutionAuthor
	for _, a := range authorships {
		authorship, ok := a.(map[string]any)
		if !ok {
			continue
		}
		affiliations, _ := authorship["affiliations"].([]any)
		for _, af := range affiliations {
			aff, ok := af.(map[string]any)
			if !ok {
				continue
			}
			if !containsString(aff["institution_ids"], c.cfg.OpenAlexInstitutionID) {
				continue
			}
			author, ok := authorship["author"].(map[string]any)
			if !ok {
				return nil, errors.New("authorship without author object")
			}
			name, ok := author["display_name"].(string)
			if !ok {
				return nil, errors.New("author without display_name")
			}
			rawAff, _ := aff["raw_affiliation_string"].(string)
			out = append(out, internal.InstitutionAuthor{
				DisplayName:    name,
				RawAffiliation: rawAff,
				ORCID:          toStringPtr(author["orcid"]),
			})
		}
	}
	return out, nil
}

// extractDOIs handles the ids.doi field arriving either as a single string or
// as a list; every entry is normalized.
func extractDOIs(v any) []string {
	ids, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	var raw []string
	switch t := ids["doi"].(type) {
	case string:
		raw = []string{t}
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				raw = append(raw, s)
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, doi := range raw {
		if doi == "" {
			continue
		}
		out = append(out, internal.NormalizeDOI(doi))
	}
	return out
}

func rawWorkID(raw json.RawMessage) string {
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ID == "" {
		return "unknown"
	}
	return probe.ID
}

func containsString(v any, want string) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range arr {
		if s, ok := item.(string); ok && s == want {
			return true
		}
	}
	return false
}

func toStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

func toIntPtr(v any) *int {
	switch t := v.(type) {
	case float64:
		i := int(t)
		return &i
	case int:
		return &t
	case json.Number:
		if i, err := t.Int64(); err == nil {
			n := int(i)
			return &n
		}
	}
	return nil
}
