// Package gitlab is a minimal REST client for the merge request endpoints
// used by the analysis core. It implements contract.SourceClient.
package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/huangsam/reviewlens/internal/contract"
	"github.com/huangsam/reviewlens/schema"
)

// PerPage is the page size used for all list calls. The platform caps
// page sizes at 100, so fewer round trips are not possible.
const PerPage = 100

// Client talks to a GitLab instance's v4 REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient returns a Client for the given instance. baseURL must not
// have a trailing slash. The token may be empty for public projects.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, token: token, httpClient: httpClient}
}

// ListMergeRequests returns all merge requests matching opts, following
// pagination to exhaustion.
func (c *Client) ListMergeRequests(ctx context.Context, project string, opts contract.ListMROptions) ([]schema.MergeRequest, error) {
	query := url.Values{}
	if opts.State != "" && opts.State != schema.AnyState {
		query.Set("state", string(opts.State))
	}
	if opts.CreatedAfter != "" {
		query.Set("created_after", opts.CreatedAfter)
	}
	if opts.AuthorID != 0 {
		query.Set("author_id", strconv.Itoa(opts.AuthorID))
	}

	var all []schema.MergeRequest
	err := c.paginate(ctx, c.projectPath(project, "merge_requests"), query, func(body []byte) (int, error) {
		var page []schema.MergeRequest
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		all = append(all, page...)
		return len(page), nil
	})
	return all, err
}

// ListNotes returns all notes on one merge request, oldest first.
func (c *Client) ListNotes(ctx context.Context, project string, iid int) ([]schema.Note, error) {
	query := url.Values{}
	query.Set("sort", "asc")
	query.Set("order_by", "created_at")

	path := c.projectPath(project, fmt.Sprintf("merge_requests/%d/notes", iid))
	var all []schema.Note
	err := c.paginate(ctx, path, query, func(body []byte) (int, error) {
		var page []schema.Note
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		all = append(all, page...)
		return len(page), nil
	})
	return all, err
}

// GetChanges returns the file diffs for one merge request.
func (c *Client) GetChanges(ctx context.Context, project string, iid int) (schema.MRChanges, error) {
	path := c.projectPath(project, fmt.Sprintf("merge_requests/%d/changes", iid))
	body, err := c.getJSON(ctx, path, nil)
	if err != nil {
		return schema.MRChanges{}, err
	}
	var changes schema.MRChanges
	if err := json.Unmarshal(body, &changes); err != nil {
		return schema.MRChanges{}, fmt.Errorf("decode changes for !%d: %w", iid, err)
	}
	return changes, nil
}

// projectPath joins the project-scoped API path for a resource. The
// project identifier is URL-encoded, so both "group/repo" and numeric
// IDs work.
func (c *Client) projectPath(project, resource string) string {
	return fmt.Sprintf("%s/api/v4/projects/%s/%s", c.baseURL, url.PathEscape(project), resource)
}

// paginate walks a list endpoint page by page until a short page is
// returned. handle reports the number of items decoded from the page.
func (c *Client) paginate(ctx context.Context, path string, query url.Values, handle func([]byte) (int, error)) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("per_page", strconv.Itoa(PerPage))

	for page := 1; ; page++ {
		query.Set("page", strconv.Itoa(page))
		body, err := c.getJSON(ctx, path, query)
		if err != nil {
			return err
		}
		n, err := handle(body)
		if err != nil {
			return fmt.Errorf("decode page %d of %s: %w", page, path, err)
		}
		if n < PerPage {
			return nil
		}
	}
}

// getJSON performs one GET request and returns the raw body on 2xx.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := path
	if len(query) > 0 {
		target = path + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("PRIVATE-TOKEN", c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d from %s: %s", resp.StatusCode, path, string(body))
	}
	return body, nil
}
