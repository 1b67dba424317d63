package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nao1215/mailsleuth/internal/httpclient"
	"github.com/nao1215/mailsleuth/internal/model"
)

// GitHubSearchURL is the user search endpoint of the GitHub REST API.
const GitHubSearchURL = "https://api.github.com/search/users"

type githubSearchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Login string `json:"login"`
	} `json:"items"`
}

// SearchGitHubUsers asks the GitHub API for accounts whose public email
// matches email and returns their logins. Unauthenticated searches are
// heavily rate limited, so callers should treat an error as "unknown".
func SearchGitHubUsers(ctx context.Context, fetcher httpclient.Fetcher, baseURL, email string) ([]string, error) {
	if baseURL == "" {
		baseURL = GitHubSearchURL
	}
	rawURL := baseURL + "?q=" + url.QueryEscape(email)

	headers := http.Header{}
	headers.Set("Accept", "application/vnd.github+json")

	resp, err := fetcher.Get(ctx, rawURL, headers)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: github search: unexpected status %d", model.ErrNetwork, resp.StatusCode)
	}

	var body githubSearchResponse
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		return nil, fmt.Errorf("%w: github search: %w", model.ErrParse, err)
	}

	logins := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Login != "" {
			logins = append(logins, item.Login)
		}
	}
	return logins, nil
}
