package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	graphql "github.com/cli/shurcooL-graphql"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// Client wraps the GitHub API clients. Authentication is resolved by go-gh
// from GITHUB_TOKEN or the gh CLI's stored credentials.
type Client struct {
	rest api.RESTClient
	gql  api.GraphQLClient
}

func NewClient() (*Client, error) {
	restClient, err := api.DefaultRESTClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	gqlClient, err := api.DefaultGraphQLClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL client: %w", err)
	}

	return &Client{
		rest: *restClient,
		gql:  *gqlClient,
	}, nil
}

// ViewerLogin fetches the login of the authenticated user.
func (c *Client) ViewerLogin(ctx context.Context) (string, error) {
	var resp viewerResponse
	if err := c.gql.DoWithContext(ctx, viewerQuery, nil, &resp); err != nil {
		return "", fmt.Errorf("failed to fetch viewer login: %w", err)
	}
	return resp.Viewer.Login, nil
}

// OpenPullRequests fetches every open pull request across the organization,
// walking the repositories connection to exhaustion and normalizing each
// node into a canonical record. Upstream order is preserved.
func (c *Client) OpenPullRequests(ctx context.Context, org string) ([]models.PullRequest, error) {
	repos, err := collectPages(func(cursor *string) (repoPage, error) {
		variables := map[string]interface{}{
			"org":    graphql.String(org),
			"cursor": (*graphql.String)(nil),
		}
		if cursor != nil {
			variables["cursor"] = graphql.String(*cursor)
		}

		var resp openPRsResponse
		if err := c.gql.DoWithContext(ctx, openPRsQuery, variables, &resp); err != nil {
			return repoPage{}, err
		}

		conn := resp.Organization.Repositories
		return repoPage{
			Repos:       conn.Nodes,
			EndCursor:   conn.PageInfo.EndCursor,
			HasNextPage: conn.PageInfo.HasNextPage,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open pull requests for %s: %w", org, err)
	}

	prs := []models.PullRequest{}
	for _, repo := range repos {
		for _, raw := range repo.PullRequests.Nodes {
			pr, err := normalizePullRequest(repo.Name, raw)
			if err != nil {
				return nil, err
			}
			prs = append(prs, pr)
		}
	}
	return prs, nil
}

// rawRESTPullRequest is the subset of the REST pull request payload the
// stats subcommand consumes.
type rawRESTPullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	User      *rawActor  `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}

// AllPullRequests fetches every pull request (open and closed) for one
// repository over the REST API, 100 per page, stopping on a short page.
func (c *Client) AllPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequestStat, error) {
	all := []models.PullRequestStat{}
	page := 1

	for {
		path := fmt.Sprintf("repos/%s/%s/pulls?state=all&per_page=100&page=%d", owner, repo, page)
		var results []rawRESTPullRequest
		if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, &results); err != nil {
			return nil, fmt.Errorf("failed to fetch pull requests for %s/%s (page %d): %w", owner, repo, page, err)
		}

		for _, pr := range results {
			all = append(all, models.PullRequestStat{
				Number:    pr.Number,
				Title:     pr.Title,
				Author:    actorLogin(pr.User),
				CreatedAt: pr.CreatedAt,
				ClosedAt:  pr.ClosedAt,
			})
		}

		if len(results) < 100 {
			return all, nil
		}
		page++
	}
}
