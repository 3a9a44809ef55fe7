package github

import (
	"context"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// GitHubClient defines the upstream operations the queue engine consumes.
type GitHubClient interface {
	ViewerLogin(ctx context.Context) (string, error)
	OpenPullRequests(ctx context.Context, org string) ([]models.PullRequest, error)
	AllPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequestStat, error)
}

// Ensure Client implements GitHubClient interface
var _ GitHubClient = (*Client)(nil)
