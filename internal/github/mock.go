package github

import (
	"context"
	"fmt"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	// Control test behavior
	Viewer       string
	ViewerError  error
	OpenPRs      []models.PullRequest
	OpenPRsError error
	Stats        []models.PullRequestStat
	StatsError   error

	// Track method calls
	ViewerLoginCalled      bool
	OpenPullRequestsCalled bool
	AllPullRequestsCalled  bool

	// Store call arguments for verification
	LastOrg   string
	LastOwner string
	LastRepo  string
}

// ViewerLogin mocks the viewer lookup
func (m *MockClient) ViewerLogin(ctx context.Context) (string, error) {
	m.ViewerLoginCalled = true
	return m.Viewer, m.ViewerError
}

// OpenPullRequests mocks the GraphQL org fetch
func (m *MockClient) OpenPullRequests(ctx context.Context, org string) ([]models.PullRequest, error) {
	m.OpenPullRequestsCalled = true
	m.LastOrg = org
	return m.OpenPRs, m.OpenPRsError
}

// AllPullRequests mocks the REST stats fetch
func (m *MockClient) AllPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequestStat, error) {
	m.AllPullRequestsCalled = true
	m.LastOwner = owner
	m.LastRepo = repo
	return m.Stats, m.StatsError
}

// Reset clears all tracking data for fresh test
func (m *MockClient) Reset() {
	m.ViewerLoginCalled = false
	m.OpenPullRequestsCalled = false
	m.AllPullRequestsCalled = false
	m.LastOrg = ""
	m.LastOwner = ""
	m.LastRepo = ""
}

// CreateTestPRs builds count open PRs spread across repos for test setups.
func CreateTestPRs(count int) []models.PullRequest {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	prs := make([]models.PullRequest, count)
	for i := 0; i < count; i++ {
		prs[i] = models.PullRequest{
			Repo:               fmt.Sprintf("repo%d", i%3+1),
			Number:             i + 1,
			Title:              fmt.Sprintf("Test PR #%d", i+1),
			URL:                fmt.Sprintf("https://github.com/testorg/repo%d/pull/%d", i%3+1, i+1),
			Author:             fmt.Sprintf("user%d", i+1),
			CreatedAt:          base.Add(time.Duration(i) * time.Hour),
			IsDraft:            i%2 == 0, // Alternate between draft and ready
			Labels:             []models.Label{},
			RequestedReviewers: []string{},
			Reviews:            []models.Review{},
			CIState:            models.CIStateUnknown,
		}
	}
	return prs
}

// NewAPIError builds a generic upstream error for test cases.
func NewAPIError(message string) error {
	return fmt.Errorf("API error: %s", message)
}

// NewNetworkError builds a transport-level failure for test cases.
func NewNetworkError() error {
	return fmt.Errorf("network connection failed")
}
