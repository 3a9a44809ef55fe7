package github

import (
	"fmt"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// The raw* types mirror the GraphQL response shape exactly. Optional
// sub-objects are pointers so absence survives decoding and every default
// is applied in one place, normalizePullRequest.

type rawPageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type rawActor struct {
	Login string `json:"login"`
}

type rawLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type rawReview struct {
	Author    *rawActor `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

type rawReviewRequest struct {
	// RequestedReviewer is nil for team-only requests, which carry no
	// resolvable user login.
	RequestedReviewer *rawActor `json:"requestedReviewer"`
}

type rawCommit struct {
	Commit struct {
		CommittedDate     *time.Time `json:"committedDate"`
		StatusCheckRollup *struct {
			State string `json:"state"`
		} `json:"statusCheckRollup"`
	} `json:"commit"`
}

type rawPullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	IsDraft   bool      `json:"isDraft"`
	Author    *rawActor `json:"author"`
	Labels    struct {
		Nodes []rawLabel `json:"nodes"`
	} `json:"labels"`
	Comments struct {
		TotalCount int `json:"totalCount"`
	} `json:"comments"`
	ReviewRequests struct {
		Nodes []rawReviewRequest `json:"nodes"`
	} `json:"reviewRequests"`
	Reviews struct {
		TotalCount int         `json:"totalCount"`
		Nodes      []rawReview `json:"nodes"`
	} `json:"reviews"`
	Commits struct {
		Nodes []rawCommit `json:"nodes"`
	} `json:"commits"`
}

type rawRepository struct {
	Name         string `json:"name"`
	PullRequests struct {
		Nodes []rawPullRequest `json:"nodes"`
	} `json:"pullRequests"`
}

// openPRsResponse is the data payload of openPRsQuery.
type openPRsResponse struct {
	Organization struct {
		Repositories struct {
			PageInfo rawPageInfo     `json:"pageInfo"`
			Nodes    []rawRepository `json:"nodes"`
		} `json:"repositories"`
	} `json:"organization"`
}

// viewerResponse is the data payload of viewerQuery.
type viewerResponse struct {
	Viewer struct {
		Login string `json:"login"`
	} `json:"viewer"`
}

// normalizePullRequest maps one raw node onto a fully-populated record.
// Missing optional fields fall back to defined defaults; a missing required
// field (repository name, number, URL) is a shape error.
func normalizePullRequest(repoName string, raw rawPullRequest) (models.PullRequest, error) {
	if repoName == "" {
		return models.PullRequest{}, fmt.Errorf("pull request node missing repository name")
	}
	if raw.Number == 0 {
		return models.PullRequest{}, fmt.Errorf("pull request node in %s missing number", repoName)
	}
	if raw.URL == "" {
		return models.PullRequest{}, fmt.Errorf("pull request %s#%d missing url", repoName, raw.Number)
	}

	labels := make([]models.Label, 0, len(raw.Labels.Nodes))
	for _, l := range raw.Labels.Nodes {
		labels = append(labels, models.Label{Name: l.Name, Color: l.Color})
	}

	// Team-only review requests carry no user login and are dropped.
	reviewers := make([]string, 0, len(raw.ReviewRequests.Nodes))
	for _, rr := range raw.ReviewRequests.Nodes {
		if rr.RequestedReviewer != nil && rr.RequestedReviewer.Login != "" {
			reviewers = append(reviewers, rr.RequestedReviewer.Login)
		}
	}

	reviews := make([]models.Review, 0, len(raw.Reviews.Nodes))
	for _, r := range raw.Reviews.Nodes {
		reviews = append(reviews, models.Review{
			Author:      actorLogin(r.Author),
			SubmittedAt: r.CreatedAt,
		})
	}

	var lastCommitAt time.Time
	ciState := models.CIStateUnknown
	if len(raw.Commits.Nodes) > 0 {
		commit := raw.Commits.Nodes[0].Commit
		if commit.CommittedDate != nil {
			lastCommitAt = *commit.CommittedDate
		}
		if commit.StatusCheckRollup != nil {
			ciState = normalizeCIState(commit.StatusCheckRollup.State)
		}
	}

	return models.PullRequest{
		Repo:               repoName,
		Number:             raw.Number,
		Title:              raw.Title,
		URL:                raw.URL,
		Author:             actorLogin(raw.Author),
		CreatedAt:          raw.CreatedAt,
		IsDraft:            raw.IsDraft,
		Labels:             labels,
		CommentCount:       raw.Comments.TotalCount,
		ReviewCount:        raw.Reviews.TotalCount,
		RequestedReviewers: reviewers,
		Reviews:            reviews,
		LastCommitAt:       lastCommitAt,
		CIState:            ciState,
	}, nil
}

// actorLogin falls back to the ghost sentinel for deleted accounts.
func actorLogin(actor *rawActor) string {
	if actor == nil || actor.Login == "" {
		return models.GhostLogin
	}
	return actor.Login
}

// normalizeCIState maps the GraphQL StatusState enum onto the canonical
// CI rollup state.
func normalizeCIState(state string) models.CIState {
	switch state {
	case "SUCCESS":
		return models.CIStateSuccess
	case "FAILURE", "ERROR":
		return models.CIStateFailure
	case "PENDING":
		return models.CIStatePending
	default:
		return models.CIStateUnknown
	}
}
