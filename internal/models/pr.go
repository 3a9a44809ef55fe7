package models

import "time"

// GhostLogin is the sentinel login used when an account has been deleted
// and the API reports no author.
const GhostLogin = "ghost"

// CIState is the aggregated status-check rollup for a PR's latest commit.
type CIState string

const (
	CIStateSuccess CIState = "success"
	CIStateFailure CIState = "failure"
	CIStatePending CIState = "pending"
	CIStateUnknown CIState = "unknown"
)

// Label is a repository label attached to a pull request.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Review is an immutable snapshot of one submitted review.
type Review struct {
	Author      string    `json:"author"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// PullRequest is the canonical, fully-defaulted representation of one open
// pull request. Repo and Number together identify it within a fetch.
type PullRequest struct {
	Repo               string    `json:"repo"`
	Number             int       `json:"number"`
	Title              string    `json:"title"`
	URL                string    `json:"url"`
	Author             string    `json:"author"`
	CreatedAt          time.Time `json:"created_at"`
	IsDraft            bool      `json:"is_draft"`
	Labels             []Label   `json:"labels"`
	CommentCount       int       `json:"comment_count"`
	ReviewCount        int       `json:"review_count"`
	RequestedReviewers []string  `json:"requested_reviewers"`
	Reviews            []Review  `json:"reviews"`
	LastCommitAt       time.Time `json:"last_commit_at"` // zero when the PR has no resolvable commit
	CIState            CIState   `json:"ci_state"`
}

// LastReviewBy returns the timestamp of the most recent review authored by
// login. Reviews are scanned rather than assumed sorted. The second return
// is false when login has never reviewed this PR.
func (pr PullRequest) LastReviewBy(login string) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, r := range pr.Reviews {
		if r.Author != login {
			continue
		}
		if !found || r.SubmittedAt.After(latest) {
			latest = r.SubmittedAt
		}
		found = true
	}
	return latest, found
}

// ClassifiedPullRequest pairs a pull request with its derived attention flag.
// The flag is recomputed every run and never persisted.
type ClassifiedPullRequest struct {
	PullRequest
	NeedsAttention bool `json:"needs_attention"`
}

// PullRequestStat is the flat per-PR row used by the stats subcommand.
// Unlike PullRequest it covers closed PRs as well.
type PullRequestStat struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}
