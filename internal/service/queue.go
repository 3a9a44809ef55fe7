package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/aaronbrethorst/gh-review-queue/internal/github"
	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// ProgressReporter receives stage-boundary notifications while a queue is
// being built. It is cosmetic: implementations must not influence results.
type ProgressReporter interface {
	Start(message string)
	Done(message string)
}

// NopReporter discards all progress notifications.
type NopReporter struct{}

func (NopReporter) Start(string) {}
func (NopReporter) Done(string)  {}

// Queue is the classified, ranked result of one run. Items are ordered
// attention-first, oldest-created first within each group.
type Queue struct {
	Org    string
	Viewer string
	Items  []models.ClassifiedPullRequest
}

// Total returns the number of pull requests in the queue.
func (q *Queue) Total() int {
	return len(q.Items)
}

// AttentionCount returns how many pull requests need the viewer's attention.
func (q *Queue) AttentionCount() int {
	n := 0
	for _, item := range q.Items {
		if item.NeedsAttention {
			n++
		}
	}
	return n
}

// QueueService contains the queue-building pipeline
type QueueService struct {
	client   github.GitHubClient
	progress ProgressReporter
}

// NewQueueService creates a new service instance. A nil reporter disables
// progress output.
func NewQueueService(client github.GitHubClient, progress ProgressReporter) *QueueService {
	if progress == nil {
		progress = NopReporter{}
	}
	return &QueueService{
		client:   client,
		progress: progress,
	}
}

// BuildQueue runs the complete pipeline: fetch every open PR for the
// organization, drop ignored repositories, resolve the viewer once,
// classify each record, and rank the result. Any stage failure aborts the
// run; a partial queue is never returned.
func (s *QueueService) BuildQueue(ctx context.Context, org string, ignore []string) (*Queue, error) {
	s.progress.Start(fmt.Sprintf("Fetching open PRs for %s…", org))
	prs, err := s.client.OpenPullRequests(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open pull requests: %w", err)
	}
	prs = dropIgnored(prs, ignore)
	s.progress.Done(fmt.Sprintf("Found %d open PR%s", len(prs), plural(len(prs))))

	s.progress.Start("Identifying reviewer…")
	viewer, err := s.client.ViewerLogin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to identify reviewer: %w", err)
	}
	s.progress.Done(fmt.Sprintf("Logged in as %s", viewer))

	s.progress.Start("Sorting by review priority…")
	items := Classify(prs, viewer)
	Rank(items)
	queue := &Queue{Org: org, Viewer: viewer, Items: items}
	needs := queue.AttentionCount()
	s.progress.Done(fmt.Sprintf("%d PR%s need%s your attention", needs, plural(needs), singularVerb(needs)))

	return queue, nil
}

// RepoStats fetches every pull request (open and closed) for one repository.
func (s *QueueService) RepoStats(ctx context.Context, owner, repo string) ([]models.PullRequestStat, error) {
	s.progress.Start(fmt.Sprintf("Fetching PRs for %s/%s…", owner, repo))
	stats, err := s.client.AllPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull requests: %w", err)
	}
	s.progress.Done(fmt.Sprintf("Fetched %d PR%s", len(stats), plural(len(stats))))
	return stats, nil
}

// NeedsAttention reports whether pr has unresolved review obligations for
// viewer. Rules, in order, any match wins:
//  1. viewer is a pending requested reviewer
//  2. nobody has reviewed the PR yet
//  3. commits landed after viewer's most recent review
//
// The result depends only on the record and the viewer login; viewer's own
// PRs are not special-cased.
func NeedsAttention(pr models.PullRequest, viewer string) bool {
	for _, login := range pr.RequestedReviewers {
		if login == viewer {
			return true
		}
	}

	if pr.ReviewCount == 0 {
		return true
	}

	if lastReview, ok := pr.LastReviewBy(viewer); ok {
		if !pr.LastCommitAt.IsZero() && pr.LastCommitAt.After(lastReview) {
			return true
		}
	}

	return false
}

// Classify derives the attention flag for every record, preserving order.
func Classify(prs []models.PullRequest, viewer string) []models.ClassifiedPullRequest {
	items := make([]models.ClassifiedPullRequest, 0, len(prs))
	for _, pr := range prs {
		items = append(items, models.ClassifiedPullRequest{
			PullRequest:    pr,
			NeedsAttention: NeedsAttention(pr, viewer),
		})
	}
	return items
}

// Rank orders items in place: attention-needed first, then oldest created
// first. The sort is stable so exact ties keep their insertion order.
func Rank(items []models.ClassifiedPullRequest) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].NeedsAttention != items[j].NeedsAttention {
			return items[i].NeedsAttention
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}

// dropIgnored removes PRs whose repository is on the ignore list.
func dropIgnored(prs []models.PullRequest, ignore []string) []models.PullRequest {
	if len(ignore) == 0 {
		return prs
	}
	ignored := make(map[string]struct{}, len(ignore))
	for _, name := range ignore {
		ignored[name] = struct{}{}
	}
	kept := make([]models.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if _, ok := ignored[pr.Repo]; !ok {
			kept = append(kept, pr)
		}
	}
	return kept
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func singularVerb(n int) string {
	if n == 1 {
		return "s"
	}
	return ""
}
