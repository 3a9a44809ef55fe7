package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/github"
	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

var (
	t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	t2 = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
)

func TestNeedsAttention(t *testing.T) {
	tests := []struct {
		name     string
		pr       models.PullRequest
		viewer   string
		expected bool
	}{
		{
			name: "rule 1: viewer is a requested reviewer",
			pr: models.PullRequest{
				RequestedReviewers: []string{"alice", "viewer"},
				ReviewCount:        3,
				Reviews:            []models.Review{{Author: "viewer", SubmittedAt: t2}},
			},
			viewer:   "viewer",
			expected: true,
		},
		{
			name: "rule 2: no reviews from anyone",
			pr: models.PullRequest{
				RequestedReviewers: []string{"alice"},
				ReviewCount:        0,
			},
			viewer:   "viewer",
			expected: true,
		},
		{
			name: "rule 3: commit landed after viewer's last review",
			pr: models.PullRequest{
				ReviewCount:  2,
				Reviews:      []models.Review{{Author: "viewer", SubmittedAt: t0}, {Author: "alice", SubmittedAt: t2}},
				LastCommitAt: t1,
			},
			viewer:   "viewer",
			expected: true,
		},
		{
			name: "rule 3 uses the max of the viewer's reviews, not upstream order",
			pr: models.PullRequest{
				ReviewCount:  2,
				Reviews:      []models.Review{{Author: "viewer", SubmittedAt: t2}, {Author: "viewer", SubmittedAt: t0}},
				LastCommitAt: t1,
			},
			viewer:   "viewer",
			expected: false,
		},
		{
			name: "no new commit since viewer's last review",
			pr: models.PullRequest{
				ReviewCount:  1,
				Reviews:      []models.Review{{Author: "viewer", SubmittedAt: t1}},
				LastCommitAt: t1,
			},
			viewer:   "viewer",
			expected: false,
		},
		{
			name: "reviewed by someone else, viewer never involved",
			pr: models.PullRequest{
				ReviewCount:  1,
				Reviews:      []models.Review{{Author: "alice", SubmittedAt: t1}},
				LastCommitAt: t2,
			},
			viewer:   "viewer",
			expected: false,
		},
		{
			name: "viewer reviewed but PR has no resolvable commit",
			pr: models.PullRequest{
				ReviewCount: 1,
				Reviews:     []models.Review{{Author: "viewer", SubmittedAt: t1}},
			},
			viewer:   "viewer",
			expected: false,
		},
		{
			name: "viewer's own PR is not special-cased",
			pr: models.PullRequest{
				Author:             "viewer",
				RequestedReviewers: []string{"viewer"},
				ReviewCount:        1,
				Reviews:            []models.Review{{Author: "alice", SubmittedAt: t1}},
			},
			viewer:   "viewer",
			expected: true,
		},
		{
			name: "viewer's own unreviewed PR needs attention via rule 2",
			pr: models.PullRequest{
				Author:      "viewer",
				ReviewCount: 0,
			},
			viewer:   "viewer",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsAttention(tt.pr, tt.viewer); got != tt.expected {
				t.Errorf("NeedsAttention() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func classified(title string, needs bool, created time.Time) models.ClassifiedPullRequest {
	return models.ClassifiedPullRequest{
		PullRequest:    models.PullRequest{Title: title, CreatedAt: created},
		NeedsAttention: needs,
	}
}

func TestRank_AttentionFirstThenOldest(t *testing.T) {
	items := []models.ClassifiedPullRequest{
		classified("d", false, t1),
		classified("b", true, t2),
		classified("c", false, t0),
		classified("a", true, t0),
	}

	Rank(items)

	want := []string{"a", "b", "c", "d"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("items[%d].Title = %q, want %q", i, items[i].Title, title)
		}
	}

	// All attention-needed records precede the rest.
	seenCalm := false
	for i, item := range items {
		if !item.NeedsAttention {
			seenCalm = true
		} else if seenCalm {
			t.Errorf("attention-needed record at index %d after a calm one", i)
		}
	}
}

func TestRank_StableForExactTies(t *testing.T) {
	items := []models.ClassifiedPullRequest{
		classified("first", true, t0),
		classified("second", true, t0),
		classified("third", true, t0),
	}

	Rank(items)

	want := []string{"first", "second", "third"}
	for i, title := range want {
		if items[i].Title != title {
			t.Errorf("items[%d].Title = %q, want %q (ties must keep insertion order)", i, items[i].Title, title)
		}
	}
}

func TestClassify_PreservesOrder(t *testing.T) {
	prs := github.CreateTestPRs(5)
	items := Classify(prs, "viewer")

	if len(items) != len(prs) {
		t.Fatalf("got %d items, want %d", len(items), len(prs))
	}
	for i := range prs {
		if items[i].Number != prs[i].Number {
			t.Errorf("items[%d].Number = %d, want %d", i, items[i].Number, prs[i].Number)
		}
		// CreateTestPRs builds PRs with no reviews, so rule 2 fires.
		if !items[i].NeedsAttention {
			t.Errorf("items[%d].NeedsAttention = false, want true", i)
		}
	}
}

// recordingReporter captures progress messages for verification.
type recordingReporter struct {
	started []string
	done    []string
}

func (r *recordingReporter) Start(message string) { r.started = append(r.started, message) }
func (r *recordingReporter) Done(message string)  { r.done = append(r.done, message) }

func TestBuildQueue_EndToEnd(t *testing.T) {
	// Repo A: one PR with zero reviews. Repo B: one PR reviewed by someone
	// else, viewer not requested, no newer commit.
	prA := models.PullRequest{
		Repo: "repo-a", Number: 1, Title: "A", URL: "https://example.com/a",
		CreatedAt: t1, ReviewCount: 0,
	}
	prB := models.PullRequest{
		Repo: "repo-b", Number: 2, Title: "B", URL: "https://example.com/b",
		CreatedAt:    t0,
		ReviewCount:  1,
		Reviews:      []models.Review{{Author: "alice", SubmittedAt: t1}},
		LastCommitAt: t0,
	}

	client := &github.MockClient{
		Viewer:  "viewer",
		OpenPRs: []models.PullRequest{prB, prA},
	}
	reporter := &recordingReporter{}
	svc := NewQueueService(client, reporter)

	queue, err := svc.BuildQueue(context.Background(), "testorg", nil)
	if err != nil {
		t.Fatalf("BuildQueue returned error: %v", err)
	}

	if queue.Viewer != "viewer" {
		t.Errorf("queue.Viewer = %q, want %q", queue.Viewer, "viewer")
	}
	if queue.Org != "testorg" {
		t.Errorf("queue.Org = %q, want %q", queue.Org, "testorg")
	}
	if client.LastOrg != "testorg" {
		t.Errorf("client fetched org %q, want %q", client.LastOrg, "testorg")
	}

	if queue.Total() != 2 {
		t.Fatalf("queue.Total() = %d, want 2", queue.Total())
	}
	if queue.AttentionCount() != 1 {
		t.Errorf("queue.AttentionCount() = %d, want 1", queue.AttentionCount())
	}

	// A needs attention and must rank above B despite being created later.
	if queue.Items[0].Repo != "repo-a" || !queue.Items[0].NeedsAttention {
		t.Errorf("Items[0] = %+v, want repo-a needing attention", queue.Items[0])
	}
	if queue.Items[1].Repo != "repo-b" || queue.Items[1].NeedsAttention {
		t.Errorf("Items[1] = %+v, want repo-b not needing attention", queue.Items[1])
	}

	if len(reporter.started) != 3 || len(reporter.done) != 3 {
		t.Fatalf("progress stages = %d/%d, want 3/3", len(reporter.started), len(reporter.done))
	}
	if !strings.Contains(reporter.done[2], "1 PR needs your attention") {
		t.Errorf("final status = %q, want the attention count", reporter.done[2])
	}
}

func TestBuildQueue_IgnoreListFiltersBeforeClassification(t *testing.T) {
	client := &github.MockClient{
		Viewer: "viewer",
		OpenPRs: []models.PullRequest{
			{Repo: "keep", Number: 1, URL: "u1", CreatedAt: t0},
			{Repo: "skip", Number: 2, URL: "u2", CreatedAt: t0},
			{Repo: "keep", Number: 3, URL: "u3", CreatedAt: t1},
		},
	}
	svc := NewQueueService(client, nil)

	queue, err := svc.BuildQueue(context.Background(), "testorg", []string{"skip"})
	if err != nil {
		t.Fatalf("BuildQueue returned error: %v", err)
	}

	if queue.Total() != 2 {
		t.Fatalf("queue.Total() = %d, want 2", queue.Total())
	}
	for _, item := range queue.Items {
		if item.Repo == "skip" {
			t.Errorf("ignored repo %q leaked into the queue", item.Repo)
		}
	}
}

func TestBuildQueue_FetchErrorAbortsRun(t *testing.T) {
	client := &github.MockClient{
		Viewer:       "viewer",
		OpenPRsError: github.NewNetworkError(),
	}
	svc := NewQueueService(client, nil)

	queue, err := svc.BuildQueue(context.Background(), "testorg", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if queue != nil {
		t.Errorf("expected nil queue on error, got %+v", queue)
	}
	if client.ViewerLoginCalled {
		t.Error("viewer lookup ran after a fatal fetch error")
	}
}

func TestBuildQueue_ViewerErrorAbortsRun(t *testing.T) {
	client := &github.MockClient{
		OpenPRs:     github.CreateTestPRs(2),
		ViewerError: github.NewAPIError("bad credentials"),
	}
	svc := NewQueueService(client, nil)

	queue, err := svc.BuildQueue(context.Background(), "testorg", nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if queue != nil {
		t.Errorf("expected nil queue on error, got %+v", queue)
	}
}

func TestRepoStats(t *testing.T) {
	closed := t1
	client := &github.MockClient{
		Stats: []models.PullRequestStat{
			{Number: 1, Title: "one", Author: "alice", CreatedAt: t0, ClosedAt: &closed},
			{Number: 2, Title: "two", Author: "bob", CreatedAt: t1},
		},
	}
	svc := NewQueueService(client, nil)

	stats, err := svc.RepoStats(context.Background(), "owner", "repo")
	if err != nil {
		t.Fatalf("RepoStats returned error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d stats, want 2", len(stats))
	}
	if client.LastOwner != "owner" || client.LastRepo != "repo" {
		t.Errorf("fetched %s/%s, want owner/repo", client.LastOwner, client.LastRepo)
	}
}
