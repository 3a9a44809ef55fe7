package ui

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

func TestWriteQueueCSV(t *testing.T) {
	created := time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC)
	items := []models.ClassifiedPullRequest{
		{
			PullRequest: models.PullRequest{
				Repo: "maglev", Number: 12, Title: `Say "hello", world`, Author: "alice", CreatedAt: created,
			},
			NeedsAttention: true,
		},
		{
			PullRequest: models.PullRequest{
				Repo: "sdk", Number: 3, Title: "Bump deps", Author: "ghost", CreatedAt: created,
			},
			NeedsAttention: false,
		},
	}

	var sb strings.Builder
	if err := WriteQueueCSV(&sb, items); err != nil {
		t.Fatalf("WriteQueueCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	header := strings.Join(rows[0], ",")
	if header != "Repo,#,Title,Author,Created,Needs Attention" {
		t.Errorf("header = %q", header)
	}

	want := []string{"maglev", "12", `Say "hello", world`, "alice", "2024-06-01", "true"}
	for i, field := range want {
		if rows[1][i] != field {
			t.Errorf("rows[1][%d] = %q, want %q", i, rows[1][i], field)
		}
	}
	if rows[2][5] != "false" {
		t.Errorf("rows[2] needs attention = %q, want false", rows[2][5])
	}
}

func TestWriteStatsCSV(t *testing.T) {
	created := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	stats := []models.PullRequestStat{
		{Number: 1, Title: "merged one", Author: "alice", CreatedAt: created, ClosedAt: &closed},
		{Number: 2, Title: "still open", Author: "bob", CreatedAt: created},
	}

	var sb strings.Builder
	if err := WriteStatsCSV(&sb, stats); err != nil {
		t.Fatalf("WriteStatsCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[1][4] != "2024-02-01" {
		t.Errorf("closed date = %q, want 2024-02-01", rows[1][4])
	}
	if rows[2][4] != "" {
		t.Errorf("open PR closed date = %q, want empty", rows[2][4])
	}
}
