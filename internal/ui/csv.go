package ui

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// WriteQueueCSV writes the ranked queue, one row per PR, in queue order.
func WriteQueueCSV(w io.Writer, items []models.ClassifiedPullRequest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Repo", "#", "Title", "Author", "Created", "Needs Attention"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, item := range items {
		row := []string{
			item.Repo,
			strconv.Itoa(item.Number),
			item.Title,
			item.Author,
			item.CreatedAt.Format("2006-01-02"),
			strconv.FormatBool(item.NeedsAttention),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatsCSV writes the per-repository PR history rows. Closed dates are
// blank for PRs that are still open.
func WriteStatsCSV(w io.Writer, stats []models.PullRequestStat) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"#", "Title", "Author", "Created", "Closed"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, pr := range stats {
		closed := ""
		if pr.ClosedAt != nil {
			closed = pr.ClosedAt.Format("2006-01-02")
		}
		row := []string{
			strconv.Itoa(pr.Number),
			pr.Title,
			pr.Author,
			pr.CreatedAt.Format("2006-01-02"),
			closed,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
