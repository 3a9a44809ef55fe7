package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Minimum column widths so the header never collapses.
const (
	minRepoWidth  = 4 // "Repo"
	minTitleWidth = 8 // "PR Title"
	minURLWidth   = 6 // "PR URL"
)

// RenderTable writes the ranked queue as an aligned pipe table followed by
// a total line. The queue order is preserved as-is.
func RenderTable(w io.Writer, items []models.ClassifiedPullRequest) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No open pull requests found.")
		return
	}

	repoW, titleW, urlW := minRepoWidth, minTitleWidth, minURLWidth
	for _, item := range items {
		repoW = max(repoW, runewidth.StringWidth(item.Repo))
		titleW = max(titleW, runewidth.StringWidth(item.Title))
		urlW = max(urlW, runewidth.StringWidth(item.URL))
	}

	fmt.Fprintf(w, "| %s | %s | %s |\n",
		PadRight("Repo", repoW), PadRight("PR Title", titleW), PadRight("PR URL", urlW))
	fmt.Fprintf(w, "|%s|%s|%s|\n",
		strings.Repeat("-", repoW+2), strings.Repeat("-", titleW+2), strings.Repeat("-", urlW+2))
	for _, item := range items {
		fmt.Fprintf(w, "| %s | %s | %s |\n",
			PadRight(item.Repo, repoW), PadRight(item.Title, titleW), PadRight(item.URL, urlW))
	}

	fmt.Fprintf(w, "\nTotal: %d open PR(s)\n", len(items))
}
