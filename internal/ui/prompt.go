package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/browser"
	"github.com/manifoldco/promptui"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// Prompter defines interface for user interaction
type Prompter interface {
	PickPR(items []models.ClassifiedPullRequest) (models.ClassifiedPullRequest, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// Ensure DefaultPrompter implements Prompter interface
var _ Prompter = (*DefaultPrompter)(nil)

// PickPR prompts the user to select one PR from the ranked queue. Rows keep
// queue order; attention-needed PRs carry a leading marker.
func (p *DefaultPrompter) PickPR(items []models.ClassifiedPullRequest) (models.ClassifiedPullRequest, error) {
	if len(items) == 0 {
		return models.ClassifiedPullRequest{}, fmt.Errorf("no open pull requests found")
	}

	rows := make([]string, len(items))
	for i, item := range items {
		marker := " "
		if item.NeedsAttention {
			marker = "●"
		}
		title := item.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		rows[i] = fmt.Sprintf("%s %s #%s %s %s",
			marker,
			PadRight(item.Repo, 20),
			PadRight(fmt.Sprintf("%-5d", item.Number), 6),
			PadRight(title, 60),
			item.Author,
		)
	}

	prompt := promptui.Select{
		Label: "Select PR to open",
		Items: rows,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(rows[index]), strings.ToLower(input))
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return models.ClassifiedPullRequest{}, fmt.Errorf("prompt failed: %w", err)
	}
	return items[idx], nil
}

// MockPrompter for testing
type MockPrompter struct {
	PickedIndex int
	PickError   error

	// Call tracking
	PickPRCalled bool
	LastItems    []models.ClassifiedPullRequest
}

// PickPR mocks queue selection
func (m *MockPrompter) PickPR(items []models.ClassifiedPullRequest) (models.ClassifiedPullRequest, error) {
	m.PickPRCalled = true
	m.LastItems = items
	if m.PickError != nil {
		return models.ClassifiedPullRequest{}, m.PickError
	}
	if m.PickedIndex < 0 || m.PickedIndex >= len(items) {
		return models.ClassifiedPullRequest{}, fmt.Errorf("picked index %d out of range", m.PickedIndex)
	}
	return items[m.PickedIndex], nil
}

// OpenInBrowser launches the default browser on url.
func OpenInBrowser(url string) error {
	b := browser.New("", os.Stdout, os.Stderr)
	if err := b.Browse(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
