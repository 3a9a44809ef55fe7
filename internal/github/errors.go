package github

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
)

// Diagnose maps a pipeline failure onto a single actionable diagnostic
// line. Server-side outages (5xx) are distinguished from credential and
// validation failures (4xx) and from declared GraphQL errors; anything
// else is reported verbatim.
func Diagnose(err error) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500:
			return fmt.Sprintf(
				"GitHub API error: %d\nGitHub may be experiencing an outage. Check https://www.githubstatus.com for details.",
				httpErr.StatusCode,
			)
		case httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden:
			return fmt.Sprintf(
				"GitHub rejected the credentials (HTTP %d): %s\nCheck GITHUB_TOKEN or run `gh auth login`.",
				httpErr.StatusCode, httpErr.Message,
			)
		default:
			return fmt.Sprintf("GitHub rejected the request (HTTP %d): %s", httpErr.StatusCode, httpErr.Message)
		}
	}

	var gqlErr *api.GraphQLError
	if errors.As(err, &gqlErr) {
		return fmt.Sprintf("GraphQL errors: %s", gqlErr.Error())
	}

	return err.Error()
}
