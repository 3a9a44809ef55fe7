package github

// viewerQuery resolves the login of the authenticated user.
const viewerQuery = `{ viewer { login } }`

// openPRsQuery walks an organization's repositories one cursor page at a
// time, carrying every open PR with the fields the queue engine consumes.
// Forks and archived repositories are excluded upstream.
const openPRsQuery = `
query($org: String!, $cursor: String) {
  organization(login: $org) {
    repositories(first: 100, after: $cursor, isFork: false, isArchived: false, orderBy: {field: UPDATED_AT, direction: DESC}) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        name
        pullRequests(states: OPEN, first: 100, orderBy: {field: UPDATED_AT, direction: DESC}) {
          nodes {
            number
            title
            url
            createdAt
            isDraft
            author { login }
            labels(first: 10) { nodes { name color } }
            comments { totalCount }
            reviewRequests(first: 10) { nodes { requestedReviewer { ... on User { login } } } }
            reviews(last: 10) { totalCount nodes { author { login } createdAt } }
            commits(last: 1) {
              nodes {
                commit {
                  committedDate
                  statusCheckRollup { state }
                }
              }
            }
          }
        }
      }
    }
  }
}
`
