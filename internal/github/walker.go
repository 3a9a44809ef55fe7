package github

// repoPage is one page of the organization repositories connection.
type repoPage struct {
	Repos       []rawRepository
	EndCursor   string
	HasNextPage bool
}

// fetchPageFunc fetches the page after cursor; a nil cursor means the first
// page. It performs exactly one upstream round-trip.
type fetchPageFunc func(cursor *string) (repoPage, error)

// collectPages drives fetch to exhaustion and returns the repositories of
// every page concatenated in upstream order. Any fetch error aborts the
// walk immediately so a partial page set is never returned. An organization
// with no repositories yields an empty slice.
func collectPages(fetch fetchPageFunc) ([]rawRepository, error) {
	all := []rawRepository{}
	var cursor *string
	for {
		page, err := fetch(cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Repos...)
		if !page.HasNextPage {
			return all, nil
		}
		end := page.EndCursor
		cursor = &end
	}
}
