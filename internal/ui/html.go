package ui

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aaronbrethorst/gh-review-queue/internal/models"
)

// The report is a single self-contained page: repos grouped alphabetically,
// attention rows flagged with a left border, and a client-local seen-PRs
// store keyed by PR URL. The seen store never feeds back into the engine.
const reportTemplate = `<!doctype html>
<html>
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <script src="https://cdn.jsdelivr.net/npm/@tailwindcss/browser@4"></script>
    <title>Open PRs – {{.Org}}</title>
  </head>
  <body class="bg-gray-50 p-8">
    <div class="max-w-5xl mx-auto">
      <h1 class="text-3xl font-bold mb-1">{{.Org}}</h1>
      <p class="text-gray-500 mb-6">{{.Total}} open pull request{{if ne .Total 1}}s{{end}}</p>
      {{if eq .Total 0}}<p class="text-gray-500 mt-4">No open pull requests found.</p>{{end}}
      <div class="bg-white rounded-lg shadow border border-gray-200">
{{range .Groups}}      <div class="sticky top-0 flex items-center bg-gray-50/90 px-4 py-3 text-sm font-semibold text-gray-900 ring-1 ring-gray-900/10 backdrop-blur-sm dark:bg-gray-700/90 dark:text-gray-200 dark:ring-black/10">
        <a href="{{.URL}}" class="hover:text-blue-600">{{.Name}}</a>
      </div>
{{range .PRs}}      <div class="pr-row flex items-start gap-3 px-4 py-3 border-b border-gray-200 hover:bg-gray-50 {{if .NeedsAttention}}border-l-4 border-l-blue-500{{else}}border-l-4 border-l-transparent{{end}}" data-pr-url="{{.URL}}">
        <div class="{{.IconClass}} mt-0.5">{{prIcon}}</div>
        <div class="flex-1 min-w-0">
          <div class="flex flex-wrap items-center gap-x-1">
            <a href="{{.URL}}" class="text-base font-semibold text-gray-900 hover:text-blue-600">{{.Title}}</a>
            {{.CIIcon}}
          </div>
          {{if .Labels}}<div class="mt-1">{{range .Labels}}<span class="inline-block px-2 py-0.5 text-xs font-medium rounded-full mr-1" style="background-color:#{{.Color}};color:{{.TextColor}}">{{.Name}}</span>{{end}}</div>{{end}}
          <div class="text-xs text-gray-500 mt-0.5">#{{.Number}} opened {{.Ago}} by {{.Author}}</div>
        </div>
        {{if or .ReviewCount .CommentCount}}<div class="flex items-center gap-3">{{if .ReviewCount}}<span class="inline-flex items-center gap-1 text-xs text-gray-500" title="Reviews">{{reviewIcon}} {{.ReviewCount}}</span>{{end}}{{if .CommentCount}}<span class="inline-flex items-center gap-1 text-xs text-gray-500" title="Comments">{{commentIcon}} {{.CommentCount}}</span>{{end}}</div>{{end}}
      </div>
{{end}}{{end}}      </div>
    </div>
    <script>
      const KEY = "seen_prs";
      const seen = new Set(JSON.parse(localStorage.getItem(KEY) || "[]"));
      function markSeen(row) {
        row.classList.remove("border-l-blue-500");
        row.classList.add("border-l-transparent");
      }
      document.querySelectorAll(".pr-row").forEach(row => {
        const url = row.dataset.prUrl;
        if (seen.has(url)) markSeen(row);
        row.querySelectorAll("a").forEach(a => {
          a.addEventListener("click", () => {
            seen.add(url);
            localStorage.setItem(KEY, JSON.stringify([...seen]));
            markSeen(row);
          });
        });
      });
    </script>
  </body>
</html>
`

// Inline SVGs kept minimal
const (
	svgComment = `<svg class="w-4 h-4" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M8 12h.01M12 12h.01M16 12h.01M21 12c0 4.418-4.03 8-9 8a9.863 9.863 0 01-4.255-.949L3 20l1.395-3.72C3.512 15.042 3 13.574 3 12c0-4.418 4.03-8 9-8s9 3.582 9 8z"/></svg>`
	svgReview  = `<svg class="w-4 h-4" fill="none" stroke="currentColor" viewBox="0 0 24 24"><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M15 12a3 3 0 11-6 0 3 3 0 016 0z"/><path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M2.458 12C3.732 7.943 7.523 5 12 5c4.478 0 8.268 2.943 9.542 7-1.274 4.057-5.064 7-9.542 7-4.477 0-8.268-2.943-9.542-7z"/></svg>`
	svgPR      = `<svg class="w-5 h-5 shrink-0" viewBox="0 0 16 16" fill="currentColor"><path d="M1.5 3.25a2.25 2.25 0 1 1 3 2.122v5.256a2.251 2.251 0 1 1-1.5 0V5.372A2.25 2.25 0 0 1 1.5 3.25Zm5.677-.177L9.573.677A.25.25 0 0 1 10 .854V2.5h1A2.5 2.5 0 0 1 13.5 5v5.628a2.251 2.251 0 1 1-1.5 0V5a1 1 0 0 0-1-1h-1v1.646a.25.25 0 0 1-.427.177L7.177 3.427a.25.25 0 0 1 0-.354ZM3.75 2.5a.75.75 0 1 0 0 1.5.75.75 0 0 0 0-1.5Zm0 9.5a.75.75 0 1 0 0 1.5.75.75 0 0 0 0-1.5Zm8.25.75a.75.75 0 1 0 1.5 0 .75.75 0 0 0-1.5 0Z"/></svg>`
)

var htmlReport = template.Must(template.New("report").Funcs(template.FuncMap{
	"prIcon":      func() template.HTML { return template.HTML(svgPR) },
	"reviewIcon":  func() template.HTML { return template.HTML(svgReview) },
	"commentIcon": func() template.HTML { return template.HTML(svgComment) },
}).Parse(reportTemplate))

type labelView struct {
	Name      string
	Color     string
	TextColor string
}

type prView struct {
	Number         int
	Title          string
	URL            string
	Author         string
	Ago            string
	IconClass      string
	CIIcon         template.HTML
	Labels         []labelView
	ReviewCount    int
	CommentCount   int
	NeedsAttention bool
}

type repoView struct {
	Name string
	URL  string
	PRs  []prView
}

type reportView struct {
	Org    string
	Total  int
	Groups []repoView
}

// RenderHTML writes the report for the ranked queue. Grouping by repository
// is presentation-only: within a group, queue order is preserved.
func RenderHTML(w io.Writer, org string, items []models.ClassifiedPullRequest) error {
	now := time.Now().UTC()

	grouped := map[string][]prView{}
	for _, item := range items {
		labels := make([]labelView, 0, len(item.Labels))
		for _, l := range item.Labels {
			labels = append(labels, labelView{
				Name:      l.Name,
				Color:     l.Color,
				TextColor: labelTextColor(l.Color),
			})
		}

		iconClass := "text-green-600"
		if item.IsDraft {
			iconClass = "text-gray-500"
		}

		grouped[item.Repo] = append(grouped[item.Repo], prView{
			Number:         item.Number,
			Title:          item.Title,
			URL:            item.URL,
			Author:         item.Author,
			Ago:            timeAgo(item.CreatedAt, now),
			IconClass:      iconClass,
			CIIcon:         ciIcon(item.CIState),
			Labels:         labels,
			ReviewCount:    item.ReviewCount,
			CommentCount:   item.CommentCount,
			NeedsAttention: item.NeedsAttention,
		})
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	groups := make([]repoView, 0, len(names))
	for _, name := range names {
		groups = append(groups, repoView{
			Name: name,
			URL:  fmt.Sprintf("https://github.com/%s/%s", org, name),
			PRs:  grouped[name],
		})
	}

	return htmlReport.Execute(w, reportView{Org: org, Total: len(items), Groups: groups})
}

// WriteReport renders the HTML report into the OS temp directory and
// returns the file path.
func WriteReport(org string, items []models.ClassifiedPullRequest) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("%s_review_queue.html", org))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := RenderHTML(f, org, items); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return path, nil
}

// ciIcon returns the status icon for the rollup state, or nothing when
// checks are absent.
func ciIcon(state models.CIState) template.HTML {
	switch state {
	case models.CIStateSuccess:
		return `<span class="text-green-600" title="Checks passing">&#10003;</span>`
	case models.CIStateFailure:
		return `<span class="text-red-600" title="Checks failing">&#10007;</span>`
	case models.CIStatePending:
		return `<span class="text-yellow-500" title="Checks pending">&#9679;</span>`
	default:
		return ""
	}
}

// labelTextColor picks white or near-black text for a label background so
// the badge stays readable, using the background's relative luminance.
func labelTextColor(hexColor string) string {
	if len(hexColor) != 6 {
		return "#24292f"
	}
	r, err1 := strconv.ParseInt(hexColor[0:2], 16, 0)
	g, err2 := strconv.ParseInt(hexColor[2:4], 16, 0)
	b, err3 := strconv.ParseInt(hexColor[4:6], 16, 0)
	if err1 != nil || err2 != nil || err3 != nil {
		return "#24292f"
	}
	lum := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 255
	if lum < 0.6 {
		return "#fff"
	}
	return "#24292f"
}

// timeAgo renders a coarse relative timestamp ("3 days ago").
func timeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	if seconds < 60 {
		return "just now"
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%d minute%s ago", minutes, pluralSuffix(minutes))
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s ago", hours, pluralSuffix(hours))
	}
	days := hours / 24
	return fmt.Sprintf("%d day%s ago", days, pluralSuffix(days))
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
