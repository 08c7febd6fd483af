// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagegen renders a journal as a static page: questions sorted by
// creation date, each followed by its answers in the order they were given.
package pagegen

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/pkg/types"
)

const defaultDateFormat = "2006-01-02 15:04"

// FrontMatter is the YAML header written at the top of Markdown pages.
type FrontMatter struct {
	Title     string `yaml:"title"`
	Generated string `yaml:"generated"`
	Questions int    `yaml:"questions"`
	Answers   int    `yaml:"answers"`
}

// Chronological returns the questions sorted by creation date, oldest
// first. Questions with equal dates keep their queue order. doc is not
// modified.
func Chronological(doc *types.Document) []types.Question {
	qs := slices.Clone(doc.Questions)
	slices.SortStableFunc(qs, func(a, b types.Question) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return qs
}

// PagePath returns where the page for journalPath is written: the journal's
// base name with the format's extension, in cfg.Dir or beside the journal.
func PagePath(journalPath string, cfg types.PageConfig) string {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Dir(journalPath)
	}
	base := strings.TrimSuffix(filepath.Base(journalPath), filepath.Ext(journalPath))
	ext := ".md"
	if cfg.Format == types.PageHTML {
		ext = ".html"
	}
	return filepath.Join(dir, base+ext)
}

// Render writes the page for doc and returns its path. Format "none"
// writes nothing and returns an empty path.
func Render(doc *types.Document, journalPath string, cfg types.PageConfig, now time.Time) (string, error) {
	var (
		data []byte
		err  error
	)
	title := strings.TrimSuffix(filepath.Base(journalPath), filepath.Ext(journalPath))

	switch cfg.Format {
	case types.PageNone:
		return "", nil
	case types.PageMarkdown, "":
		data, err = Markdown(doc, title, cfg.DateFormat, now)
	case types.PageHTML:
		data, err = HTML(doc, title, cfg.DateFormat, now)
	default:
		return "", fmt.Errorf("unsupported page format %q: use markdown, html, or none", cfg.Format)
	}
	if err != nil {
		return "", err
	}

	path := PagePath(journalPath, cfg)
	if journal.SamePath(path, journalPath) {
		return "", fmt.Errorf("page %s would overwrite the journal: rename the journal or set page.dir", path)
	}
	if err := journal.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("writing page: %w", err)
	}
	return path, nil
}

// Markdown renders doc as Markdown with a YAML front matter block.
func Markdown(doc *types.Document, title, dateFormat string, now time.Time) ([]byte, error) {
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}

	fm, err := yaml.Marshal(FrontMatter{
		Title:     title,
		Generated: now.Format(time.RFC3339),
		Questions: len(doc.Questions),
		Answers:   doc.AnswerCount(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "\n# %s\n", title)

	for _, q := range Chronological(doc) {
		fmt.Fprintf(&b, "\n## %s\n\n", q.Description)
		fmt.Fprintf(&b, "_Asked %s_\n", q.Time().Format(dateFormat))
		if len(q.Answers) == 0 {
			b.WriteString("\nNo answers yet.\n")
			continue
		}
		for _, a := range q.Answers {
			fmt.Fprintf(&b, "\n**%s**\n\n%s\n", a.Time().Format(dateFormat), a.Description)
		}
	}
	return b.Bytes(), nil
}

var htmlPage = template.Must(template.New("page").Funcs(template.FuncMap{
	"date": func(layout string, ms int64) string { return time.UnixMilli(ms).Format(layout) },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- range .Questions}}
<section>
<h2>{{.Description}}</h2>
<p class="asked">Asked <time>{{date $.DateFormat .Date}}</time></p>
{{- range .Answers}}
<article>
<p class="date"><time>{{date $.DateFormat .Date}}</time></p>
<p>{{.Description}}</p>
</article>
{{- else}}
<p class="empty">No answers yet.</p>
{{- end}}
</section>
{{- end}}
<footer>Generated <time>{{.Generated}}</time></footer>
</body>
</html>
`))

// HTML renders doc as a standalone HTML page.
func HTML(doc *types.Document, title, dateFormat string, now time.Time) ([]byte, error) {
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}
	var b bytes.Buffer
	err := htmlPage.Execute(&b, struct {
		Title      string
		DateFormat string
		Generated  string
		Questions  []types.Question
	}{
		Title:      title,
		DateFormat: dateFormat,
		Generated:  now.Format(time.RFC3339),
		Questions:  Chronological(doc),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	return b.Bytes(), nil
}
