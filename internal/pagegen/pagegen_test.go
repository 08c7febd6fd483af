// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/amsa/internal/journal"
	"github.com/pdiddy/amsa/pkg/types"
)

var generatedAt = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

// queueOrder holds questions in answering order, which differs from
// creation order.
func queueOrder() *types.Document {
	return &types.Document{Questions: []types.Question{
		{Date: 3000, Description: "Third?", Answers: []types.Answer{}},
		{Date: 1000, Description: "First?", Answers: []types.Answer{
			{Date: 1500, Description: "early"},
			{Date: 4000, Description: "late"},
		}},
		{Date: 2000, Description: "Second <b>?</b>", Answers: []types.Answer{
			{Date: 2500, Description: "a & b"},
		}},
	}}
}

func TestChronological(t *testing.T) {
	doc := queueOrder()
	got := Chronological(doc)

	var descs []string
	for _, q := range got {
		descs = append(descs, q.Description)
	}
	assert.Equal(t, []string{"First?", "Second <b>?</b>", "Third?"}, descs)
	assert.Equal(t, "Third?", doc.Questions[0].Description, "document order is untouched")
}

func TestChronologicalStableForEqualDates(t *testing.T) {
	doc := &types.Document{Questions: []types.Question{
		{Date: 5, Description: "x"},
		{Date: 5, Description: "y"},
		{Date: 1, Description: "z"},
	}}
	got := Chronological(doc)
	assert.Equal(t, "z", got[0].Description)
	assert.Equal(t, "x", got[1].Description)
	assert.Equal(t, "y", got[2].Description)
}

func TestMarkdown(t *testing.T) {
	data, err := Markdown(queueOrder(), "amsa", "", generatedAt)
	require.NoError(t, err)
	text := string(data)

	require.True(t, strings.HasPrefix(text, "---\n"))
	parts := strings.SplitN(text[4:], "---\n", 2)
	require.Len(t, parts, 2)

	var fm FrontMatter
	require.NoError(t, yaml.Unmarshal([]byte(parts[0]), &fm))
	assert.Equal(t, FrontMatter{
		Title:     "amsa",
		Generated: "2026-10-19T08:00:00Z",
		Questions: 3,
		Answers:   3,
	}, fm)

	first := strings.Index(text, "## First?")
	second := strings.Index(text, "## Second")
	third := strings.Index(text, "## Third?")
	assert.True(t, first > 0 && first < second && second < third, "questions in date order")

	early := strings.Index(text, "early")
	late := strings.Index(text, "late")
	assert.True(t, early > first && early < late && late < second, "answers in stored order under their question")

	assert.Contains(t, text, "No answers yet.")
	assert.Contains(t, text, "_Asked "+time.UnixMilli(1000).Format(defaultDateFormat)+"_")
}

func TestHTMLEscapes(t *testing.T) {
	data, err := HTML(queueOrder(), "amsa", time.RFC3339, generatedAt)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "<title>amsa</title>")
	assert.Contains(t, text, "Second &lt;b&gt;?&lt;/b&gt;")
	assert.Contains(t, text, "a &amp; b")
	assert.NotContains(t, text, "<b>?</b>")
	assert.Less(t, strings.Index(text, "First?"), strings.Index(text, "Third?"))
	assert.Contains(t, text, time.UnixMilli(1500).Format(time.RFC3339))
	assert.Contains(t, text, `<p class="empty">No answers yet.</p>`)
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		cfg  types.PageConfig
		want string
	}{
		{name: "markdown beside journal", path: "/data/amsa.json", want: "/data/amsa.md"},
		{name: "html beside journal", path: "/data/amsa.json", cfg: types.PageConfig{Format: types.PageHTML}, want: "/data/amsa.html"},
		{name: "configured dir", path: "/data/me.json", cfg: types.PageConfig{Dir: "/site"}, want: "/site/me.md"},
		{name: "no extension", path: "journal", want: "journal.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PagePath(tt.path, tt.cfg))
		})
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "amsa.json")

	path, err := Render(queueOrder(), journalPath, types.PageConfig{}, generatedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "amsa.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## First?")

	out := filepath.Join(dir, "site")
	path, err = Render(queueOrder(), journalPath, types.PageConfig{Dir: out, Format: types.PageHTML}, generatedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "amsa.html"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestRenderRefusesJournalPath(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		format  types.PageFormat
	}{
		{name: "markdown journal", journal: "notes.md", format: types.PageMarkdown},
		{name: "html journal", journal: "notes.html", format: types.PageHTML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			journalPath := filepath.Join(dir, tt.journal)
			require.NoError(t, journal.Save(journalPath, queueOrder()))
			before, err := os.ReadFile(journalPath)
			require.NoError(t, err)

			_, err = Render(queueOrder(), journalPath, types.PageConfig{Format: tt.format}, generatedAt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "overwrite the journal")

			after, err := os.ReadFile(journalPath)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			_, err = journal.Read(journalPath)
			assert.NoError(t, err)
		})
	}

	// A separate page directory keeps the same base name apart.
	dir := t.TempDir()
	journalPath := filepath.Join(dir, "notes.md")
	path, err := Render(queueOrder(), journalPath, types.PageConfig{Dir: filepath.Join(dir, "site")}, generatedAt)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "site", "notes.md"), path)
}

func TestRenderNone(t *testing.T) {
	dir := t.TempDir()
	path, err := Render(queueOrder(), filepath.Join(dir, "amsa.json"), types.PageConfig{Format: types.PageNone}, generatedAt)
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(queueOrder(), filepath.Join(t.TempDir(), "amsa.json"), types.PageConfig{Format: "pdf"}, generatedAt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pdf"`)
}
