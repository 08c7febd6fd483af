package types

// PageFormat selects the output format of the generated journal page.
type PageFormat string

const (
	PageMarkdown PageFormat = "markdown"
	PageHTML     PageFormat = "html"
	PageNone     PageFormat = "none"
)

// PageConfig holds settings for page generation.
type PageConfig struct {
	// Dir is the output directory. Empty means the journal file's directory.
	Dir string `json:"dir" yaml:"dir"`

	// Format selects markdown, html, or none.
	Format PageFormat `json:"format" yaml:"format"`

	// DateFormat is the Go time layout used for displayed dates.
	DateFormat string `json:"date_format" yaml:"date_format"`
}

// IndexConfig holds settings for the SQLite search index.
type IndexConfig struct {
	// Disabled turns off the index mirror entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`

	// Path is the database file. Empty means "<journal>.db" next to the journal.
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// WorkflowConfig holds settings for the interactive commands.
type WorkflowConfig struct {
	// NoColor disables terminal styling of the choice list.
	NoColor bool `json:"no_color" yaml:"no_color"`

	// DateFormat is the Go time layout used when showing a question's date.
	DateFormat string `json:"date_format" yaml:"date_format"`
}

// Config groups all settings resolved from flags, environment, and config file.
type Config struct {
	Page     PageConfig     `json:"page" yaml:"page"`
	Index    IndexConfig    `json:"index" yaml:"index"`
	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`

	// LogLevel is the diagnostic level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
