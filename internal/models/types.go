
package models

// PageMetadata is the discoverability metadata applied to a page each time it is displayed.
type PageMetadata struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	CanonicalURL string `json:"canonicalUrl" yaml:"canonicalUrl"`
}

// Meta is what a document head currently says, read back after rendering.
type Meta struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Canonical      string `json:"canonical"`
	TitleCount     int    `json:"titleCount"`
	DescCount      int    `json:"descriptionCount"`
	CanonicalCount int    `json:"canonicalCount"`
}

// Job is one rewrite request from a batch manifest.
type Job struct {
	Source      string `json:"source" yaml:"source"`
	Output      string `json:"output,omitempty" yaml:"output,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Canonical   string `json:"canonical" yaml:"canonical"`
}

// Metadata is the PageMetadata the job applies.
func (j Job) Metadata() PageMetadata {
	return PageMetadata{Title: j.Title, Description: j.Description, CanonicalURL: j.Canonical}
}

// Result reports one job: the head after rewriting, or why it failed.
type Result struct {
	Source  string `json:"source"`
	Output  string `json:"output,omitempty"`
	FetchMs int64  `json:"fetchMs,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}
