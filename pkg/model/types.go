package model

import "strings"

// RenderContext is the data bag supplied to a single page render. It is
// assembled per request by the host application and never mutated by the
// rendering pipeline: rendering the same context twice must produce
// byte-identical output.
type RenderContext struct {
	// Command is the current route/action name, e.g. "tag/list" or
	// "message/draft". Navigation highlighting and tools-panel selection
	// key off this value.
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Kwargs  map[string]string `json:"kwargs,omitempty"`

	// Result carries the outcome of the command that produced this page.
	Result Result `json:"result"`

	// Name is the display name of the signed-in account.
	Name string `json:"name,omitempty"`

	// IndexSize is the number of messages in the mail index.
	IndexSize int `json:"mailpile_size,omitempty"`

	CSRF         string `json:"csrf,omitempty"`
	HTTPHost     string `json:"http_host,omitempty"`
	HTTPHostname string `json:"http_hostname,omitempty"`
	HTTPMethod   string `json:"http_method,omitempty"`
	Title        string `json:"title,omitempty"`
	URLProtocol  string `json:"url_protocol,omitempty"`

	// HTMLInJSON requests fragment mode: only the inner content block is
	// rendered, with no document chrome, so the same render path can serve
	// partial/AJAX updates.
	HTMLInJSON bool `json:"html_in_json,omitempty"`

	// Logged holds debug log text shown in the page debug panel when
	// non-empty.
	Logged string `json:"logged,omitempty"`
}

// Result is the command output the page chrome inspects. The search box is
// prefilled from SearchTerms in order; SearchTagIDs marks tags that are part
// of the active search.
type Result struct {
	SearchTerms  []string `json:"search_terms,omitempty"`
	SearchTagIDs []string `json:"search_tag_ids,omitempty"`
}

// HasSearchTag reports whether the given tag id participates in the active
// search.
func (r Result) HasSearchTag(id string) bool {
	for _, candidate := range r.SearchTagIDs {
		if candidate == id {
			return true
		}
	}
	return false
}

// Tag is one sidebar tag row. Tags arrive in two ordered groups (priority
// and general); the renderer preserves query order and never re-sorts.
type Tag struct {
	Slug  string   `json:"slug"`
	Name  string   `json:"name"`
	URL   string   `json:"url,omitempty"`
	All   int      `json:"all,omitempty"`
	Stats TagStats `json:"stats"`
}

// TagStats carries the per-tag message counters used for the notification
// badge.
type TagStats struct {
	New int `json:"new"`
	All int `json:"all"`
}

// NormalizedCommand trims surrounding whitespace and slashes so command
// matching stays exact without being whitespace-sensitive.
func (c RenderContext) NormalizedCommand() string {
	return strings.Trim(strings.TrimSpace(c.Command), "/")
}
