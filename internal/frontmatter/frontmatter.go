package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// dateLayouts are tried in order for string-valued date fields.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
}

// Meta is the parsed frontmatter of a document.
type Meta struct {
	// Raw is the YAML text between the delimiters.
	Raw    []byte
	Fields map[string]any
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. Both LF and CRLF documents are accepted.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := "\n"
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		nl = "\r\n"
	}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closing := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closing)
	if idx < 0 {
		// a closing delimiter on the last line without trailing newline
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}
	return content[start : start+idx+len(nl)], content[start+idx+len(closing):], true, nil
}

// Parse splits content and decodes its frontmatter. Documents without
// frontmatter get an empty Fields map.
func Parse(content []byte) (Meta, []byte, error) {
	raw, body, had, err := Split(content)
	if err != nil {
		return Meta{}, nil, err
	}
	meta := Meta{Raw: raw, Fields: map[string]any{}}
	if !had || len(bytes.TrimSpace(raw)) == 0 {
		return meta, body, nil
	}
	if err := yaml.Unmarshal(raw, &meta.Fields); err != nil {
		return Meta{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Fields == nil {
		meta.Fields = map[string]any{}
	}
	return meta, body, nil
}

// String returns the string value of key, trimmed, or "".
func (m Meta) String(key string) string {
	switch v := m.Fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Title returns the `title` field.
func (m Meta) Title() string { return m.String("title") }

// Date returns the value of key as a time. ok is false when the field is
// missing or not a recognizable date.
func (m Meta) Date(key string) (time.Time, bool) {
	switch v := m.Fields[key].(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
