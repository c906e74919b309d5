package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Book is a loaded document. It is not modified after load.
type Book struct {
	Title    string    `json:"title" validate:"required"`
	Author   string    `json:"author,omitempty"`
	Chapters []Chapter `json:"chapters" validate:"required,min=1,dive"`
}

// Chapter is a titled run of paragraphs
type Chapter struct {
	Title   string   `json:"title" validate:"required"`
	Content []string `json:"content"`
}

// blankLine matches paragraph boundaries in single-string chapter content
var blankLine = regexp.MustCompile(`\n[ \t\r]*\n`)

// UnmarshalJSON accepts content either as a list of paragraphs or as a
// single string separated by blank lines.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title   string          `json:"title"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Title = raw.Title
	c.Content = nil

	trimmed := strings.TrimSpace(string(raw.Content))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw.Content, &text); err != nil {
			return err
		}
		c.Content = SplitParagraphs(text)
	case '[':
		var paragraphs []string
		if err := json.Unmarshal(raw.Content, &paragraphs); err != nil {
			return err
		}
		c.Content = cleanParagraphs(paragraphs)
	default:
		return fmt.Errorf("chapter %q: content must be a string or a list of strings", raw.Title)
	}
	return nil
}

// SplitParagraphs splits text on blank-line boundaries, trimming each
// paragraph and dropping empty ones.
func SplitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return cleanParagraphs(blankLine.Split(text, -1))
}

func cleanParagraphs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ChapterCount returns the number of chapters, zero for a nil book
func (b *Book) ChapterCount() int {
	if b == nil {
		return 0
	}
	return len(b.Chapters)
}

// Chapter returns the chapter at index, or nil when out of range
func (b *Book) Chapter(index int) *Chapter {
	if b == nil || index < 0 || index >= len(b.Chapters) {
		return nil
	}
	return &b.Chapters[index]
}

// WordCount returns the number of whitespace-separated words across all chapters
func (b *Book) WordCount() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, ch := range b.Chapters {
		for _, p := range ch.Content {
			total += len(strings.Fields(p))
		}
	}
	return total
}
