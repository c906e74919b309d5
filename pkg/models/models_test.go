package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChapterUnmarshal_ContentForms(t *testing.T) {
	tests := []struct {
		name string
		json string
		want []string
	}{
		{
			name: "list of paragraphs",
			json: `{"title":"One","content":["  first ","second",""]}`,
			want: []string{"first", "second"},
		},
		{
			name: "single string split on blank lines",
			json: `{"title":"One","content":"first line\nstill first\n\nsecond\n  \n\nthird"}`,
			want: []string{"first line\nstill first", "second", "third"},
		},
		{
			name: "windows line endings",
			json: `{"title":"One","content":"a\r\n\r\nb"}`,
			want: []string{"a", "b"},
		},
		{
			name: "missing content",
			json: `{"title":"One"}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ch Chapter
			require.NoError(t, json.Unmarshal([]byte(tt.json), &ch))
			assert.Equal(t, "One", ch.Title)
			if tt.want == nil {
				assert.Empty(t, ch.Content)
				return
			}
			assert.Equal(t, tt.want, ch.Content)
		})
	}
}

func TestChapterUnmarshal_RejectsOtherTypes(t *testing.T) {
	var ch Chapter
	err := json.Unmarshal([]byte(`{"title":"x","content":42}`), &ch)
	assert.Error(t, err)
}

func TestBookHelpers(t *testing.T) {
	book := &Book{
		Title: "T",
		Chapters: []Chapter{
			{Title: "a", Content: []string{"one two", "three"}},
			{Title: "b", Content: []string{"four five six"}},
		},
	}

	assert.Equal(t, 2, book.ChapterCount())
	assert.Equal(t, 6, book.WordCount())
	assert.Equal(t, "b", book.Chapter(1).Title)
	assert.Nil(t, book.Chapter(2))
	assert.Nil(t, book.Chapter(-1))

	var nilBook *Book
	assert.Equal(t, 0, nilBook.ChapterCount())
	assert.Nil(t, nilBook.Chapter(0))
}
