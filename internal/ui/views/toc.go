package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/inkreader/internal/reader"
	"github.com/justyntemme/inkreader/internal/ui/styles"
)

// TOCView is the table of contents overlay
type TOCView struct {
	session *reader.Session
	cursor  int

	width  int
	height int
}

// NewTOCView creates a new table of contents view
func NewTOCView() *TOCView {
	return &TOCView{width: 80, height: 24}
}

// SetSession attaches the session whose contents are listed
func (v *TOCView) SetSession(s *reader.Session) {
	v.session = s
}

// Open puts the cursor on the open chapter
func (v *TOCView) Open() {
	v.cursor = v.session.CurrentChapter()
}

// Move moves the cursor by delta entries
func (v *TOCView) Move(delta int) {
	n := len(v.session.TOC())
	if n == 0 {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor+delta, 0), n-1)
}

// Cursor returns the highlighted entry
func (v *TOCView) Cursor() int { return v.cursor }

// SetSize implements View
func (v *TOCView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View implements View
func (v *TOCView) View() string {
	return lipgloss.Place(
		v.width,
		v.height,
		lipgloss.Center,
		lipgloss.Center,
		v.dialog(),
	)
}

func (v *TOCView) dialog() string {
	var b strings.Builder

	b.WriteString(styles.DialogTitle.Render("Table of Contents") + "\n")
	if book := v.session.Book(); book != nil {
		b.WriteString(styles.BookTitle.Render(book.Title))
		if book.Author != "" {
			b.WriteString(styles.MutedText.Render(" by " + book.Author))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	entries := v.session.TOC()
	dialogWidth := min(64, max(v.width-4, 24))
	// Dialog border and padding take 6 cells, the marker and progress 14
	titleWidth := max(dialogWidth-6-14, 8)

	// Calculate visible range
	maxVisible := max(v.height-11, 1)
	offset := 0
	if v.cursor >= maxVisible {
		offset = v.cursor - maxVisible + 1
	}

	for i := offset; i < min(offset+maxVisible, len(entries)); i++ {
		e := entries[i]
		title := styles.TruncateText(fmt.Sprintf("%d. %s", e.Index+1, e.Title), titleWidth)
		title += strings.Repeat(" ", max(titleWidth-lipgloss.Width(title), 0))
		progress := renderProgressBar(6, float64(e.Percent)/100.0) + fmt.Sprintf(" %3d%%", e.Percent)

		marker := "  "
		if e.Active {
			marker = "• "
		}

		switch {
		case i == v.cursor:
			b.WriteString(styles.ListItemSelected.Render("▸ "+title+" "+progress) + "\n")
		case e.Active:
			b.WriteString(styles.BookAuthor.Render(marker+title+" ") + styles.ProgressFill.Render(progress) + "\n")
		case e.Percent == 0:
			b.WriteString(styles.ListItemDimmed.Render(marker+title+" "+progress) + "\n")
		default:
			b.WriteString(styles.ListItem.Render(marker+title+" ") + styles.ProgressFill.Render(progress) + "\n")
		}
	}

	b.WriteString("\n" + styles.Help.Render("j/k navigate • enter select • esc close"))

	return styles.Dialog.Width(dialogWidth).Render(b.String())
}
