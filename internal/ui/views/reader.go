package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/justyntemme/inkreader/internal/reader"
	"github.com/justyntemme/inkreader/internal/ui/styles"
)

const (
	// pixelsPerCell is the width of one terminal cell at the base font size
	pixelsPerCell  = 8.0
	minColumnWidth = 20

	// Header, spacer, spacer, footer
	chromeLines = 4

	settingsToggle = " Aa "
)

// contentLine is one wrapped line of the open chapter
type contentLine struct {
	text  string
	title bool
}

// ReaderView paints the open chapter into a scrolling viewport and draws
// the header and footer around it. It is the reader.Viewport and
// reader.Presenter of the session.
type ReaderView struct {
	session *reader.Session
	help    help.Model
	keys    help.KeyMap

	vp         viewport.Model
	title      string
	paragraphs []string
	lines      []contentLine

	presentation reader.Presentation
	columns      int
	gap          int
	focused      bool

	location string

	// Dimensions
	width  int
	height int
}

var (
	_ reader.Viewport  = (*ReaderView)(nil)
	_ reader.Presenter = (*ReaderView)(nil)
)

// NewReaderView creates a new reader view
func NewReaderView(keys help.KeyMap) *ReaderView {
	v := &ReaderView{
		help:   help.New(),
		keys:   keys,
		vp:     viewport.New(80, 20),
		width:  80,
		height: 24,
		presentation: reader.Presentation{
			FontSize:   reader.Font.Base,
			LineHeight: reader.LineHeight.Base,
			MaxWidth:   reader.Width.Base,
		},
	}
	v.layout()
	return v
}

// SetSession attaches the session whose state the view draws
func (v *ReaderView) SetSession(s *reader.Session) {
	v.session = s
}

// SetLocation records the document location shown while loading
func (v *ReaderView) SetLocation(location string) {
	v.location = location
}

// Reset clears the chapter and scrolls to the top. Focus is kept: a
// jump focuses the view before the chapter is repainted.
func (v *ReaderView) Reset() {
	v.title = ""
	v.paragraphs = nil
	v.lines = nil
	v.vp.SetContent("")
	v.vp.SetYOffset(0)
}

// SetTitle paints the chapter title
func (v *ReaderView) SetTitle(title string) {
	v.title = title
	v.rewrap()
	v.refresh()
}

// AppendParagraphs adds paragraphs below the current content
func (v *ReaderView) AppendParagraphs(paragraphs []string) {
	for _, p := range paragraphs {
		v.paragraphs = append(v.paragraphs, p)
		v.appendParagraph(p)
	}
	v.refresh()
}

// ScrollOffset returns the first visible line
func (v *ReaderView) ScrollOffset() int { return v.vp.YOffset }

// SetScrollOffset scrolls so offset is the first visible line
func (v *ReaderView) SetScrollOffset(offset int) { v.vp.SetYOffset(offset) }

// ScrollHeight returns the number of content lines
func (v *ReaderView) ScrollHeight() int { return len(v.lines) }

// ClientHeight returns the number of visible lines
func (v *ReaderView) ClientHeight() int { return v.vp.Height }

// Focus marks the content as having focus. The header marks the chapter
// while the reading area is focused and not covered by the settings panel.
func (v *ReaderView) Focus() { v.focused = true }

// Focused reports whether the content has focus
func (v *ReaderView) Focused() bool { return v.focused }

// Present applies theme, column width and paragraph spacing
func (v *ReaderView) Present(p reader.Presentation) {
	styles.SetCurrentTheme(p.Theme.String())
	v.presentation = p
	v.relayout()
}

// Columns returns the text column width in cells
func (v *ReaderView) Columns() int { return v.columns }

// ScrollBy scrolls by delta lines and reports whether the offset moved
func (v *ReaderView) ScrollBy(delta int) bool {
	before := v.vp.YOffset
	v.vp.SetYOffset(before + delta)
	return v.vp.YOffset != before
}

// ScrollToTop scrolls to the first line
func (v *ReaderView) ScrollToTop() bool {
	return v.ScrollBy(-v.vp.YOffset)
}

// ScrollToBottom scrolls to the last page
func (v *ReaderView) ScrollToBottom() bool {
	return v.ScrollBy(v.maxOffset() - v.vp.YOffset)
}

// PageSize returns how far a page scroll moves
func (v *ReaderView) PageSize() int {
	return max(v.vp.Height-2, 1)
}

// ToggleBounds returns the cell range of the settings toggle in the header
func (v *ReaderView) ToggleBounds() (x0, x1, y int) {
	return v.width - lipgloss.Width(settingsToggle), v.width, 0
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.relayout()
}

// View implements View
func (v *ReaderView) View() string {
	if v.session == nil {
		return ""
	}

	switch v.session.Phase() {
	case reader.PhaseLoading:
		return v.renderStatusHeader() + "\n" + lipgloss.Place(
			v.width,
			max(v.height-1, 1),
			lipgloss.Center,
			lipgloss.Center,
			styles.MutedText.Render("Loading "+styles.TruncateText(v.location, max(v.width-12, 10))+"…"),
		)

	case reader.PhaseFailed:
		msg := styles.ErrorStyle.Render("Failed to load the book.") + "\n" +
			styles.MutedText.Render("Please reload to try again.")
		if err := v.session.Err(); err != nil {
			msg += "\n\n" + styles.MutedText.Render(styles.TruncateText(err.Error(), max(v.width-8, 10)))
		}
		return v.renderStatusHeader() + "\n" + lipgloss.Place(
			v.width,
			max(v.height-1, 1),
			lipgloss.Center,
			lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, msg),
		)
	}

	var b strings.Builder
	b.WriteString(v.renderHeader() + "\n\n")
	b.WriteString(v.vp.View())
	b.WriteString("\n\n")
	b.WriteString(v.renderFooter())
	return b.String()
}

// HeaderView renders the header row alone, for overlays that keep it visible
func (v *ReaderView) HeaderView() string {
	if v.session.Phase() == reader.PhaseReady {
		return v.renderHeader()
	}
	return v.renderStatusHeader()
}

// renderStatusHeader is the header shown before a book is available
func (v *ReaderView) renderStatusHeader() string {
	left := styles.ReaderHeader.Render(" " + v.session.ChapterLabel() + " ")
	right := v.renderToggle()
	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHeader renders the reader header with proper truncation
func (v *ReaderView) renderHeader() string {
	book := v.session.Book()

	// Book title (truncated to 1/3 of width, unicode-safe)
	maxTitleWidth := max(v.width/3, 10)
	title := styles.TruncateText(book.Title, maxTitleWidth)
	titlePart := styles.ReaderHeader.Render(" " + title + " ")

	chapterTitle := styles.TruncateText(v.session.ChapterLabel(), 24)
	chapter := fmt.Sprintf("Ch %d/%d: %s ", v.session.CurrentChapter()+1, book.ChapterCount(), chapterTitle)
	var chapterPart string
	if v.focused && !v.session.SettingsOpen() {
		chapterPart = styles.HelpKey.Render(" ▸ " + chapter)
	} else {
		chapterPart = styles.Help.Render(" " + chapter)
	}

	chapterProgress := v.session.Percent()
	bookProgress := v.session.BookProgress()

	// Progress bars - use compact format
	barWidth := 10
	chapterBar := styles.ProgressFill.Render(renderProgressBar(barWidth, float64(chapterProgress)/100.0))
	bookBar := styles.ProgressFill.Render(renderProgressBar(barWidth, float64(bookProgress)/100.0))

	progressPart := styles.MutedText.Render("Ch:") + chapterBar +
		styles.ReaderProgress.Render(fmt.Sprintf(" %d%%", chapterProgress)) +
		styles.MutedText.Render("  Book:") + bookBar + " "

	left := titlePart + chapterPart
	right := progressPart + v.renderToggle()

	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Drop the chapter part before squeezing the toggle off screen
		left = titlePart
		gap = max(v.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}

	return left + strings.Repeat(" ", gap) + right
}

func (v *ReaderView) renderToggle() string {
	if v.session.SettingsOpen() {
		return styles.ButtonFocused.UnsetMarginRight().UnsetPadding().Render(settingsToggle)
	}
	return styles.Button.UnsetMarginRight().UnsetPadding().Render(settingsToggle)
}

// renderFooter renders the reader footer with consistent styling
func (v *ReaderView) renderFooter() string {
	nav := v.session.Nav()
	prev := styles.ButtonDisabled.UnsetPadding().Render("‹ prev")
	if nav.PrevEnabled {
		prev = styles.SecondaryText.Render("‹ prev")
	}
	next := styles.ButtonDisabled.UnsetPadding().Render("next ›")
	if nav.NextEnabled {
		next = styles.SecondaryText.Render("next ›")
	}

	v.help.Width = max(v.width/2, 20)
	v.help.Styles.ShortKey = styles.HelpKey
	v.help.Styles.ShortDesc = styles.Help
	v.help.Styles.ShortSeparator = styles.MutedText
	v.help.Styles.Ellipsis = styles.MutedText

	left := prev + "  " + next + "  " + v.help.ShortHelpView(v.keys.ShortHelp())

	words := v.session.Book().WordCount()
	right := styles.MutedText.Render(fmt.Sprintf("%s words · %s · %s",
		humanize.Comma(int64(words)),
		v.session.AppliedTheme(),
		reader.Font.Label(v.session.FontScale())))

	gap := v.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusBar.Render(left)
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderProgressBar renders a visual progress bar using Unicode block characters
// width is the total character width, progress is 0.0-1.0
func renderProgressBar(width int, progress float64) string {
	if width < 3 {
		width = 3
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	// Unicode block characters for smooth rendering
	const (
		empty    = "░"
		filled   = "█"
		partials = "▏▎▍▌▋▊▉" // 1/8 to 7/8 filled
	)

	filledWidth := progress * float64(width)
	fullBlocks := int(filledWidth)
	remainder := filledWidth - float64(fullBlocks)

	var bar strings.Builder

	for i := 0; i < fullBlocks && i < width; i++ {
		bar.WriteString(filled)
	}

	// Partial block (if there's room and remainder)
	if fullBlocks < width && remainder > 0 {
		partialIndex := min(int(remainder*8), 7)
		if partialIndex > 0 {
			runes := []rune(partials)
			bar.WriteRune(runes[partialIndex-1])
			fullBlocks++
		}
	}

	for i := fullBlocks; i < width; i++ {
		bar.WriteString(empty)
	}

	return bar.String()
}

// columnWidth maps the presentation's font size and max width onto a
// column of terminal cells: a larger font means fewer cells per line.
func columnWidth(p reader.Presentation, width int) int {
	cell := pixelsPerCell * p.FontSize / reader.Font.Base
	cols := minColumnWidth
	if cell > 0 {
		cols = int(p.MaxWidth / cell)
	}
	limit := max(width-4, minColumnWidth)
	return min(max(cols, minColumnWidth), limit)
}

// paragraphGap maps line height onto blank lines between paragraphs
func paragraphGap(p reader.Presentation) int {
	offset := math.Round((p.LineHeight-reader.LineHeight.Base)*100) / 100
	switch reader.LineHeight.Label(offset) {
	case "compact":
		return 0
	case "standard":
		return 1
	case "relaxed":
		return 2
	default:
		return 3
	}
}

// wrapText wraps on word boundaries, hard-breaking words longer than the column
func wrapText(s string, columns int) []string {
	return strings.Split(wrap.String(wordwrap.String(s, columns), columns), "\n")
}

func (v *ReaderView) layout() {
	v.vp.Width = v.width
	v.vp.Height = max(v.height-chromeLines, 1)
	v.columns = columnWidth(v.presentation, v.width)
	v.gap = paragraphGap(v.presentation)
}

func (v *ReaderView) maxOffset() int {
	return max(len(v.lines)-v.vp.Height, 0)
}

// relayout rewraps everything at the current size and presentation,
// keeping the reading position as a fraction of the chapter.
func (v *ReaderView) relayout() {
	fraction := 0.0
	if m := v.maxOffset(); m > 0 {
		fraction = float64(v.vp.YOffset) / float64(m)
	}

	v.layout()
	v.rewrap()
	v.refresh()

	v.vp.SetYOffset(int(math.Round(fraction * float64(v.maxOffset()))))
}

func (v *ReaderView) rewrap() {
	v.lines = nil
	if v.title != "" {
		for _, l := range wrapText(v.title, v.columns) {
			v.lines = append(v.lines, contentLine{text: l, title: true})
		}
	}
	for _, p := range v.paragraphs {
		v.appendParagraph(p)
	}
}

func (v *ReaderView) appendParagraph(p string) {
	if n := len(v.lines); n > 0 {
		gap := v.gap
		if v.lines[n-1].title {
			gap = max(gap, 1)
		}
		for i := 0; i < gap; i++ {
			v.lines = append(v.lines, contentLine{})
		}
	}
	for _, l := range wrapText(p, v.columns) {
		v.lines = append(v.lines, contentLine{text: l})
	}
}

// refresh renders the wrapped lines, centered, into the viewport
func (v *ReaderView) refresh() {
	pad := strings.Repeat(" ", max((v.width-v.columns)/2, 0))
	out := make([]string, len(v.lines))
	for i, l := range v.lines {
		switch {
		case l.text == "":
			out[i] = ""
		case l.title:
			out[i] = pad + styles.ChapterTitle.Render(l.text)
		default:
			out[i] = pad + styles.ReaderContent.Render(l.text)
		}
	}
	v.vp.SetContent(strings.Join(out, "\n"))
}
