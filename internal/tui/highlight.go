package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/interpretive-systems/jotfind/internal/theme"
	tuiansi "github.com/interpretive-systems/jotfind/internal/tui/ansi"
)

// rendered is the document laid out as terminal lines.
type rendered struct {
	lines []string
	// current is the line showing the start of the current match, or -1.
	current int
}

// renderer paints a document with its search decorations.
type renderer struct {
	theme  theme.Theme
	width  int
	decos  *search.DecorationSet
	cur    search.Decoration
	hasCur bool
	out    rendered
}

// renderDocument lays out d at width columns, painting every decoration in
// set and the current one distinctly.
func renderDocument(d *doc.Doc, set *search.DecorationSet, th theme.Theme, width int) rendered {
	r := &renderer{theme: th, width: width, decos: set, out: rendered{current: -1}}
	r.cur, r.hasCur = set.Current()
	pos := 0
	for i, n := range d.Root().Content {
		if i > 0 {
			r.out.lines = append(r.out.lines, "")
		}
		r.block(n, pos, "", "")
		pos += n.Size()
	}
	if len(r.out.lines) == 0 {
		r.out.lines = []string{lipgloss.NewStyle().Faint(true).Render("(empty document)")}
	}
	return r.out
}

// block renders n, which starts at pos. first prefixes its first line and
// rest every following one.
func (r *renderer) block(n *doc.Node, pos int, first, rest string) {
	switch n.Type {
	case doc.TypeParagraph, doc.TypeHeading, doc.TypeCodeBlock:
		r.textblock(n, pos, first, rest)
	case doc.TypeHorizontalRule:
		w := max(r.width-tuiansi.Width(first), 3)
		r.out.lines = append(r.out.lines, first+r.theme.DividerText(strings.Repeat("─", w)))
	case doc.TypeBulletList, doc.TypeOrderedList, doc.TypeTaskList:
		cpos := pos + 1
		for i, item := range n.Content {
			marker := listMarker(n.Type, item, i)
			itemFirst := rest + marker
			if i == 0 {
				itemFirst = first + marker
			}
			itemRest := rest + strings.Repeat(" ", tuiansi.Width(marker))
			r.children(item, cpos, itemFirst, itemRest)
			cpos += item.Size()
		}
	case doc.TypeBlockquote:
		bar := r.theme.DividerText("│ ")
		r.children(n, pos, first+bar, rest+bar)
	default:
		r.children(n, pos, first, rest)
	}
}

// children renders the content of container n starting at pos.
func (r *renderer) children(n *doc.Node, pos int, first, rest string) {
	cpos := pos + 1
	for j, c := range n.Content {
		f := rest
		if j == 0 {
			f = first
		}
		r.block(c, cpos, f, rest)
		cpos += c.Size()
	}
	if len(n.Content) == 0 {
		r.out.lines = append(r.out.lines, first)
	}
}

func listMarker(list doc.Type, item *doc.Node, i int) string {
	switch {
	case list == doc.TypeOrderedList:
		return fmt.Sprintf("%d. ", i+1)
	case item.Type == doc.TypeTaskItem && item.Checked():
		return "[x] "
	case item.Type == doc.TypeTaskItem:
		return "[ ] "
	}
	return "• "
}

// span is one hard-break separated line of a text block.
type span struct {
	text string
	from int
	to   int
}

func (r *renderer) textblock(n *doc.Node, pos int, first, rest string) {
	start := pos + 1
	decos := r.decos.Between(start, start+n.ContentSize())
	base := blockStyle(n, r.theme)

	var spans []span
	var b strings.Builder
	lineFrom := start
	p := start
	di := 0
	for _, c := range n.Content {
		switch {
		case c.IsText():
			style := markStyle(base, c)
			var seg []rune
			var segStyle lipgloss.Style
			segKey := -2
			flush := func() {
				if len(seg) > 0 {
					b.WriteString(segStyle.Render(string(seg)))
				}
				seg = seg[:0]
			}
			for _, ch := range c.Text {
				for di < len(decos) && decos[di].Range.To <= p {
					di++
				}
				key := -1
				st := style
				if di < len(decos) && decos[di].Range.From <= p {
					key = di
					st = r.theme.MatchStyle(decos[di].Current).Inherit(style)
				}
				if key != segKey {
					flush()
					segKey, segStyle = key, st
				}
				seg = append(seg, ch)
				p++
			}
			flush()
		case c.Type == doc.TypeHardBreak:
			spans = append(spans, span{text: b.String(), from: lineFrom, to: p})
			b.Reset()
			p++
			lineFrom = p
		default:
			b.WriteString(lipgloss.NewStyle().Faint(true).Render("[" + string(c.Type) + "]"))
			p++
		}
	}
	spans = append(spans, span{text: b.String(), from: lineFrom, to: p})

	if n.Type == doc.TypeHeading {
		first += r.theme.AccentText(strings.Repeat("#", n.Level()) + " ")
		rest += strings.Repeat(" ", n.Level()+1)
	}
	for i, s := range spans {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		r.emit(s, prefix, rest)
	}
}

// emit wraps one span and records where the current match landed.
func (r *renderer) emit(s span, prefix, rest string) {
	w := max(r.width-tuiansi.Width(prefix), 1)
	wrapped := tuiansi.Wrap(s.text, w)
	hit := r.hasCur && r.out.current < 0 && r.cur.Range.From >= s.from && r.cur.Range.From < max(s.to, s.from+1)
	offset := r.cur.Range.From - s.from
	for i, l := range wrapped {
		if hit {
			lw := len([]rune(tuiansi.Strip(l)))
			if offset < lw || i == len(wrapped)-1 {
				r.out.current = len(r.out.lines)
				hit = false
			}
			offset -= lw
		}
		p := rest
		if i == 0 {
			p = prefix
		}
		r.out.lines = append(r.out.lines, p+l)
	}
}

func blockStyle(n *doc.Node, th theme.Theme) lipgloss.Style {
	switch n.Type {
	case doc.TypeHeading:
		return lipgloss.NewStyle().Bold(true)
	case doc.TypeCodeBlock:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(th.AccentColor))
	}
	return lipgloss.NewStyle()
}

func markStyle(base lipgloss.Style, n *doc.Node) lipgloss.Style {
	st := base
	for _, m := range n.Marks {
		switch m.Type {
		case doc.MarkBold:
			st = st.Bold(true)
		case doc.MarkItalic:
			st = st.Italic(true)
		case doc.MarkStrike:
			st = st.Strikethrough(true)
		case doc.MarkCode:
			st = st.Faint(true)
		case doc.MarkHighlight:
			st = st.Underline(true)
		}
	}
	return st
}
