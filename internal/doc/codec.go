package doc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for file extensions without a codec.
var ErrUnknownFormat = errors.New("doc: unknown document format")

// Format is an on-disk document encoding.
type Format int

const (
	// FormatJSON is the TipTap/ProseMirror JSON tree.
	FormatJSON Format = iota
	// FormatText is lightly structured plain text: blank lines separate
	// blocks, "#" starts a heading, "- " a list item, "- [ ] " a task.
	FormatText
)

// DetectFormat chooses a format from a file name.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".txt", ".md", ".markdown", "":
		return FormatText, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Load reads a document from path.
func Load(path string) (*Doc, error) {
	root, err := LoadRoot(path)
	if err != nil {
		return nil, err
	}
	return New(root)
}

// LoadRoot reads the root node stored at path.
func LoadRoot(path string) (*Node, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer fh.Close()
	root, err := Decode(fh, f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return root, nil
}

// Save writes d to path in the format its extension implies.
func Save(path string, d *Doc) error {
	return SaveRoot(path, d.Root())
}

// SaveRoot writes root to path through a temporary file. Roots are never
// modified once committed, so a root taken from Doc.Root may be saved from
// another goroutine.
func SaveRoot(path string, root *Node) error {
	f, err := DetectFormat(path)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	fh, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	w := bufio.NewWriter(fh)
	if err := Encode(w, root, f); err != nil {
		fh.Close()
		os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		fh.Close()
		os.Remove(tmp)
		return fmt.Errorf("write document: %w", err)
	}
	if err := fh.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// Decode reads a root node in format f.
func Decode(r io.Reader, f Format) (*Node, error) {
	switch f {
	case FormatJSON:
		var root Node
		if err := json.NewDecoder(r).Decode(&root); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		if root.Type != TypeDoc {
			return nil, fmt.Errorf("%w: got %q", ErrNotDocument, root.Type)
		}
		return &root, nil
	case FormatText:
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read text: %w", err)
		}
		return ParseText(string(b)), nil
	}
	return nil, ErrUnknownFormat
}

// Encode writes root in format f.
func Encode(w io.Writer, root *Node, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(root); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatText:
		if _, err := io.WriteString(w, FormatPlain(root)); err != nil {
			return fmt.Errorf("write text: %w", err)
		}
		return nil
	}
	return ErrUnknownFormat
}

// ParseText builds a document from plain text.
func ParseText(s string) *Node {
	root := NewDoc()
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, chunk := range strings.Split(s, "\n\n") {
		chunk = strings.Trim(chunk, "\n")
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		lines := strings.Split(chunk, "\n")
		switch {
		case headingLevel(lines[0]) > 0 && len(lines) == 1:
			lvl := headingLevel(lines[0])
			root.Content = append(root.Content, NewHeading(lvl, inlineText(lines[0][lvl+1:])...))
		case isListChunk(lines):
			root.Content = append(root.Content, parseList(lines))
		default:
			root.Content = append(root.Content, NewParagraph(inlineText(chunk)...))
		}
	}
	return root
}

func headingLevel(line string) int {
	for lvl := 3; lvl >= 1; lvl-- {
		if strings.HasPrefix(line, strings.Repeat("#", lvl)+" ") {
			return lvl
		}
	}
	return 0
}

func isListChunk(lines []string) bool {
	for _, l := range lines {
		if !strings.HasPrefix(l, "- ") {
			return false
		}
	}
	return true
}

func parseList(lines []string) *Node {
	task := true
	for _, l := range lines {
		if !strings.HasPrefix(l, "- [ ] ") && !strings.HasPrefix(l, "- [x] ") {
			task = false
			break
		}
	}
	if !task {
		list := &Node{Type: TypeBulletList}
		for _, l := range lines {
			item := &Node{Type: TypeListItem, Content: []*Node{NewParagraph(inlineText(l[2:])...)}}
			list.Content = append(list.Content, item)
		}
		return list
	}
	list := &Node{Type: TypeTaskList}
	for _, l := range lines {
		item := &Node{
			Type:    TypeTaskItem,
			Attrs:   map[string]any{"checked": strings.HasPrefix(l, "- [x] ")},
			Content: []*Node{NewParagraph(inlineText(l[6:])...)},
		}
		list.Content = append(list.Content, item)
	}
	return list
}

// inlineText turns single newlines into hard breaks.
func inlineText(s string) []*Node {
	var out []*Node
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			out = append(out, NewHardBreak())
		}
		if part != "" {
			out = append(out, NewText(part))
		}
	}
	return out
}

// FormatPlain renders root as plain text, the inverse of ParseText for the
// structures it understands. Marks are dropped.
func FormatPlain(root *Node) string {
	var blocks []string
	for _, n := range root.Content {
		blocks = append(blocks, plainBlock(n))
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func plainBlock(n *Node) string {
	switch n.Type {
	case TypeHeading:
		return strings.Repeat("#", n.Level()) + " " + plainInline(n)
	case TypeBulletList, TypeOrderedList, TypeTaskList:
		var lines []string
		for _, item := range n.Content {
			prefix := "- "
			if item.Type == TypeTaskItem {
				prefix = "- [ ] "
				if item.Checked() {
					prefix = "- [x] "
				}
			}
			var parts []string
			for _, c := range item.Content {
				parts = append(parts, plainBlock(c))
			}
			lines = append(lines, prefix+strings.Join(parts, " "))
		}
		return strings.Join(lines, "\n")
	case TypeBlockquote, TypeListItem, TypeTaskItem:
		var parts []string
		for _, c := range n.Content {
			parts = append(parts, plainBlock(c))
		}
		return strings.Join(parts, "\n\n")
	case TypeHorizontalRule:
		return "---"
	}
	return plainInline(n)
}

func plainInline(n *Node) string {
	var b strings.Builder
	for _, c := range n.Content {
		switch {
		case c.IsText():
			b.WriteString(c.Text)
		case c.Type == TypeHardBreak:
			b.WriteByte('\n')
		}
	}
	return b.String()
}
