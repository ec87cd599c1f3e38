package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/interpretive-systems/jotfind/internal/theme"
	"github.com/spf13/cobra"
)

// findContext is how many positions around a match the listing shows.
const findContext = 24

// findRecord is one --json output record.
type findRecord struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	From   int    `json:"from"`
	To     int    `json:"to"`
	Text   string `json:"text"`
	Class  string `json:"class"`
}

func newFindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find FILE",
		Short: "List the matches of a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := doc.Load(args[0])
			if err != nil {
				return err
			}
			e, unsubscribe, err := a.newEngine(cmd, d)
			if err != nil {
				return err
			}
			defer unsubscribe()
			if err := e.PatternErr(); err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d, e.Decorations(), a.prefs.ResultClass)
			}
			writeListing(cmd.OutOrStdout(), args[0], d, e.Matches(), theme.For(a.prefs))
			return nil
		},
	}
	searchFlags(cmd)
	cmd.Flags().Bool("json", false, "Print matches as a JSON array")
	return cmd
}

func writeJSON(w io.Writer, d *doc.Doc, set *search.DecorationSet, class string) error {
	out := make([]findRecord, 0, set.Len())
	for deco := range set.All() {
		m := deco.Range
		pos, err := d.PositionOf(m.From)
		if err != nil {
			return err
		}
		out = append(out, findRecord{
			Line:   pos.Line,
			Column: pos.Column,
			From:   m.From,
			To:     m.To,
			Text:   d.TextBetween(m.From, m.To, " ", " "),
			Class:  deco.Class(class),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeListing prints grep-style "file:line:col: context" lines.
func writeListing(w io.Writer, name string, d *doc.Doc, matches []search.Range, th theme.Theme) {
	style := th.MatchStyle(true)
	for _, m := range matches {
		pos, err := d.PositionOf(m.From)
		if err != nil {
			continue
		}
		before := d.TextBetween(max(m.From-findContext, 0), m.From, " ", " ")
		text := d.TextBetween(m.From, m.To, " ", " ")
		after := d.TextBetween(m.To, min(m.To+findContext, d.Size()), " ", " ")
		fmt.Fprintf(w, "%s:%d:%d: %s%s%s\n", name, pos.Line, pos.Column, before, style.Render(text), after)
	}
}
