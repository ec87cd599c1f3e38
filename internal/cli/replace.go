package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/interpretive-systems/jotfind/internal/diffview"
	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/theme"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errEmptyFirst rejects --first without replacement text; a single replace
// never deletes.
var errEmptyFirst = errors.New("empty replacement: --first needs --with text")

func newReplaceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace FILE",
		Short: "Replace the matches of a term and save the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			with, _ := cmd.Flags().GetString("with")
			first, _ := cmd.Flags().GetBool("first")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = path
			}

			d, err := doc.Load(path)
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
			e.SetReplaceTerm(with)
			if first && with == "" && e.MatchCount() > 0 {
				return errEmptyFirst
			}

			before := d.Text()
			version := d.Version()
			var n int
			if first {
				err = e.Replace()
				if d.Version() != version {
					n = 1
				}
			} else {
				n, err = e.ReplaceAll()
			}
			if err != nil {
				return err
			}
			a.log.Debug("replaced", zap.String("path", path), zap.Bool("first", first), zap.Int("matches", n))

			if dryRun {
				writePreview(cmd.OutOrStdout(), before, d.Text(), theme.For(a.prefs))
				return nil
			}
			if n == 0 && output == path {
				fmt.Fprintln(cmd.ErrOrStderr(), "no matches; nothing written")
				return nil
			}
			if err := doc.Save(output, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: replaced %d %s\n", output, n, plural(n, "match", "matches"))
			return nil
		},
	}
	searchFlags(cmd)
	cmd.Flags().StringP("with", "w", "", "Replacement text")
	cmd.Flags().Bool("first", false, "Replace only the first match")
	cmd.Flags().Bool("dry-run", false, "Print a preview instead of writing")
	cmd.Flags().StringP("output", "o", "", "Write to this file instead of FILE")
	return cmd
}

// writePreview prints the lines a replace changes, unified style, followed
// by a summary.
func writePreview(w io.Writer, before, after string, th theme.Theme) {
	rows := diffview.BuildRows(before, after, 1)
	for _, r := range rows {
		switch r.Kind {
		case diffview.RowHunk:
			fmt.Fprintln(w, th.AccentText(r.Meta))
		case diffview.RowContext:
			fmt.Fprintln(w, "  "+r.Left)
		case diffview.RowDel:
			fmt.Fprintln(w, th.DelText("- "+r.Left))
		case diffview.RowAdd:
			fmt.Fprintln(w, th.AddText("+ "+r.Right))
		case diffview.RowReplace:
			fmt.Fprintln(w, th.DelText("- "+r.Left))
			fmt.Fprintln(w, th.AddText("+ "+r.Right))
		}
	}
	fmt.Fprintln(w, diffview.Summarize(rows).String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
