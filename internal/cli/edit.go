package cli

import (
	"errors"
	"io/fs"

	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/tui"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Open the document in the search and replace TUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			d, err := doc.Load(path)
			if errors.Is(err, fs.ErrNotExist) {
				// Start empty; the first save creates the file.
				d, err = doc.New(nil)
			}
			if err != nil {
				return err
			}
			watch, _ := cmd.Flags().GetBool("watch")
			return tui.Run(tui.Options{
				Path:      path,
				Doc:       d,
				Prefs:     a.prefs,
				PrefsPath: a.prefsPath,
				Watch:     watch,
				Logger:    a.log.Named("tui"),
			})
		},
	}
	cmd.Flags().Bool("watch", false, "Reload the document when it changes on disk")
	return cmd
}
