package cli

import (
	"fmt"

	"github.com/interpretive-systems/jotfind/internal/doc"
	"github.com/interpretive-systems/jotfind/internal/logging"
	"github.com/interpretive-systems/jotfind/internal/prefs"
	"github.com/interpretive-systems/jotfind/internal/search"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what the persistent flags resolve to.
type app struct {
	prefs     prefs.Prefs
	prefsPath string
	log       *zap.Logger
}

func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:          "jotfind",
		Short:        "Search and replace inside rich-text notes",
		Long:         "jotfind: find, highlight and replace text in structured notes, from the shell or a TUI.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().String("config", prefs.DefaultPath(), "Path to the preferences file")
	root.PersistentFlags().String("log-file", "", "Write debug logs to this file (or set "+logging.EnvFile+")")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	// Add subcommands
	root.AddCommand(newFindCmd(a), newReplaceCmd(a), newEditCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	a.prefsPath, _ = flags.GetString("config")
	logFile, _ := flags.GetString("log-file")
	verbose, _ := flags.GetBool("verbose")

	log, err := logging.New(logging.Options{File: logFile, Verbose: verbose})
	if err != nil {
		return err
	}
	a.log = log
	cmd.SetContext(logging.NewContext(cmd.Context(), log))

	p, err := prefs.Load(a.prefsPath)
	if err != nil {
		// A broken config file should not block editing.
		a.log.Warn("using default preferences", zap.Error(err))
	}
	a.prefs = p
	return nil
}

// searchFlags registers the case and pattern flags shared by find and replace.
func searchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("term", "t", "", "Search term")
	cmd.Flags().BoolP("case-sensitive", "c", false, "Match case (overrides the config)")
	cmd.Flags().Bool("regex", false, "Treat the term as an RE2 pattern (overrides the config)")
	cmd.Flags().String("mode", "", "Search mode: literal or pattern (overrides the config)")
	cmd.MarkFlagsMutuallyExclusive("regex", "mode")
	_ = cmd.MarkFlagRequired("term")
}

// newEngine wires an engine over d with the preferences, overridden by any
// flags the user set, and subscribes it to d's changes.
func (a *app) newEngine(cmd *cobra.Command, d *doc.Doc) (*search.Engine, func(), error) {
	caseSensitive := a.prefs.CaseSensitive
	if cmd.Flags().Changed("case-sensitive") {
		caseSensitive, _ = cmd.Flags().GetBool("case-sensitive")
	}
	mode, err := searchMode(cmd, a.prefs.Regex)
	if err != nil {
		return nil, nil, err
	}

	e := search.New(d, d,
		search.WithLogger(logging.L(cmd.Context()).Named("search")),
		search.WithCaseSensitive(caseSensitive),
		search.WithMode(mode))
	unsubscribe := d.OnChange(func(doc.Change) { e.DocumentChanged() })

	term, _ := cmd.Flags().GetString("term")
	e.SetSearchTerm(term)
	return e, unsubscribe, nil
}

func searchMode(cmd *cobra.Command, regex bool) (search.Mode, error) {
	if cmd.Flags().Changed("mode") {
		s, _ := cmd.Flags().GetString("mode")
		return search.ParseMode(s)
	}
	if cmd.Flags().Changed("regex") {
		regex, _ = cmd.Flags().GetBool("regex")
	}
	if regex {
		return search.Pattern, nil
	}
	return search.Literal, nil
}
