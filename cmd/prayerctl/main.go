package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	prayerlog "prayerlog/internal"
	"prayerlog/internal/config"
	"prayerlog/internal/db"
	"prayerlog/internal/journal"
	"prayerlog/internal/stats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalOptions struct {
	dataDir string
	storage string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "prayerctl",
		Short:         "Inspect and edit the local prayer journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory, overrides PRAYERLOG_DATA_DIR")
	root.PersistentFlags().StringVar(&opts.storage, "storage", "", "storage backend (file, sqlite, redis), overrides PRAYERLOG_STORAGE")

	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newSessionsCmd(opts))
	root.AddCommand(newLogCmd(opts))
	root.AddCommand(newPrayersCmd(opts))
	root.AddCommand(newPrayCmd(opts))
	root.AddCommand(newAnswerCmd(opts))
	root.AddCommand(newDeleteCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newMergeGuestCmd(opts))
	return root
}

// openState loads the journal; the returned func closes the storage.
func openState(ctx context.Context, opts *globalOptions) (*prayerlog.State, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(cfg.LogLevel)
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	if opts.storage != "" {
		cfg.Storage = db.Backend(strings.ToLower(opts.storage))
	}
	state, manager, err := prayerlog.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return state, func() { _ = manager.Close() }, nil
}

func newStatsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak and prayer time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()
			printStats(cmd.OutOrStdout(), state.Stats())
			return nil
		},
	}
}

func printStats(w io.Writer, s stats.PrayerStats) {
	last := "never"
	if s.LastPrayerDate != nil {
		last = *s.LastPrayerDate
	}
	_, _ = fmt.Fprintf(w, "streak: %d days (longest %d)\nanswered prayers: %d\ntotal: %s\nweek: %s\nmonth: %s\nlast prayer: %s\n",
		s.ConsecutiveDays, s.LongestStreak, s.AnsweredPrayers,
		formatSeconds(s.TotalPrayerTime), formatSeconds(s.WeeklyPrayerTime), formatSeconds(s.MonthlyPrayerTime), last)
}

func formatSeconds(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func newSessionsCmd(opts *globalOptions) *cobra.Command {
	var date, month string
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List sessions on a day or in a month (default: this month)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			var sessions []journal.Session
			switch {
			case date != "":
				sessions, err = state.SessionsOnDate(date)
			default:
				var t time.Time
				if month == "" {
					t = time.Now()
				} else if t, err = time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("--month must be YYYY-MM: %w", err)
				}
				sessions, err = state.SessionsInMonth(t.Year(), t.Month())
			}
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", s.Date, formatSeconds(s.Duration), s.ID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD")
	cmd.Flags().StringVar(&month, "month", "", "month as YYYY-MM")
	return cmd
}

func newLogCmd(opts *globalOptions) *cobra.Command {
	var (
		duration time.Duration
		date     string
		notes    journal.Notes
	)
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed prayer session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			session, err := state.AddSession(cmd.Context(), int(duration/time.Second), notes, date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s on %s (%s)\n", formatSeconds(session.Duration), session.Date, session.ID)
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "session length, e.g. 15m")
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD, default today")
	cmd.Flags().StringVar(&notes.Adoration, "adoration", "", "adoration notes")
	cmd.Flags().StringVar(&notes.Confession, "confession", "", "confession notes")
	cmd.Flags().StringVar(&notes.Thanksgiving, "thanksgiving", "", "thanksgiving notes")
	cmd.Flags().StringVar(&notes.Supplication, "supplication", "", "supplication notes")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newPrayersCmd(opts *globalOptions) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "prayers",
		Short: "List prayer requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := journal.ParseFilter(filter)
			if err != nil {
				return err
			}
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			prayers := state.Prayers(f)
			if len(prayers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no prayers")
				return nil
			}
			for _, p := range prayers {
				status := "active"
				if p.IsAnswered {
					status = "answered " + p.AnsweredDate.Format("2006-01-02")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.ID, p.Category, status, p.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, active or answered")
	return cmd
}

func newPrayCmd(opts *globalOptions) *cobra.Command {
	var title, description, category string
	var guest bool
	cmd := &cobra.Command{
		Use:   "pray",
		Short: "Add a prayer request",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			create := state.CreatePrayer
			if guest {
				create = state.CreateGuestPrayer
			}
			prayer, err := create(cmd.Context(), title, description, journal.Category(category))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", prayer.ID, prayer.Category)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "prayer title")
	cmd.Flags().StringVar(&description, "description", "", "prayer description")
	cmd.Flags().StringVar(&category, "category", "", "Pessoal, Trabalho, Saúde, Família or Outros")
	cmd.Flags().BoolVar(&guest, "guest", false, "store as a guest prayer")
	return cmd
}

func newAnswerCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <id>",
		Short: "Mark a prayer answered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			prayer, err := state.Prayer(args[0])
			if err != nil {
				return err
			}
			if prayer.IsAnswered {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s already answered at %s\n", prayer.ID, prayer.AnsweredDate.Format(time.RFC3339))
				return nil
			}
			prayer, err = state.MarkAnswered(cmd.Context(), prayer.ID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "answered %s at %s\n", prayer.ID, prayer.AnsweredDate.Format(time.RFC3339))
			return nil
		},
	}
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a prayer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := state.DeletePrayer(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newExportCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole journal as JSON or YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			export := state.Export()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(export)
			case "yaml", "yml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(export); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	return cmd
}

func newMergeGuestCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-guest",
		Short: "Move guest prayers into the user's prayers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, closeFn, err := openState(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := state.MergeGuestPrayers(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "merged %d guest prayers\n", n)
			return nil
		},
	}
}
