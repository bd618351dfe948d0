package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cafetalk/internal/bootstrap"
	"cafetalk/internal/modules/progress/dto"
	"cafetalk/internal/platform/config"
	apperrors "cafetalk/internal/platform/errors"
	"cafetalk/internal/platform/logging"
	"cafetalk/internal/ui/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globals struct {
	configPath string
	dataDir    string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "cafetalk",
		Short:         "Café conversation practice: XP, streaks and badges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(g.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.DataDir = g.dataDir
			}
			level := cfg.Logging.Level
			if g.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			g.cfg, g.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if g.logger != nil {
				_ = g.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", config.DefaultPath(), "config file (yaml)")
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", "", "directory holding progress data (overrides config)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRecordCmd(g),
		newStatsCmd(g),
		newBadgesCmd(g),
		newAchievementsCmd(g),
		newHistoryCmd(g),
		newExportCmd(g),
		newImportCmd(g),
		newResetCmd(g),
		newReindexCmd(g),
		newReportCmd(g),
		newDashboardCmd(g),
		newRemindCmd(g),
	)
	return root
}

// withApp opens the app for the duration of fn.
func withApp(g *globals, fn func(app *bootstrap.App) error) error {
	app, err := bootstrap.New(g.cfg, g.logger)
	if err != nil {
		return err
	}
	runErr := fn(app)
	return errors.Join(runErr, app.Close())
}

func newRecordCmd(g *globals) *cobra.Command {
	var scenario, language, grammar string
	var exchanges, duration int
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a finished conversation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Record(context.Background(), scenario, language, exchanges, grammar, duration)
				if err != nil {
					return err
				}
				printRecord(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario: server_only|customer_only|host_only|full_experience|free_chat (server, customer, host accepted)")
	cmd.Flags().StringVar(&language, "language", "en", "practice language code")
	cmd.Flags().IntVar(&exchanges, "exchanges", 0, "number of exchanges")
	cmd.Flags().StringVar(&grammar, "grammar", "", "grammar label: Excellent|Good|Fair|Needs work (Spanish labels accepted)")
	cmd.Flags().IntVar(&duration, "duration", 0, "duration in seconds")
	return cmd
}

func printRecord(w io.Writer, out dto.RecordOutput) {
	_, _ = fmt.Fprintf(w, "+%d XP", out.XPEarned)
	if out.AchievementXP > 0 {
		_, _ = fmt.Fprintf(w, " (+%d achievement XP)", out.AchievementXP)
	}
	_, _ = fmt.Fprintf(w, " total=%d level=%d streak=%d\n", out.TotalXP, out.Level, out.Streak.Current)
	if out.LeveledUp {
		_, _ = fmt.Fprintf(w, "level up! %d -> %d\n", out.PreviousLevel, out.Level)
	}
	for _, b := range out.NewBadges {
		_, _ = fmt.Fprintf(w, "badge unlocked: %s %s\n", b.Icon, b.Name)
	}
	for _, a := range out.NewAchievements {
		_, _ = fmt.Fprintf(w, "achievement unlocked: %s %s (+%d XP)\n", a.Icon, a.Name, a.Reward)
	}
}

func newStatsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				s, err := app.ProgressCLI.Stats(context.Background())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "level: %d (%d XP, %d to next)\n", s.Level, s.TotalXP, s.XPToNextLevel)
				_, _ = fmt.Fprintf(w, "conversations: %d\nwords: %d\ndays active: %d\n", s.ConversationsCompleted, s.WordsSpoken, s.DaysActive)
				_, _ = fmt.Fprintf(w, "streak: %d (longest %d) at_risk=%t\n", s.Streak.Current, s.Streak.Longest, s.Streak.AtRisk)
				_, _ = fmt.Fprintf(w, "favorite language: %s\nfavorite scenario: %s\n", s.FavoriteLanguage, s.FavoriteScenario)
				_, _ = fmt.Fprintf(w, "badges: %d/%d\nachievements: %d/%d\n", s.BadgesEarned, s.BadgesTotal, s.AchievementsEarned, s.AchievementsTotal)
				return nil
			})
		},
	}
}

func newBadgesCmd(g *globals) *cobra.Command {
	var earned bool
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "List badges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				badges, err := app.ProgressCLI.Badges(context.Background(), earned)
				if err != nil {
					return err
				}
				if len(badges) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no badges yet")
					return nil
				}
				for _, b := range badges {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\tearned=%t\t%s\n", b.ID, b.Icon, b.Name, b.Earned, b.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&earned, "earned", false, "only earned badges")
	return cmd
}

func newAchievementsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements (hidden ones stay masked until earned)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				achievements, err := app.ProgressCLI.Achievements(context.Background())
				if err != nil {
					return err
				}
				for _, a := range achievements {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t+%d XP\tearned=%t\t%s\n", a.Icon, a.Name, a.Reward, a.Earned, a.Description)
				}
				return nil
			})
		},
	}
}

func newHistoryCmd(g *globals) *cobra.Command {
	var scenario, language string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				sessions, err := app.ProgressCLI.History(context.Background(), scenario, language, limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
					return nil
				}
				for _, s := range sessions {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d\t%s\t%s\t%s\texchanges=%d\tgrammar=%s\txp=%d\n",
						s.Seq, s.Timestamp.Format("2006-01-02 15:04"), s.ScenarioName, s.Language, s.Exchanges, s.GrammarScore, s.XP)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&scenario, "scenario", "", "filter by scenario")
	cmd.Flags().StringVar(&language, "language", "", "filter by language")
	cmd.Flags().IntVar(&limit, "limit", 20, "max sessions (0 = all)")
	return cmd
}

func newExportCmd(g *globals) *cobra.Command {
	var outDir, format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export progress as a JSON snapshot or an xlsx workbook",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				ctx := context.Background()
				var name string
				var payload []byte
				switch strings.ToLower(format) {
				case "json":
					out, err := app.ProgressCLI.Export(ctx)
					if err != nil {
						return err
					}
					name, payload = out.FileName, out.Payload
				case "xlsx":
					var buf bytes.Buffer
					n, err := app.ProgressCLI.ExportSpreadsheet(ctx, &buf)
					if err != nil {
						return err
					}
					name, payload = n, buf.Bytes()
				default:
					return fmt.Errorf("--format must be json or xlsx: %w", apperrors.ErrInvalidInput)
				}
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}
				path := filepath.Join(outDir, name)
				if err := os.WriteFile(path, payload, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().StringVar(&format, "format", "json", "json|xlsx")
	return cmd
}

func newImportCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace progress with a previously exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return withApp(g, func(app *bootstrap.App) error {
				out, err := app.ProgressCLI.Import(context.Background(), payload)
				if err != nil {
					return err
				}
				if !out.OK {
					return fmt.Errorf("import rejected: %s", out.Reason)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "import completed")
				return nil
			})
		},
	}
}

func newResetCmd(g *globals) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset --yes",
		Short: "Erase all progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				if err := app.ProgressCLI.Reset(context.Background(), yes); err != nil {
					if errors.Is(err, apperrors.ErrConfirmationRequired) {
						return fmt.Errorf("refusing to reset without --yes")
					}
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newReindexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite session index from saved progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				if err := app.ProgressCLI.Reindex(context.Background()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
				return nil
			})
		},
	}
}

func newReportCmd(g *globals) *cobra.Command {
	var raw bool
	var width int
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown progress report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(g, func(app *bootstrap.App) error {
				ctx := context.Background()
				var in report.Input
				var err error
				if in.Stats, err = app.ProgressCLI.Stats(ctx); err != nil {
					return err
				}
				if in.Badges, err = app.ProgressCLI.Badges(ctx, false); err != nil {
					return err
				}
				if in.Achievements, err = app.ProgressCLI.Achievements(ctx); err != nil {
					return err
				}
				if in.Recent, err = app.ProgressCLI.History(ctx, "", "", 5); err != nil {
					return err
				}
				md := report.Markdown(in)
				if raw {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), md)
					return nil
				}
				out, err := report.Render(md, width)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without styling")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width (0 disables)")
	return cmd
}

func newDashboardCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Run the progress dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(g, func(app *bootstrap.App) error {
				return bootstrap.RunDashboard(ctx, app)
			})
		},
	}
}

func newRemindCmd(g *globals) *cobra.Command {
	var once bool
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Nudge daily at reminder.at when the streak is at risk",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withApp(g, func(app *bootstrap.App) error {
				notify := func(msg string) { _, _ = fmt.Fprintln(cmd.OutOrStdout(), msg) }
				reminder, err := app.NewReminder(notify)
				if err != nil {
					return err
				}
				if once {
					msg, ok, err := reminder.Check(ctx)
					if err != nil {
						return err
					}
					if ok {
						notify(msg)
					}
					return nil
				}
				if err := reminder.Start(ctx); err != nil {
					return err
				}
				defer reminder.Stop()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminding daily at %s; ctrl+c to stop\n", g.cfg.Reminder.At)
				<-ctx.Done()
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&once, "once", false, "check now and exit")
	return cmd
}
