package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"memory-match/api"
	"memory-match/config"
	"memory-match/console"
	"memory-match/metrics"
	"memory-match/session"
	"memory-match/storage"
	"memory-match/theme"
	"memory-match/ws"
)

const shutdownTimeout = 10 * time.Second

func newApp(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "memory-match",
		Usage: "pairs-matching memory game",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP and WebSocket server",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return serve(ctx, cfg)
				},
			},
			{
				Name:  "play",
				Usage: "play in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Value: "Player", Usage: "name recorded with the score"},
					&cli.StringFlag{Name: "theme", Value: cfg.DefaultTheme, Usage: "theme id"},
					&cli.StringFlag{Name: "difficulty", Value: cfg.DefaultDifficulty, Usage: "difficulty id"},
					&cli.DurationFlag{Name: "peek", Value: time.Duration(cfg.RevealDurationMS) * time.Millisecond, Usage: "how long a mismatch stays visible"},
					&cli.BoolFlag{Name: "clear", Value: true, Usage: "clear the screen between turns"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return play(ctx, cfg, cmd, os.Stdin, os.Stdout)
				},
			},
			{
				Name:  "themes",
				Usage: "list themes and difficulties",
				Action: func(_ context.Context, _ *cli.Command) error {
					return listThemes(cfg, os.Stdout)
				},
			},
		},
	}
}

func newThemes() *theme.Registry {
	reg := theme.NewRegistry()
	theme.RegisterAll(reg)
	return reg
}

// scoreSink persists finished boards.
func scoreSink(store storage.ScoreStore, rec *metrics.Recorder) func(session.Result) {
	return func(r session.Result) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := store.SaveScore(ctx, storage.ScoreRecord{
			UserID:     r.UserID,
			PlayerName: r.PlayerName,
			Score:      r.Score,
			Moves:      r.Moves,
			DurationMS: r.Duration.Milliseconds(),
			Theme:      r.Theme,
			Difficulty: r.Difficulty,
		})
		rec.ScoreSaved(err)
		if err != nil {
			slog.Error("saving score", "tag", "storage", "player", r.PlayerName, "err", err)
		}
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.AuthBaseURL == "" {
		slog.Info("AUTH_BASE_URL is not set; auth messages will be rejected", "tag", "auth")
	}
	slog.Info("configuration", "tag", "config",
		"default_theme", cfg.DefaultTheme,
		"default_difficulty", cfg.DefaultDifficulty,
		"reveal_duration_ms", cfg.RevealDurationMS,
		"ws_port", cfg.WSPort)

	store, err := storage.Open(ctx, cfg.DatabaseURL, cfg.ScoresFile)
	if err != nil {
		return fmt.Errorf("opening score store: %w", err)
	}
	defer store.Close()

	rec := metrics.NewRecorder()
	themes := newThemes()

	mgr := session.NewManager(cfg, themes, rec)
	mgr.OnComplete = scoreSink(store, rec)

	hub := ws.NewHub(cfg, mgr)
	go hub.Run(ctx)

	h := api.NewHandler(cfg, store, themes)
	h.ActiveSessions = mgr.ActiveCount

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WSPort),
		Handler:           api.NewRouter(h, http.HandlerFunc(hub.ServeWS), rec.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Memory Match server listening", "tag", "main", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("shutting down", "tag", "main")
	return srv.Shutdown(shutdownCtx)
}

func play(ctx context.Context, cfg *config.Config, cmd *cli.Command, in io.Reader, out io.Writer) error {
	mgr := session.NewManager(cfg, newThemes(), nil)
	d, err := mgr.Deal(cmd.String("theme"), cmd.String("difficulty"))
	if err != nil {
		return err
	}

	c := console.New(d.Service, d.Theme.ID(), in, out)
	c.Peek = cmd.Duration("peek")
	c.Clear = cmd.Bool("clear")

	res, err := c.Run(ctx)
	if err != nil {
		return err
	}
	if !res.Completed {
		return nil
	}

	store, err := storage.Open(ctx, cfg.DatabaseURL, cfg.ScoresFile)
	if err != nil {
		return fmt.Errorf("opening score store: %w", err)
	}
	defer store.Close()

	scoreSink(store, nil)(session.Result{
		PlayerName: cmd.String("name"),
		Score:      res.Score,
		Moves:      res.Moves,
		Duration:   res.Duration,
		Theme:      d.Theme.ID(),
		Difficulty: d.Difficulty.ID,
	})
	return nil
}

func listThemes(cfg *config.Config, out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "THEME\tNAME\tKIND\tMAX PAIRS")
	for _, info := range newThemes().Infos() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", info.ID, info.Name, info.Kind, info.MaxPairs)
	}
	fmt.Fprintln(tw, "\nDIFFICULTY\tLABEL\tBOARD\tMULTIPLIER")
	for _, d := range cfg.Difficulties {
		fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%.1f\n", d.ID, d.Label, d.Rows, d.Cols, d.Multiplier)
	}
	return tw.Flush()
}
