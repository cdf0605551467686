package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nstehr/sealer/config"
	"github.com/nstehr/sealer/ipc"
	"github.com/nstehr/sealer/rules"
	"github.com/nstehr/sealer/session"
	"github.com/nstehr/sealer/telemetry"
)

var (
	cfgFile string
	socket  string
)

var rootCmd = &cobra.Command{
	Use:          "sealer",
	Short:        "Per-tick task controller that claims and walls off a target area",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if socket != "" {
			cfg.Server.Socket = socket
		}
		setupLogging(cfg.Log)
		return serve(cmd.Context(), cfg, cfgFile)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
	rootCmd.Flags().StringVar(&socket, "socket", "", "unix socket path (overrides config)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(cfg config.LogConfig) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	var w io.Writer = os.Stdout
	if cfg.File != "" {
		// lumberjack handles rotation; stdout keeps the console view.
		w = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		})
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func serve(ctx context.Context, cfg *config.Config, path string) error {
	slog.Info("starting sealer", "socket", cfg.Server.Socket, "params", cfg.Selector)

	if cfg.Metrics.Enabled {
		shutdown, err := telemetry.Setup(cfg.Metrics.Interval)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("metrics shutdown failed", "error", err)
			}
		}()
	}
	metrics, err := telemetry.NewMetrics(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	engine, err := rules.NewEngine(rules.CompileGuards(cfg.Selector))
	if err != nil {
		return fmt.Errorf("build guard chain: %w", err)
	}
	engine.OnConditionError = func(rule string, _ error) {
		metrics.RecordGuardError(context.Background(), rule)
	}
	driver := &session.Driver{Engine: engine, Params: cfg.Selector, Metrics: metrics}

	if path != "" {
		stop, err := config.Watch(path, func(next *config.Config) {
			if err := driver.Reload(next.Selector); err != nil {
				slog.Error("selector reload failed", "error", err)
			}
		})
		if err != nil {
			return err
		}
		defer stop()
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.Server.Socket); err != nil {
		return fmt.Errorf("clean up socket %s: %w", cfg.Server.Socket, err)
	}
	listener, err := net.Listen("unix", cfg.Server.Socket)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Server.Socket, err)
	}
	defer os.Remove(cfg.Server.Socket)
	slog.Info("listening on domain socket", "path", cfg.Server.Socket)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		return listener.Close()
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			c := ipc.NewConnection(conn, nil)
			s := session.New(c, driver, cfg.Template)
			s.Register()
			slog.Info("new connection accepted", "session", s.ID)

			// Shutdown closes live connections so their read loops return.
			stopClose := context.AfterFunc(ctx, func() { c.Close() })
			go func() {
				defer stopClose()
				c.ReadLoop()
			}()
		}
	})
	return g.Wait()
}
