// Command campus-watch signs in to the campus backend, mounts one list screen and
// re-fetches it on the refresh interval, printing the filtered rows after every tick.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-attendance-gateway/internal/models"
	"github.com/noah-isme/campus-attendance-gateway/internal/query"
	"github.com/noah-isme/campus-attendance-gateway/internal/screens"
	"github.com/noah-isme/campus-attendance-gateway/internal/service"
	"github.com/noah-isme/campus-attendance-gateway/internal/upstream"
	"github.com/noah-isme/campus-attendance-gateway/internal/view"
	"github.com/noah-isme/campus-attendance-gateway/pkg/config"
	"github.com/noah-isme/campus-attendance-gateway/pkg/logger"
)

type filterFlags map[string]string

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("filter %q must look like field=value", raw)
	}
	f[strings.TrimSpace(key)] = value
	return nil
}

type options struct {
	screen      string
	schoolID    string
	password    string
	token       string
	interval    time.Duration
	once        bool
	metricsAddr string
	filters     filterFlags
}

type watchEnv struct {
	client  *upstream.Client
	token   string
	out     io.Writer
	logger  *zap.Logger
	metrics *service.MetricsService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	opts := options{filters: filterFlags{}}
	flag.StringVar(&opts.screen, "screen", "schedules", "Screen to watch: "+strings.Join(screenNames(), ", "))
	flag.StringVar(&opts.schoolID, "school-id", os.Getenv("CAMPUS_SCHOOL_ID"), "School ID to sign in with")
	flag.StringVar(&opts.password, "password", os.Getenv("CAMPUS_PASSWORD"), "Password to sign in with")
	flag.StringVar(&opts.token, "token", os.Getenv("CAMPUS_TOKEN"), "Existing backend bearer token; skips sign in")
	flag.DurationVar(&opts.interval, "interval", cfg.Upstream.RefreshInterval, "Refresh interval")
	flag.BoolVar(&opts.once, "once", false, "Fetch once and exit")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
	flag.Var(opts.filters, "filter", "Filter as field=value; repeatable")
	flag.Parse()

	logr, err := logger.NewCLI(cfg, "campus-watch")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logr); err != nil && !errors.Is(err, context.Canceled) {
		logr.Sugar().Fatalw("watch failed", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logr *zap.Logger) error {
	watch, ok := watchers[opts.screen]
	if !ok {
		return fmt.Errorf("unknown screen %q (want one of %s)", opts.screen, strings.Join(screenNames(), ", "))
	}

	metricsSvc := service.NewMetricsService()
	if opts.metricsAddr != "" {
		srv := &http.Server{Addr: opts.metricsAddr, Handler: metricsSvc.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logr.Sugar().Warnw("metrics server stopped", "error", err)
			}
		}()
		defer srv.Close()
	}

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, upstream.WithObserver(metricsSvc))

	token := opts.token
	if token == "" {
		if opts.schoolID == "" || opts.password == "" {
			return errors.New("either -token or -school-id and -password are required")
		}
		result, err := client.Login(ctx, opts.schoolID, opts.password)
		if err != nil {
			return fmt.Errorf("sign in: %w", err)
		}
		token = result.BearerToken()
		logr.Sugar().Infow("signed in", "user", result.User.FullName, "role", result.User.Role)
		defer func() {
			logoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Logout(logoutCtx, token); err != nil {
				logr.Sugar().Debugw("logout failed", "error", err)
			}
		}()
	}

	env := watchEnv{client: client, token: token, out: os.Stdout, logger: logr, metrics: metricsSvc}
	return watch(ctx, env, opts)
}

type watchFunc func(ctx context.Context, env watchEnv, opts options) error

var watchers = map[string]watchFunc{
	"schedules": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Schedules, env.client.ListSchedules, scheduleColumns)
	},
	"checker-schedules": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Schedules, env.client.CheckerSchedules, scheduleColumns)
	},
	"today": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Schedules, env.client.CheckerSchedulesToday, scheduleColumns)
	},
	"instructors": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Instructors, env.client.ListInstructors, instructorColumns)
	},
	"users": func(ctx context.Context, env watchEnv, opts options) error {
		allUsers := func(ctx context.Context, token string) ([]models.User, error) {
			return env.client.ListUsers(ctx, token, "")
		}
		return watchScreen(ctx, env, opts, screens.Users, allUsers, userColumns)
	},
	"attendance": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Attendance, env.client.ListAttendance, attendanceColumns)
	},
	"checker-attendance": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Attendance, env.client.CheckerAttendance, attendanceColumns)
	},
	"rooms": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Rooms, env.client.ListRooms, roomColumns)
	},
	"feedback": func(ctx context.Context, env watchEnv, opts options) error {
		return watchScreen(ctx, env, opts, screens.Feedback, env.client.ListFeedback, feedbackColumns)
	},
}

func screenNames() []string {
	names := make([]string, 0, len(watchers))
	for name := range watchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// watchScreen mounts a view for one screen and prints it after every refresh until ctx ends.
func watchScreen[T any](ctx context.Context, env watchEnv, opts options, schema *query.Schema[T], fetch func(context.Context, string) ([]T, error), cols []column[T]) error {
	load := func(ctx context.Context) ([]T, error) { return fetch(ctx, env.token) }
	v := view.New(opts.screen, schema, load, env.logger)
	defer v.Close()

	if err := v.ApplySelection(query.Selection(opts.filters)); err != nil {
		return err
	}

	report := func(err error) {
		env.metrics.ObserveViewRefresh(v.Name(), err)
		if err != nil {
			env.logger.Sugar().Warnw("refresh failed", "screen", v.Name(), "error", err)
		}
		fmt.Fprintf(env.out, "\n%s  %s  %s\n", v.Name(), time.Now().Format(time.Kitchen), describe(v.Selection()))
		if err := renderTable(env.out, cols, v.Visible(), len(v.Records())); err != nil {
			env.logger.Sugar().Warnw("render failed", "error", err)
		}
	}

	report(v.Refresh(ctx))
	if opts.once {
		return nil
	}

	env.logger.Sugar().Infow("watching", "screen", v.Name(), "interval", opts.interval)
	v.Poll(ctx, opts.interval, report)
	return ctx.Err()
}

func describe(sel query.Selection) string {
	if len(sel) == 0 {
		return "(no filter)"
	}
	return filterFlags(sel).String()
}
