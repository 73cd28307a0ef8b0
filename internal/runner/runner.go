// Package runner executes the suite: one browser session per device, each
// in its own worker, with results recorded to the store and compiled into
// an HTML report.
package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/streamqa/twitchsmoke/internal/browser"
	"github.com/streamqa/twitchsmoke/internal/config"
	"github.com/streamqa/twitchsmoke/internal/pages"
	"github.com/streamqa/twitchsmoke/internal/report"
	"github.com/streamqa/twitchsmoke/internal/store"
)

// Runner executes the search flow across the configured devices.
type Runner struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *store.Store
	reports *report.Builder
	seed    int64
}

// Result summarizes one suite execution.
type Result struct {
	Runs       []store.Run
	ReportPath string
	Report     *report.Report
}

// Failed reports whether any run failed.
func (r *Result) Failed() bool {
	for _, run := range r.Runs {
		if run.Status == store.StatusFailed {
			return true
		}
	}
	return false
}

// New creates a runner. The store may be nil, in which case run history is
// not persisted.
func New(cfg *config.Config, log *zap.Logger, st *store.Store, seed int64) (*Runner, error) {
	builder, err := report.New()
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:     cfg,
		log:     log,
		store:   st,
		reports: builder,
		seed:    seed,
	}, nil
}

// Run executes the flow once per configured device. Workers share nothing:
// each gets its own browser session, and results are aggregated only after
// every worker has finished.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	devices := r.cfg.Suite.Devices
	if len(devices) == 0 {
		devices = []string{r.cfg.Browser.DeviceName}
	}

	workers := r.cfg.Suite.Workers
	if workers < 1 {
		workers = 1
	}

	r.log.Info("suite starting",
		zap.Strings("devices", devices),
		zap.Int("workers", workers),
		zap.String("query", r.cfg.Suite.Query),
	)

	runs := make([]store.Run, len(devices))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range devices {
		g.Go(func() error {
			runs[i] = r.runDevice(gctx, WorkerID(i), config.Device(name))
			return nil
		})
	}
	// Workers never return errors; failures live in the run records.
	_ = g.Wait()

	rep, err := r.reports.Build(report.Metadata{
		BaseURL:         r.cfg.Browser.BaseURL,
		Headless:        r.cfg.Browser.Headless,
		MobileEmulation: r.cfg.Browser.MobileEmulation,
		Devices:         devices,
		Query:           r.cfg.Suite.Query,
	}, runs)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	path, err := rep.Write(r.cfg.Artifacts.ReportDir)
	if err != nil {
		return nil, err
	}
	r.log.Info("report written", zap.String("path", path))

	for i := range runs {
		runs[i].ReportPath = path
		if r.store != nil {
			if err := r.store.SaveRun(&runs[i]); err != nil {
				r.log.Error("failed to record run", zap.Error(err))
			}
		}
	}

	return &Result{Runs: runs, ReportPath: path, Report: rep}, nil
}

// runDevice runs the whole flow on one device with a dedicated browser
// session. All failures are captured in the returned run record.
func (r *Runner) runDevice(ctx context.Context, worker string, dev config.DeviceProfile) store.Run {
	log := r.log.With(zap.String("worker", worker), zap.String("device", dev.Name))

	run := store.Run{
		Test:      TestName,
		Device:    dev.Name,
		Query:     r.cfg.Suite.Query,
		Status:    store.StatusPassed,
		StartedAt: time.Now(),
	}
	defer func() {
		run.FinishedAt = time.Now()
		log.Info("run finished",
			zap.String("status", run.Status),
			zap.Duration("elapsed", run.FinishedAt.Sub(run.StartedAt)),
		)
	}()

	log.Info("run starting", zap.String("test", run.Test))

	sess, err := browser.NewSession(ctx, r.cfg, dev, log)
	if err != nil {
		run.Status = store.StatusFailed
		run.FailureReason = fmt.Sprintf("browser session: %v", err)
		log.Error("failed to start browser session", zap.Error(err))
		return run
	}
	defer sess.Close()

	page := pages.NewPage(sess, r.cfg, log)
	env := &flowEnv{
		home:     pages.NewHomePage(page),
		search:   pages.NewSearchPage(page),
		streamer: pages.NewStreamerPage(page),
		rnd:      rand.New(rand.NewSource(r.seed ^ int64(hashString(worker)))),
	}

	for _, step := range searchFlow(r.cfg) {
		rec := store.Step{Name: step.name, Status: store.StatusPassed}
		start := time.Now()

		log.Info("step", zap.String("name", step.name))
		err := step.fn(env, &rec)
		rec.Duration = time.Since(start)

		if err != nil {
			rec.Status = store.StatusFailed
			rec.Detail = err.Error()
			run.Status = store.StatusFailed
			run.FailureReason = fmt.Sprintf("%s: %v", step.name, err)
			log.Error("step failed", zap.String("name", step.name), zap.Error(err))

			if r.cfg.Artifacts.ScreenshotOnFailure {
				name := FailureShotName(run.Test, time.Now(), worker, dev.Name)
				if path, shotErr := page.Screenshot(name); shotErr == nil {
					rec.ScreenshotPath = path
				} else {
					log.Error("failed to capture failure screenshot", zap.Error(shotErr))
				}
			}

			run.Steps = append(run.Steps, rec)
			return run
		}

		run.Steps = append(run.Steps, rec)
	}

	return run
}

// hashString derives a stable per-worker offset for seeding.
func hashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
