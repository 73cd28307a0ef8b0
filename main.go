// Command twitchsmoke runs the Twitch mobile web smoke suite: search the
// directory, scroll, open a random channel, screenshot the player.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/streamqa/twitchsmoke/internal/config"
	"github.com/streamqa/twitchsmoke/internal/logging"
	"github.com/streamqa/twitchsmoke/internal/notifier"
	"github.com/streamqa/twitchsmoke/internal/runner"
	"github.com/streamqa/twitchsmoke/internal/scheduler"
	"github.com/streamqa/twitchsmoke/internal/store"
)

func main() {
	configPath := flag.String("config", "twitchsmoke.toml", "path to TOML config file")
	initConfig := flag.Bool("init", false, "write a default config file and exit")
	device := flag.String("device", "", "device profile to run on, one of: "+strings.Join(config.DeviceNames(), ", "))
	devices := flag.String("devices", "", "comma-separated device profiles to run in parallel")
	headless := flag.Bool("headless", false, "run the browser headless")
	query := flag.String("query", "", "directory search query")
	workers := flag.Int("workers", 0, "max parallel browser sessions")
	seed := flag.Int64("seed", 0, "random seed for channel selection (0 = time-based)")
	watch := flag.Bool("watch", false, "keep running the suite on a schedule")
	noOpen := flag.Bool("no-open", false, "do not open the HTML report after a run")
	history := flag.Int("history", 0, "print the N most recent runs and exit")
	flag.Parse()

	if *initConfig {
		if err := config.Default().Save(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("wrote", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Flags beat config and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Browser.DeviceName = *device
			cfg.Suite.Devices = []string{*device}
		case "devices":
			cfg.Suite.Devices = splitList(*devices)
		case "headless":
			cfg.Browser.Headless = *headless
		case "query":
			cfg.Suite.Query = *query
		case "workers":
			cfg.Suite.Workers = *workers
		}
	})

	active := cfg.Suite.Devices
	if len(active) == 0 {
		active = []string{cfg.Browser.DeviceName}
	}
	for _, name := range active {
		if !config.KnownDevice(name) {
			fmt.Fprintf(os.Stderr, "unknown device %q, valid profiles: %s\n", name, strings.Join(config.DeviceNames(), ", "))
			os.Exit(1)
		}
	}

	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create artifact directories: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Artifacts.LogDir, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	st, err := store.New(filepath.Join(cfg.Artifacts.DataDir, "history.db"))
	if err != nil {
		log.Fatal("failed to open run history", zap.Error(err))
	}
	defer st.Close()

	if *history > 0 {
		runs, err := st.RecentRuns(*history)
		if err != nil {
			log.Fatal("failed to read run history", zap.Error(err))
		}
		writeHistory(os.Stdout, runs)
		return
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}

	r, err := runner.New(cfg, log, st, runSeed)
	if err != nil {
		log.Fatal("failed to create runner", zap.Error(err))
	}

	if *watch {
		runWatch(cfg, log, r, st)
		return
	}

	result, err := r.Run(context.Background())
	if err != nil {
		log.Fatal("suite failed to run", zap.Error(err))
	}

	if !*noOpen {
		if err := browser.OpenFile(result.ReportPath); err != nil {
			log.Warn("could not open report", zap.Error(err))
		}
	}

	if result.Failed() {
		log.Error("suite finished with failures", zap.String("report", result.ReportPath))
		os.Exit(1)
	}
	log.Info("suite passed", zap.String("report", result.ReportPath))
}

// runWatch runs the suite immediately, then on the configured interval,
// until interrupted. Failures are mailed when notification is enabled.
func runWatch(cfg *config.Config, log *zap.Logger, r *runner.Runner, st *store.Store) {
	var notify *notifier.Notifier
	if cfg.Watch.NotifyOnFailure {
		var err error
		notify, err = notifier.NewFromConfig(cfg.Email)
		if err != nil {
			log.Fatal("failed to configure notifier", zap.Error(err))
		}
	}

	job := func(ctx context.Context) error {
		result, err := r.Run(ctx)
		if err != nil {
			return err
		}
		if !result.Failed() {
			return nil
		}
		if n, cErr := st.FailureCountSince(time.Now().Add(-24 * time.Hour)); cErr == nil {
			log.Warn("suite failing", zap.Int("failures_last_24h", n))
		}
		if notify != nil {
			if err := notify.NotifyFailure(result.Report, cfg.Watch.NotifyTo); err != nil {
				log.Error("failed to send failure notification", zap.Error(err))
			}
		}
		return nil
	}

	sched := scheduler.New(log)
	if err := sched.AddSuiteJob(cfg.Watch.IntervalHours, job); err != nil {
		log.Fatal("failed to schedule suite", zap.Error(err))
	}

	// First run right away so a broken flow surfaces before the first tick
	if err := sched.RunNow("suite"); err != nil {
		log.Error("initial run failed", zap.Error(err))
	}
	sched.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	sched.RemoveJob("suite")
	<-sched.Stop().Done()
	log.Info("watch mode stopped")
}

// writeHistory prints recent runs, newest first.
func writeHistory(w io.Writer, runs []store.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded yet")
		return
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %-6s  %-18s  %s\n",
			r.StartedAt.Format("2006-01-02 15:04"), r.Status, r.Device, r.Query)
		if r.FailureReason != "" {
			fmt.Fprintf(w, "    %s\n", r.FailureReason)
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
