package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Tsukikage7/rbtree-kit/config"
	"github.com/Tsukikage7/rbtree-kit/logger"
	"github.com/Tsukikage7/rbtree-kit/metrics"
	"github.com/Tsukikage7/rbtree-kit/tracing"
	"github.com/Tsukikage7/rbtree-kit/workload"
)

//go:embed default.yaml
var defaultConfig []byte

const (
	envPrefix       = "RBBENCH"
	shutdownTimeout = 5 * time.Second
)

// ErrNoWorkloads 配置中没有任何负载.
var ErrNoWorkloads = errors.New("no workloads configured")

// FileConfig rbbench 配置文件结构.
type FileConfig struct {
	Logger    logger.Config     `mapstructure:"logger"`
	Metrics   metrics.Config    `mapstructure:"metrics"`
	Tracing   tracing.Config    `mapstructure:"tracing"`
	Workloads []workload.Config `mapstructure:"workloads"`
}

// Validate 验证配置.
func (c *FileConfig) Validate() error {
	if len(c.Workloads) == 0 {
		return ErrNoWorkloads
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	if err := c.Tracing.Validate(); err != nil {
		return err
	}
	for i := range c.Workloads {
		if err := c.Workloads[i].Validate(); err != nil {
			return fmt.Errorf("workloads[%d]: %w", i, err)
		}
	}
	return nil
}

type runCommand struct {
	configPath string
	keys       int
	only       []string
	hold       bool
}

func newRunCommand() *cobra.Command {
	rc := &runCommand{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run workloads and print a summary",
		Long:  "Run the configured workloads. Without --config the embedded default suite is used.",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.configPath, "config", "c", "", "Config file path (yaml/json); RBBENCH_* env vars override it")
	cmd.Flags().IntVarP(&rc.keys, "keys", "n", 0, "Override key count of every workload (0 = keep config)")
	cmd.Flags().StringSliceVarP(&rc.only, "workload", "w", nil, "Run only the named workloads")
	cmd.Flags().BoolVar(&rc.hold, "hold", false, "Keep serving /metrics after the run until interrupted")

	return cmd
}

func (rc *runCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := rc.loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	collector, err := metrics.NewMetrics(&cfg.Metrics)
	if err != nil {
		return err
	}

	tp, err := tracing.NewTracer(&cfg.Tracing, cfg.Logger.ServiceName, version)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warnf("tracer shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *http.Server
	if cfg.Metrics.Enabled {
		srv = serveMetrics(collector, cfg.Metrics.Addr, log)
		defer shutdown(srv, log)
	}

	selected, err := rc.selectWorkloads(cfg.Workloads)
	if err != nil {
		return err
	}

	results := make([]*workload.Result, 0, len(selected))
	for _, wc := range selected {
		runner, err := workload.NewRunner(wc,
			workload.WithLogger(log),
			workload.WithCollector(collector),
			workload.WithTracerProvider(tp),
		)
		if err != nil {
			return err
		}

		log.Infof("running workload %s: keys=%d kind=%s order=%s", wc.Name, wc.Keys, wc.KeyKind, wc.Order)
		res, err := runner.Run(ctx)
		if err != nil {
			return fmt.Errorf("workload %s: %w", wc.Name, err)
		}
		results = append(results, res)
	}

	renderResults(cmd.OutOrStdout(), results)

	if srv != nil && rc.hold {
		log.Infof("serving metrics on %s%s, press Ctrl+C to exit", cfg.Metrics.Addr, collector.GetPath())
		<-ctx.Done()
	}
	return nil
}

func (rc *runCommand) loadConfig() (*FileConfig, error) {
	var (
		cfg *FileConfig
		err error
	)
	if rc.configPath == "" {
		cfg, err = config.LoadFromBytes[FileConfig](defaultConfig, "yaml", config.WithEnvPrefix(envPrefix))
	} else {
		cfg, err = config.Load[FileConfig](rc.configPath, config.WithEnvPrefix(envPrefix))
	}
	if err != nil {
		return nil, err
	}

	cfg.Logger.ApplyDefaults()
	if rc.keys > 0 {
		for i := range cfg.Workloads {
			cfg.Workloads[i].Keys = rc.keys
		}
	}
	return cfg, nil
}

func (rc *runCommand) selectWorkloads(all []workload.Config) ([]*workload.Config, error) {
	if len(rc.only) == 0 {
		selected := make([]*workload.Config, len(all))
		for i := range all {
			selected[i] = &all[i]
		}
		return selected, nil
	}

	byName := make(map[string]*workload.Config, len(all))
	for i := range all {
		byName[all[i].Name] = &all[i]
	}
	selected := make([]*workload.Config, 0, len(rc.only))
	for _, name := range rc.only {
		wc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown workload %q", name)
		}
		selected = append(selected, wc)
	}
	return selected, nil
}

func serveMetrics(collector metrics.Collector, addr string, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(collector.GetPath(), collector.GetHandler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %v", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warnf("metrics server shutdown: %v", err)
	}
}

func renderResults(w io.Writer, results []*workload.Result) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{
		"Workload", "Kind", "Order", "Keys", "Inserted", "Hits", "Misses",
		"Removed", "Len", "Height", "Bound", "Verified", "Elapsed",
	})

	var total time.Duration
	for _, r := range results {
		tbl.AppendRow(table.Row{
			r.Name, r.KeyKind, r.Order, r.Keys, r.Inserted, r.Hits, r.Misses,
			r.Removed, r.FinalLen, r.Height, fmt.Sprintf("%.2f", r.HeightBound),
			r.Verified, r.Elapsed.Round(time.Microsecond),
		})
		total += r.Elapsed
	}

	tbl.AppendFooter(table.Row{
		fmt.Sprintf("Total: %d workloads", len(results)), "", "", "", "", "", "",
		"", "", "", "", "", total.Round(time.Microsecond),
	})
	tbl.Render()
}
