// Package observability starts the optional telemetry side-cars: Uptrace
// traces and logs, Pyroscope continuous profiling and a pprof listener.
package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/football-stats/internal/config"
	"github.com/riskibarqy/football-stats/internal/platform/logging"
)

// Runtime holds whatever Start switched on. The zero value is a valid
// runtime with everything off.
type Runtime struct {
	logger   *logging.Logger
	uptrace  bool
	profiler *pyroscope.Profiler
	pprof    *http.Server
}

// Start enables each component its config flag asks for. On error the
// components already started are shut down again.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger}

	rt.startUptrace(cfg)
	if err := rt.startPyroscope(cfg); err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, err
	}
	rt.startPprof(cfg)
	return rt, nil
}

func (rt *Runtime) startUptrace(cfg config.Config) {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logging.SetMirror(nil)
		rt.logger.Info("uptrace disabled")
		return
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	rt.uptrace = true

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newUptraceLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)
	rt.logger.Info("uptrace enabled", "environment", cfg.AppEnv, "logs_enabled", cfg.UptraceLogsEnabled)
}

func (rt *Runtime) startPyroscope(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		return nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              map[string]string{"env": cfg.AppEnv, "version": cfg.ServiceVersion},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return err
	}
	rt.profiler = profiler
	rt.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

func (rt *Runtime) startPprof(cfg config.Config) {
	if !cfg.PprofEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	rt.pprof = &http.Server{Addr: cfg.PprofAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func(srv *http.Server) {
		rt.logger.Info("pprof listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.logger.Error("pprof server failed", "error", err)
		}
	}(rt.pprof)
}

// Shutdown stops pprof, flushes the profiler and exporters, and detaches the
// log mirror. It returns every failure joined.
func (rt *Runtime) Shutdown(ctx context.Context) error {
	if rt == nil {
		return nil
	}

	var errs []error
	if rt.pprof != nil {
		errs = append(errs, rt.pprof.Shutdown(ctx))
		rt.pprof = nil
	}
	if rt.profiler != nil {
		errs = append(errs, rt.profiler.Stop())
		rt.profiler = nil
	}
	if rt.uptrace {
		logging.SetMirror(nil)
		errs = append(errs, uptrace.Shutdown(ctx))
		rt.uptrace = false
	}
	return errors.Join(errs...)
}
