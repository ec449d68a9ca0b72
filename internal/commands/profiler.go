package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/dialogview/internal/profiler"
)

// startProfiler starts the pprof endpoint when --profiler-port is set. The
// returned func stops it and is always safe to call.
func startProfiler(ctx context.Context, port int) (func(), error) {
	if port <= 0 {
		return func() {}, nil
	}

	srv := profiler.New(port)
	if err := srv.Start(ctx); err != nil {
		return func() {}, fmt.Errorf("failed to start profiler: %w", err)
	}

	log.Info().
		Str("url", fmt.Sprintf("http://%s/debug/pprof/", srv.Addr())).
		Msg("profiler endpoint available")

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shutdown profiler server")
		}
	}, nil
}
