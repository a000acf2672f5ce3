
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pageseo/internal/config"
	"pageseo/internal/server"
	"pageseo/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", config.ConfigFileName, "YAML config file (optional)")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	l := logger.NewWriter(os.Stderr, *verbose)
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		l.Errorf("config: %v", err)
		os.Exit(2)
	}
	l.Debugf("config: %+v", cfg)

	srv := server.New(cfg, l).HTTPServer()

	go func() {
		l.Infof("server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("server error: %v", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	l.Infof("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Infof("bye")
}
