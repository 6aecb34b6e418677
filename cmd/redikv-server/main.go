// Command redikv-server runs the accept loop against a fresh in-memory
// keyspace, replacing the teacher's hardcoded main() with flag-driven
// configuration (SPEC_FULL.md §6).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"redikv/internal/config"
	"redikv/internal/server"
)

func main() {
	opts := config.Parse(os.Args[1:])

	log, err := opts.Logger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "redikv-server: logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	srv := server.New(opts.ServerConfig(), log)
	if err := srv.Bind(); err != nil {
		log.Fatal("bind failed", zap.Error(err))
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("shutting down")
		srv.Shutdown()
	}()

	if err := srv.Serve(); err != nil {
		log.Fatal("serve failed", zap.Error(err))
	}
}
