package main

import (
	"go.uber.org/zap"

	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/server"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	srv := server.NewServer(cfg, log)
	if err := srv.Start(); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
