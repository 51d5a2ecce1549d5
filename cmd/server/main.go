// path: cmd/server/main.go
package main

import (
	"flag"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/taehyun00/BuringChess/internal/game"
	"github.com/taehyun00/BuringChess/internal/httpx"
	"github.com/taehyun00/BuringChess/internal/relay"
)

func main() {
	addr := flag.String("addr", getenv("BURING_ADDR", ":8080"), "listen address")
	devLog := flag.Bool("dev-log", getenb("BURING_DEV_LOG", false), "human-readable log output")
	flag.Parse()

	logger, err := buildLogger(*devLog)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	eng := game.NewEngine()
	hub := relay.NewHub(log)
	srv := httpx.NewServer(eng, hub, log)

	if err := srv.Listen(*addr); err != nil {
		log.Fatalw("http server failed", "err", err)
	}
}

func buildLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
