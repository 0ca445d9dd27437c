package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kaz/mysqlgen/internal/config"
	"github.com/kaz/mysqlgen/internal/libmcp"
	"github.com/kaz/mysqlgen/internal/mcp"
	"github.com/kaz/mysqlgen/internal/sqlexec"
)

const version = "1.0.0"

func start() error {
	configPath := flag.String("config", os.Getenv("MYSQL_MCP_CONFIG"), "path to a YAML file with connection settings")
	transportName := flag.String("transport", "stdio", "transport to serve on (stdio, sse)")
	addr := flag.String("addr", ":9001", "listen address for the sse transport")
	flag.Parse()

	transport, err := libmcp.ParseTransport(*transportName)
	if err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	s := mcp.NewServer(sqlexec.New(cfg), version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return libmcp.Serve(ctx, s, libmcp.Options{
		Transport: transport,
		Addr:      *addr,
	})
}

func main() {
	// stdout carries the stdio transport
	log.SetOutput(os.Stderr)

	if err := start(); err != nil {
		log.Fatal(err)
	}
}
