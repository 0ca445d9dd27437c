package libmcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// Transport selects how the MCP server talks to its host
type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportSSE   Transport = "sse"
)

const shutdownTimeout = 5 * time.Second

// ParseTransport validates a transport name
func ParseTransport(s string) (Transport, error) {
	switch t := Transport(s); t {
	case TransportStdio, TransportSSE:
		return t, nil
	default:
		return "", fmt.Errorf("invalid transport: %s, must be one of stdio, sse", s)
	}
}

// Options configures Serve
type Options struct {
	Transport Transport

	// Addr is the listen address for the SSE transport
	Addr string

	// ErrorLogger receives transport errors. Defaults to a stderr logger.
	ErrorLogger *log.Logger
}

// Serve runs s over the configured transport until the transport ends or ctx is done.
// The stdio transport handles SIGINT/SIGTERM itself and returns when stdin closes.
func Serve(ctx context.Context, s *server.MCPServer, opts Options) error {
	if opts.ErrorLogger == nil {
		opts.ErrorLogger = log.New(os.Stderr, "[mcp] ", log.LstdFlags)
	}

	switch opts.Transport {
	case TransportStdio, "":
		log.Println("Starting MCP server on stdio")
		return server.ServeStdio(s, server.WithErrorLogger(opts.ErrorLogger))
	case TransportSSE:
		return serveSSE(ctx, s, opts)
	default:
		return fmt.Errorf("invalid transport: %s", opts.Transport)
	}
}

func serveSSE(ctx context.Context, s *server.MCPServer, opts Options) error {
	sseServer := server.NewSSEServer(s)
	httpServer := &http.Server{
		Addr:     opts.Addr,
		Handler:  sseServer,
		ErrorLog: opts.ErrorLogger,
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		log.Printf("Starting MCP server on %s", opts.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down MCP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// close open SSE sessions first so the HTTP server can drain
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			opts.ErrorLogger.Printf("failed to close SSE sessions: %v", err)
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
