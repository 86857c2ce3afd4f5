package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simplecom/storefront-e2e/internal/config"
	"github.com/simplecom/storefront-e2e/internal/handlers"
	"github.com/simplecom/storefront-e2e/internal/twin"
)

// ServerDependencies holds everything the twin server needs
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Twin         *twin.Twin
	Handler      http.Handler
}

// BuildServerDependencies seeds a twin with the configured accounts and mounts its UI
func BuildServerDependencies(serverCfg config.ServerConfig, cfg config.Config) (ServerDependencies, error) {
	deps := ServerDependencies{ServerConfig: serverCfg}

	tw, err := twin.New(twin.Options{
		JWTSecret: serverCfg.JWTSecret,
		Seed: twin.SeedOptions{
			Admin: twin.Account{Email: cfg.Admin.Email, Password: cfg.Admin.Password, Name: "Admin"},
			User:  twin.Account{Email: cfg.User.Email, Password: cfg.User.Password, Name: "Test User"},
		},
	})
	if err != nil {
		return deps, fmt.Errorf("failed to create storefront twin: %w", err)
	}
	deps.Twin = tw

	ui, err := handlers.NewUI(tw)
	if err != nil {
		return deps, fmt.Errorf("failed to create twin UI: %w", err)
	}
	deps.Handler = tw.Handler(ui.Routes)

	return deps, nil
}

// RunServe starts the twin server and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	if deps.Handler == nil {
		return nil, nil, fmt.Errorf("server handler is not configured")
	}

	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           deps.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Storefront twin listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil, a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// http.Server.Close does not propagate listener close errors, so this rarely fails
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
