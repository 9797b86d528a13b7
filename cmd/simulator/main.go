package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

var (
	serverURL  = flag.String("server", "ws://localhost:8080/ws/chat", "Webchat WebSocket URL")
	tenantID   = flag.String("tenant", "demo-shop", "Tenant ID")
	customerID = flag.String("customer", "sim-customer", "Customer ID")
	language   = flag.String("language", "", "Declared language tag (bn, en, ar, hi, ur)")
	script     = flag.String("script", "", "Scripted conversation: order|commerce|complaint")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Setup logger
	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	config := &SimulatorConfig{
		ServerURL:  *serverURL,
		TenantID:   *tenantID,
		CustomerID: *customerID,
		Language:   *language,
	}

	simulator := NewSimulator(config, logger)

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down simulator...")
		simulator.Stop()
		os.Exit(0)
	}()

	if err := simulator.Connect(); err != nil {
		logger.Fatal("Failed to connect to server", zap.Error(err))
	}

	if *script != "" {
		if err := simulator.RunScript(*script); err != nil {
			logger.Fatal("Script failed", zap.Error(err))
		}
		simulator.Stop()
		return
	}

	fmt.Println("\nWebchat Simulator - Interactive Mode")
	fmt.Println("====================================")
	fmt.Println("Type a message and press Enter. Commands:")
	fmt.Println("  /lang <tag>   - Switch declared language")
	fmt.Println("  /quit         - Exit simulator")
	fmt.Println("")

	simulator.RunInteractive()
}
