// ABOUTME: Entry point for the headless Padbank machine
// ABOUTME: Runs the engine and control surface without a TUI or sound device
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/padbank/padbank-go/internal/app"
	"github.com/padbank/padbank-go/internal/config"
	"github.com/padbank/padbank-go/internal/output"
	"github.com/padbank/padbank-go/internal/version"
)

var (
	configPath = flag.String("config", "", "Config file path (default: ~/.padbank/padbank.toml)")
	port       = flag.Int("port", 0, "Control surface port (overrides config)")
	name       = flag.String("name", "", "Machine friendly name (default: hostname-padbank)")
	library    = flag.String("library", "", "Sample library directory (overrides config)")
	logFile    = flag.String("log-file", "padbank-server.log", "Log file path")
	noMDNS     = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
	silent     = flag.Bool("silent", false, "Run without a sound device (control surface only)")
)

func main() {
	flag.Parse()

	// Set up logging (both file and console)
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	log.SetOutput(io.MultiWriter(os.Stdout, f))

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *name != "" {
		cfg.Server.Name = *name
	}
	if cfg.Server.Name == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		cfg.Server.Name = fmt.Sprintf("%s-padbank", hostname)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *library != "" {
		cfg.Library.Dir = *library
	}
	if *noMDNS {
		cfg.Server.EnableMDNS = false
	}

	log.Printf("Starting %s server %s: %s on port %d",
		version.Product, version.Version, cfg.Server.Name, cfg.Server.Port)
	log.Printf("Library: %s", cfg.Library.Dir)
	log.Printf("Press Ctrl-C to stop")

	var sink output.Sink
	if *silent {
		sink = output.NewNull(cfg.Audio.SampleRate)
	} else {
		sink = output.NewOto()
	}

	machine, err := app.New(cfg, sink)
	if err != nil {
		log.Fatalf("Failed to create machine: %v", err)
	}

	if err := machine.Start(); err != nil {
		log.Fatalf("Failed to start machine: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Received %v signal, shutting down gracefully...", sig)

	machine.Stop()
	log.Printf("Machine stopped")
}
