// ABOUTME: Entry point for the Padbank drum machine
// ABOUTME: Parses CLI flags and starts the machine with TUI or streaming logs
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
	"github.com/padbank/padbank-go/internal/ui"
	"github.com/padbank/padbank-go/internal/version"
)

var (
	configPath = flag.String("config", "", "Config file path (default: ~/.padbank/padbank.toml)")
	name       = flag.String("name", "", "Machine friendly name (default: hostname-padbank)")
	port       = flag.Int("port", 0, "Control surface port (overrides config)")
	library    = flag.String("library", "", "Sample library directory (overrides config)")
	logFile    = flag.String("log-file", "padbank.log", "Log file path")
	noTUI      = flag.Bool("no-tui", false, "Disable TUI, use streaming logs instead")
	noMDNS     = flag.Bool("no-mdns", false, "Disable mDNS advertisement")
	initConfig = flag.Bool("init-config", false, "Write a sample config file and exit")
)

func main() {
	flag.Parse()

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if *initConfig {
		if err := config.WriteSample(path); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Wrote sample config to %s\n", path)
		return
	}

	// Set up logging
	f, err := os.OpenFile(*logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer f.Close()

	useTUI := !*noTUI
	if useTUI {
		// TUI mode: log only to file, the terminal belongs to the UI
		log.SetOutput(f)
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, f))
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

	log.Printf("Starting %s %s: %s", version.Product, version.Version, cfg.Server.Name)
	log.Printf("Library: %s", cfg.Library.Dir)

	machine, err := app.New(cfg, output.NewOto())
	if err != nil {
		log.Fatalf("Failed to create machine: %v", err)
	}

	if err := machine.Start(); err != nil {
		log.Fatalf("Failed to start machine: %v", err)
	}

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	if useTUI {
		prog, err := ui.Run(machine, cfg.Library.Folders)
		if err != nil {
			log.Fatalf("Failed to start TUI: %v", err)
		}

		tuiDone := make(chan struct{})
		go func() {
			if _, err := prog.Run(); err != nil {
				log.Printf("TUI error: %v", err)
			}
			close(tuiDone)
		}()

		select {
		case <-tuiDone:
			log.Printf("TUI quit")
		case <-sigChan:
			log.Printf("Shutdown signal received")
			prog.Quit()
		}
	} else {
		log.Printf("Press Ctrl-C to stop")
		<-sigChan
		log.Printf("Shutdown signal received")
	}

	machine.Stop()
	log.Printf("Machine stopped")
}
