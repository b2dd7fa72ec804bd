// Package main is the production entry point for the SpaceWave visualizer.
//
// SpaceWave paints a live frequency spectrum as gradient bars, mirrored peak
// points and a waveform ray. Samples come from a WAV file or the built-in
// synthesizer.
//
// Build:
//
//	go build -o build/spacewave ./cmd
//
// Run:
//
//	./build/spacewave -input song.wav
//	./build/spacewave -signal tone
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tejashwikalptaru/spacewave/internal/app"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML config file")
	input := flag.String("input", "", "WAV file to visualize (default: synthesized signal)")
	signal := flag.String("signal", "", "Synthesized signal when no input is given: tone, sweep, silence")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.GetVersionInfo().FullString())
		return
	}

	// Create configuration: defaults, then file, then flags
	config := app.DefaultConfig()
	if *configFile != "" {
		loaded, err := app.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		config = loaded
	}
	if *input != "" {
		config.Input = *input
	}
	if *signal != "" {
		config.Synth.Signal = *signal
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	// Run application (blocks until the window closed)
	if err := application.Run(); err != nil {
		log.Printf("Application error: %v", err)
	}
}
