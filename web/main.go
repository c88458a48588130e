package main

import (
	"flag"
	"os"

	"github.com/df07/go-raycaster/pkg/log"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory containing JSON scene files")
	dataDir := flag.String("data", "data", "Directory containing OFF mesh files")
	workers := flag.Int("workers", 0, "Render workers (0 = all CPUs)")
	verbose := flag.Bool("v", false, "Enable verbose logging")
	logLevel := flag.String("log-level", "", "Log level: debug, info, notice, warning or error")
	flag.Parse()

	logger := log.New("web")
	if *logLevel != "" {
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			logger.Errorf("%v", err)
			os.Exit(2)
		}
		log.SetLevel(level)
	}
	if *verbose {
		log.SetLevel(log.Info)
	}

	webServer := server.NewServer(*port, server.Options{
		ScenesDir: *scenesDir,
		DataDir:   *dataDir,
		Render:    renderer.Config{TileSize: renderer.DefaultTileSize, NumWorkers: *workers},
	})

	logger.Noticef("ray caster web server, visit http://localhost:%d/api/scenes", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("error starting server: %v", err)
		os.Exit(1)
	}
}
