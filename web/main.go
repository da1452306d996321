package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-phong-raytracer/web/server"
)

func main() {
	config := server.DefaultConfig()

	// Parse command line flags
	flag.IntVar(&config.Port, "port", config.Port, "Port to serve on")
	flag.DurationVar(&config.PollInterval, "poll", config.PollInterval, "How often render streams send a new frame")
	flag.StringVar(&config.StaticDir, "static", config.StaticDir, "Directory of static files served at /")
	flag.Parse()

	if config.PollInterval <= 0 {
		log.Printf("-poll must be positive, got %v", config.PollInterval)
		os.Exit(2)
	}

	webServer := server.NewServer(config)

	log.Printf("Phong Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", config.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
