// Package main implements the entry point for the vottdot server, the
// HTTP backend of the VoTT-based image-annotation tool. It serves image
// assets, persists per-file annotation metadata, and manages annotation
// task descriptors.
package main

import (
	"context"
	"log"
)

// main is the entry point for the vottdot server.
// It initializes configuration, logging and the database connection,
// applies schema migrations, wires the dependencies together, and starts
// the HTTP server.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
