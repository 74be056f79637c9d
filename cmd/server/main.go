// Package main implements the entry point for the memoro API server,
// a spaced-repetition flashcard service with fuzzy answer matching and
// adaptive difficulty.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		app.logger.Error("server exited with error", "error", err)
	}
}
