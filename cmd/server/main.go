package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/api"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/relay"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/store"
)

func main() {
	dbPath := os.Getenv("WHITEBOARD_DB_PATH")
	if dbPath == "" {
		dbPath = "./data/whiteboard.db"
	}

	allowedOrigin := os.Getenv("WHITEBOARD_ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}

	drawings, err := store.NewSQLite(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer drawings.Close()

	hub := relay.NewHub()
	go hub.Run()

	apiHandler := api.New(hub, drawings)

	// WebSocket endpoint
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		relay.ServeWs(hub, w, r)
	})

	http.HandleFunc("/health", apiHandler.HealthHandler)
	http.HandleFunc("/api/stats", apiHandler.StatsHandler)
	http.HandleFunc("/api/drawings", apiHandler.DrawingsRouter)

	// Apply CORS middleware
	handler := corsMiddleware(http.DefaultServeMux, allowedOrigin)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		drawings.Close()
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Whiteboard relay starting on :%s", port)
	log.Printf("Store: %s", dbPath)
	log.Printf("Allowed origin: %s", allowedOrigin)
	log.Println("Endpoints:")
	log.Println("  - WebSocket: /ws")
	log.Println("  - Health:    GET /health")
	log.Println("  - Stats:     GET /api/stats")
	log.Println("  - Drawings:  GET/POST /api/drawings")

	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

func corsMiddleware(next http.Handler, allowedOrigin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
