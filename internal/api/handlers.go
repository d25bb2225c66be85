package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/relay"
	"github.com/FidelesCadito/real-time-whiteboard-fideles-cadito/internal/store"
)

type API struct {
	hub      *relay.Hub
	drawings *store.SQLite
}

func New(hub *relay.Hub, drawings *store.SQLite) *API {
	return &API{
		hub:      hub,
		drawings: drawings,
	}
}

func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats := map[string]interface{}{
		"active_clients": a.hub.ClientCount(),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	}

	if a.drawings != nil {
		count, err := a.drawings.Count()
		if err == nil {
			stats["drawing_count"] = count
		}
	}

	jsonResponse(w, http.StatusOK, stats)
}

// Drawing handlers

type CreateDrawingRequest struct {
	Image string `json:"image"`
}

type DrawingResponse struct {
	ID        string    `json:"id"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *API) CreateDrawingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CreateDrawingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Image == "" {
		errorResponse(w, http.StatusBadRequest, "image is required")
		return
	}

	image, err := store.DecodeDataURI(req.Image)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid image payload")
		return
	}

	doc, err := a.drawings.Create(image)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to save drawing")
		return
	}

	jsonResponse(w, http.StatusCreated, DrawingResponse{
		ID:        doc.ID,
		CreatedAt: doc.CreatedAt,
	})
}

// Returns every stored drawing in creation order, images included
func (a *API) ListDrawingsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	docs, err := a.drawings.ListAll()
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to list drawings")
		return
	}

	response := make([]DrawingResponse, len(docs))
	for i, doc := range docs {
		response[i] = DrawingResponse{
			ID:        doc.ID,
			Image:     store.EncodeDataURI(doc.Image),
			CreatedAt: doc.CreatedAt,
		}
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"drawings": response,
		"count":    len(response),
	})
}

func (a *API) DrawingsRouter(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.ListDrawingsHandler(w, r)
	case http.MethodPost:
		a.CreateDrawingHandler(w, r)
	default:
		errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
