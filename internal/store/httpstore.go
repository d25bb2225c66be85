package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTP-backed document store used by clients whose store lives behind
// the relay server's REST API
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

func NewHTTPStore(baseURL string) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}
}

type createRequest struct {
	Image string `json:"image"`
}

type documentJSON struct {
	ID        string    `json:"id"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type listResponse struct {
	Drawings []documentJSON `json:"drawings"`
}

func (h *HTTPStore) Create(image []byte) (*Document, error) {
	body, err := json.Marshal(createRequest{Image: EncodeDataURI(image)})
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Post(h.baseURL+"/api/drawings", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("store write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("store write failed: status %d", resp.StatusCode)
	}

	var doc documentJSON
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	return &Document{ID: doc.ID, Image: image, CreatedAt: doc.CreatedAt}, nil
}

func (h *HTTPStore) ListAll() ([]Document, error) {
	resp, err := h.client.Get(h.baseURL + "/api/drawings")
	if err != nil {
		return nil, fmt.Errorf("store read failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store read failed: status %d", resp.StatusCode)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(list.Drawings))
	for _, d := range list.Drawings {
		image, err := DecodeDataURI(d.Image)
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{ID: d.ID, Image: image, CreatedAt: d.CreatedAt})
	}
	return docs, nil
}
