package http

import (
	"encoding/json"
	"errors"
	"net/http"

	invapp "playcafe-cloud/internal/inventory/application"
	inventory "playcafe-cloud/internal/inventory/domain"
)

// Handler serves the controller counter at /api/v1/inventory/controllers.
type Handler struct {
	service *invapp.InventoryService
}

func NewHandler(service *invapp.InventoryService) (*Handler, error) {
	if service == nil {
		return nil, errors.New("inventory handler: nil service")
	}
	return &Handler{service: service}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/inventory/controllers" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	counter, err := h.service.Get(r.Context())
	if err != nil {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, counterResponse(counter))
}

// handleUpdate applies exactly one of the update shapes: an absolute
// checked-out count, a delta, or a new fleet total.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Out   *int `json:"out"`
		Delta *int `json:"delta"`
		Total *int `json:"total"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var (
		counter *inventory.ControllerInventory
		err     error
	)
	switch {
	case req.Out != nil:
		counter, err = h.service.SetOut(r.Context(), *req.Out)
	case req.Delta != nil:
		counter, err = h.service.Adjust(r.Context(), *req.Delta)
	case req.Total != nil:
		counter, err = h.service.SetTotal(r.Context(), *req.Total)
	default:
		http.Error(w, "one of out, delta or total is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		if errors.Is(err, inventory.ErrNegativeTotal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, counterResponse(counter))
}

func counterResponse(c *inventory.ControllerInventory) map[string]any {
	return map[string]any{
		"total":      c.Total,
		"out":        c.Out,
		"in_stock":   c.InStock(),
		"updated_at": c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}
