package foods

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/foods", func(fr chi.Router) {
		fr.Post("/", createFoodHandler(svc))
		fr.Get("/", listFoodsHandler(svc))
		fr.Get("/{foodID}", getFoodHandler(svc))
	})
}

type createFoodRequest struct {
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	KcalPer100g      *float64 `json:"kcal_per_100g"`
	PermittedSpecies []string `json:"permitted_species"`
	Notes            string   `json:"notes"`
}

type foodResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Brand            string    `json:"brand"`
	KcalPer100g      *float64  `json:"kcal_per_100g,omitempty"`
	PermittedSpecies []string  `json:"permitted_species"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func createFoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createFoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		f, err := svc.Create(r.Context(), CreateInput{
			Name:             req.Name,
			Brand:            req.Brand,
			KcalPer100g:      req.KcalPer100g,
			PermittedSpecies: req.PermittedSpecies,
			Notes:            req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toFoodResponse(f))
	}
}

func listFoodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]foodResponse, 0, len(items))
		for _, f := range items {
			out = append(out, toFoodResponse(f))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getFoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := svc.GetByID(r.Context(), chi.URLParam(r, "foodID"))
		if err != nil {
			http.Error(w, "food not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toFoodResponse(f))
	}
}

func toFoodResponse(f FoodItem) foodResponse {
	species := make([]string, 0, len(f.PermittedSpecies))
	for _, s := range f.PermittedSpecies {
		species = append(species, string(s))
	}
	return foodResponse{
		ID:               f.ID,
		Name:             f.Name,
		Brand:            f.Brand,
		KcalPer100g:      f.KcalPer100g,
		PermittedSpecies: species,
		Notes:            f.Notes,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

// writeJSON duplicado intencionalmente por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
