package animals

import (
	"encoding/json"
	"net/http"
	"time"

	"shelter-feeding/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
	})
}

type createAnimalRequest struct {
	Name       string   `json:"name"`
	Species    string   `json:"species"`
	AgeGroup   string   `json:"age_group"`
	Alteration string   `json:"alteration"`
	WeightKg   *float64 `json:"weight_kg"`
	Pregnant   bool     `json:"pregnant"`
	Lactating  bool     `json:"lactating"`
	Critical   bool     `json:"critical"`
	Diabetic   bool     `json:"diabetic"`
	Cancer     bool     `json:"cancer"`
	Notes      string   `json:"notes"`
}

type animalResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Species    string    `json:"species"`
	AgeGroup   string    `json:"age_group"`
	Alteration string    `json:"alteration"`
	WeightKg   *float64  `json:"weight_kg,omitempty"`
	Pregnant   bool      `json:"pregnant"`
	Lactating  bool      `json:"lactating"`
	Critical   bool      `json:"critical"`
	Diabetic   bool      `json:"diabetic"`
	Cancer     bool      `json:"cancer"`
	Notes      string    `json:"notes"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name       *string  `json:"name"`
	AgeGroup   *string  `json:"age_group"`
	Alteration *string  `json:"alteration"`
	WeightKg   *float64 `json:"weight_kg"` // null = limpiar (ver raw abajo)
	Pregnant   *bool    `json:"pregnant"`
	Lactating  *bool    `json:"lactating"`
	Critical   *bool    `json:"critical"`
	Diabetic   *bool    `json:"diabetic"`
	Cancer     *bool    `json:"cancer"`
	Notes      *string  `json:"notes"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), middleware.GetStaffID(r.Context()), CreateInput{
			Name:       req.Name,
			Species:    req.Species,
			AgeGroup:   req.AgeGroup,
			Alteration: req.Alteration,
			WeightKg:   req.WeightKg,
			Pregnant:   req.Pregnant,
			Lactating:  req.Lactating,
			Critical:   req.Critical,
			Diabetic:   req.Diabetic,
			Cancer:     req.Cancer,
			Notes:      req.Notes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Para soportar weight_kg: null (limpiar peso) hay que detectar
		// presencia del campo: decodificamos primero a map.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateAnimalRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		clearWeight := false
		if v, exists := raw["weight_kg"]; exists && string(v) == "null" {
			clearWeight = true
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			Name:        req.Name,
			AgeGroup:    req.AgeGroup,
			Alteration:  req.Alteration,
			WeightKg:    req.WeightKg,
			ClearWeight: clearWeight,
			Pregnant:    req.Pregnant,
			Lactating:   req.Lactating,
			Critical:    req.Critical,
			Diabetic:    req.Diabetic,
			Cancer:      req.Cancer,
			Notes:       req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "animal not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:         a.ID,
		Name:       a.Name,
		Species:    string(a.Species),
		AgeGroup:   string(a.AgeGroup),
		Alteration: string(a.Alteration),
		WeightKg:   a.WeightKg,
		Pregnant:   a.Pregnant,
		Lactating:  a.Lactating,
		Critical:   a.Critical,
		Diabetic:   a.Diabetic,
		Cancer:     a.Cancer,
		Notes:      a.Notes,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// (animals/foods/feeding) para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
