package feeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shelter-feeding/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/feeding-plans", func(pr chi.Router) {
		pr.Post("/", createPlanHandler(svc))
		pr.Get("/", listPlansHandler(svc))
		pr.Get("/active", activePlanHandler(svc))
	})

	r.Get("/animals/{animalID}/feeding-suggestion", suggestionHandler(svc))

	r.Route("/feeding-plans/{planID}", func(pr chi.Router) {
		pr.Get("/", getPlanHandler(svc))
		pr.Post("/close", closePlanHandler(svc))
	})

	// Helper stateless para la UI: preview del auto-reparto.
	r.Post("/feeding-schedule/preview", schedulePreviewHandler())
}

type scheduleDTO struct {
	Times   []string `json:"times"`
	Amounts []int    `json:"amounts"`
}

type createPlanRequest struct {
	FoodID     string       `json:"food_id"`
	DailyGrams *int         `json:"daily_grams"`
	AmountText string       `json:"amount_text"`
	StartDate  string       `json:"start_date"` // YYYY-MM-DD
	EndDate    string       `json:"end_date"`   // YYYY-MM-DD opcional
	Schedule   *scheduleDTO `json:"schedule"`
	Notes      string       `json:"notes"`
}

type planResponse struct {
	ID         string       `json:"id"`
	AnimalID   string       `json:"animal_id"`
	FoodID     string       `json:"food_id,omitempty"`
	DailyGrams *int         `json:"daily_grams,omitempty"`
	AmountText string       `json:"amount_text,omitempty"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date,omitempty"`
	Schedule   *scheduleDTO `json:"schedule"`
	Notes      string       `json:"notes,omitempty"`
	Status     string       `json:"status"`
	CreatedBy  string       `json:"created_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	ClosedAt   *time.Time   `json:"closed_at,omitempty"`
}

type planCreatedResponse struct {
	planResponse
	ClosedPlansCount int      `json:"closed_plans_count"`
	ClosedPlanIDs    []string `json:"closed_plan_ids"`
}

type suggestionResponse struct {
	EnergyKcalPerDay int      `json:"energy_kcal_per_day"`
	FoodKcalPer100g  float64  `json:"food_kcal_per_100g"`
	DailyGrams       int      `json:"daily_grams"`
	MealTimes        []string `json:"meal_times,omitempty"`
	PerMealGrams     []int    `json:"per_meal_grams,omitempty"`
}

type schedulePreviewRequest struct {
	DailyGrams int      `json:"daily_grams"`
	Times      []string `json:"times"`
}

func createPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.StartDate) == "" {
			http.Error(w, "start_date is required (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var end *time.Time
		if strings.TrimSpace(req.EndDate) != "" {
			t, err := time.Parse("2006-01-02", req.EndDate)
			if err != nil {
				http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			end = &t
		}

		in := CreatePlanInput{
			FoodID:     req.FoodID,
			DailyGrams: req.DailyGrams,
			AmountText: req.AmountText,
			StartDate:  start,
			EndDate:    end,
			Notes:      req.Notes,
		}
		if req.Schedule != nil {
			in.Times = req.Schedule.Times
			in.Amounts = req.Schedule.Amounts
		}

		created, err := svc.CreatePlan(r.Context(), chi.URLParam(r, "animalID"), middleware.GetStaffID(r.Context()), in)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, planCreatedResponse{
			planResponse:     toPlanResponse(created.Plan),
			ClosedPlansCount: len(created.ClosedPlanIDs),
			ClosedPlanIDs:    created.ClosedPlanIDs,
		})
	}
}

func listPlansHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		out := make([]planResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPlanResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func activePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetActiveByAnimal(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "no active feeding plan", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func getPlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			http.Error(w, "feeding plan not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func closePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.ClosePlan(r.Context(), chi.URLParam(r, "planID"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPlanResponse(p))
	}
}

func suggestionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sug, err := svc.Suggest(r.Context(), chi.URLParam(r, "animalID"), r.URL.Query().Get("food_id"))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, suggestionResponse{
			EnergyKcalPerDay: sug.EnergyKcalPerDay,
			FoodKcalPer100g:  sug.FoodKcalPer100g,
			DailyGrams:       sug.DailyGrams,
			MealTimes:        sug.MealTimes,
			PerMealGrams:     sug.PerMealGrams,
		})
	}
}

func schedulePreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schedulePreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		amounts, err := Distribute(req.DailyGrams, req.Times)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		times, _ := NormalizeTimes(req.Times)
		writeJSON(w, http.StatusOK, scheduleDTO{Times: times, Amounts: amounts})
	}
}

// writeEngineError mapea errores del motor a status HTTP:
// input inválido 400, no encontrado 404, datos faltantes o
// incompatibles 422, carrera de creación 409.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrBadTime),
		errors.Is(err, ErrNoDailyAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNoWeight),
		errors.Is(err, ErrNoEnergy),
		errors.Is(err, ErrNoEnergyDensity),
		errors.Is(err, ErrSpeciesMismatch),
		errors.Is(err, ErrNoFeedingTimes),
		errors.Is(err, ErrScheduleMismatch):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrPlanConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPlanResponse(p FeedingPlan) planResponse {
	out := planResponse{
		ID:         p.ID,
		AnimalID:   p.AnimalID,
		FoodID:     p.FoodID,
		DailyGrams: p.DailyGrams,
		AmountText: p.AmountText,
		StartDate:  p.StartDate.Format("2006-01-02"),
		Notes:      p.Notes,
		Status:     string(p.Status),
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		ClosedAt:   p.ClosedAt,
	}
	if p.EndDate != nil {
		out.EndDate = p.EndDate.Format("2006-01-02")
	}
	if p.Schedule != nil {
		out.Schedule = &scheduleDTO{Times: p.Schedule.Times, Amounts: p.Schedule.Amounts}
	}
	return out
}

// writeJSON duplicado intencionalmente por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
