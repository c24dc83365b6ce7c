package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelter-feeding/internal/router"
)

func TestHTTP_EndToEnd_FeedingPlanLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Alta de animal y alimento
	animalID := createAnimal(t, ts.URL, map[string]any{
		"name":       "Milo",
		"species":    "dog",
		"age_group":  "adult",
		"alteration": "intact",
		"weight_kg":  10,
	})
	foodID := createFood(t, ts.URL, map[string]any{
		"name":          "adult kibble",
		"kcal_per_100g": 350,
	})

	// 2) Sugerencia de dosis: 10 kg perro entero ≈ 709 kcal → 200 g
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-suggestion?food_id="+foodID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 suggestion, got %d body=%s", st, string(body))
		}
		var resp struct {
			EnergyKcalPerDay int `json:"energy_kcal_per_day"`
			DailyGrams       int `json:"daily_grams"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.EnergyKcalPerDay != 709 || resp.DailyGrams != 200 {
			t.Fatalf("expected 709 kcal / 200 g, got %+v body=%s", resp, string(body))
		}
	}

	// 3) Primer plan: schedule que reconcilia
	var firstPlanID string
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/feeding-plans", "staff-1", map[string]any{
			"food_id":     foodID,
			"daily_grams": 200,
			"start_date":  "2026-03-02",
			"schedule":    map[string]any{"times": []string{"08:00", "18:00"}, "amounts": []int{100, 100}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create plan, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID               string `json:"id"`
			Status           string `json:"status"`
			CreatedBy        string `json:"created_by"`
			ClosedPlansCount int    `json:"closed_plans_count"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Status != "active" {
			t.Fatalf("unexpected plan response: %s", string(body))
		}
		if resp.ClosedPlansCount != 0 {
			t.Fatalf("expected closed_plans_count 0, got %d", resp.ClosedPlansCount)
		}
		if resp.CreatedBy != "staff-1" {
			t.Fatalf("expected created_by staff-1, got %q", resp.CreatedBy)
		}
		firstPlanID = resp.ID
	}

	// 4) Schedule que NO reconcilia => 422, nada persistido
	{
		st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/feeding-plans", "staff-1", map[string]any{
			"daily_grams": 200,
			"start_date":  "2026-03-02",
			"schedule":    map[string]any{"times": []string{"08:00", "18:00"}, "amounts": []int{90, 90}},
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 for non-reconciling schedule, got %d", st)
		}
	}

	// 5) Segundo plan: supersede al primero
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/feeding-plans", "staff-2", map[string]any{
			"daily_grams": 240,
			"start_date":  "2026-03-09",
			"schedule":    map[string]any{"times": []string{"08:00", "13:00", "18:00"}},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 replacement plan, got %d body=%s", st, string(body))
		}
		var resp struct {
			ClosedPlansCount int      `json:"closed_plans_count"`
			ClosedPlanIDs    []string `json:"closed_plan_ids"`
			Schedule         struct {
				Amounts []int `json:"amounts"`
			} `json:"schedule"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ClosedPlansCount != 1 || len(resp.ClosedPlanIDs) != 1 || resp.ClosedPlanIDs[0] != firstPlanID {
			t.Fatalf("expected supersession of %s, got %s", firstPlanID, string(body))
		}
		// auto-reparto: 240/3 exacto
		if len(resp.Schedule.Amounts) != 3 || resp.Schedule.Amounts[0] != 80 || resp.Schedule.Amounts[2] != 80 {
			t.Fatalf("expected auto-distributed [80 80 80], got %v", resp.Schedule.Amounts)
		}
	}

	// 6) El primero quedó cerrado; queda exactamente un activo
	{
		st, body := doReq(t, ts.URL, "GET", "/feeding-plans/"+firstPlanID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get plan, got %d", st)
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "closed" {
			t.Fatalf("expected first plan closed, got %s", resp.Status)
		}

		st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-plans/active", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active plan, got %d body=%s", st, string(body))
		}
	}

	// 7) Cierre explícito del activo
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-plans/active", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 active plan, got %d", st)
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)

		st, _ = doReq(t, ts.URL, "POST", "/feeding-plans/"+resp.ID+"/close", "staff-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 close plan, got %d", st)
		}
		// idempotente
		st, _ = doReq(t, ts.URL, "POST", "/feeding-plans/"+resp.ID+"/close", "staff-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 on repeat close, got %d", st)
		}

		st, _ = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-plans/active", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 active after close, got %d", st)
		}
	}

	// 8) Historial: los dos planes quedan, más reciente primero
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-plans", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list plans, got %d", st)
		}
		var resp []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp) != 2 {
			t.Fatalf("expected 2 plans in history, got %d", len(resp))
		}
	}
}

func TestHTTP_Suggestion_MissingInputs(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// Animal sin peso registrado
	animalID := createAnimal(t, ts.URL, map[string]any{
		"name":    "Luna",
		"species": "cat",
	})
	foodID := createFood(t, ts.URL, map[string]any{
		"name":          "cat food",
		"kcal_per_100g": 400,
	})
	noDensityID := createFood(t, ts.URL, map[string]any{
		"name": "donated mystery bag",
	})

	st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-suggestion?food_id="+foodID, "", nil)
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing weight, got %d body=%s", st, string(body))
	}

	// Con peso pero alimento sin densidad energética: otra causa, mismo 422
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/animals/"+animalID, "", map[string]any{"weight_kg": 4})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch weight, got %d", st)
		}
	}
	st, body = doReq(t, ts.URL, "GET", "/animals/"+animalID+"/feeding-suggestion?food_id="+noDensityID, "", nil)
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing energy density, got %d body=%s", st, string(body))
	}
	if !bytes.Contains(body, []byte("energy density")) {
		t.Fatalf("expected specific energy density message, got %s", string(body))
	}
}

func TestHTTP_SpeciesMismatchRejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	animalID := createAnimal(t, ts.URL, map[string]any{
		"name":      "Milo",
		"species":   "dog",
		"weight_kg": 10,
	})
	catOnlyID := createFood(t, ts.URL, map[string]any{
		"name":              "cat wet food",
		"kcal_per_100g":     300,
		"permitted_species": []string{"cat"},
	})

	st, _ := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/feeding-plans", "staff-1", map[string]any{
		"food_id":     catOnlyID,
		"amount_text": "una lata",
		"start_date":  "2026-03-02",
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for species mismatch, got %d", st)
	}
}

func TestHTTP_SchedulePreview(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/feeding-schedule/preview", "", map[string]any{
		"daily_grams": 200,
		"times":       []string{"18:00", "08:00", "13:00"},
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 preview, got %d body=%s", st, string(body))
	}

	var resp struct {
		Times   []string `json:"times"`
		Amounts []int    `json:"amounts"`
	}
	_ = json.Unmarshal(body, &resp)
	if len(resp.Times) != 3 || resp.Times[0] != "08:00" {
		t.Fatalf("expected sorted times, got %v", resp.Times)
	}
	if len(resp.Amounts) != 3 || resp.Amounts[0] != 66 || resp.Amounts[2] != 68 {
		t.Fatalf("expected [66 66 68], got %v", resp.Amounts)
	}

	// Sin horarios => 422
	st, _ = doReq(t, ts.URL, "POST", "/feeding-schedule/preview", "", map[string]any{
		"daily_grams": 200,
		"times":       []string{},
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty times, got %d", st)
	}
}

func createAnimal(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", "staff-1", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create animal, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create animal: missing id body=%s", string(body))
	}
	return resp.ID
}

func createFood(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/foods", "staff-1", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create food, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create food: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, staffID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if staffID != "" {
		req.Header.Set("X-Staff-ID", staffID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
