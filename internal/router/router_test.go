package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"soycraft-insights/internal/ports/llm"
	"soycraft-insights/internal/router"
)

// stubChat implementa llm.ChatCompleter devolviendo respuestas fijas en orden.
type stubChat struct {
	responses []string
	calls     int
}

func (s *stubChat) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	s.calls++
	if len(s.responses) == 0 {
		return "", io.EOF
	}
	out := s.responses[0]
	s.responses = s.responses[1:]
	return out, nil
}

func TestHTTP_EndToEnd_LogsAndInsights(t *testing.T) {
	chat := &stubChat{responses: []string{
		`{"summary":"Black stool noticed.","recommendations":"Monitor closely. When in doubt, consult your veterinarian.","riskLevel":"watch","ownerMessage":"Keep an eye on Milo."}`,
		"Try smaller portions tonight.",
	}}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Chat:         chat,
	}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Milo",
		"species":    "dog",
		"breed":      "mixed",
		"sex":        "male",
		"birth_date": "2022-05-01",
		"owner_name": "Sam",
	})

	// 2) Otro usuario no ve la mascota (ni se revela que existe)
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, strangerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign pet, got %d", st)
		}
	}

	// 3) Registrar un log de cada tipo
	stoolID := createLog(t, ts.URL, ownerID, petID, "stool", map[string]any{
		"consistency": "regular",
		"color":       "black",
		"logged_at":   time.Now().UTC().Format(time.RFC3339),
	})
	createLog(t, ts.URL, ownerID, petID, "food", map[string]any{
		"food_name":    "kibble",
		"amount_grams": 120,
		"meal_type":    "breakfast",
	})
	createLog(t, ts.URL, ownerID, petID, "supplements", map[string]any{
		"supplement_name": "omega-3",
		"dosage":          "500mg",
	})
	createLog(t, ts.URL, ownerID, petID, "measurements", map[string]any{
		"weight_kg": 14.5,
	})

	// 4) Listar deposiciones
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/logs/stool", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list stool, got %d body=%s", st, string(body))
		}
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil || len(items) != 1 {
			t.Fatalf("expected one stool log, body=%s", string(body))
		}
	}

	// 5) Logs inválidos rechazados
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/logs/stool", ownerID, map[string]any{
			"consistency": "runny",
			"color":       "brown",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid consistency, got %d", st)
		}
	}

	// 6) Wellness y trend
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/wellness", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 wellness, got %d body=%s", st, string(body))
		}
		var scores struct {
			Nutrition int `json:"nutrition"`
			Digestion int `json:"digestion"`
		}
		_ = json.Unmarshal(body, &scores)
		if scores.Nutrition <= 0 || scores.Digestion <= 0 {
			t.Fatalf("scores should be computed, body=%s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/trend", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trend, got %d body=%s", st, string(body))
		}
		var trend struct {
			Segments []map[string]any `json:"segments"`
		}
		_ = json.Unmarshal(body, &trend)
		if len(trend.Segments) == 0 {
			t.Fatalf("trend without segments, body=%s", string(body))
		}
	}

	// 7) Notas aún vacías
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/notes", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list notes, got %d", st)
		}
		var notes []map[string]any
		_ = json.Unmarshal(body, &notes)
		if len(notes) != 0 {
			t.Fatalf("expected no notes before analyze, got %d", len(notes))
		}
	}

	// 8) Analyze: el stub devuelve watch y el tier local coincide (color negro)
	{
		st, body := doReq(t, ts.URL, "POST", "/analyze", ownerID, map[string]any{
			"petId": petID,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 analyze, got %d body=%s", st, string(body))
		}
		var out struct {
			Summary   string `json:"summary"`
			RiskLevel string `json:"riskLevel"`
		}
		_ = json.Unmarshal(body, &out)
		if out.RiskLevel != "watch" {
			t.Fatalf("expected watch tier, got %q body=%s", out.RiskLevel, string(body))
		}
	}

	// 9) La nota quedó persistida con la regla citada
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/notes", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list notes, got %d", st)
		}
		var notes []struct {
			RiskLevel      string   `json:"risk_level"`
			TriggeredRules []string `json:"triggered_rules"`
		}
		_ = json.Unmarshal(body, &notes)
		if len(notes) != 1 {
			t.Fatalf("expected one persisted note, body=%s", string(body))
		}
		if notes[0].RiskLevel != "watch" {
			t.Fatalf("persisted tier should be watch, got %q", notes[0].RiskLevel)
		}
		if len(notes[0].TriggeredRules) == 0 || !strings.HasPrefix(notes[0].TriggeredRules[0], "Rule 3") {
			t.Fatalf("expected Rule 3 citation, got %v", notes[0].TriggeredRules)
		}
	}

	// 10) Contexto agregado
	{
		st, body := doReq(t, ts.URL, "GET", "/context/"+petID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 context, got %d body=%s", st, string(body))
		}
		var ctx struct {
			Pet   map[string]any   `json:"pet"`
			Poop  []map[string]any `json:"poop"`
			Notes []map[string]any `json:"notes"`
		}
		_ = json.Unmarshal(body, &ctx)
		if ctx.Pet["name"] != "Milo" {
			t.Fatalf("context pet missing, body=%s", string(body))
		}
		if len(ctx.Poop) != 1 || len(ctx.Notes) != 1 {
			t.Fatalf("context should carry logs and notes, body=%s", string(body))
		}
	}

	// 11) Chat
	{
		st, body := doReq(t, ts.URL, "POST", "/chat", ownerID, map[string]any{
			"petId": petID,
			"messages": []map[string]string{
				{"role": "user", "content": "Is Milo eating enough?"},
			},
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 chat, got %d body=%s", st, string(body))
		}
		var out struct {
			Reply string `json:"reply"`
		}
		_ = json.Unmarshal(body, &out)
		if out.Reply != "Try smaller portions tonight." {
			t.Fatalf("unexpected chat reply %q", out.Reply)
		}
	}

	// 12) Créditos: stool 5 + food 5 + supplement 3 + measurement 3
	{
		st, body := doReq(t, ts.URL, "GET", "/me/credits", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 credits, got %d", st)
		}
		var out struct {
			Credits int `json:"credits"`
		}
		_ = json.Unmarshal(body, &out)
		if out.Credits != 16 {
			t.Fatalf("expected 16 credits, got %d", out.Credits)
		}
	}

	// 13) Borrar el log de stool
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID+"/logs/stool/"+stoolID, ownerID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete stool, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "DELETE", "/pets/"+petID+"/logs/stool/"+stoolID, ownerID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting twice, got %d", st)
		}
	}
}

func TestHTTP_Analyze_ForeignPetHidden(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Chat:         &stubChat{},
	}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{
		"name":    "Milo",
		"species": "dog",
	})

	st, body := doReq(t, ts.URL, "POST", "/analyze", "stranger-1", map[string]any{
		"petId": petID,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 analyzing a foreign pet, got %d body=%s", st, string(body))
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
		Chat:         &stubChat{},
	}))
	defer ts.Close()

	// Sin X-Debug-User-ID ni token no hay identidad
	st, _ := doReq(t, ts.URL, "GET", "/pets", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Chat: &stubChat{}}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response: %d %q", st, string(body))
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func createLog(t *testing.T, baseURL, userID, petID, kind string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/logs/"+kind, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s log, got %d body=%s", kind, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s log: missing id body=%s", kind, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
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
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
