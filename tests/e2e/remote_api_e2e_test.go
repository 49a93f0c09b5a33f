//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_TrailLoop(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://127.0.0.1:8080"), "/")
	// Generous enough for a text tier, an image tier and the fallbacks.
	client := &http.Client{Timeout: 150 * time.Second}

	t.Run("healthz", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/healthz", nil)
		if status != http.StatusOK {
			t.Fatalf("healthz status=%d body=%s", status, string(body))
		}
	})

	player := map[string]any{
		"name":      "E2E Birch",
		"job":       "Barista",
		"stats":     map[string]any{"hunger": 100, "style": 50, "irony": 50, "authenticity": 50},
		"resources": map[string]any{"vinyls": 5, "coffee": 10, "bikeHealth": 100, "badges": []any{}},
		"location":  "Portland",
		"progress":  0,
	}

	t.Run("character name always answers", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/character/name", map[string]any{"player": player})
		if status != http.StatusOK {
			t.Fatalf("name status=%d body=%s", status, string(body))
		}
		var resp map[string]any
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("unmarshal name: %v body=%s", err, string(body))
		}
		if s, _ := resp["value"].(string); strings.TrimSpace(s) == "" {
			t.Fatalf("empty name: %s", string(body))
		}
		switch resp["data_source"] {
		case "primary", "fallback", "hardcoded":
		default:
			t.Fatalf("unexpected data_source: %v", resp["data_source"])
		}
	})

	t.Run("turn then choose", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/turn", map[string]any{"player": player})
		if status != http.StatusOK {
			t.Fatalf("turn status=%d body=%s", status, string(body))
		}
		var turn map[string]any
		if err := json.Unmarshal(body, &turn); err != nil {
			t.Fatalf("unmarshal turn: %v body=%s", err, string(body))
		}
		scenario := asMap(turn["scenario"])
		if strings.TrimSpace(asString(scenario["description"])) == "" {
			t.Fatalf("turn missing scenario description: %s", string(body))
		}
		choices := asSlice(turn["choices"])
		if len(choices) != 2 {
			t.Fatalf("expected 2 choices, got %d body=%s", len(choices), string(body))
		}

		status, body = mustJSON(t, client, http.MethodPost, baseURL+"/api/game/choose", map[string]any{
			"player": player,
			"choice": choices[0],
		})
		if status != http.StatusOK {
			t.Fatalf("choose status=%d body=%s", status, string(body))
		}
		var chosen map[string]any
		if err := json.Unmarshal(body, &chosen); err != nil {
			t.Fatalf("unmarshal choose: %v body=%s", err, string(body))
		}
		if progress, _ := asMap(chosen["player"])["progress"].(float64); progress <= 0 {
			t.Fatalf("expected progress after embracing: %s", string(body))
		}
	})

	t.Run("upcycle refuses two items", func(t *testing.T) {
		item := map[string]any{"name": "Scarf", "type": "accessory", "quality": "Thrifted", "flavorText": "itchy"}
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/upcycle", map[string]any{"items": []any{item, item}})
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d body=%s", status, string(body))
		}
	})

	t.Run("ops", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(body))
		}
		var kpi map[string]any
		if err := json.Unmarshal(body, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(body))
		}
		if total, _ := kpi["turn_total"].(float64); total < 1 {
			t.Fatalf("expected at least one turn recorded: %s", string(body))
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/events?limit=5", nil)
		if status != http.StatusOK {
			t.Fatalf("events status=%d body=%s", status, string(body))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
