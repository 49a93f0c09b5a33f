package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"hipstertrail/internal/app/ports"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return v
}

func TestLoad_CompilesEverySchema(t *testing.T) {
	v, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := []string{Bio, ChatCompletion, Diffusion, Loot, Name, Proxy, Scenario, Transport, Upcycle}
	got := v.Names()
	if len(got) != len(want) {
		t.Fatalf("schema count mismatch: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("schema names mismatch: got=%v want=%v", got, want)
		}
	}
}

func TestValidate_Samples(t *testing.T) {
	v := MustLoad()

	samples := map[string]string{
		Name:      `{"name":"Birch"}`,
		Bio:       `{"bio":"Sells sourdough starters to other sourdough starters."}`,
		Transport: `{"phrase":"fixie with a wicker basket"}`,
		Loot:      `{"name":"Monocle","type":"eyewear","quality":"Thrifted","flavorText":"Ironically sincere.","modifiers":{"irony":3}}`,
		Upcycle:   `{"name":"Reclaimed Denim Cape","flavorText":"Three jackets, one vision."}`,
		Scenario: `{
		  "description":"A pop-up kombucha bar blocks the bike lane.",
		  "challenge":"Convince the bartender your scoby is older.",
		  "reward":"Free refills for life",
		  "sceneImagePrompt":"pop-up kombucha bar, film grain",
		  "badge":{"emoji":"🍵","description":"Scoby Whisperer"}
		}`,
		ChatCompletion: `{"choices":[{"message":{"role":"assistant","content":"{}"}}]}`,
		Proxy:          `{"source":"cache","data":{"response":"{}"}}`,
		Diffusion:      `{"images":["aGk="]}`,
	}
	if err := v.Validate(Proxy, decode(t, `{"response":"{}"}`)); err != nil {
		t.Fatalf("validate bare proxy response: %v", err)
	}
	for name, raw := range samples {
		if err := v.Validate(name, decode(t, raw)); err != nil {
			t.Fatalf("validate %s: %v", name, err)
		}
	}
}

func TestValidate_PassthroughAllowsUnknownFields(t *testing.T) {
	v := MustLoad()
	payload := decode(t, `{"name":"Fennel","mood":"wistful","extra":{"nested":true}}`)
	if err := v.Validate(Name, payload); err != nil {
		t.Fatalf("expected unknown fields to pass, got %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	v := MustLoad()
	cases := []struct {
		schema string
		raw    string
	}{
		{Name, `{"nom":"Birch"}`},
		{Name, `{"name":""}`},
		{Loot, `{"name":"Cape","type":"cape","quality":"Thrifted","flavorText":""}`},
		{Loot, `{"name":"Cape","type":"outerwear","quality":"Thrifted","flavorText":"","modifiers":{"luck":1}}`},
		{ChatCompletion, `{"choices":[]}`},
		{Diffusion, `{"images":[]}`},
		{Proxy, `{"source":"model"}`},
		{Proxy, `{"source":"model","response":"{}"}`},
		{Proxy, `{"response":42}`},
	}
	for _, tc := range cases {
		err := v.Validate(tc.schema, decode(t, tc.raw))
		if !errors.Is(err, ports.ErrSchemaViolation) {
			t.Fatalf("expected schema violation for %s %s, got %v", tc.schema, tc.raw, err)
		}
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := MustLoad()
	var schemaErr *ports.SchemaError
	if err := v.Validate("nope", map[string]any{}); !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
}

func TestValidateJSON_MalformedPayload(t *testing.T) {
	v := MustLoad()
	if _, err := v.ValidateJSON(Name, []byte(`{"name":`)); !errors.Is(err, ports.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}
