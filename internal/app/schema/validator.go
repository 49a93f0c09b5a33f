// Package schema gates AI backend payloads behind declarative JSON Schema
// documents. Schemas never close their objects, so extra fields a model adds
// pass through untouched.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"hipstertrail/internal/app/ports"
)

const (
	Name           = "name"
	Bio            = "bio"
	Transport      = "transport"
	Loot           = "loot"
	Upcycle        = "upcycle"
	Scenario       = "scenario"
	ChatCompletion = "chat_completion"
	Proxy          = "proxy"
	Diffusion      = "diffusion"
)

const baseURL = "https://hipstertrail.local/schemas/"

//go:embed schemas/*.schema.json
var files embed.FS

type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// Load compiles every embedded schema.
func Load() (*Validator, error) {
	entries, err := files.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}
	c := jsonschema.NewCompiler()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		raw, err := files.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		if err := c.AddResource(baseURL+e.Name(), bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", e.Name(), err)
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".schema.json"))
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(names))}
	for _, name := range names {
		s, err := c.Compile(baseURL + name + ".schema.json")
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		v.schemas[name] = s
	}
	return v, nil
}

func MustLoad() *Validator {
	v, err := Load()
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Names() []string {
	out := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate checks a decoded JSON value (maps, slices, float64...) against
// the named schema.
func (v *Validator) Validate(name string, payload any) error {
	s, ok := v.schemas[name]
	if !ok {
		return &ports.SchemaError{Schema: name, Err: fmt.Errorf("unknown schema %q", name)}
	}
	if err := s.Validate(payload); err != nil {
		return &ports.SchemaError{Schema: name, Err: err}
	}
	return nil
}

// ValidateJSON decodes raw and validates it against the named schema,
// returning the decoded value.
func (v *Validator) ValidateJSON(name string, raw []byte) (any, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrMalformedPayload, err)
	}
	if err := v.Validate(name, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
