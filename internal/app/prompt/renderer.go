// Package prompt renders the fixed natural-language templates sent to text
// and image models.
package prompt

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"hipstertrail/internal/domain/trail"
)

const (
	System    = "system"
	Name      = "name"
	Bio       = "bio"
	Transport = "transport"
	Loot      = "loot"
	Upcycle   = "upcycle"
	Scenario  = "scenario"
	Avatar    = "avatar"
)

//go:embed templates/*.tmpl
var files embed.FS

type Data struct {
	Player trail.PlayerState
	Items  []trail.LootItem
	Source trail.Quality
	Target trail.Quality
}

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	t, err := template.New("prompts").
		Option("missingkey=error").
		Funcs(template.FuncMap{"orDefault": orDefault}).
		ParseFS(files, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(name string, data Data) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func orDefault(def, v string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
