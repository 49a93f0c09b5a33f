// Package payload recovers the JSON object a text model was asked to emit
// from output that may be fenced, double encoded or wrapped in prose.
package payload

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"hipstertrail/internal/app/ports"
)

// MaxUnwrapDepth bounds how many wrapping layers are peeled off.
const MaxUnwrapDepth = 2

var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)\\s*```")

// Object returns the JSON object carried by content.
func Object(content string) (json.RawMessage, error) {
	text := strings.TrimSpace(content)
	for depth := 0; ; depth++ {
		if isObject(text) {
			return json.RawMessage(text), nil
		}
		if depth == MaxUnwrapDepth {
			break
		}
		next, ok := unwrapOnce(text)
		if !ok {
			break
		}
		text = strings.TrimSpace(next)
	}
	return nil, fmt.Errorf("%w: no JSON object in model output %q", ports.ErrMalformedPayload, preview(content))
}

// Decode recovers the object in content and unmarshals it into out.
func Decode(content string, out any) error {
	raw, err := Object(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrMalformedPayload, err)
	}
	return nil
}

func isObject(text string) bool {
	return strings.HasPrefix(text, "{") && gjson.Valid(text)
}

func unwrapOnce(text string) (string, bool) {
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil {
			return s, true
		}
	}
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if span, ok := firstBalancedObject(text); ok && span != text {
		return span, true
	}
	return "", false
}

// firstBalancedObject scans for the first {...} span whose braces balance,
// ignoring braces inside JSON strings.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func preview(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
