package eventtmpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// ErrInvalidTemplate is returned when the template file is not valid JSONC
var ErrInvalidTemplate = errors.New("template is not valid JSONC")

// placeholderPattern matches "{date}" or "{First Name}" but not JSON object braces
var placeholderPattern = regexp.MustCompile(`\{([A-Za-z_][^{}"\n\\]*)\}`)

// Template is a JSONC calendar event body with {placeholder} tokens inside string values.
// Placeholders must sit inside quotes because substituted values are JSON-escaped but not quoted.
type Template struct {
	// text is standard JSON: comments and trailing commas are blanked out
	text string
	// values are the byte spans of string values, quotes excluded. Keys are not values.
	values       [][2]int
	placeholders []string
}

// Load reads and validates a template file
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return Parse(string(data))
}

// Parse validates the template text as JSONC and indexes the placeholders found in its
// string values
func Parse(text string) (*Template, error) {
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	t := &Template{text: string(std), values: stringValues(std)}

	seen := make(map[string]bool)
	for _, span := range t.values {
		for _, m := range placeholderPattern.FindAllStringSubmatch(t.text[span[0]:span[1]], -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				t.placeholders = append(t.placeholders, m[1])
			}
		}
	}

	return t, nil
}

// stringValues returns the spans of every string literal in b that is not an object key.
// b must be standard JSON.
func stringValues(b []byte) [][2]int {
	var spans [][2]int
	for i := 0; i < len(b); i++ {
		if b[i] != '"' {
			continue
		}

		start := i + 1
		end := start
		for end < len(b) && b[end] != '"' {
			if b[end] == '\\' {
				end++
			}
			end++
		}

		next := end + 1
		for next < len(b) && isSpace(b[next]) {
			next++
		}
		if next >= len(b) || b[next] != ':' {
			spans = append(spans, [2]int{start, end})
		}
		i = end
	}
	return spans
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Placeholders lists the distinct placeholder names in order of first appearance
func (t *Template) Placeholders() []string {
	return append([]string(nil), t.placeholders...)
}

// MissingParamsError lists template placeholders that had no value
type MissingParamsError struct {
	Names []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("no value supplied for placeholder(s): %s", strings.Join(e.Names, ", "))
}

// Render substitutes every placeholder in a single pass and decodes the result.
// Substituted text is never rescanned, so values containing braces are kept verbatim.
func (t *Template) Render(params Params) (*Payload, error) {
	var missing []string
	for _, name := range t.placeholders {
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingParamsError{Names: missing}
	}

	var renderErr error
	substitute := func(token string) string {
		name := token[1 : len(token)-1]
		escaped, err := escapeJSONString(params[name])
		if err != nil && renderErr == nil {
			renderErr = fmt.Errorf("failed to escape %q: %w", name, err)
		}
		return escaped
	}

	var sb strings.Builder
	last := 0
	for _, span := range t.values {
		sb.WriteString(t.text[last:span[0]])
		sb.WriteString(placeholderPattern.ReplaceAllStringFunc(t.text[span[0]:span[1]], substitute))
		last = span[1]
	}
	sb.WriteString(t.text[last:])
	if renderErr != nil {
		return nil, renderErr
	}

	var std bytes.Buffer
	if err := json.Compact(&std, []byte(sb.String())); err != nil {
		return nil, fmt.Errorf("generated event JSON is invalid: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(std.Bytes(), &p); err != nil {
		return nil, fmt.Errorf("failed to decode generated event: %w", err)
	}
	p.Raw = json.RawMessage(std.Bytes())
	return &p, nil
}

// escapeJSONString encodes s as a JSON string and strips the surrounding quotes, so quotes,
// newlines and control characters survive inside a quoted template value
func escapeJSONString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	encoded := strings.TrimSuffix(buf.String(), "\n")
	return encoded[1 : len(encoded)-1], nil
}
