package cutfinder

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Generative models return JSON wrapped in prose, markdown fences, or cut off
// mid-value when the output budget runs out. ExtractJSON runs a fixed
// sequence of repair passes so the common damage parses anyway:
//
//  1. strip markdown code fences
//  2. locate the first JSON array of objects (or a lone object), forcibly
//     closing a truncated tail
//  3. strip trailing commas before closing brackets
//  4. patch empty value slots with null
//
// It fails only when no JSON-like structure can be located or the repaired
// text still does not parse. It never invents data.

var (
	completeArrayRE    = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)
	incompleteArrayRE  = regexp.MustCompile(`(?s)\[\s*\{.*`)
	completeObjectRE   = regexp.MustCompile(`(?s)\{.*\}`)
	incompleteObjectRE = regexp.MustCompile(`(?s)\{.*`)
	trailingCommaRE    = regexp.MustCompile(`,\s*([}\]])`)
	emptyValueRE       = regexp.MustCompile(`:\s*([,}\]])`)
)

// ExtractJSON extracts and repairs a JSON array or object from free-form
// model output. The returned value is guaranteed to unmarshal.
func ExtractJSON(content string) (json.RawMessage, error) {
	located, err := locateStructure(stripCodeFence(content))
	if err != nil {
		return nil, err
	}
	repaired := patchEmptyValues(stripTrailingCommas(located))
	if err := validateJSON(repaired); err != nil {
		return nil, err
	}
	return json.RawMessage(repaired), nil
}

// stripCodeFence takes the inner content of the first fenced code block,
// preferring a ```json tag over a bare fence. Text without fences passes
// through unchanged.
func stripCodeFence(content string) string {
	for _, fence := range []string{"```json", "```"} {
		i := strings.Index(content, fence)
		if i < 0 {
			continue
		}
		rest := content[i+len(fence):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return content
}

// locateStructure finds the first JSON array of objects; failing that, an
// array opener running to end-of-text (forcibly closed), then the same two
// attempts for a single object.
func locateStructure(content string) (string, error) {
	if m := completeArrayRE.FindString(content); m != "" {
		return m, nil
	}
	if m := incompleteArrayRE.FindString(content); m != "" {
		return closeArray(m), nil
	}
	if m := completeObjectRE.FindString(content); m != "" {
		return m, nil
	}
	if m := incompleteObjectRE.FindString(content); m != "" {
		return closeObject(m), nil
	}
	return "", fmt.Errorf("no JSON structure found in response: %q", truncateForLog(content, 200))
}

// closeArray terminates a truncated array, closing the trailing object first
// when the generator stopped mid-object.
func closeArray(s string) string {
	t := strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(t, "]") {
		return s
	}
	if !strings.HasSuffix(t, "}") {
		s = strings.TrimRight(t, ",") + "}"
	}
	return s + "]"
}

func closeObject(s string) string {
	t := strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(t, "}") {
		return s
	}
	return strings.TrimRight(t, ",") + "}"
}

func stripTrailingCommas(s string) string {
	return trailingCommaRE.ReplaceAllString(s, "$1")
}

// patchEmptyValues fills "key": , slots left by truncated output with null so
// the result is syntactically parseable.
func patchEmptyValues(s string) string {
	return emptyValueRE.ReplaceAllString(s, ": null$1")
}

// validateJSON parses the repaired text and, on failure, reports the
// offending line/column together with the attempted content for diagnostics.
func validateJSON(content string) error {
	var v any
	err := json.Unmarshal([]byte(content), &v)
	if err == nil {
		return nil
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		line, col := offsetToLineCol(content, syn.Offset)
		return fmt.Errorf("parse repaired JSON at line %d, col %d: %v; content: %s",
			line, col, err, truncateForLog(content, 400))
	}
	return fmt.Errorf("parse repaired JSON: %w; content: %s", err, truncateForLog(content, 400))
}

func offsetToLineCol(s string, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(s)); i++ {
		if s[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func truncateForLog(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
