package hooks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// document is a settings file decoded into generic values so keys the
// installer does not own round-trip untouched.
type document map[string]any

// errNotObject reports a settings file whose top level is not a JSON object.
var errNotObject = fmt.Errorf("settings root is not an object")

// parseDocument decodes data as strict JSON, falling back to JSON5 for
// hand-edited files with comments or trailing commas. lenient reports
// that the fallback was needed, so writing the document back would drop
// the comments. Empty input is an empty document.
func parseDocument(data []byte) (doc document, lenient bool, err error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return document{}, false, nil
	}

	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	strictErr := dec.Decode(&v)
	if strictErr == nil {
		// Reject trailing garbage after the first value
		if _, err := dec.Token(); err != io.EOF {
			strictErr = fmt.Errorf("unexpected data after top-level value")
		}
	}
	if strictErr != nil {
		v, err = parseJSON5(data)
		if err != nil {
			return nil, false, fmt.Errorf("parsing settings: %w", strictErr)
		}
		lenient = true
	}

	switch obj := v.(type) {
	case map[string]any:
		return document(obj), lenient, nil
	case nil:
		return document{}, lenient, nil
	default:
		return nil, false, errNotObject
	}
}

// parseJSON5 decodes data as JSON5, keeping number literals exact.
func parseJSON5(data []byte) (any, error) {
	// The decoder stops after the first value; Unmarshal checks the rest.
	var whole any
	if err := json5.Unmarshal(data, &whole); err != nil {
		return nil, err
	}

	var v any
	dec := json5.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return toJSONNumbers(v)
}

// toJSONNumbers replaces json5.Number values in v with json.Number so
// they encode as the same number instead of a quoted string.
func toJSONNumbers(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			c, err := toJSONNumbers(e)
			if err != nil {
				return nil, err
			}
			t[k] = c
		}
		return t, nil
	case []any:
		for i, e := range t {
			c, err := toJSONNumbers(e)
			if err != nil {
				return nil, err
			}
			t[i] = c
		}
		return t, nil
	case json5.Number:
		return jsonNumber(string(t))
	case float64:
		// Infinity and NaN
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("number %v has no JSON form", t)
		}
		return t, nil
	default:
		return v, nil
	}
}

// jsonNumber converts a JSON5 number literal to JSON. Literals that are
// already valid JSON are kept byte for byte; hex, leading-dot and
// explicit-plus forms are rewritten in decimal.
func jsonNumber(s string) (json.Number, error) {
	if json.Valid([]byte(s)) {
		return json.Number(s), nil
	}
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return "", fmt.Errorf("number %q has no JSON form: %w", s, err)
		}
		return json.Number(strconv.FormatInt(n, 10)), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("number %q has no JSON form", s)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// encodeDocument renders doc with two-space indentation and a trailing
// newline. Keys come out sorted, so repeated writes are byte-identical.
func encodeDocument(doc document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(doc)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeDocument writes doc to path, creating the parent directory and
// keeping the permission bits of an existing file.
func writeDocument(path string, doc document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings dir: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// object returns v as a JSON object, or nil if it is anything else.
func object(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
