package hooks

import (
	"encoding/json"
	"testing"
)

func TestJSONNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    json.Number
		wantErr bool
	}{
		{in: "12345678901234567891", want: "12345678901234567891"},
		{in: "1.10", want: "1.10"},
		{in: "-3e5", want: "-3e5"},
		{in: "0x1F", want: "31"},
		{in: "-0x10", want: "-16"},
		{in: "+7", want: "7"},
		{in: ".5", want: "0.5"},
		{in: "5.", want: "5"},
		{in: "0xFFFFFFFFFFFFFFFFFF", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := jsonNumber(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("jsonNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("jsonNumber(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDocumentReportsLenient(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantLenient bool
	}{
		{name: "strict", in: `{"a": 1}`},
		{name: "empty", in: "  \n"},
		{name: "comment", in: "// note\n{\"a\": 1}", wantLenient: true},
		{name: "trailing comma", in: `{"a": [1, 2,],}`, wantLenient: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, lenient, err := parseDocument([]byte(tt.in))
			if err != nil {
				t.Fatalf("parseDocument() error = %v", err)
			}
			if lenient != tt.wantLenient {
				t.Errorf("lenient = %v, want %v", lenient, tt.wantLenient)
			}
		})
	}
}

func TestParseDocumentJSON5UsesJSONNumbers(t *testing.T) {
	doc, _, err := parseDocument([]byte(`{"n": 9007199254740993, "list": [0x2,],}`))
	if err != nil {
		t.Fatalf("parseDocument() error = %v", err)
	}
	if n, ok := doc["n"].(json.Number); !ok || n != "9007199254740993" {
		t.Errorf("n = %#v, want json.Number", doc["n"])
	}
	list := doc["list"].([]any)
	if n, ok := list[0].(json.Number); !ok || n != "2" {
		t.Errorf("list[0] = %#v, want json.Number 2", list[0])
	}
}
