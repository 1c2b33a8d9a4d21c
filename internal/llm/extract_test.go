package llm

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractJSON_EmbeddedObject(t *testing.T) {
	parsed, err := ExtractJSON(`noise {"a":1} trailing`)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	want := map[string]any{"a": float64(1)}
	if !reflect.DeepEqual(parsed, want) {
		t.Errorf("Expected %v, got %v", want, parsed)
	}
}

func TestExtractJSON_EmbeddedArray(t *testing.T) {
	parsed, err := ExtractJSON("Here are your tasks:\n[\"ship\", \"iterate\"]\nGood luck!")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	want := []any{"ship", "iterate"}
	if !reflect.DeepEqual(parsed, want) {
		t.Errorf("Expected %v, got %v", want, parsed)
	}
}

func TestExtractJSON_BareObject(t *testing.T) {
	parsed, err := ExtractJSON(`{"scoring":85,"summary":"ok"}`)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok || obj["scoring"] != float64(85) {
		t.Errorf("Unexpected payload: %v", parsed)
	}
}

func TestExtractJSON_NoBracketsParsesWholeText(t *testing.T) {
	// No bracket present: the entire text is handed to the JSON parser
	parsed, err := ExtractJSON("42")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if parsed != float64(42) {
		t.Errorf("Expected 42, got %v", parsed)
	}
}

func TestExtractJSON_UnparsableFails(t *testing.T) {
	for _, text := range []string{
		"there is no json here",
		"",
		"almost {\"a\": json",
	} {
		if _, err := ExtractJSON(text); !errors.Is(err, ErrMalformedResponse) {
			t.Errorf("Expected ErrMalformedResponse for %q, got %v", text, err)
		}
	}
}

func TestExtractJSON_ObjectBeforeArray(t *testing.T) {
	// The earlier opening bracket wins
	parsed, err := ExtractJSON(`{"items":[1,2]}`)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		t.Fatalf("Expected object, got %T", parsed)
	}
	if _, ok := obj["items"]; !ok {
		t.Errorf("Expected items key, got %v", obj)
	}
}
