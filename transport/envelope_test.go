package transport

import (
	"reflect"
	"testing"
)

func TestIsSuccessful(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{199, false},
		{200, true},
		{201, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}
	for _, tt := range tests {
		if got := IsSuccessful(&Response{StatusCode: tt.status}); got != tt.want {
			t.Errorf("IsSuccessful(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
	if IsSuccessful(nil) {
		t.Error("IsSuccessful(nil) should be false")
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	payload, err := Decode(&Response{StatusCode: 204})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload != nil {
		t.Errorf("expected nil payload for empty body, got %v", payload)
	}
}

func TestDecode_GarbageBody(t *testing.T) {
	_, err := Decode(&Response{StatusCode: 200, Body: []byte(`{oops`)})
	if err == nil {
		t.Error("expected error for unparsable body")
	}
}

func TestUnwrapEntity_PriorityOrder(t *testing.T) {
	payload := map[string]any{
		"data":   map[string]any{"id": "from_data"},
		"tenant": map[string]any{"id": "from_tenant"},
	}

	got := UnwrapEntity(payload, "data", "tenant")
	if got["id"] != "from_data" {
		t.Errorf("expected first priority key to win, got %v", got)
	}

	got = UnwrapEntity(payload, "tenant", "data")
	if got["id"] != "from_tenant" {
		t.Errorf("expected priority order respected, got %v", got)
	}
}

func TestUnwrapEntity_FallsBackToPayload(t *testing.T) {
	payload := map[string]any{"id": "bare", "name": "Acme"}
	got := UnwrapEntity(payload, "data", "tenant")
	if got["id"] != "bare" {
		t.Errorf("expected bare payload returned, got %v", got)
	}
}

func TestUnwrapEntity_NonObjectPayload(t *testing.T) {
	if got := UnwrapEntity([]any{"not", "an", "object"}, "data"); got != nil {
		t.Errorf("expected nil for non-object payload, got %v", got)
	}
}

func TestUnwrapList(t *testing.T) {
	bare := []any{map[string]any{"id": "a"}, map[string]any{"id": "b"}}

	got := UnwrapList(bare)
	if len(got) != 2 {
		t.Fatalf("expected 2 items from bare array, got %d", len(got))
	}

	wrapped := map[string]any{"items": bare}
	got = UnwrapList(wrapped, "items", "data")
	if len(got) != 2 || got[0]["id"] != "a" {
		t.Errorf("expected wrapped list unwrapped, got %v", got)
	}

	if got := UnwrapList(map[string]any{"other": bare}, "items"); got != nil {
		t.Errorf("expected nil when no priority key matches, got %v", got)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		resp *Response
		want string
	}{
		{"message key", &Response{StatusCode: 400, Body: []byte(`{"message":"bad input"}`)}, "bad input"},
		{"error key", &Response{StatusCode: 400, Body: []byte(`{"error":"nope"}`)}, "nope"},
		{"detail key", &Response{StatusCode: 400, Body: []byte(`{"detail":"missing field"}`)}, "missing field"},
		{"status text fallback", &Response{StatusCode: 503, Body: []byte(`{}`)}, "Service Unavailable"},
		{"garbage body fallback", &Response{StatusCode: 500, Body: []byte(`<html>`)}, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.resp); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestToEntityList_SkipsNonObjects(t *testing.T) {
	got := toEntityList([]any{map[string]any{"id": "a"}, "stray", 42})
	want := []map[string]any{{"id": "a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected non-objects skipped, got %v", got)
	}
}
