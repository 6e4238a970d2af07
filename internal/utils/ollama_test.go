package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Stream || req.Model != "test-model" || !strings.Contains(req.Prompt, "Movie Title") {
			t.Errorf("unexpected request %+v", req)
		}
		json.NewEncoder(w).Encode(GenerateResponse{Model: req.Model, Response: "Drama, Comedy", Done: true})
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL+"/", "test-model")
	got, err := c.Generate(context.Background(), "Movie Title: x")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Drama, Comedy" {
		t.Fatalf("got %q", got)
	}
}

func TestOllamaGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(GenerateResponse{Error: "model not found"})
	}))
	defer srv.Close()

	_, err := NewOllamaClient(srv.URL, "missing").Generate(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("err = %v, want model not found", err)
	}
}
