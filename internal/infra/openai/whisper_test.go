package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/openai"
)

var testClip = domain.Waveform{Samples: []int16{100, -100, 200, -200}, SampleRate: 16000}

func TestWhisperClient_Recognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.FormValue("language") != "ru" || r.FormValue("model") != "whisper-1" {
			t.Errorf("form: language=%q model=%q", r.FormValue("language"), r.FormValue("model"))
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		if len(data) < 4 || string(data[:4]) != "RIFF" {
			t.Errorf("uploaded file is not a wav: %q", data)
		}

		json.NewEncoder(w).Encode(map[string]string{"text": "Спасибо"})
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("test-key", "", "ru", nil, server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Status != domain.RecognitionOK || rec.Text != "Спасибо" {
		t.Errorf("recognition: got %+v", rec)
	}
}

func TestWhisperClient_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"text": "  "})
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("test-key", "", "ru", nil, server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Status != domain.RecognitionNoMatch {
		t.Errorf("status: got %s, want no_match", rec.Status)
	}
}

func TestWhisperClient_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := openai.NewWhisperClientWithURL("test-key", "", "ru", nil, server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Status != domain.RecognitionUnavailable {
		t.Errorf("status: got %s, want unavailable", rec.Status)
	}
}
