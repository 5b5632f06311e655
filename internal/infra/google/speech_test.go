package google_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/google"
)

var testClip = domain.Waveform{Samples: []int16{1, -1, 2, -2}, SampleRate: 16000}

func TestSpeechClient_Recognized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recognize" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if got := r.URL.Query().Get("lang"); got != "ru" {
			t.Errorf("lang: got %q, want ru", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/l16; rate=16000" {
			t.Errorf("content type: got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if len(body) != 8 {
			t.Errorf("body: got %d bytes, want 8", len(body))
		}

		io.WriteString(w, "{\"result\":[]}\n")
		io.WriteString(w, `{"result":[{"alternative":[{"transcript":"Найди Котики","confidence":0.61},{"transcript":"найти котиков","confidence":0.92}],"final":true}],"result_index":0}`+"\n")
	}))
	defer server.Close()

	client := google.NewSpeechClientWithURL("test-key", "ru", server.Client(), server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Status != domain.RecognitionOK || rec.Text != "найти котиков" {
		t.Errorf("recognition: got %+v", rec)
	}
}

func TestSpeechClient_FirstAlternativeWithoutConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"result":[{"alternative":[{"transcript":"привет"},{"transcript":"привед"}]}]}`)
	}))
	defer server.Close()

	client := google.NewSpeechClientWithURL("test-key", "ru", nil, server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Text != "привет" {
		t.Errorf("text: got %q, want привет", rec.Text)
	}
}

func TestSpeechClient_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{\"result\":[]}\n")
	}))
	defer server.Close()

	client := google.NewSpeechClientWithURL("test-key", "ru", nil, server.URL)

	rec, err := client.Recognize(context.Background(), testClip)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if rec.Status != domain.RecognitionNoMatch {
		t.Errorf("status: got %s, want no_match", rec.Status)
	}
}

func TestSpeechClient_Unavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusForbidden)
		}))
		defer server.Close()

		client := google.NewSpeechClientWithURL("test-key", "ru", nil, server.URL)
		rec, err := client.Recognize(context.Background(), testClip)
		if err != nil {
			t.Fatalf("Recognize: %v", err)
		}
		if rec.Status != domain.RecognitionUnavailable {
			t.Errorf("status: got %s, want unavailable", rec.Status)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := google.NewSpeechClientWithURL("test-key", "ru", nil, url)
		rec, err := client.Recognize(context.Background(), testClip)
		if err != nil {
			t.Fatalf("Recognize: %v", err)
		}
		if rec.Status != domain.RecognitionUnavailable || rec.Reason == "" {
			t.Errorf("recognition: got %+v", rec)
		}
	})
}

func TestSpeechClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>")
	}))
	defer server.Close()

	client := google.NewSpeechClientWithURL("test-key", "ru", nil, server.URL)
	if _, err := client.Recognize(context.Background(), testClip); err == nil {
		t.Fatal("expected error for malformed response")
	}
}
