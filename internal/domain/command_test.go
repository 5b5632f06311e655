package domain_test

import (
	"context"
	"net/url"
	"testing"

	"voice-assistant/internal/domain"
)

func noop(_ context.Context, _ []string) (domain.Outcome, error) {
	return domain.OutcomeContinue, nil
}

func testTable(mode domain.MatchMode) *domain.CommandTable {
	return domain.NewCommandTable(mode,
		domain.Command{Name: "greeting", Keywords: []string{"здравствуй", "привет"}, Handler: noop},
		domain.Command{Name: "search", Keywords: []string{"найди", "найти", "поиск"}, Handler: noop},
		domain.Command{Name: "video", Keywords: []string{"смотреть", "видео"}, Handler: noop},
	)
}

func TestCommandTable_Match(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.MatchMode
		token    string
		wantName string
		wantOK   bool
	}{
		{name: "exact member", mode: domain.MatchExact, token: "привет", wantName: "greeting", wantOK: true},
		{name: "exact rejects fragment", mode: domain.MatchExact, token: "вет", wantOK: false},
		{name: "substring accepts fragment", mode: domain.MatchSubstring, token: "вет", wantName: "greeting", wantOK: true},
		{name: "first match wins", mode: domain.MatchSubstring, token: "на", wantName: "search", wantOK: true},
		{name: "unknown token", mode: domain.MatchExact, token: "xyz", wantOK: false},
		{name: "empty token exact", mode: domain.MatchExact, token: "", wantOK: false},
		{name: "empty token substring", mode: domain.MatchSubstring, token: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := testTable(tt.mode).Match(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok: got %v, want %v", tt.token, ok, tt.wantOK)
			}
			if ok && cmd.Name != tt.wantName {
				t.Errorf("Match(%q): got %s, want %s", tt.token, cmd.Name, tt.wantName)
			}
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	if m, err := domain.ParseMatchMode(""); err != nil || m != domain.MatchExact {
		t.Errorf("empty mode: got %q, %v", m, err)
	}
	if m, err := domain.ParseMatchMode("Substring"); err != nil || m != domain.MatchSubstring {
		t.Errorf("substring mode: got %q, %v", m, err)
	}
	if _, err := domain.ParseMatchMode("fuzzy"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestUtterance_Invocation(t *testing.T) {
	inv := domain.NewUtterance("  Найди Котики  В Коробке ").Invocation()
	if inv.Command != "найди" {
		t.Errorf("command: got %q, want найди", inv.Command)
	}
	if len(inv.Args) != 3 || inv.Args[0] != "котики" || inv.Args[2] != "коробке" {
		t.Errorf("args: got %v", inv.Args)
	}

	empty := domain.NewUtterance("").Invocation()
	if empty.Command != "" || len(empty.Args) != 0 {
		t.Errorf("empty utterance: got %+v", empty)
	}
}

func TestSearchProvider_URL(t *testing.T) {
	raw := domain.GoogleSearch().URL("котики и собаки")
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing url: %v", err)
	}
	if u.Host != "www.google.com" || u.Query().Get("q") != "котики и собаки" {
		t.Errorf("google url: got %s", raw)
	}

	raw = domain.YouTubeSearch().URL("котики")
	u, _ = url.Parse(raw)
	if u.Query().Get("search_query") != "котики" {
		t.Errorf("youtube url: got %s", raw)
	}

	raw = domain.WikipediaSearch("ru-RU").URL("чёрная дыра")
	u, _ = url.Parse(raw)
	if u.Host != "ru.wikipedia.org" || u.Path != "/wiki/чёрная дыра" {
		t.Errorf("wikipedia url: got %s (host %s, path %s)", raw, u.Host, u.Path)
	}
}

func TestWaveform(t *testing.T) {
	w := domain.Waveform{Samples: []int16{0, 1, -1, 32767}, SampleRate: 2}
	if w.Duration().Seconds() != 2 {
		t.Errorf("duration: got %v", w.Duration())
	}
	pcm := w.PCM16LE()
	if len(pcm) != 8 || pcm[2] != 0x01 || pcm[4] != 0xff || pcm[5] != 0xff {
		t.Errorf("pcm bytes: got %v", pcm)
	}
	f := w.Float32()
	if f[0] != 0 || f[3] <= 0.99 {
		t.Errorf("float samples: got %v", f)
	}
}
