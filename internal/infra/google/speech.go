package google

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"voice-assistant/internal/domain"
)

// SpeechClient talks to the Google Speech API v2 used by the Chromium browser.
type SpeechClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	language   string
}

func NewSpeechClient(apiKey, language string, httpClient *http.Client) *SpeechClient {
	return NewSpeechClientWithURL(apiKey, language, httpClient, "https://www.google.com/speech-api/v2")
}

func NewSpeechClientWithURL(apiKey, language string, httpClient *http.Client, baseURL string) *SpeechClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &SpeechClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		language:   language,
	}
}

func (c *SpeechClient) Name() string {
	return "google"
}

type alternative struct {
	Transcript string   `json:"transcript"`
	Confidence *float64 `json:"confidence"`
}

type recognizeResponse struct {
	Result []struct {
		Alternative []alternative `json:"alternative"`
		Final       bool          `json:"final"`
	} `json:"result"`
}

// Recognize returns domain.Unavailable when the service cannot be reached or
// rejects the request, and domain.NoMatch when it heard no words.
func (c *SpeechClient) Recognize(ctx context.Context, w domain.Waveform) (domain.Recognition, error) {
	q := url.Values{}
	q.Set("client", "chromium")
	q.Set("lang", c.language)
	q.Set("key", c.apiKey)
	q.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recognize?"+q.Encode(), bytes.NewReader(w.PCM16LE()))
	if err != nil {
		return domain.Recognition{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", fmt.Sprintf("audio/l16; rate=%d", w.SampleRate))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Recognition{}, ctxErr
		}
		return domain.Unavailable(fmt.Sprintf("sending request: %v", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Unavailable(fmt.Sprintf("speech API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))), nil
	}

	alternatives, err := firstResult(resp.Body)
	if err != nil {
		return domain.Recognition{}, err
	}
	if len(alternatives) == 0 {
		return domain.NoMatch(), nil
	}

	best := bestAlternative(alternatives)
	if strings.TrimSpace(best.Transcript) == "" {
		return domain.NoMatch(), nil
	}
	return domain.Recognized(best.Transcript), nil
}

// firstResult scans the newline-delimited JSON stream for the first
// non-empty result.
func firstResult(r io.Reader) ([]alternative, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp recognizeResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		if len(resp.Result) > 0 {
			return resp.Result[0].Alternative, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return nil, nil
}

// bestAlternative prefers the highest confidence and falls back to the first
// alternative when none carries a confidence.
func bestAlternative(alts []alternative) alternative {
	best := alts[0]
	bestConf := -1.0
	for _, a := range alts {
		if a.Confidence != nil && *a.Confidence > bestConf {
			best = a
			bestConf = *a.Confidence
		}
	}
	return best
}
