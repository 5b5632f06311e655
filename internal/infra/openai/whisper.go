package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"voice-assistant/internal/domain"
	"voice-assistant/internal/infra/audio"
)

type WhisperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
	language   string
}

func NewWhisperClient(apiKey, model, language string, httpClient *http.Client) *WhisperClient {
	return NewWhisperClientWithURL(apiKey, model, language, httpClient, "https://api.openai.com/v1")
}

func NewWhisperClientWithURL(apiKey, model, language string, httpClient *http.Client, baseURL string) *WhisperClient {
	if model == "" {
		model = "whisper-1"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &WhisperClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
		model:      model,
		language:   language,
	}
}

func (c *WhisperClient) Name() string {
	return "openai"
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

func (c *WhisperClient) Recognize(ctx context.Context, w domain.Waveform) (domain.Recognition, error) {
	wav, err := audio.EncodeWAV(w)
	if err != nil {
		return domain.Recognition{}, fmt.Errorf("encoding audio: %w", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return domain.Recognition{}, fmt.Errorf("creating form file: %w", err)
	}

	if _, err = part.Write(wav); err != nil {
		return domain.Recognition{}, fmt.Errorf("writing audio: %w", err)
	}

	if err = writer.WriteField("model", c.model); err != nil {
		return domain.Recognition{}, fmt.Errorf("writing model field: %w", err)
	}

	if err = writer.WriteField("language", c.language); err != nil {
		return domain.Recognition{}, fmt.Errorf("writing language field: %w", err)
	}

	if err = writer.Close(); err != nil {
		return domain.Recognition{}, fmt.Errorf("closing writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return domain.Recognition{}, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Recognition{}, ctxErr
		}
		return domain.Unavailable(fmt.Sprintf("sending request: %v", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.Unavailable(fmt.Sprintf("whisper API error %d: %s", resp.StatusCode, string(respBody))), nil
	}

	var result transcriptionResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.Recognition{}, fmt.Errorf("decoding response: %w", err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return domain.NoMatch(), nil
	}
	return domain.Recognized(result.Text), nil
}
