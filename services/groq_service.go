package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const GroqModel = "llama-3.3-70b-versatile"

const groqDefaultBaseURL = "https://api.groq.com/openai/v1"

const systemPrompt = `Kamu adalah Glucare, asisten AI khusus yang ahli dalam bidang diabetes mellitus.

Kamu memiliki pengetahuan mendalam tentang:
- Diabetes Tipe 1, Tipe 2, dan Gestasional
- Gejala, diagnosis, dan komplikasi diabetes
- Pengelolaan gula darah dan pengobatan
- Diet dan nutrisi untuk penderita diabetes
- Olahraga dan gaya hidup sehat
- Pencegahan dan edukasi diabetes
- Obat-obatan diabetes (Metformin, Insulin, dll)
- Pemeriksaan gula darah (GDP, GDS, HbA1c)

Panduan menjawab:
1. Berikan jawaban yang akurat, informatif, dan mudah dipahami
2. Gunakan bahasa Indonesia yang baik
3. Sertakan emoji yang relevan untuk membuat jawaban lebih menarik
4. Struktur jawaban dengan bullet points atau numbering jika perlu
5. Selalu ingatkan pengguna untuk berkonsultasi dengan dokter untuk diagnosis dan pengobatan
6. Jika pertanyaan tidak terkait diabetes, tolak dengan sopan dan jelaskan bahwa kamu hanya membahas diabetes

PENTING: Kamu HANYA menjawab pertanyaan seputar diabetes. Jika user bertanya di luar topik diabetes, tolak dengan sopan.`

// ErrGroqNotConfigured marks the collaborator-unavailable condition.
var ErrGroqNotConfigured = errors.New("groq api not configured")

// GroqService wraps the hosted LLM behind a (context, user message) → text
// call. The provider speaks the OpenAI chat-completions shape.
type GroqService struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewGroqService() *GroqService {
	base := os.Getenv("GROQ_BASE_URL")
	if base == "" {
		base = groqDefaultBaseURL
	}
	return &GroqService{
		client:  &http.Client{Timeout: 60 * time.Second},
		apiKey:  os.Getenv("GROQ_API_KEY"),
		baseURL: strings.TrimRight(base, "/"),
	}
}

func (s *GroqService) Configured() bool {
	return s.apiKey != ""
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat sends the system prompt, an optional web-search context block, and
// the user message, returning the assistant's reply.
func (s *GroqService) Chat(message, searchContext string) (string, error) {
	if !s.Configured() {
		return "", ErrGroqNotConfigured
	}

	messages := []groqMessage{{Role: "system", Content: systemPrompt}}
	if searchContext != "" {
		messages = append(messages, groqMessage{
			Role:    "system",
			Content: "Berikut adalah informasi terbaru dari web search yang bisa kamu gunakan untuk menjawab:\n\n" + searchContext,
		})
	}
	messages = append(messages, groqMessage{Role: "user", Content: message})

	body := map[string]any{
		"model":       GroqModel,
		"messages":    messages,
		"max_tokens":  1000,
		"temperature": 0.7,
	}
	b, _ := json.Marshal(body)

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build groq request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read groq response error: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("groq api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("groq api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		return "", fmt.Errorf("decode groq response error: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion from groq")
	}
	return out.Choices[0].Message.Content, nil
}
