package plan

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"examprep/internal/config"
)

// Request describes what the user wants a plan for.
type Request struct {
	ExamLevel   string     `json:"exam_level" binding:"required"`
	TargetDate  *time.Time `json:"target_date"`
	WeeklyHours int        `json:"weekly_hours"`
	FocusAreas  []string   `json:"focus_areas"`
}

// Generator calls an OpenAI-compatible completion endpoint to produce a
// study plan document. Failures surface as errors; there is no retry.
type Generator struct {
	cfg    config.PlannerConfig
	client *http.Client
}

func NewGenerator(cfg config.PlannerConfig) *Generator {
	return &Generator{
		cfg:    cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// BuildPrompt renders the user prompt sent to the model. Deterministic for
// a given request so regenerated plans are comparable.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a weekly English exam study plan for the %s level.", req.ExamLevel)
	if req.TargetDate != nil {
		fmt.Fprintf(&b, " The exam date is %s.", req.TargetDate.Format("2006-01-02"))
	}
	if req.WeeklyHours > 0 {
		fmt.Fprintf(&b, " The student can study %d hours per week.", req.WeeklyHours)
	}
	if len(req.FocusAreas) > 0 {
		fmt.Fprintf(&b, " Focus areas: %s.", strings.Join(req.FocusAreas, ", "))
	}
	b.WriteString(" Respond with JSON: {\"weeks\": [{\"week\": n, \"focus\": string, \"tasks\": [string]}]}.")
	return b.String()
}

const systemInstruction = "You are a study coach for English exam preparation. Reply with the requested JSON only."

func (g *Generator) payload(req Request, stream bool) map[string]interface{} {
	p := map[string]interface{}{
		"model":  g.cfg.Model,
		"stream": stream,
		"messages": []map[string]string{
			{"role": "system", "content": systemInstruction},
			{"role": "user", "content": BuildPrompt(req)},
		},
	}
	if g.cfg.ContextSize > 0 {
		p["max_tokens"] = g.cfg.ContextSize
	}
	return p
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Generate produces the plan document. Model replies that are not valid
// JSON are wrapped so the document column always holds JSON.
func (g *Generator) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	body, err := json.Marshal(g.payload(req, false))
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("planner request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planner returned status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("planner response malformed: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("planner returned no choices")
	}
	return NormalizeDocument(parsed.Choices[0].Message.Content), nil
}

// GenerateStream produces the plan while calling onChunk for each content
// delta. The assembled document is returned once the stream ends.
func (g *Generator) GenerateStream(ctx context.Context, req Request, onChunk func(string)) (json.RawMessage, error) {
	body, err := json.Marshal(g.payload(req, true))
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 0}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("planner request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planner returned status %d", resp.StatusCode)
	}

	reader := bufio.NewReader(resp.Body)
	var builder strings.Builder
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" || data == "[DONE]" {
			continue
		}
		var chunk completionResponse
		if json.Unmarshal([]byte(data), &chunk) != nil || len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		builder.WriteString(delta)
		if onChunk != nil {
			onChunk(delta)
		}
	}
	if builder.Len() == 0 {
		return nil, fmt.Errorf("planner stream produced no content")
	}
	return NormalizeDocument(builder.String()), nil
}

// NormalizeDocument guarantees valid JSON: a non-JSON model reply is
// wrapped as {"plan_text": ...}.
func NormalizeDocument(content string) json.RawMessage {
	content = strings.TrimSpace(content)
	if json.Valid([]byte(content)) && content != "" {
		return json.RawMessage(content)
	}
	wrapped, _ := json.Marshal(map[string]string{"plan_text": content})
	return json.RawMessage(wrapped)
}
