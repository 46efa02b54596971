package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPromptTemplate = `You are a helpful chatbot for a project management system that handles Leads and Jobs for Repair, Tiling, and Excavation work.

CRITICAL RULE: ONLY answer questions about the project management system based on the provided context documents. If the question is not related to the system, respond with: "I can only help with questions about the project management system. Please ask about leads, jobs, equipment, or system processes."

BE A SMART CHATBOT:
- Give SHORT, intelligent answers (2-4 sentences max)
- Be conversational and friendly
- Infer information intelligently from context
- Answer what users actually want to know
- NEVER answer general knowledge questions

EQUIPMENT RULES (infer from context):
- Machines: Can be used in excavation and tiling jobs
- Vehicles: Only in excavation jobs
- Trailers: Only in excavation jobs
- No equipment in repair jobs or any leads

RESPONSE STYLE:
- Keep answers brief and direct
- Use "You can..." or "To do this..."
- Give quick steps if needed: 1. Do X 2. Do Y
- Don't explain obvious things
- Focus on what matters most

CONTEXT DOCUMENTS:
%s

Be smart, brief, and helpful like a real chatbot conversation ONLY about the project management system.`

const splitPromptTemplate = `You are an expert at analyzing and decomposing user queries. Your task is to split compound questions into separate, standalone questions.

CRITICAL GUIDELINES:
- Split compound questions based on conjunctions (and, also, plus, additionally, furthermore, moreover)
- Each split question must be completely self-contained and include necessary context
- If the original question mentions a specific subject (like "tiling lead"), include that context in EVERY split question
- Ensure each split question can be answered independently
- If there's only one main topic, return it as a single question

Input: %s

Return ONLY the questions as a comma-separated list with no extra text:`

// Client wraps the hosted model API for chat completion, question splitting
// and embeddings.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel string
	temperature    float32
	batchSize      int
}

// Config configures the hosted model client. The API key is read from the
// environment variable named by APIKeyEnv.
type Config struct {
	APIKeyEnv      string
	ChatModel      string
	EmbeddingModel string
	Temperature    float32
	Timeout        time.Duration
	BatchSize      int
}

// NewClient creates a hosted model client. A missing API key is a fatal
// configuration error surfaced before any work begins.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key: set the %s environment variable", cfg.APIKeyEnv)
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = openai.GPT4o
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = string(openai.SmallEmbedding3)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	apiCfg := openai.DefaultConfig(key)
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &Client{
		api:            openai.NewClientWithConfig(apiCfg),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
		batchSize:      cfg.BatchSize,
	}, nil
}

// Embed returns one embedding vector per input text, preserving order.
// Inputs are sent in batches to stay under request size limits.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(c.embeddingModel),
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("embeddings response size mismatch: want %d, got %d", end-start, len(resp.Data))
		}
		for _, d := range resp.Data {
			vec := make([]float32, len(d.Embedding))
			copy(vec, d.Embedding)
			out = append(out, vec)
		}
	}
	return out, nil
}

// Synthesize answers a question grounded in the retrieved context chunks.
// Every call starts from a clean context; no chat history is carried over.
func (c *Client) Synthesize(ctx context.Context, question string, contexts []string) (string, error) {
	system := fmt.Sprintf(systemPromptTemplate, strings.Join(contexts, "\n\n"))
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// SplitQuestion asks the model to break a compound question into standalone
// sub-questions, returned as the model's comma-separated list.
func (c *Client) SplitQuestion(ctx context.Context, question string) ([]string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(splitPromptTemplate, question)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("split question: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("split question returned no choices")
	}
	return parseCommaList(resp.Choices[0].Message.Content), nil
}

func parseCommaList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
