package utils

import (
    "context"
    "errors"
    "io"
    "log"
    "net/http"
    "strings"

    "github.com/google/generative-ai-go/genai"
    openai "github.com/sashabaranov/go-openai"
    "google.golang.org/api/iterator"
    "google.golang.org/api/option"
)

// Provider outcomes form a closed set so the gateway never inspects
// transport-specific status codes.
type OutcomeKind int

const (
    OutcomeText OutcomeKind = iota
    OutcomeRateLimited
    OutcomeFailed
)

type Outcome struct {
    Kind OutcomeKind
    Text string
    Err  error
}

// Completer is a chat-completion style provider returning the whole answer.
type Completer interface {
    Complete(ctx context.Context, prompt string) Outcome
}

// TextStream yields generated text chunks in arrival order; io.EOF ends it.
// A stream is consumed exactly once and is not restartable.
type TextStream interface {
    Next() (string, error)
}

// TextStreamer is a provider exposing a streaming generation interface.
type TextStreamer interface {
    Stream(ctx context.Context, prompt string) (TextStream, error)
}

// Gateway routes generation requests. The one-shot insight path falls back to
// the streaming provider only when the primary signals a rate limit; the chat
// path consults the primary alone. Caching and activity recording happen at
// the callers, never here.
type Gateway struct {
    Primary  Completer
    Fallback TextStreamer
}

// GenerateInsights returns either the full primary answer or the fully
// concatenated fallback stream, never a mix of the two.
func (g *Gateway) GenerateInsights(ctx context.Context, prompt string) (string, error) {
    out := g.Primary.Complete(ctx, prompt)
    switch out.Kind {
    case OutcomeText:
        text := strings.TrimSpace(out.Text)
        if text == "" {
            return "", ErrEmptyGeneration
        }
        return text, nil
    case OutcomeRateLimited:
        if g.Fallback == nil {
            return "", out.Err
        }
        log.Printf("primary provider rate limited, using fallback: %v", out.Err)
        return g.streamFallback(ctx, prompt)
    default:
        return "", out.Err
    }
}

// Chat consults the primary provider only; no fallback on the interactive path.
func (g *Gateway) Chat(ctx context.Context, prompt string) (string, error) {
    out := g.Primary.Complete(ctx, prompt)
    if out.Kind != OutcomeText {
        return "", out.Err
    }
    text := strings.TrimSpace(out.Text)
    if text == "" {
        return "", ErrEmptyGeneration
    }
    return text, nil
}

func (g *Gateway) streamFallback(ctx context.Context, prompt string) (string, error) {
    stream, err := g.Fallback.Stream(ctx, prompt)
    if err != nil {
        return "", err
    }
    var b strings.Builder
    for {
        chunk, err := stream.Next()
        if err == io.EOF {
            break
        }
        if err != nil {
            // a broken stream must not surface a truncated answer
            return "", err
        }
        b.WriteString(chunk)
    }
    text := strings.TrimSpace(b.String())
    if text == "" {
        return "", ErrEmptyGeneration
    }
    return text, nil
}

// -------------------- prompts --------------------

func BuildInsightPrompt(summary string) string {
    return "You are a data analyst. Analyze the following spreadsheet data and provide " +
        "key insights, notable trends, and anomalies. Format the answer as Markdown with " +
        "short sections.\n\n" + summary
}

func BuildChatPrompt(summary, question string) string {
    return "You are a data analyst answering a question about a spreadsheet the user uploaded. " +
        "Answer only from the data summary below; if the summary is insufficient, say so.\n\n" +
        summary + "\n\nQuestion: " + question
}

// -------------------- OpenAI (primary) --------------------

type OpenAIProvider struct {
    client *openai.Client
    model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
    return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) Outcome {
    resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
        Model: p.model,
        Messages: []openai.ChatCompletionMessage{
            {Role: openai.ChatMessageRoleUser, Content: prompt},
        },
        Temperature: 0.7,
    })
    if err != nil {
        var apiErr *openai.APIError
        if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
            return Outcome{Kind: OutcomeRateLimited, Err: err}
        }
        return Outcome{Kind: OutcomeFailed, Err: err}
    }
    if len(resp.Choices) == 0 {
        return Outcome{Kind: OutcomeText, Text: ""}
    }
    return Outcome{Kind: OutcomeText, Text: resp.Choices[0].Message.Content}
}

// -------------------- Gemini (streaming fallback) --------------------

type GeminiProvider struct {
    client *genai.Client
    model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
    client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
    if err != nil {
        return nil, err
    }
    return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Stream(ctx context.Context, prompt string) (TextStream, error) {
    m := p.client.GenerativeModel(p.model)
    return &geminiStream{it: m.GenerateContentStream(ctx, genai.Text(prompt))}, nil
}

func (p *GeminiProvider) Close() {
    if p.client != nil {
        _ = p.client.Close()
    }
}

type geminiStream struct {
    it *genai.GenerateContentResponseIterator
}

func (s *geminiStream) Next() (string, error) {
    resp, err := s.it.Next()
    if err == iterator.Done {
        return "", io.EOF
    }
    if err != nil {
        return "", err
    }
    return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
    if resp == nil {
        return ""
    }
    var b strings.Builder
    for _, c := range resp.Candidates {
        if c == nil || c.Content == nil {
            continue
        }
        for _, p := range c.Content.Parts {
            if t, ok := p.(genai.Text); ok {
                b.WriteString(string(t))
            }
        }
    }
    return b.String()
}
