package utils

import (
	"context"
	"errors"
	"io"
	"testing"
)

type fakeCompleter struct {
	outcome Outcome
	calls   int
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) Outcome {
	f.calls++
	return f.outcome
}

type sliceStream struct {
	chunks []string
	pos    int
	errAt  int // inject an error before this chunk index; -1 disables
}

func (s *sliceStream) Next() (string, error) {
	if s.errAt >= 0 && s.pos == s.errAt {
		return "", errors.New("stream broke")
	}
	if s.pos >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.pos]
	s.pos++
	return c, nil
}

type fakeStreamer struct {
	chunks []string
	errAt  int
	calls  int
}

func (f *fakeStreamer) Stream(ctx context.Context, prompt string) (TextStream, error) {
	f.calls++
	return &sliceStream{chunks: f.chunks, errAt: f.errAt}, nil
}

func TestGenerateInsightsPrimarySuccess(t *testing.T) {
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeText, Text: " insights here "}}
	fallback := &fakeStreamer{chunks: []string{"never"}, errAt: -1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	got, err := g.GenerateInsights(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "insights here" {
		t.Errorf("got %q, want trimmed primary text", got)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback invoked %d times on primary success", fallback.calls)
	}
}

func TestGenerateInsightsFallbackOnRateLimit(t *testing.T) {
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeRateLimited, Err: errors.New("429")}}
	fallback := &fakeStreamer{chunks: []string{"The ", "data ", "shows ", "growth."}, errAt: -1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	got, err := g.GenerateInsights(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "The data shows growth." {
		t.Errorf("got %q, want chunks concatenated in arrival order", got)
	}
	if fallback.calls != 1 {
		t.Errorf("fallback invoked %d times, want 1", fallback.calls)
	}
}

func TestGenerateInsightsNoFallbackOnOtherFailure(t *testing.T) {
	boom := errors.New("provider exploded")
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeFailed, Err: boom}}
	fallback := &fakeStreamer{chunks: []string{"never"}, errAt: -1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	_, err := g.GenerateInsights(context.Background(), "p")
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want the primary error", err)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback invoked %d times on a non-rate-limit failure", fallback.calls)
	}
}

func TestGenerateInsightsBrokenStreamIsNotPartial(t *testing.T) {
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeRateLimited, Err: errors.New("429")}}
	fallback := &fakeStreamer{chunks: []string{"partial ", "text"}, errAt: 1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	got, err := g.GenerateInsights(context.Background(), "p")
	if err == nil {
		t.Fatalf("got %q with nil error, want failure instead of truncated text", got)
	}
}

func TestGenerateInsightsEmptyText(t *testing.T) {
	cases := map[string]*Gateway{
		"empty primary": {
			Primary: &fakeCompleter{outcome: Outcome{Kind: OutcomeText, Text: "   \n"}},
		},
		"empty fallback stream": {
			Primary:  &fakeCompleter{outcome: Outcome{Kind: OutcomeRateLimited, Err: errors.New("429")}},
			Fallback: &fakeStreamer{chunks: []string{" ", "\t"}, errAt: -1},
		},
	}
	for name, g := range cases {
		if _, err := g.GenerateInsights(context.Background(), "p"); !errors.Is(err, ErrEmptyGeneration) {
			t.Errorf("%s: got %v, want ErrEmptyGeneration", name, err)
		}
	}
}

func TestChatSingleProvider(t *testing.T) {
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeText, Text: "  a reply  "}}
	fallback := &fakeStreamer{chunks: []string{"never"}, errAt: -1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	got, err := g.Chat(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a reply" {
		t.Errorf("got %q, want trimmed reply", got)
	}
	if fallback.calls != 0 {
		t.Error("chat path must never consult the fallback")
	}
}

func TestChatRateLimitHasNoFallback(t *testing.T) {
	limited := errors.New("429")
	primary := &fakeCompleter{outcome: Outcome{Kind: OutcomeRateLimited, Err: limited}}
	fallback := &fakeStreamer{chunks: []string{"never"}, errAt: -1}
	g := &Gateway{Primary: primary, Fallback: fallback}

	if _, err := g.Chat(context.Background(), "p"); !errors.Is(err, limited) {
		t.Fatalf("got %v, want the rate-limit error surfaced", err)
	}
	if fallback.calls != 0 {
		t.Error("chat path must never consult the fallback")
	}
}

func TestChatEmptyReply(t *testing.T) {
	g := &Gateway{Primary: &fakeCompleter{outcome: Outcome{Kind: OutcomeText, Text: ""}}}
	if _, err := g.Chat(context.Background(), "p"); !errors.Is(err, ErrEmptyGeneration) {
		t.Fatalf("got %v, want ErrEmptyGeneration", err)
	}
}
