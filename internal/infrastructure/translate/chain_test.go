package translate

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	result string
	err    error
	calls  int
}

func (s *stubProvider) Translate(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.result, s.err
}

func TestChainUsesPrimaryWhenHealthy(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{result: "перевод"}
	secondary := &stubProvider{result: "unused"}
	chain := NewChain(nil, primary, secondary)

	got, err := chain.Translate(context.Background(), "translation", "ru")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "перевод" {
		t.Fatalf("unexpected translation: %q", got)
	}
	if secondary.calls != 0 {
		t.Fatal("secondary provider must not be called when primary succeeds")
	}
}

func TestChainFallsBackToSecondary(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{err: errors.New("rate limited")}
	secondary := &stubProvider{result: "запасной"}
	chain := NewChain(nil, primary, secondary)

	got, err := chain.Translate(context.Background(), "fallback", "ru")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "запасной" {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestChainReturnsOriginalWhenAllProvidersFail(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{err: errors.New("down")}
	secondary := &stubProvider{err: errors.New("also down")}
	chain := NewChain(nil, primary, secondary)

	got, err := chain.Translate(context.Background(), "untranslated original", "ru")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "untranslated original" {
		t.Fatalf("expected pass-through, got %q", got)
	}
}

func TestChainShortCircuitsEmptyInput(t *testing.T) {
	t.Parallel()

	primary := &stubProvider{result: "should not run"}
	chain := NewChain(nil, primary)

	got, err := chain.Translate(context.Background(), "   ", "ru")
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if primary.calls != 0 {
		t.Fatal("no provider call expected for empty input")
	}
}
