package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("expected {\"b\":2}, got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error from empty queue")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`)},
	)

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.Calls[0].System)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestMockProvider_ModelID(t *testing.T) {
	mock := NewMockProvider()
	if mock.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "question-set")
	if p := PurposeFrom(ctx); p != "question-set" {
		t.Fatalf("expected 'question-set', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "gemini without key",
			cfg:     withProvider("gemini", nil),
			wantErr: true,
		},
		{
			name:    "gemini with key",
			cfg:     withProvider("gemini", func(c *Config) { c.Gemini.APIKey = "g-test" }),
			wantErr: false,
		},
		{
			name:    "anthropic without key",
			cfg:     withProvider("anthropic", nil),
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     withProvider("anthropic", func(c *Config) { c.Anthropic.APIKey = "sk-test" }),
			wantErr: false,
		},
		{
			name:    "openrouter without key",
			cfg:     withProvider("openrouter", nil),
			wantErr: true,
		},
		{
			name:    "mock needs no key",
			cfg:     withProvider("mock", nil),
			wantErr: false,
		},
		{
			name:    "zero attempts",
			cfg:     withProvider("mock", func(c *Config) { c.Retry.MaxAttempts = 0 }),
			wantErr: true,
		},
		{
			name:    "unknown provider",
			cfg:     withProvider("unknown", nil),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func withProvider(name string, apply func(*Config)) Config {
	cfg := DefaultConfig()
	cfg.Provider = name
	if apply != nil {
		apply(&cfg)
	}
	return cfg
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("VENUSQUIZ_LLM_PROVIDER", "openrouter")
	t.Setenv("VENUSQUIZ_OPENROUTER_API_KEY", "sk-or")
	t.Setenv("VENUSQUIZ_OPENROUTER_MODEL", "anthropic/claude-haiku-4.5")

	if !HasExplicitConfig() {
		t.Fatal("expected explicit config")
	}
	cfg := ConfigFromEnv()
	if cfg.Provider != "openrouter" || cfg.OpenRouter.APIKey != "sk-or" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.OpenRouter.Model != "anthropic/claude-haiku-4.5" {
		t.Fatalf("model = %q", cfg.OpenRouter.Model)
	}
	if cfg.Gemini.Model != "gemini-3-flash" {
		t.Fatalf("gemini default lost: %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(key, "")
	}

	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no config without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("API_KEY", "g-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a config")
	}
	if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("API_KEY should select gemini first, got %+v", cfg)
	}
}

func TestLookupCost(t *testing.T) {
	if c := LookupCost("gemini-2.5-flash"); c == nil || c.OutputPerMTok != 2.5 {
		t.Fatalf("unexpected cost %+v", c)
	}
	if c := LookupCost("anthropic/claude-haiku-4.5"); c == nil || c.InputPerMTok != 1 {
		t.Fatalf("openrouter id not resolved: %+v", c)
	}
	if LookupCost("mock") != nil {
		t.Fatal("mock has no price")
	}
	if got := (ModelCost{InputPerMTok: 1, OutputPerMTok: 5}).Cost(1_000_000, 200_000); got != 2 {
		t.Fatalf("cost = %v, want 2", got)
	}
}
