package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_AllowWithinBurst(t *testing.T) {
	limiter := NewLimiter(60, 2)

	if !limiter.Allow("openai") {
		t.Error("Expected first call to be allowed")
	}
	if !limiter.Allow("openai") {
		t.Error("Expected second call within burst to be allowed")
	}
	if limiter.Allow("openai") {
		t.Error("Expected third call to exceed burst")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(60, 1)

	if !limiter.Allow("openai") {
		t.Error("Expected openai call to be allowed")
	}
	if !limiter.Allow("ollama") {
		t.Error("Expected ollama call to be allowed despite openai burst")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(1, 1)
	limiter.SetRate("fast", 6000, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("fast") {
			t.Errorf("Expected call %d within raised burst to be allowed", i+1)
		}
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow("slow")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "slow"); err == nil {
		t.Error("Expected context deadline error on exhausted limiter")
	}
}
