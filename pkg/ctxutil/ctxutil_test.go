package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestUserIDRoundTrip(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithUserID(context.Background(), id)

	got, ok := UserIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected user ID present")
	}
	if got != id {
		t.Errorf("got %v, want %v", got, id)
	}
}

func TestUserIDMissing(t *testing.T) {
	t.Parallel()

	if _, ok := UserIDFromCtx(context.Background()); ok {
		t.Error("empty context should not contain a user ID")
	}
}

func TestUserIDNilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithUserID(context.Background(), uuid.Nil)
	if _, ok := UserIDFromCtx(ctx); ok {
		t.Error("nil UUID should be treated as absent")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("got %q, want %q", got, "req-123")
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("missing request ID should be empty, got %q", got)
	}
}
