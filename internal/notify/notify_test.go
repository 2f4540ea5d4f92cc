package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifier_Collects(t *testing.T) {
	ctx, c := WithCollector(context.Background())
	n := LogNotifier{}

	Error(ctx, n, "Failed to load products")
	Success(ctx, n, "Review submitted")
	Error(ctx, n, "Record 3: invalid rating")

	assert.Equal(t, []string{"Failed to load products", "Record 3: invalid rating"}, c.Messages(LevelError))
	assert.Equal(t, []string{"Review submitted"}, c.Messages(LevelSuccess))
	assert.Len(t, c.All(), 3)
}

func TestLogNotifier_WithoutCollector(t *testing.T) {
	assert.NotPanics(t, func() {
		Error(context.Background(), LogNotifier{}, "nobody listening")
	})

	_, ok := CollectorFrom(context.Background())
	assert.False(t, ok)
}
