package contextutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestValues(t *testing.T) {
	ctx := WithUserID(WithRequestID(context.Background(), "rid-1"), "u-1")

	assert.Equal(t, "rid-1", GetRequestID(ctx))
	assert.Equal(t, "u-1", GetUserID(ctx))
	assert.Len(t, Fields(ctx), 2)

	assert.Equal(t, "", GetRequestID(context.Background()))
	assert.Empty(t, Fields(context.Background()))
}

func TestGetLogger(t *testing.T) {
	scoped := zap.NewNop().Named("scoped")
	fallback := zap.NewNop().Named("fallback")

	assert.Same(t, scoped, GetLogger(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, fallback, GetLogger(context.Background(), fallback))
	assert.NotNil(t, GetLogger(nil, nil))
}
