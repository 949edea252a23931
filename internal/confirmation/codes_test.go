package confirmation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCode(t *testing.T) {
	code, err := NewCode()
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}

func TestMemoryService_VerifyConsumesCode(t *testing.T) {
	svc := NewMemoryService(time.Minute)
	ctx := context.Background()

	code, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	assert.NoError(t, svc.Verify(ctx, "user-1", code))

	// single use: second attempt fails
	err = svc.Verify(ctx, "user-1", code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestMemoryService_WrongCode(t *testing.T) {
	svc := NewMemoryService(time.Minute)
	ctx := context.Background()

	_, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	err = svc.Verify(ctx, "user-1", "000000")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestMemoryService_UnknownUser(t *testing.T) {
	svc := NewMemoryService(time.Minute)
	err := svc.Verify(context.Background(), "nobody", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestMemoryService_Expiry(t *testing.T) {
	svc := NewMemoryService(-time.Second) // already expired on issue
	ctx := context.Background()

	code, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	err = svc.Verify(ctx, "user-1", code)
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestMemoryService_RegenerateReplacesCode(t *testing.T) {
	svc := NewMemoryService(time.Minute)
	ctx := context.Background()

	first, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)
	second, err := svc.Generate(ctx, "user-1")
	assert.NoError(t, err)

	// latest code wins
	if first != second {
		assert.ErrorIs(t, svc.Verify(ctx, "user-1", first), ErrCodeMismatch)
	}
	assert.NoError(t, svc.Verify(ctx, "user-1", second))
}
