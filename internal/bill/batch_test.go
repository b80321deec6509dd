package bill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_Run(t *testing.T) {
	var b Batch

	b.Add("a", func(context.Context) error { return nil })
	b.Add("b", func(context.Context) error { return errors.New("upload failed") })
	b.Add("c", func(context.Context) error { return nil })

	result := b.Run(context.Background())
	require.Len(t, result, 3)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].Name)

	err := result.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b: upload failed")
}

func TestBatch_AllSucceed(t *testing.T) {
	var b Batch

	b.Add("a", func(context.Context) error { return nil })
	b.Add("b", func(context.Context) error { return nil })

	result := b.Run(context.Background())
	assert.NoError(t, result.Err())
	assert.Empty(t, result.Failed())
}
