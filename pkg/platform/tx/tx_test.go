package tx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	_, ok := From(ctx)
	assert.False(t, ok)

	assert.Equal(t, ctx, WithTx(ctx, nil), "a nil tx leaves the context untouched")

	tx := &sql.Tx{}
	got, ok := From(WithTx(ctx, tx))
	assert.True(t, ok)
	assert.Same(t, tx, got)
}

func TestRunJoinsExistingTx(t *testing.T) {
	outer := &sql.Tx{}
	ctx := WithTx(context.Background(), outer)
	boom := errors.New("boom")

	// db is never touched when a transaction is already open.
	err := Run(ctx, nil, func(ctx context.Context) error {
		inner, ok := From(ctx)
		assert.True(t, ok)
		assert.Same(t, outer, inner)
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
