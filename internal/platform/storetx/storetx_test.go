package storetx

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "allograft/pkg/domain-errors"
)

func TestRunInTxSerializes(t *testing.T) {
	tx := NewInMemory()
	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tx.RunInTx(context.Background(), func(context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestRunInTxCancelledContext(t *testing.T) {
	tx := NewInMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tx.RunInTx(ctx, func(context.Context) error {
		t.Fatal("fn must not run with cancelled context")
		return nil
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestRunInTxPropagatesError(t *testing.T) {
	tx := NewInMemory()
	want := dErrors.New(dErrors.CodeInvalidState, "already delivered")
	err := tx.RunInTx(context.Background(), func(context.Context) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
