package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "allograft/pkg/domain"
)

func TestLogPreservesAppendOrder(t *testing.T) {
	ctx := context.Background()
	log := NewLog[id.PatientID]()

	for _, p := range []id.PatientID{3, 1, 2} {
		require.NoError(t, log.Append(ctx, p))
	}

	got, err := log.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []id.PatientID{3, 1, 2}, got)
	assert.Equal(t, 3, log.Len())
}

func TestAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	log := NewLog[id.DonorID]()
	require.NoError(t, log.Append(ctx, 100))

	got, err := log.All(ctx)
	require.NoError(t, err)
	got[0] = 999

	again, err := log.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, id.DonorID(100), again[0])
}

func TestFilterKeepsOrder(t *testing.T) {
	matched := map[id.PatientID]bool{2: true}
	pending := Filter([]id.PatientID{1, 2, 3}, func(p id.PatientID) bool {
		return !matched[p]
	})
	assert.Equal(t, []id.PatientID{1, 3}, pending)
}

func TestEmptyLog(t *testing.T) {
	log := NewLog[id.PatientID]()
	got, err := log.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
