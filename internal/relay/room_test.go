package relay

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomJoinTransitionsToActive(t *testing.T) {
	r := NewRoom("ABC123", "alice")
	assert.Equal(t, StatusAwaitingOpponent, r.Status())

	opponent, err := r.Join("bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", opponent)
	assert.Equal(t, StatusActive, r.Status())

	one, two := r.Participants()
	assert.Equal(t, "alice", one)
	assert.Equal(t, "bob", two)
}

func TestRoomJoinFullRejected(t *testing.T) {
	r := NewRoom("ABC123", "alice")
	_, err := r.Join("bob")
	require.NoError(t, err)

	_, err = r.Join("carol")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomConcurrentJoinExactlyOneWins(t *testing.T) {
	r := NewRoom("ABC123", "alice")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"bob", "carol"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, errs[i] = r.Join(name)
		}(i, name)
	}
	wg.Wait()

	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], ErrRoomFull)
	} else {
		assert.ErrorIs(t, errs[0], ErrRoomFull)
		assert.NoError(t, errs[1])
	}
	assert.Equal(t, StatusActive, r.Status())
}

func TestRoomFinishIsTerminal(t *testing.T) {
	r := NewRoom("ABC123", "alice")
	_, err := r.Join("bob")
	require.NoError(t, err)

	overwrote, singlePlayer := r.Finish("alice")
	assert.False(t, overwrote)
	assert.False(t, singlePlayer)
	assert.Equal(t, StatusFinished, r.Status())

	_, err = r.Join("carol")
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestRoomFinishReportsQuestionableCases(t *testing.T) {
	r := NewRoom("ABC123", "alice")
	_, singlePlayer := r.Finish("alice")
	assert.True(t, singlePlayer)

	overwrote, _ := r.Finish("bob")
	assert.True(t, overwrote)
	assert.Equal(t, "bob", r.Winner)
}
