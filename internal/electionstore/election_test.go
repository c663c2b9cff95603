package electionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testElection() *Election {
	now := time.Now()
	return &Election{
		ID:            "e1",
		StartTime:     now.Add(-time.Hour),
		EndTime:       now.Add(time.Hour),
		AllowedVoters: map[string]struct{}{"alice": {}},
	}
}

func TestCanVoteHappyPath(t *testing.T) {
	e := testElection()
	ok, reason := e.CanVote("alice", time.Now())
	require.True(t, ok)
	require.Equal(t, EligibilityOK, reason)
}

func TestCanVoteNotAllowed(t *testing.T) {
	e := testElection()
	ok, reason := e.CanVote("mallory", time.Now())
	require.False(t, ok)
	require.Equal(t, EligibilityUser, reason)
}

func TestCanVoteAnonymous(t *testing.T) {
	e := testElection()
	ok, reason := e.CanVote("", time.Now())
	require.False(t, ok)
	require.Equal(t, EligibilityUser, reason)
}

func TestCanVoteNotStarted(t *testing.T) {
	e := testElection()
	ok, reason := e.CanVote("alice", e.StartTime.Add(-time.Minute))
	require.False(t, ok)
	require.Equal(t, EligibilityNotStarted, reason)
}

func TestCanVoteEnded(t *testing.T) {
	e := testElection()
	ok, reason := e.CanVote("alice", e.EndTime.Add(time.Minute))
	require.False(t, ok)
	require.Equal(t, EligibilityEnded, reason)
}

func TestIsOpen(t *testing.T) {
	e := testElection()
	require.True(t, e.IsOpen(time.Now()))
	require.False(t, e.IsOpen(e.StartTime.Add(-time.Minute)))
	require.False(t, e.IsOpen(e.EndTime.Add(time.Minute)))
}
