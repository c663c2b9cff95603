package tally

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/electionstore"
	"github.com/luxfi/voteguard/internal/storage/memdb"
)

func castPerson(t *testing.T, ballots *ballotstore.Store, electionID, token string, grades map[string]int) {
	t.Helper()
	buf := "{\"persons\":{"
	first := true
	for cid, g := range grades {
		if !first {
			buf += ","
		}
		first = false
		buf += fmt.Sprintf("%q:%d", cid, g)
	}
	buf += "}}"
	_, err := ballots.Insert(&ballotstore.Ballot{ElectionID: electionID, Token: token, Result: buf, ServerSignature: "sig"})
	require.NoError(t, err)
}

func TestPersonResultsMajorityJudgment(t *testing.T) {
	db := memdb.New()
	elections := electionstore.New(db)
	ballots := ballotstore.New(db)

	require.NoError(t, elections.Put(&electionstore.Election{
		ID:   "e2",
		Kind: electionstore.KindPerson,
		Candidates: []electionstore.Candidate{
			{ID: "A", Name: "Candidate A"},
			{ID: "B", Name: "Candidate B"},
		},
	}))

	aGrades := []int{1, 2, 2, 3, 4}
	bGrades := []int{3, 3, 4, 5, 6}
	for i := 0; i < 5; i++ {
		castPerson(t, ballots, "e2", fmt.Sprintf("tk-%d", i), map[string]int{
			"A": aGrades[i], "B": bGrades[i],
		})
	}

	tallier := New(elections, ballots)
	results, err := tallier.PersonResults("e2")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// A's median is 2 (Bien), B's is 4 (Passable); A ranks first.
	require.Equal(t, "A", results[0].CandidateID)
	require.Equal(t, Bien, results[0].MedianGrade)
	require.Equal(t, "B", results[1].CandidateID)
	require.Equal(t, Passable, results[1].MedianGrade)
}

func TestPersonResultsNoBallots(t *testing.T) {
	db := memdb.New()
	elections := electionstore.New(db)
	ballots := ballotstore.New(db)
	require.NoError(t, elections.Put(&electionstore.Election{
		ID:   "e3",
		Kind: electionstore.KindPerson,
		Candidates: []electionstore.Candidate{{ID: "A", Name: "A"}},
	}))

	tallier := New(elections, ballots)
	results, err := tallier.PersonResults("e3")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 0, results[0].N)
}

func TestChoiceResultsCounts(t *testing.T) {
	db := memdb.New()
	elections := electionstore.New(db)
	ballots := ballotstore.New(db)
	require.NoError(t, elections.Put(&electionstore.Election{
		ID:   "e4",
		Kind: electionstore.KindChoice,
		Propositions: []electionstore.Proposition{{ID: "p1", Text: "Approve?"}},
	}))

	cast := func(token, result string) {
		_, err := ballots.Insert(&ballotstore.Ballot{ElectionID: "e4", Token: token, Result: result, ServerSignature: "sig"})
		require.NoError(t, err)
	}
	cast("tk-1", `{"choice":true}`)
	cast("tk-2", `{"choice":true}`)
	cast("tk-3", `{"choice":false}`)
	cast("tk-4", `{"choice":null}`)

	tallier := New(elections, ballots)
	results, err := tallier.ChoiceResults("e4")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, 2, results[0].Yes)
	require.Equal(t, 1, results[0].No)
	require.Equal(t, 1, results[0].DontKnow)
}
