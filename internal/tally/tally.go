// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tally computes election results from the ballot urn: majority
// judgment for person elections and yes/no/dont_know counting for choice
// elections.
package tally

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/luxfi/voteguard/internal/ballotstore"
	"github.com/luxfi/voteguard/internal/electionstore"
)

// Grade is one of the 7 majority-judgment grades, 1 (best) through 7 (worst).
type Grade int

const (
	TresBien    Grade = 1
	Bien        Grade = 2
	AssezBien   Grade = 3
	Passable    Grade = 4
	Insuffisant Grade = 5
	ARejeter    Grade = 6
	NeSaitPas   Grade = 7
)

// GradeNames gives the display label for each grade, indexed 1..7.
var GradeNames = map[Grade]string{
	TresBien:    "Très Bien",
	Bien:        "Bien",
	AssezBien:   "Assez Bien",
	Passable:    "Passable",
	Insuffisant: "Insuffisant",
	ARejeter:    "À Rejeter",
	NeSaitPas:   "Ne Sait Pas",
}

// CandidateResult is one candidate's majority-judgment score profile.
type CandidateResult struct {
	CandidateID   string            `json:"candidate_id"`
	CandidateName string            `json:"candidate_name"`
	MedianGrade   Grade             `json:"median_grade"`
	MedianLabel   string            `json:"median_label"`
	PPlus         float64           `json:"p_plus"`
	PMinus        float64           `json:"p_minus"`
	GradePercents map[Grade]float64 `json:"grade_percents"`
	N             int               `json:"n"`
}

// PropositionResult is one proposition's yes/no/dont_know counts.
type PropositionResult struct {
	PropositionID string `json:"proposition_id"`
	Text          string `json:"text"`
	Yes           int    `json:"yes"`
	No            int    `json:"no"`
	DontKnow      int    `json:"dont_know"`
}

type personVote struct {
	Persons map[string]int `json:"persons"`
}

type choiceVote struct {
	Choice *bool `json:"choice"`
}

// Tallier computes results for an election from its stored ballots.
type Tallier struct {
	elections *electionstore.Store
	ballots   *ballotstore.Store
}

// New builds a Tallier from its collaborator stores.
func New(elections *electionstore.Store, ballots *ballotstore.Store) *Tallier {
	return &Tallier{elections: elections, ballots: ballots}
}

// PersonResults computes and ranks CandidateResult for a "person" election,
// best candidate first.
func (t *Tallier) PersonResults(electionID string) ([]CandidateResult, error) {
	e, err := t.elections.Get(electionID)
	if err != nil {
		return nil, err
	}
	all, err := t.ballots.List(electionID)
	if err != nil {
		return nil, err
	}

	grades := make(map[string][]Grade, len(e.Candidates))
	for _, c := range e.Candidates {
		grades[c.ID] = nil
	}
	for _, b := range all {
		var v personVote
		if err := json.Unmarshal([]byte(b.Result), &v); err != nil {
			return nil, fmt.Errorf("tally: decode ballot %s: %w", b.Token, err)
		}
		for cid, g := range v.Persons {
			if g < 1 || g > 7 {
				continue
			}
			grades[cid] = append(grades[cid], Grade(g))
		}
	}

	results := make([]CandidateResult, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		results = append(results, scoreCandidate(c.ID, c.Name, grades[c.ID]))
	}

	sort.SliceStable(results, func(i, j int) bool { return rankLess(results[i], results[j]) })
	return results, nil
}

// scoreCandidate computes the median grade and p_plus/p_minus statistics
// for one candidate's multiset of grades.
func scoreCandidate(id, name string, gs []Grade) CandidateResult {
	n := len(gs)
	counts := make(map[Grade]int, 7)
	for _, g := range gs {
		counts[g]++
	}

	median := NeSaitPas
	if n > 0 {
		threshold := n/2 + 1
		cum := 0
		for g := NeSaitPas; g >= TresBien; g-- {
			cum += counts[g]
			if cum >= threshold {
				median = g
				break
			}
		}
	}

	var better, worse int
	for _, g := range gs {
		switch {
		case g < median:
			better++
		case g > median:
			worse++
		}
	}

	pct := make(map[Grade]float64, 7)
	for g := TresBien; g <= NeSaitPas; g++ {
		if n > 0 {
			pct[g] = round2(100 * float64(counts[g]) / float64(n))
		}
	}

	var pPlus, pMinus float64
	if n > 0 {
		pPlus = round2(100 * float64(better) / float64(n))
		pMinus = round2(100 * float64(worse) / float64(n))
	}

	return CandidateResult{
		CandidateID:   id,
		CandidateName: name,
		MedianGrade:   median,
		MedianLabel:   GradeNames[median],
		PPlus:         pPlus,
		PMinus:        pMinus,
		GradePercents: pct,
		N:             n,
	}
}

// rankLess orders candidates best-first: lower median index wins; among
// ties, the side (plus or minus) that dominates wins, and within a
// dominant side the stronger showing wins (larger p_plus, or smaller
// p_minus).
func rankLess(a, b CandidateResult) bool {
	if a.MedianGrade != b.MedianGrade {
		return a.MedianGrade < b.MedianGrade
	}
	aDominant := a.PPlus > a.PMinus
	bDominant := b.PPlus > b.PMinus
	if aDominant != bDominant {
		return aDominant // positive-dominant ranks above negative-dominant
	}
	if aDominant {
		return a.PPlus > b.PPlus
	}
	return a.PMinus < b.PMinus
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ChoiceResults tallies yes/no/dont_know counts per proposition for a
// "choice" election.
func (t *Tallier) ChoiceResults(electionID string) ([]PropositionResult, error) {
	e, err := t.elections.Get(electionID)
	if err != nil {
		return nil, err
	}
	all, err := t.ballots.List(electionID)
	if err != nil {
		return nil, err
	}

	results := make([]PropositionResult, len(e.Propositions))
	for i, p := range e.Propositions {
		results[i] = PropositionResult{PropositionID: p.ID, Text: p.Text}
	}
	if len(results) == 0 {
		return results, nil
	}

	for _, b := range all {
		var v choiceVote
		if err := json.Unmarshal([]byte(b.Result), &v); err != nil {
			return nil, fmt.Errorf("tally: decode ballot %s: %w", b.Token, err)
		}
		if len(results) == 0 {
			continue
		}
		switch {
		case v.Choice == nil:
			results[0].DontKnow++
		case *v.Choice:
			results[0].Yes++
		default:
			results[0].No++
		}
	}

	return results, nil
}
