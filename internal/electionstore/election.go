// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package electionstore holds the Election data model and its KeyStore:
// the per-election RSA keypair lifecycle.
package electionstore

import "time"

// Kind tags the shape of an election's ballots, dispatched on this tag
// rather than on inheritance.
type Kind string

const (
	KindChoice Kind = "choice"
	KindPerson Kind = "person"
)

// Proposition is one yes/no/don't-know question on a choice election.
type Proposition struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Candidate is one of the people graded on a person (majority-judgment)
// election.
type Candidate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Election is the immutable per-vote parameter set.
type Election struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	AllowedVoters map[string]struct{} `json:"allowed_voters"`

	Kind         Kind          `json:"kind"`
	Propositions []Proposition `json:"propositions,omitempty"`
	Candidates   []Candidate   `json:"candidates,omitempty"`

	// PublicKeyPEM and PrivateKeyPEM are empty until the first call to
	// KeyStore.GetKeys lazily generates them. Once set, they never change.
	PublicKeyPEM  []byte `json:"public_key_pem,omitempty"`
	PrivateKeyPEM []byte `json:"private_key_pem,omitempty"`
}

// HasKeys reports whether the RSA keypair has already been generated.
func (e *Election) HasKeys() bool {
	return len(e.PublicKeyPEM) > 0 && len(e.PrivateKeyPEM) > 0
}

// IsAllowed reports whether voterID is in the election's voter list.
// An empty voterID ("anonymous") is never allowed.
func (e *Election) IsAllowed(voterID string) bool {
	if voterID == "" {
		return false
	}
	_, ok := e.AllowedVoters[voterID]
	return ok
}

// EligibilityReason is the machine-readable tag returned alongside an
// ineligibility verdict.
type EligibilityReason string

const (
	EligibilityOK         EligibilityReason = ""
	EligibilityNotStarted EligibilityReason = "not_started"
	EligibilityEnded      EligibilityReason = "ended"
	EligibilityUser       EligibilityReason = "user"
)

// CanVote reports whether voterID may currently cast a ballot.
func (e *Election) CanVote(voterID string, now time.Time) (bool, EligibilityReason) {
	if !e.IsAllowed(voterID) {
		return false, EligibilityUser
	}
	if now.Before(e.StartTime) {
		return false, EligibilityNotStarted
	}
	if now.After(e.EndTime) {
		return false, EligibilityEnded
	}
	return true, EligibilityOK
}

// IsOpen reports whether now falls within [StartTime, EndTime].
func (e *Election) IsOpen(now time.Time) bool {
	return !now.Before(e.StartTime) && !now.After(e.EndTime)
}
