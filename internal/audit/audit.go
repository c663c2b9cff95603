// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package audit computes a content-addressed digest of an election's urn
// and serves ballot listings and single-ballot retrieval.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/luxfi/voteguard/internal/ballotstore"
)

// ErrNotFound is returned when a requested ballot token has no row.
var ErrNotFound = ballotstore.ErrNotFound

// BallotView is the public projection of a stored ballot: token and
// result only, never anything voter-identifying.
type BallotView struct {
	Token  string `json:"token"`
	Result string `json:"result"`
}

// Auditor computes digests and serves ballot listings from the urn.
type Auditor struct {
	ballots *ballotstore.Store
}

// New builds an Auditor over a ballot Store.
func New(ballots *ballotstore.Store) *Auditor {
	return &Auditor{ballots: ballots}
}

// Digest returns hex(sha256(entry(b1) || "\n" || ... || entry(bN))) for
// electionID's ballots ordered by token ascending. It walks a
// ballotstore.Cursor one row at a time and folds each entry straight into
// the running hash, so memory stays bounded by a single ballot regardless
// of urn size.
func (a *Auditor) Digest(electionID string) (string, error) {
	c := a.ballots.Cursor(electionID)
	defer c.Release()

	h := sha256.New()
	first := true
	for {
		b, err := c.Next()
		if err != nil {
			return "", err
		}
		if b == nil {
			break
		}
		if !first {
			h.Write([]byte("\n"))
		}
		first = false
		h.Write([]byte(b.Token))
		h.Write([]byte(":"))
		h.Write([]byte(b.Result))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// List returns every ballot in electionID as a public BallotView, ordered
// by token ascending.
func (a *Auditor) List(electionID string) ([]BallotView, error) {
	all, err := a.ballots.List(electionID)
	if err != nil {
		return nil, err
	}
	views := make([]BallotView, len(all))
	for i, b := range all {
		views[i] = BallotView{Token: b.Token, Result: b.Result}
	}
	return views, nil
}

// Get returns a single ballot's public view by token.
func (a *Auditor) Get(electionID, token string) (*BallotView, error) {
	b, err := a.ballots.Get(electionID, token)
	if err != nil {
		if errors.Is(err, ballotstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &BallotView{Token: b.Token, Result: b.Result}, nil
}
