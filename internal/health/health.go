// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health reports service health, following the Checker/Report
// shape of the consensus engine's api/health package.
package health

import (
	"context"

	"github.com/luxfi/database"
)

// Checker reports on one component's health.
type Checker interface {
	HealthCheck(context.Context) (interface{}, error)
}

// Report aggregates every registered Checker's result.
type Report struct {
	Healthy bool    `json:"healthy"`
	Checks  []Check `json:"checks"`
}

// Check is a single named health check result.
type Check struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// Checkers runs a named set of health Checkers and aggregates a Report.
type Checkers struct {
	checks map[string]Checker
}

// New builds an empty registry of Checkers.
func New() *Checkers {
	return &Checkers{checks: make(map[string]Checker)}
}

// Register adds a named Checker.
func (c *Checkers) Register(name string, checker Checker) {
	c.checks[name] = checker
}

// Report runs every registered Checker and returns the aggregate Report.
func (c *Checkers) Report(ctx context.Context) Report {
	report := Report{Healthy: true}
	for name, checker := range c.checks {
		check := Check{Name: name, Healthy: true}
		if _, err := checker.HealthCheck(ctx); err != nil {
			check.Healthy = false
			check.Error = err.Error()
			report.Healthy = false
		}
		report.Checks = append(report.Checks, check)
	}
	return report
}

// NewStorageChecker wraps a database.Database as a Checker, delegating
// directly to its own HealthCheck.
func NewStorageChecker(db database.Database) Checker {
	return db
}
