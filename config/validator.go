// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"strings"
)

// ValidationMode determines how strict validation should be.
type ValidationMode int

const (
	// StrictMode enforces every constraint, including production-grade
	// recommendations surfaced as warnings.
	StrictMode ValidationMode = iota
	// SoftMode only enforces constraints a server cannot safely start
	// without; it skips the warning-level recommendations.
	SoftMode
)

// ValidationError describes one constraint violation or recommendation.
type ValidationError struct {
	Field      string
	Value      interface{}
	Constraint string
	Severity   string // "error" or "warning"
	Suggestion string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v violates constraint: %s", ve.Severity, ve.Field, ve.Value, ve.Constraint)
}

// ValidationResult collects every error and warning found while validating
// a Parameters value.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
	Valid    bool
}

// Validator validates Parameters values.
type Validator struct {
	mode ValidationMode
}

// NewValidator returns a Validator in StrictMode.
func NewValidator() *Validator {
	return &Validator{mode: StrictMode}
}

// WithMode sets the validation mode and returns the Validator for chaining.
func (v *Validator) WithMode(mode ValidationMode) *Validator {
	v.mode = mode
	return v
}

// Validate performs full validation and collapses the result to a single
// error, or nil if p is valid.
func (v *Validator) Validate(p Parameters) error {
	result := v.ValidateDetailed(p)
	if !result.Valid {
		var errStrs []string
		for _, err := range result.Errors {
			errStrs = append(errStrs, err.Error())
		}
		return fmt.Errorf("invalid config:\n%s", strings.Join(errStrs, "\n"))
	}
	return nil
}

// ValidateDetailed validates p and returns every error and warning found,
// rather than stopping at the first failing field.
func (v *Validator) ValidateDetailed(p Parameters) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if p.RSAKeyBits < 1024 {
		v.addError(result, "RSAKeyBits", p.RSAKeyBits, "must be >= 1024", "set rsa_key_bits >= 1024")
	} else if p.RSAKeyBits < 2048 && v.mode == StrictMode {
		v.addWarning(result, "RSAKeyBits", p.RSAKeyBits, "below 2048 bits is weak for production",
			"consider rsa_key_bits >= 2048")
	}

	if p.MajorityGrades < 2 {
		v.addError(result, "MajorityGrades", p.MajorityGrades, "must be >= 2", "set majority_grades >= 2")
	}

	if p.ListenAddr == "" {
		v.addError(result, "ListenAddr", p.ListenAddr, "must be set", "set listen_addr")
	}

	if p.DataDir == "" {
		v.addError(result, "DataDir", p.DataDir, "must be set", "set data_dir")
	}

	if p.ReadTimeout <= 0 {
		v.addError(result, "ReadTimeout", p.ReadTimeout, "must be positive", "set read_timeout > 0")
	}
	if p.WriteTimeout <= 0 {
		v.addError(result, "WriteTimeout", p.WriteTimeout, "must be positive", "set write_timeout > 0")
	}

	if p.LogFile != "" && p.LogMaxSize <= 0 {
		v.addWarning(result, "LogMaxSize", p.LogMaxSize, "log rotation size is unset while log_file is set",
			"set log_max_size_mb to a positive value")
	}

	return result
}

func (v *Validator) addError(result *ValidationResult, field string, value interface{}, constraint, suggestion string) {
	result.Errors = append(result.Errors, ValidationError{
		Field:      field,
		Value:      value,
		Constraint: constraint,
		Severity:   "error",
		Suggestion: suggestion,
	})
	result.Valid = false
}

func (v *Validator) addWarning(result *ValidationResult, field string, value interface{}, constraint, suggestion string) {
	result.Warnings = append(result.Warnings, ValidationError{
		Field:      field,
		Value:      value,
		Constraint: constraint,
		Severity:   "warning",
		Suggestion: suggestion,
	})
}
