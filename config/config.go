// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the tunable parameters for a voteguard server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Parameters configures a running voteguard server.
type Parameters struct {
	// ListenAddr is the HTTP address the server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// DataDir is where the pebble-backed election/ballot/voter databases live.
	DataDir string `yaml:"data_dir"`

	// RSAKeyBits is the modulus size generated for every per-election keypair.
	RSAKeyBits int `yaml:"rsa_key_bits"`

	// MajorityGrades is the number of majority-judgment grades, best to worst.
	MajorityGrades int `yaml:"majority_grades"`

	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`

	// LogFile, when set, receives a per-request access log through a
	// rotating file; the structured application log is not written there.
	LogFile    string `yaml:"log_file"`
	LogMaxSize int    `yaml:"log_max_size_mb"`
}

// DefaultParams returns the parameters used when no config file is supplied.
func DefaultParams() Parameters {
	return Parameters{
		ListenAddr:     ":8080",
		DataDir:        "./data",
		RSAKeyBits:     2048,
		MajorityGrades: 7,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		LogMaxSize:     100,
	}
}

// LocalParams tunes parameters for single-process local development: a
// throwaway data directory and a small key size so signing stays fast.
func LocalParams() Parameters {
	p := DefaultParams()
	p.DataDir = "./data-local"
	p.RSAKeyBits = 1024
	return p
}

// Load reads parameters from a YAML file on top of DefaultParams, so a file
// only needs to set the fields it wants to override.
func Load(path string) (Parameters, error) {
	p := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Parameters{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return p, nil
}

// Valid reports whether p can be used to start a server. It runs the full
// Validator in StrictMode and collapses the result to a single error.
func (p Parameters) Valid() error {
	return NewValidator().Validate(p)
}
