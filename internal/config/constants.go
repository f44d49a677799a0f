// Package config holds the simulation configuration surface: the
// bit-exact constants spec.md §6 names, the enumerated run options, and
// the CLI/env binding that assembles a SimConfig (internal/sim).
package config

import "time"

// Constants carried bit-exact from spec.md §6.
const (
	SatScale          int64         = 1000
	MaxParts          int           = 16
	MinShardAmountSat int64         = 10_000
	MinShardAmount    int64         = MinShardAmountSat * SatScale // msat
	SimDelay          time.Duration = 120 * time.Second
	DefaultK          int           = 20
	CLTVRiskFactor    int64         = 15
	ReachableHops     int           = 3
)
