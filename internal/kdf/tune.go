// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kdf

import (
	"errors"
	"math"
	"time"
)

// ErrCalibration is returned when the timing run cannot complete inside
// its budget. Callers surface it rather than falling back to weaker
// parameters.
var ErrCalibration = errors.New("kdf: calibration did not complete within its time budget")

// Perf is a measured machine speed, expressed in Salsa20/8 block
// operations per second. It is passed explicitly into Pick so parameter
// selection stays a pure function with no ambient tuning state.
type Perf struct {
	OpsPerSecond float64
}

// A derivation performs two mixing passes of N rounds, each applying the
// core permutation to 2·r blocks, for every one of the p instances.
func ops(n, r, p int) float64 {
	return 4 * float64(n) * float64(r) * float64(p)
}

// EstimateTime predicts how long a derivation with the given parameters
// takes on a machine with the measured speed.
func EstimateTime(perf Perf, n, r, p int) time.Duration {
	if perf.OpsPerSecond <= 0 {
		return math.MaxInt64
	}
	return time.Duration(ops(n, r, p) / perf.OpsPerSecond * float64(time.Second))
}

// Calibrate measures the machine's derivation speed by timing short fixed
// derivations for at most the given budget. If even a reduced trial run
// exceeds the whole budget, calibration fails rather than reporting a rate
// it did not measure.
func Calibrate(budget time.Duration) (Perf, error) {
	if budget <= 0 {
		return Perf{}, ErrCalibration
	}

	rate, err := timeTrial(1<<9, budget)
	if errors.Is(err, ErrCalibration) {
		// Retry once with a smaller trial before giving up.
		rate, err = timeTrial(1<<6, budget)
	}
	if err != nil {
		return Perf{}, err
	}
	return Perf{OpsPerSecond: rate}, nil
}

func timeTrial(n int, budget time.Duration) (float64, error) {
	const r, p = 8, 1

	var done float64
	start := time.Now()
	for {
		if _, err := Key([]byte("calibrate"), []byte("calibrate"), n, r, p, 32); err != nil {
			return 0, err
		}
		done += ops(n, r, p)
		elapsed := time.Since(start)
		if done == ops(n, r, p) && elapsed > budget {
			return 0, ErrCalibration
		}
		if elapsed >= budget {
			return done / elapsed.Seconds(), nil
		}
	}
}

// Pick chooses cost parameters that aim for the target duration without
// exceeding maxMemory bytes. It fixes r at 8 and grows N while both
// budgets allow; once memory is the binding constraint it grows p instead,
// which extends derivation time without enlarging the per-instance table.
// The result is deterministic for a given Perf measurement.
func Pick(perf Perf, target time.Duration, maxMemory int64) (n, r, p int, err error) {
	r, p = 8, 1

	if perf.OpsPerSecond <= 0 {
		return 0, 0, 0, ErrCalibration
	}
	if MemoryRequired(2, r) > maxMemory {
		return 0, 0, 0, ErrMemoryLimit
	}

	// Never tune below a small floor, no matter how tight the time
	// budget: weak parameters are worse than slow ones.
	opsBudget := perf.OpsPerSecond * target.Seconds()
	if opsBudget < 1<<15 {
		opsBudget = 1 << 15
	}

	n = 2
	for n <= maxInt/128/r/2 &&
		ops(2*n, r, 1) <= opsBudget &&
		MemoryRequired(2*n, r) <= maxMemory {
		n *= 2
	}

	if MemoryRequired(2*n, r) > maxMemory && ops(2*n, r, 1) <= opsBudget {
		// Memory-bound: spend the rest of the time budget on parallelism.
		p = int(opsBudget / ops(n, r, 1))
		if p < 1 {
			p = 1
		}
		if limit := int((1<<30 - 1) / r); p > limit {
			p = limit
		}
	}

	if err := CheckParams(n, r, p); err != nil {
		return 0, 0, 0, err
	}
	return n, r, p, nil
}
