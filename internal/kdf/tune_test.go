// Copyright 2024 The scryptbox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kdf

import (
	"errors"
	"testing"
	"time"
)

func TestPickCPUBound(t *testing.T) {
	// One million core operations per second and a one second budget:
	// the time budget binds long before the memory ceiling.
	n, r, p, err := Pick(Perf{OpsPerSecond: 1e6}, time.Second, 1<<30)
	if err != nil {
		t.Fatal(err)
	}
	if n != 16384 || r != 8 || p != 1 {
		t.Errorf("Pick = (%d, %d, %d), want (16384, 8, 1)", n, r, p)
	}
}

func TestPickMemoryBound(t *testing.T) {
	// A fast machine against a 1 MiB ceiling: N stops at the ceiling and
	// the rest of the time budget goes into parallelism.
	n, r, p, err := Pick(Perf{OpsPerSecond: 1e8}, time.Second, 1<<20)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1024 || r != 8 {
		t.Fatalf("Pick = (N=%d, r=%d), want (N=1024, r=8)", n, r)
	}
	if p != 3051 {
		t.Errorf("Pick p = %d, want 3051", p)
	}
	if MemoryRequired(n, r) > 1<<20 {
		t.Errorf("MemoryRequired(%d, %d) exceeds the ceiling", n, r)
	}
}

func TestPickFloor(t *testing.T) {
	// A vanishing time budget still produces the minimum ops floor, not
	// trivially weak parameters.
	n, r, p, err := Pick(Perf{OpsPerSecond: 1e9}, time.Nanosecond, 1<<30)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1024 || r != 8 || p != 1 {
		t.Errorf("Pick = (%d, %d, %d), want (1024, 8, 1)", n, r, p)
	}
}

func TestPickMemoryTooSmall(t *testing.T) {
	if _, _, _, err := Pick(Perf{OpsPerSecond: 1e6}, time.Second, 1024); !errors.Is(err, ErrMemoryLimit) {
		t.Errorf("Pick with a 1 KiB ceiling = %v, want ErrMemoryLimit", err)
	}
}

func TestPickUnmeasuredPerf(t *testing.T) {
	if _, _, _, err := Pick(Perf{}, time.Second, 1<<30); !errors.Is(err, ErrCalibration) {
		t.Errorf("Pick with zero Perf = %v, want ErrCalibration", err)
	}
}

func TestPickDeterministic(t *testing.T) {
	perf := Perf{OpsPerSecond: 123456789}
	n1, r1, p1, err := Pick(perf, 250*time.Millisecond, 1<<26)
	if err != nil {
		t.Fatal(err)
	}
	n2, r2, p2, err := Pick(perf, 250*time.Millisecond, 1<<26)
	if err != nil {
		t.Fatal(err)
	}
	if n1 != n2 || r1 != r2 || p1 != p2 {
		t.Error("Pick is not deterministic for a fixed Perf")
	}
}

func TestEstimateTime(t *testing.T) {
	got := EstimateTime(Perf{OpsPerSecond: 1e6}, 1024, 8, 1)
	if want := 32768 * time.Microsecond; got != want {
		t.Errorf("EstimateTime = %v, want %v", got, want)
	}
}

func TestCalibrate(t *testing.T) {
	perf, err := Calibrate(50 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if perf.OpsPerSecond <= 0 {
		t.Errorf("Calibrate measured %v ops/s", perf.OpsPerSecond)
	}
}

func TestCalibrateNoBudget(t *testing.T) {
	if _, err := Calibrate(0); !errors.Is(err, ErrCalibration) {
		t.Errorf("Calibrate(0) = %v, want ErrCalibration", err)
	}
}
