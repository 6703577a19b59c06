package calibration

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/apint/internal/config"
)

func TestCalibrateSmall(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bits = 1 << 12 // keep the test fast

	var out bytes.Buffer
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := Calibrate(ctx, cfg, &out, "")
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	if result.KaratsubaThreshold <= 0 {
		t.Errorf("KaratsubaThreshold = %d, want > 0", result.KaratsubaThreshold)
	}
	if result.Toom3Threshold <= 0 {
		t.Errorf("Toom3Threshold = %d, want > 0", result.Toom3Threshold)
	}
	if result.DivRecursiveThreshold <= 0 {
		t.Errorf("DivRecursiveThreshold = %d, want > 0", result.DivRecursiveThreshold)
	}

	output := out.String()
	if !strings.Contains(output, "Karatsuba") {
		t.Error("output should mention the Karatsuba calibration")
	}
	if !strings.Contains(output, "Optimal") {
		t.Error("output should highlight the optimal candidates")
	}
}

func TestCalibrateCanceled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Bits = 1 << 12

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if _, err := Calibrate(ctx, cfg, &out, ""); err == nil {
		t.Error("Calibrate should fail when the context is already canceled")
	}
}

func TestFixedSourceDeterministic(t *testing.T) {
	t.Parallel()

	a := fixedSource(42)
	b := fixedSource(42)
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("fixedSource should be deterministic for equal seeds")
		}
	}
}
