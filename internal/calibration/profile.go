package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion is bumped whenever the profile format or the meaning
// of the stored thresholds changes, invalidating older saved profiles.
const CurrentProfileVersion = 1

// DefaultProfileName is the file name used under the user's home directory.
const DefaultProfileName = ".apcalc_calibration.json"

// CalibrationProfile stores the result of a threshold calibration run along
// with the hardware fingerprint it was measured on. A profile is only reused
// when the fingerprint still matches the running machine.
type CalibrationProfile struct {
	ProfileVersion int    `json:"profile_version"`
	NumCPU         int    `json:"num_cpu"`
	GOARCH         string `json:"goarch"`
	GOOS           string `json:"goos"`
	GoVersion      string `json:"go_version"`
	WordSize       int    `json:"word_size"`

	OptimalKaratsubaThreshold    int `json:"optimal_karatsuba_threshold"`
	OptimalToom3Threshold        int `json:"optimal_toom3_threshold"`
	OptimalDivRecursiveThreshold int `json:"optimal_div_recursive_threshold"`

	// CalibrationBits is the operand size used during calibration.
	CalibrationBits int `json:"calibration_bits"`
	// CalibrationTime is the human-readable total calibration duration.
	CalibrationTime string `json:"calibration_time"`

	CalibratedAt time.Time `json:"calibrated_at"`
}

// NewProfile creates a profile stamped with the current hardware fingerprint.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// DefaultProfilePath returns the default location of the calibration profile
// in the user's home directory.
func DefaultProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultProfileName), nil
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile file without validating it.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// LoadValidProfile loads a profile and returns it only if it matches the
// current hardware and is younger than maxAge. A zero maxAge disables the
// staleness check.
func LoadValidProfile(path string, maxAge time.Duration) (*CalibrationProfile, error) {
	p, err := loadProfile(path)
	if err != nil {
		return nil, err
	}
	if !p.IsValid() {
		return nil, fmt.Errorf("profile does not match current hardware")
	}
	if maxAge > 0 && p.IsStale(maxAge) {
		return nil, fmt.Errorf("profile is older than %s", maxAge)
	}
	return p, nil
}

// IsValid reports whether the profile was calibrated on hardware matching
// the current machine and uses the current profile format.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge. Nil profiles are
// always stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a one-line summary suitable for logging.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf(
		"calibration profile: karatsuba=%d words, toom3=%d words, divrecursive=%d words (calibrated %s on %d CPUs, %s/%s)",
		p.OptimalKaratsubaThreshold, p.OptimalToom3Threshold, p.OptimalDivRecursiveThreshold,
		p.CalibratedAt.Format(time.RFC3339), p.NumCPU, p.GOOS, p.GOARCH)
}
