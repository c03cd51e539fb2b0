package tuning

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv
const (
	EnvSeed          = "TOWER_JUMPER_SEED"
	EnvInput         = "TOWER_JUMPER_INPUT"
	EnvMilestoneStep = "TOWER_JUMPER_MILESTONE_STEP"
	EnvComboTimeout  = "TOWER_JUMPER_COMBO_TIMEOUT"
	EnvObserverAddr  = "TOWER_JUMPER_OBSERVER_ADDR"
	EnvJournalPath   = "TOWER_JUMPER_JOURNAL"
)

// LoadEnvFile loads KEY=VALUE pairs from a .env file into the process environment
// A missing file is not an error; variables already set are not overwritten
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// ApplyEnv overrides selected fields from the environment and revalidates
// Unparseable values are ignored
func (t *Tuning) ApplyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			t.Seed = seed
		}
	}

	if v := os.Getenv(EnvInput); v == "keyboard" || v == "touch" {
		t.Input.Source = v
	}

	if v := os.Getenv(EnvMilestoneStep); v != "" {
		if step, err := strconv.Atoi(v); err == nil && step > 0 {
			t.Score.MilestoneStep = step
		}
	}

	if v := os.Getenv(EnvComboTimeout); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			t.Combo.TimeoutSeconds = secs
		}
	}

	if v := os.Getenv(EnvObserverAddr); v != "" {
		t.Observer.Enabled = true
		t.Observer.Addr = v
	}

	if v := os.Getenv(EnvJournalPath); v != "" {
		t.Journal.Path = v
	}

	return t.Validate()
}
