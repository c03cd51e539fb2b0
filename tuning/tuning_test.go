package tuning

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestDefaultsValidate verifies the built-in tuning passes schema and cross-field checks
func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("Defaults failed validation: %v", err)
	}
}

// TestDefaultValues verifies key defaults match the game's reference numbers
func TestDefaultValues(t *testing.T) {
	d := Defaults()

	if d.Combo.Timeout() != 3*time.Second {
		t.Errorf("Expected 3s combo timeout, got %v", d.Combo.Timeout())
	}
	if d.Score.MilestoneStep != 100 || d.Score.FloorPoints != 10 {
		t.Errorf("Unexpected score tuning %+v", d.Score)
	}
	if d.Place.MaxAttempts != 15 || d.Place.MinLead != 2.5 {
		t.Errorf("Unexpected placement tuning %+v", d.Place)
	}
	if len(d.Spawners) != 2 || d.Spawners[1].FirstFloor != 50 {
		t.Errorf("Unexpected spawners %+v", d.Spawners)
	}
	if v, ok := d.Variant("jetpack"); !ok || v.Duration() != 8*time.Second {
		t.Errorf("Unexpected jetpack variant %+v", v)
	}
}

// TestParseOverlaysDefaults verifies a partial document only changes the keys it names
func TestParseOverlaysDefaults(t *testing.T) {
	doc := `
seed: 42
score:
  floor_points: 10
  milestone_step: 50
recycler:
  platform_count: 12
  platform_spacing: 2
  platform_start_y: 2
  platform_x_min: -4
  platform_x_max: 4
  platform_width: 2
  platform_thickness: 0.3
  platform_spawn_ahead: 10
  first_floor: 1
  wall_count: 4
  wall_height: 10
  wall_spawn_ahead: 10
  wall_half_width: 6
  wall_thickness: 0.5
  bouncy_chance: 0.2
  sticky_chance: 0.1
`
	tu, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tu.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", tu.Seed)
	}
	if tu.Score.MilestoneStep != 50 {
		t.Errorf("Expected milestone step 50, got %d", tu.Score.MilestoneStep)
	}
	if tu.Recycler.PlatformCount != 12 || tu.Recycler.PlatformXMin != -4 {
		t.Errorf("Recycler overlay not applied: %+v", tu.Recycler)
	}
	if tu.Combo.MinFloorSkip != 2 {
		t.Errorf("Untouched combo tuning changed: %+v", tu.Combo)
	}
}

// TestParseRejectsUnknownKey verifies typos in the document fail loudly
func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("combo:\n  timout_seconds: 2\n"))
	if err == nil {
		t.Fatal("Expected unknown key to be rejected")
	}
}

// TestParseEmptyDocument verifies an empty document yields defaults
func TestParseEmptyDocument(t *testing.T) {
	tu, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Empty document failed: %v", err)
	}
	if tu.Score.MilestoneStep != 100 {
		t.Errorf("Expected default milestone step, got %d", tu.Score.MilestoneStep)
	}
}

// TestValidateSchemaViolation verifies schema bounds are enforced
func TestValidateSchemaViolation(t *testing.T) {
	tu := Defaults()
	tu.Combo.MinFloorSkip = 1
	err := tu.Validate()
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Expected ErrInvalidTuning, got %v", err)
	}

	tu = Defaults()
	tu.Input.Source = "gamepad"
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected unknown input source to fail, got %v", err)
	}

	tu = Defaults()
	tu.Recycler.BouncyChance = 1.5
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected bouncy chance above 1 to fail, got %v", err)
	}
}

// TestValidateCrossField verifies rules outside the schema
func TestValidateCrossField(t *testing.T) {
	tu := Defaults()
	tu.Recycler.PlatformXMin, tu.Recycler.PlatformXMax = 5, -5
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected inverted x range to fail, got %v", err)
	}

	tu = Defaults()
	tu.Recycler.WallGapMin, tu.Recycler.WallGapMax = 12, 8
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected inverted wall gap range to fail, got %v", err)
	}

	tu = Defaults()
	tu.Spawners[0].Variants = []string{"rocket"}
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected unknown variant to fail, got %v", err)
	}

	tu = Defaults()
	tu.Spawners = append(tu.Spawners, tu.Spawners[0])
	if err := tu.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Errorf("Expected duplicate spawner type to fail, got %v", err)
	}
}

// TestUnlimitedConcurrentAllowed verifies the -1 sentinel passes validation
func TestUnlimitedConcurrentAllowed(t *testing.T) {
	tu := Defaults()
	tu.Spawners[0].MaxConcurrent = -1
	if err := tu.Validate(); err != nil {
		t.Errorf("Unlimited sentinel rejected: %v", err)
	}
}

// TestLoadFile verifies Load reads a file and an empty path yields defaults
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("combo:\n  timeout_seconds: 1.5\n  min_floor_skip: 3\n  min_jumps: 2\n"), 0644); err != nil {
		t.Fatalf("Failed to write tuning file: %v", err)
	}

	tu, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tu.Combo.Timeout() != 1500*time.Millisecond || tu.Combo.MinFloorSkip != 3 {
		t.Errorf("Unexpected combo tuning %+v", tu.Combo)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected missing file to fail")
	}

	def, err := Load("")
	if err != nil || def.Score.MilestoneStep != 100 {
		t.Errorf("Empty path should return defaults, got %v", err)
	}
}

// TestApplyEnv verifies environment overrides and ignored garbage
func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvInput, "touch")
	t.Setenv(EnvMilestoneStep, "not-a-number")
	t.Setenv(EnvComboTimeout, "2.5")
	t.Setenv(EnvObserverAddr, "127.0.0.1:9999")
	t.Setenv(EnvJournalPath, "/tmp/run.journal")

	tu := Defaults()
	if err := tu.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if tu.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", tu.Seed)
	}
	if tu.Input.Source != "touch" {
		t.Errorf("Expected touch input, got %s", tu.Input.Source)
	}
	if tu.Score.MilestoneStep != 100 {
		t.Errorf("Garbage milestone step should be ignored, got %d", tu.Score.MilestoneStep)
	}
	if tu.Combo.Timeout() != 2500*time.Millisecond {
		t.Errorf("Expected 2.5s timeout, got %v", tu.Combo.Timeout())
	}
	if !tu.Observer.Enabled || tu.Observer.Addr != "127.0.0.1:9999" {
		t.Errorf("Observer override not applied: %+v", tu.Observer)
	}
	if tu.Journal.Path != "/tmp/run.journal" {
		t.Errorf("Journal override not applied: %s", tu.Journal.Path)
	}
}

// TestLoadEnvFile verifies .env loading and the missing-file tolerance
func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TOWER_JUMPER_TEST_KEY=from-file\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("TOWER_JUMPER_TEST_KEY", "")
	os.Unsetenv("TOWER_JUMPER_TEST_KEY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("TOWER_JUMPER_TEST_KEY"); got != "from-file" {
		t.Errorf("Expected from-file, got %q", got)
	}

	if err := LoadEnvFile(filepath.Join(dir, "absent.env")); err != nil {
		t.Errorf("Missing env file should be ignored, got %v", err)
	}
	if err := LoadEnvFile(""); err != nil {
		t.Errorf("Empty path should be ignored, got %v", err)
	}
}
