package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "tuning.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add tuning schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// Validate checks the document against the embedded schema, then cross-field rules the schema cannot express
func (t *Tuning) Validate() error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTuning, err)
	}

	r := t.Recycler
	if r.PlatformXMax < r.PlatformXMin {
		return fmt.Errorf("%w: platform_x_max %.2f below platform_x_min %.2f", ErrInvalidTuning, r.PlatformXMax, r.PlatformXMin)
	}
	if r.WallGapMin > 0 && r.WallGapMax > 0 && r.WallGapMax < r.WallGapMin {
		return fmt.Errorf("%w: wall_gap_max %.2f below wall_gap_min %.2f", ErrInvalidTuning, r.WallGapMax, r.WallGapMin)
	}
	if r.BouncyChance+r.StickyChance > 1 {
		return fmt.Errorf("%w: bouncy_chance + sticky_chance exceeds 1", ErrInvalidTuning)
	}
	if t.Climb.MaxChargeSeconds < t.Climb.ChargePerFloorSeconds {
		return fmt.Errorf("%w: max_charge_seconds below charge_per_floor_seconds", ErrInvalidTuning)
	}

	seen := make(map[string]bool, len(t.Spawners))
	for i, sp := range t.Spawners {
		if seen[sp.Type] {
			return fmt.Errorf("%w: spawner %d duplicates type %q", ErrInvalidTuning, i, sp.Type)
		}
		seen[sp.Type] = true
		for _, name := range sp.Variants {
			if _, ok := t.Variants[name]; !ok {
				return fmt.Errorf("%w: spawner %q references unknown variant %q", ErrInvalidTuning, sp.Type, name)
			}
		}
	}
	return nil
}
