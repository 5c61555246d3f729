package tuning

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"antsim.dev/internal/sim/ant"
)

type Tuning struct {
	UpdateHz      int `yaml:"update_hz"`
	StartSpeed    int `yaml:"start_speed"`
	LogEveryTicks int `yaml:"log_every_ticks"`

	Home       [2]float64  `yaml:"home"`
	Ants       Ants        `yaml:"ants"`
	FoodGroups []FoodGroup `yaml:"food_groups"`
}

type Ants struct {
	Count        int        `yaml:"count"`
	StartPos     [2]float64 `yaml:"start_pos"`
	StartHeading float64    `yaml:"start_heading"`
	PersistMax   int        `yaml:"persist_max"`
	TurnStdDev   float64    `yaml:"turn_stddev"`
}

type FoodGroup struct {
	Center [2]float64 `yaml:"center"`
	Radius float64    `yaml:"radius"`
}

func Defaults() Tuning {
	return Tuning{
		UpdateHz:      120,
		StartSpeed:    3,
		LogEveryTicks: 600,
		Ants: Ants{
			Count:        100,
			StartPos:     [2]float64{10, 15},
			StartHeading: 0.78539816,
			PersistMax:   ant.DefaultPersistMax,
			TurnStdDev:   ant.DefaultTurnStdDev,
		},
	}
}

// Load reads a tuning file on top of Defaults. The raw document is checked against the
// embedded schema before decoding.
func Load(path string) (Tuning, error) {
	t := Defaults()
	if strings.TrimSpace(path) == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (Tuning, error) {
	t := Defaults()
	if err := validateDocument(raw); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t *Tuning) Normalize() {
	if t == nil {
		return
	}
	if t.UpdateHz <= 0 {
		t.UpdateHz = 120
	}
	if t.LogEveryTicks < 0 {
		t.LogEveryTicks = 0
	}
}

func (t Tuning) Validate() error {
	if t.StartSpeed < 1 || t.StartSpeed > 8 {
		return fmt.Errorf("start_speed must be in [1,8], got %d", t.StartSpeed)
	}
	if t.Ants.Count < 0 {
		return fmt.Errorf("ants.count must be >= 0, got %d", t.Ants.Count)
	}
	if t.Ants.PersistMax < 0 {
		return fmt.Errorf("ants.persist_max must be >= 0, got %d", t.Ants.PersistMax)
	}
	if !(t.Ants.TurnStdDev > 0) {
		return fmt.Errorf("ants.turn_stddev must be > 0, got %v", t.Ants.TurnStdDev)
	}
	for i, g := range t.FoodGroups {
		if g.Radius < 0 {
			return fmt.Errorf("food_groups[%d].radius must be >= 0, got %v", i, g.Radius)
		}
	}
	return nil
}

func (t Tuning) AntParams() ant.Params {
	return ant.Params{PersistMax: t.Ants.PersistMax, TurnStdDev: t.Ants.TurnStdDev}
}
