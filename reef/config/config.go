// Package config holds the aquarium's tuning values. Every field has a
// default matching the shipped firmware; host builds may override them from a
// TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Display   DisplayConfig   `toml:"display" yaml:"display"`
	Clock     ClockConfig     `toml:"clock" yaml:"clock"`
	Dirty     DirtyConfig     `toml:"dirty" yaml:"dirty"`
	Canvas    CanvasConfig    `toml:"canvas" yaml:"canvas"`
	Bubbles   BubbleConfig    `toml:"bubbles" yaml:"bubbles"`
	Dirt      DirtConfig      `toml:"dirt" yaml:"dirt"`
	Particles ParticleConfig  `toml:"particles" yaml:"particles"`
	Fish      FishConfig      `toml:"fish" yaml:"fish"`
	Shrimp    ShrimpConfig    `toml:"shrimp" yaml:"shrimp"`
	Seahorse  SeahorseConfig  `toml:"seahorse" yaml:"seahorse"`
	Pet       PetConfig       `toml:"pet" yaml:"pet"`
	Save      SaveConfig      `toml:"save" yaml:"save"`
	UI        UIConfig        `toml:"ui" yaml:"ui"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

// DisplayConfig describes the chrome around the play area.
type DisplayConfig struct {
	StatusBarH  int  `toml:"status_bar_h" yaml:"status_bar_h"`
	BottomBarH  int  `toml:"bottom_bar_h" yaml:"bottom_bar_h"`
	GroundH     int  `toml:"ground_h" yaml:"ground_h"`
	BacklightOn bool `toml:"backlight_on" yaml:"backlight_on"`
}

type ClockConfig struct {
	TargetFrame   time.Duration `toml:"target_frame" yaml:"target_frame"`
	DTMin         float64       `toml:"dt_min" yaml:"dt_min"`
	DTMax         float64       `toml:"dt_max" yaml:"dt_max"`
	EMAAlpha      float64       `toml:"ema_alpha" yaml:"ema_alpha"`
	InitialDT     float64       `toml:"initial_dt" yaml:"initial_dt"`
	AnimPhaseRate float64       `toml:"anim_phase_rate" yaml:"anim_phase_rate"` // phase units per second
}

type DirtyConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity"`
	Margin   int `toml:"margin" yaml:"margin"`
	// MergeTolerance above 0 lets Merge join near rectangles into their
	// bounding box, restoring pixels that were never dirty.
	MergeTolerance int `toml:"merge_tolerance" yaml:"merge_tolerance"`
}

type CanvasConfig struct {
	// MemoryBudget caps the background canvas allocation in bytes; 0 means
	// unlimited. A budget smaller than one frame forces no-canvas mode.
	MemoryBudget int `toml:"memory_budget" yaml:"memory_budget"`
}

type BubbleConfig struct {
	Pool           int     `toml:"pool" yaml:"pool"`
	SpeedMin       float64 `toml:"speed_min" yaml:"speed_min"`
	SpeedJitter    float64 `toml:"speed_jitter" yaml:"speed_jitter"`
	IntervalMin    float64 `toml:"interval_min" yaml:"interval_min"`
	IntervalJitter float64 `toml:"interval_jitter" yaml:"interval_jitter"`
	FishSpread     int     `toml:"fish_spread" yaml:"fish_spread"`
	FloorOffset    int     `toml:"floor_offset" yaml:"floor_offset"`
}

type DirtConfig struct {
	MaxSpots        int     `toml:"max_spots" yaml:"max_spots"`
	IntervalMin     float64 `toml:"interval_min" yaml:"interval_min"`
	IntervalMax     float64 `toml:"interval_max" yaml:"interval_max"`
	StartStrength   float64 `toml:"start_strength" yaml:"start_strength"`
	GrowthPerSec    float64 `toml:"growth_per_sec" yaml:"growth_per_sec"`
	PoopStrength    float64 `toml:"poop_strength" yaml:"poop_strength"`
	GlassMargin     int     `toml:"glass_margin" yaml:"glass_margin"`
	GroundClearance int     `toml:"ground_clearance" yaml:"ground_clearance"`
	PoopSpread      int     `toml:"poop_spread" yaml:"poop_spread"`
	PuffPerSpot     int     `toml:"puff_per_spot" yaml:"puff_per_spot"`
}

type ParticleConfig struct {
	Pool    int     `toml:"pool" yaml:"pool"`
	Gravity float64 `toml:"gravity" yaml:"gravity"`
	Damping float64 `toml:"damping" yaml:"damping"`
	Margin  int     `toml:"margin" yaml:"margin"`
}

type FishConfig struct {
	MaxSpeed      float64 `toml:"max_speed" yaml:"max_speed"`
	SteerForce    float64 `toml:"steer_force" yaml:"steer_force"`
	ArriveRadius  float64 `toml:"arrive_radius" yaml:"arrive_radius"`
	EaseRadius    float64 `toml:"ease_radius" yaml:"ease_radius"`
	NoiseRate     float64 `toml:"noise_rate" yaml:"noise_rate"`
	NoiseAmount   float64 `toml:"noise_amount" yaml:"noise_amount"`
	TailHz        float64 `toml:"tail_hz" yaml:"tail_hz"`
	MoveThreshold float64 `toml:"move_threshold" yaml:"move_threshold"`
	RestoreMargin int     `toml:"restore_margin" yaml:"restore_margin"`
}

type ShrimpConfig struct {
	Speed           float64 `toml:"speed" yaml:"speed"`
	TargetThreshold float64 `toml:"target_threshold" yaml:"target_threshold"`
	WalkFPS         float64 `toml:"walk_fps" yaml:"walk_fps"`
}

type SeahorseConfig struct {
	SwayMargin int `toml:"sway_margin" yaml:"sway_margin"`
}

type PetConfig struct {
	Hunger         int           `toml:"hunger" yaml:"hunger"`
	Fun            int           `toml:"fun" yaml:"fun"`
	Energy         int           `toml:"energy" yaml:"energy"`
	Tick           time.Duration `toml:"tick" yaml:"tick"`
	BaseHP         int           `toml:"base_hp" yaml:"base_hp"`
	HPPerDay       int           `toml:"hp_per_day" yaml:"hp_per_day"`
	MaxHP          int           `toml:"max_hp" yaml:"max_hp"`
	DamageEvery    time.Duration `toml:"damage_every" yaml:"damage_every"`
	RegenEvery     time.Duration `toml:"regen_every" yaml:"regen_every"`
	CriticalHunger int           `toml:"critical_hunger" yaml:"critical_hunger"`
	CriticalLow    int           `toml:"critical_low" yaml:"critical_low"`
	PoopDelay      time.Duration `toml:"poop_delay" yaml:"poop_delay"`
	ActionLock     time.Duration `toml:"action_lock" yaml:"action_lock"`
}

type SaveConfig struct {
	EventInterval time.Duration `toml:"event_interval" yaml:"event_interval"`
	AutoInterval  time.Duration `toml:"auto_interval" yaml:"auto_interval"`
	// AreaOffset and AreaSize place the emulated EEPROM inside flash.
	AreaOffset uint32 `toml:"area_offset" yaml:"area_offset"`
	AreaSize   uint32 `toml:"area_size" yaml:"area_size"`
}

type UIConfig struct {
	Language  string        `toml:"language" yaml:"language"`
	ModalPoll time.Duration `toml:"modal_poll" yaml:"modal_poll"`
	Debounce  time.Duration `toml:"debounce" yaml:"debounce"`
	Notice    time.Duration `toml:"notice" yaml:"notice"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // console or json
}

// Default returns the shipped tuning.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			StatusBarH:  16,
			BottomBarH:  20,
			GroundH:     28,
			BacklightOn: true,
		},
		Clock: ClockConfig{
			TargetFrame:   16667 * time.Microsecond,
			DTMin:         0.004,
			DTMax:         0.05,
			EMAAlpha:      0.2,
			InitialDT:     0.0167,
			AnimPhaseRate: 4.5,
		},
		Dirty: DirtyConfig{
			Capacity:       32,
			Margin:         2,
			MergeTolerance: 0,
		},
		Bubbles: BubbleConfig{
			Pool:           10,
			SpeedMin:       30,
			SpeedJitter:    30,
			IntervalMin:    30,
			IntervalJitter: 30,
			FishSpread:     8,
			FloorOffset:    10,
		},
		Dirt: DirtConfig{
			MaxSpots:        5,
			IntervalMin:     45,
			IntervalMax:     90,
			StartStrength:   15,
			GrowthPerSec:    2,
			PoopStrength:    40,
			GlassMargin:     20,
			GroundClearance: 50,
			PoopSpread:      20,
			PuffPerSpot:     6,
		},
		Particles: ParticleConfig{
			Pool:    30,
			Gravity: 20,
			Damping: 0.98,
			Margin:  2,
		},
		Fish: FishConfig{
			MaxSpeed:      60,
			SteerForce:    80,
			ArriveRadius:  10,
			EaseRadius:    50,
			NoiseRate:     2,
			NoiseAmount:   0.15,
			TailHz:        1.6,
			MoveThreshold: 10,
			RestoreMargin: 8,
		},
		Shrimp: ShrimpConfig{
			Speed:           15,
			TargetThreshold: 2,
			WalkFPS:         6,
		},
		Seahorse: SeahorseConfig{
			SwayMargin: 3,
		},
		Pet: PetConfig{
			Hunger:         30,
			Fun:            70,
			Energy:         80,
			Tick:           time.Second,
			BaseHP:         20,
			HPPerDay:       5,
			MaxHP:          50,
			DamageEvery:    10 * time.Second,
			RegenEvery:     30 * time.Second,
			CriticalHunger: 90,
			CriticalLow:    10,
			PoopDelay:      4 * time.Second,
			ActionLock:     3 * time.Second,
		},
		Save: SaveConfig{
			EventInterval: 30 * time.Second,
			AutoInterval:  10 * time.Minute,
			AreaOffset:    0,
			AreaSize:      1024,
		},
		UI: UIConfig{
			Language:  "en",
			ModalPoll: 100 * time.Millisecond,
			Debounce:  40 * time.Millisecond,
			Notice:    time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

var ErrInvalid = errors.New("invalid config")

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Display.StatusBarH < 0 || c.Display.BottomBarH < 0 || c.Display.GroundH < 0:
		return fmt.Errorf("display bars must not be negative: %w", ErrInvalid)
	case c.Clock.TargetFrame <= 0:
		return fmt.Errorf("clock.target_frame must be positive: %w", ErrInvalid)
	case c.Clock.DTMin <= 0 || c.Clock.DTMax < c.Clock.DTMin:
		return fmt.Errorf("clock dt range [%g, %g]: %w", c.Clock.DTMin, c.Clock.DTMax, ErrInvalid)
	case c.Clock.EMAAlpha <= 0 || c.Clock.EMAAlpha > 1:
		return fmt.Errorf("clock.ema_alpha %g not in (0,1]: %w", c.Clock.EMAAlpha, ErrInvalid)
	case c.Dirty.Capacity < 1:
		return fmt.Errorf("dirty.capacity must be at least 1: %w", ErrInvalid)
	case c.Dirty.MergeTolerance < 0:
		return fmt.Errorf("dirty.merge_tolerance must not be negative: %w", ErrInvalid)
	case c.Bubbles.Pool < 0 || c.Particles.Pool < 0 || c.Dirt.MaxSpots < 0:
		return fmt.Errorf("pool sizes must not be negative: %w", ErrInvalid)
	case c.Dirt.IntervalMax < c.Dirt.IntervalMin:
		return fmt.Errorf("dirt interval range [%g, %g]: %w", c.Dirt.IntervalMin, c.Dirt.IntervalMax, ErrInvalid)
	case c.Fish.MaxSpeed <= 0 || c.Fish.SteerForce <= 0:
		return fmt.Errorf("fish speed and steer force must be positive: %w", ErrInvalid)
	case c.Pet.Tick <= 0:
		return fmt.Errorf("pet.tick must be positive: %w", ErrInvalid)
	case c.Save.AreaSize < 1024:
		return fmt.Errorf("save.area_size %d below 1024: %w", c.Save.AreaSize, ErrInvalid)
	case c.UI.ModalPoll <= 0:
		return fmt.Errorf("ui.modal_poll must be positive: %w", ErrInvalid)
	}
	return nil
}
