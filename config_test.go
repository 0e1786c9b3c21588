package laserflow

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/gogpu/laserflow/anim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BeamCount != 20 || cfg.Speed != 1 {
		t.Errorf("BeamCount, Speed = %d, %v; want 20, 1", cfg.BeamCount, cfg.Speed)
	}
	if !slices.Equal(cfg.Colors, DefaultColors) {
		t.Errorf("Colors = %v, want %v", cfg.Colors, DefaultColors)
	}
	if !cfg.GlowEnabled || cfg.GlowBlur != 15 || !cfg.PauseOnHidden || !cfg.AdaptivePerformance {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}

	// The palette must be a copy.
	cfg.Colors[0] = "#000000"
	if DefaultColors[0] != "#00ffff" {
		t.Error("DefaultConfig shares its palette with DefaultColors")
	}
}

func TestNewConfig_Options(t *testing.T) {
	colors := []string{"#ff0000", "#00ff00"}
	cfg := NewConfig(
		WithBeamCount(5),
		WithSpeed(2.5),
		WithColors(colors...),
		WithLineWidth(2, 3),
		WithLength(10, 20),
		WithOpacity(0.1, 0.9),
		WithGlow(false, 4),
		WithPauseOnHidden(false),
		WithAdaptivePerformance(false),
	)
	colors[0] = "#ffffff"

	want := Config{
		BeamCount:    5,
		Speed:        2.5,
		Colors:       []string{"#ff0000", "#00ff00"},
		MinLineWidth: 2, MaxLineWidth: 3,
		MinLength: 10, MaxLength: 20,
		MinOpacity: 0.1, MaxOpacity: 0.9,
		GlowEnabled: false, GlowBlur: 4,
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("NewConfig() = %+v, want %+v", cfg, want)
	}
}

func TestResolveConfig_Adaptive(t *testing.T) {
	lowEnd := anim.DeviceInfo{CPUs: 2}
	capable := anim.DeviceInfo{CPUs: 16, MemoryGB: 32}

	tests := []struct {
		name      string
		cfg       Config
		dev       anim.DeviceInfo
		wantBeams int
		wantGlow  bool
	}{
		{"low-end halves beams", NewConfig(WithBeamCount(15)), lowEnd, 7, false},
		{"low-end even count", NewConfig(WithBeamCount(20)), lowEnd, 10, false},
		{"capable device untouched", NewConfig(WithBeamCount(15)), capable, 15, true},
		{"adaptive disabled", NewConfig(WithBeamCount(15), WithAdaptivePerformance(false)), lowEnd, 15, true},
		{"no signals", NewConfig(WithBeamCount(15)), anim.DeviceInfo{}, 15, true},
		{"reduced motion", NewConfig(WithBeamCount(9)), anim.DeviceInfo{CPUs: 16, ReducedMotion: true}, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveConfig(tt.cfg, tt.dev)
			if got.BeamCount != tt.wantBeams {
				t.Errorf("BeamCount = %d, want %d", got.BeamCount, tt.wantBeams)
			}
			if got.GlowEnabled != tt.wantGlow {
				t.Errorf("GlowEnabled = %v, want %v", got.GlowEnabled, tt.wantGlow)
			}
		})
	}
}

func TestResolveConfig_DoesNotModifyInput(t *testing.T) {
	cfg := NewConfig(WithBeamCount(10))
	got := ResolveConfig(cfg, anim.DeviceInfo{CPUs: 1})
	got.Colors[0] = "#123456"
	if cfg.BeamCount != 10 || !cfg.GlowEnabled || cfg.Colors[0] != DefaultColors[0] {
		t.Errorf("input changed: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []error
	}{
		{"zero beams", NewConfig(WithBeamCount(0)), []error{ErrBeamCount}},
		{"negative speed", NewConfig(WithSpeed(-1)), []error{ErrSpeed}},
		{"no colors", NewConfig(WithColors()), []error{ErrNoColors}},
		{"inverted width", NewConfig(WithLineWidth(4, 1)), []error{ErrLineWidthRange}},
		{"inverted length", NewConfig(WithLength(300, 100)), []error{ErrLengthRange}},
		{"opacity above one", NewConfig(WithOpacity(0.2, 1.5)), []error{ErrOpacityRange}},
		{"negative blur", NewConfig(WithGlow(true, -1)), []error{ErrGlowBlur}},
		{"several", NewConfig(WithBeamCount(-3), WithColors()), []error{ErrBeamCount, ErrNoColors}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, want it to wrap %v", err, want)
				}
			}
		})
	}
}

func TestSanitize_EmptyPalette(t *testing.T) {
	cfg := sanitize(NewConfig(WithColors()))
	if !slices.Equal(cfg.Colors, DefaultColors) {
		t.Errorf("Colors = %v, want defaults", cfg.Colors)
	}
}
