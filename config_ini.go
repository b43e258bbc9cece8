package saguaro

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadConfig overlays an INI document onto DefaultConfig and validates the
// result. Keys that are absent keep their default. Example:
//
//	[canvas]
//	width = 1024
//	height = 576
//
//	[cactus]
//	radius_min = 4
//	radius_max = 9
//	evict_offscreen = true
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	// Colors are written as #rrggbb, so an inline comment needs a space
	// before its '#'.
	f, err := ini.LoadSources(ini.LoadOptions{SpaceBeforeInlineComment: true}, data)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	l := iniLoader{f: f}
	l.floatKey("canvas", "width", &cfg.Width)
	l.floatKey("canvas", "height", &cfg.Height)

	l.intKey("sky", "max_time", &cfg.MaxTime)
	l.floatKey("sky", "night_opacity_min", &cfg.NightOpacity.Min)
	l.floatKey("sky", "night_opacity_max", &cfg.NightOpacity.Max)
	l.colorKey("sky", "color", &cfg.SkyColor)
	l.colorKey("sky", "night_color", &cfg.NightColor)

	l.intKey("stars", "count", &cfg.TotalStars)
	l.floatKey("stars", "radius", &cfg.StarRadius)
	l.colorKey("stars", "color", &cfg.StarColor)

	l.hill("hills.back", &cfg.BackHills)
	l.hill("hills.front", &cfg.FrontHills)

	l.floatKey("ground", "level", &cfg.GroundLevel)
	l.colorKey("ground", "color", &cfg.SandColor)

	l.floatKey("cactus", "depth_span", &cfg.DepthSpan)
	l.floatKey("cactus", "radius_min", &cfg.CactusRadius.Min)
	l.floatKey("cactus", "radius_max", &cfg.CactusRadius.Max)
	l.floatKey("cactus", "segment_length_min", &cfg.SegmentLength.Min)
	l.floatKey("cactus", "segment_length_max", &cfg.SegmentLength.Max)
	l.intKey("cactus", "segments_min", &cfg.MinSegments)
	l.intKey("cactus", "segments_max", &cfg.MaxSegments)
	l.floatKey("cactus", "vertical_skew", &cfg.VerticalSkew)
	l.intKey("cactus", "batch_size", &cfg.CactiPerBatch)
	l.colorKey("cactus", "color", &cfg.CactusColor)
	l.floatKey("cactus", "green_min", &cfg.CactusGreen.Min)
	l.floatKey("cactus", "green_max", &cfg.CactusGreen.Max)
	l.boolKey("cactus", "evict_offscreen", &cfg.EvictOffscreen)

	l.floatKey("scroll", "speed_min", &cfg.Speed.Min)
	l.floatKey("scroll", "speed_max", &cfg.Speed.Max)
	l.intKey("scroll", "start", &cfg.StartPosition)

	if l.err != nil {
		return cfg, fmt.Errorf("load config: %w", l.err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// iniLoader reads optional keys and keeps the first parse error.
type iniLoader struct {
	f   *ini.File
	err error
}

func (l *iniLoader) key(section, name string) *ini.Key {
	if l.err != nil {
		return nil
	}
	sec, err := l.f.GetSection(section)
	if err != nil || !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (l *iniLoader) fail(section, name string, err error) {
	l.err = fmt.Errorf("[%s] %s: %w", section, name, err)
}

func (l *iniLoader) floatKey(section, name string, dst *float64) {
	k := l.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Float64()
	if err != nil {
		l.fail(section, name, err)
		return
	}
	*dst = v
}

func (l *iniLoader) intKey(section, name string, dst *int) {
	k := l.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Int()
	if err != nil {
		l.fail(section, name, err)
		return
	}
	*dst = v
}

func (l *iniLoader) boolKey(section, name string, dst *bool) {
	k := l.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Bool()
	if err != nil {
		l.fail(section, name, err)
		return
	}
	*dst = v
}

func (l *iniLoader) colorKey(section, name string, dst *Color) {
	k := l.key(section, name)
	if k == nil {
		return
	}
	c, err := ParseHex(k.String())
	if err != nil {
		l.fail(section, name, err)
		return
	}
	*dst = c
}

func (l *iniLoader) hill(section string, dst *HillConfig) {
	l.floatKey(section, "baseline", &dst.Baseline)
	l.floatKey(section, "amplitude_min", &dst.Amplitude.Min)
	l.floatKey(section, "amplitude_max", &dst.Amplitude.Max)
	l.floatKey(section, "frequency_min", &dst.Frequency.Min)
	l.floatKey(section, "frequency_max", &dst.Frequency.Max)
	l.floatKey(section, "scroll_divisor", &dst.ScrollDivisor)
	l.colorKey(section, "color", &dst.Color)
}
