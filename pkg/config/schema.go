package config

import (
	"encoding/json"
	"math"

	"github.com/knadh/koanf/maps"

	"github.com/vidra-player/vidra/pkg/errors"
)

// SchemaVersion is the configuration schema version written by this build.
// Loaded files carrying an older version are routed through the store's
// migration hook before validation.
const SchemaVersion = 1

// Record is the generic key-value tree used at the serialization boundary.
// Values are whatever a JSON or TOML decoder produces: bool, string, nil,
// numbers (float64, int64 or json.Number) and nested map[string]any.
type Record = map[string]any

// Loop mode choices for playback.loop_mode.
const (
	LoopNone     = "none"
	LoopFile     = "file"
	LoopPlaylist = "playlist"
)

var loopModes = []string{LoopNone, LoopFile, LoopPlaylist}

// PlaybackConfig holds playback behavior settings.
type PlaybackConfig struct {
	StartPaused bool
	LoopMode    string
	Speed       float64
	Hwdec       bool
}

// SubtitleConfig holds subtitle display settings.
type SubtitleConfig struct {
	Enabled         bool
	DefaultLanguage *string
	FontSize        int
	Encoding        string
}

// AudioConfig holds audio output settings.
type AudioConfig struct {
	Volume      int
	Mute        bool
	AudioDevice *string
	Normalize   bool
}

// VideoConfig holds video rendering settings.
type VideoConfig struct {
	Brightness  int
	Contrast    int
	Scaler      string
	Deinterlace bool
}

// Config is a fully-validated settings snapshot. Instances are only ever
// produced by Default, FromRecord or ApplyOverrides, so holding a Config
// means every field already passed its type and range checks.
type Config struct {
	Version  int
	Playback PlaybackConfig
	Subtitle SubtitleConfig
	Audio    AudioConfig
	Video    VideoConfig
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Version: SchemaVersion,
		Playback: PlaybackConfig{
			StartPaused: false,
			LoopMode:    LoopNone,
			Speed:       1.0,
			Hwdec:       true,
		},
		Subtitle: SubtitleConfig{
			Enabled:         true,
			DefaultLanguage: nil,
			FontSize:        36,
			Encoding:        "utf-8",
		},
		Audio: AudioConfig{
			Volume:      80,
			Mute:        false,
			AudioDevice: nil,
			Normalize:   false,
		},
		Video: VideoConfig{
			Brightness:  0,
			Contrast:    0,
			Scaler:      "auto",
			Deinterlace: true,
		},
	}
}

// lookup returns data[key] when present (even if nil), else fallback.
func lookup(data Record, key string, fallback any) any {
	if v, ok := data[key]; ok {
		return v
	}
	return fallback
}

// sectionRecord extracts a nested section map. A missing section yields an
// empty record so defaults apply; a present non-map value is a type error.
func sectionRecord(data Record, name string) (Record, error) {
	raw, ok := data[name]
	if !ok || raw == nil {
		return Record{}, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigType, "%s must be an object", name).
			WithDetail("field", name)
	}
	return section, nil
}

func coerceBool(value any, field string) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, errors.Newf(errors.ErrConfigType, "%s must be a boolean", field).
		WithDetail("field", field)
}

// asInt64 normalizes the integer encodings our decoders produce. Booleans
// are rejected up front so true is never read as 1.
func asInt64(value any, field string) (int64, error) {
	switch n := value.(type) {
	case bool:
		return 0, errors.Newf(errors.ErrConfigType, "%s must not be a boolean", field).
			WithDetail("field", field)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, errors.Newf(errors.ErrConfigType, "%s must be an integer", field).
				WithDetail("field", field)
		}
		return int64(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return 0, errors.Newf(errors.ErrConfigType, "%s must be an integer", field).
			WithDetail("field", field)
	default:
		return 0, errors.Newf(errors.ErrConfigType, "%s must be an integer", field).
			WithDetail("field", field)
	}
}

func coerceInt(value any, field string, min, max int) (int, error) {
	i, err := asInt64(value, field)
	if err != nil {
		return 0, err
	}
	if i < int64(min) {
		return 0, errors.Newf(errors.ErrConfigRange, "%s must be at least %d", field, min).
			WithDetail("field", field)
	}
	if i > int64(max) {
		return 0, errors.Newf(errors.ErrConfigRange, "%s must be at most %d", field, max).
			WithDetail("field", field)
	}
	return int(i), nil
}

func coerceFloat(value any, field string, min, max float64) (float64, error) {
	var f float64
	switch n := value.(type) {
	case bool:
		return 0, errors.Newf(errors.ErrConfigType, "%s must not be a boolean", field).
			WithDetail("field", field)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, errors.Newf(errors.ErrConfigType, "%s must be a number", field).
				WithDetail("field", field)
		}
		f = parsed
	default:
		return 0, errors.Newf(errors.ErrConfigType, "%s must be a number", field).
			WithDetail("field", field)
	}
	if f < min {
		return 0, errors.Newf(errors.ErrConfigRange, "%s must be at least %g", field, min).
			WithDetail("field", field)
	}
	if f > max {
		return 0, errors.Newf(errors.ErrConfigRange, "%s must be at most %g", field, max).
			WithDetail("field", field)
	}
	return f, nil
}

func coerceString(value any, field string) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", errors.Newf(errors.ErrConfigType, "%s must be a string", field).
		WithDetail("field", field)
}

// coerceOptString accepts a string or nil (serialized as JSON null).
func coerceOptString(value any, field string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.(string); ok {
		return &s, nil
	}
	return nil, errors.Newf(errors.ErrConfigType, "%s must be a string or null", field).
		WithDetail("field", field)
}

func validateChoice(value string, choices []string, field string) (string, error) {
	for _, c := range choices {
		if value == c {
			return value, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigChoice, "%s must be one of %v", field, choices).
		WithDetail("field", field).
		WithDetail("choices", choices)
}

func playbackFromRecord(data Record) (PlaybackConfig, error) {
	defaults := Default().Playback
	startPaused, err := coerceBool(lookup(data, "start_paused", defaults.StartPaused), "playback.start_paused")
	if err != nil {
		return PlaybackConfig{}, err
	}
	loopRaw, err := coerceString(lookup(data, "loop_mode", defaults.LoopMode), "playback.loop_mode")
	if err != nil {
		return PlaybackConfig{}, err
	}
	loopMode, err := validateChoice(loopRaw, loopModes, "playback.loop_mode")
	if err != nil {
		return PlaybackConfig{}, err
	}
	speed, err := coerceFloat(lookup(data, "speed", defaults.Speed), "playback.speed", 0.25, 4.0)
	if err != nil {
		return PlaybackConfig{}, err
	}
	hwdec, err := coerceBool(lookup(data, "hwdec", defaults.Hwdec), "playback.hwdec")
	if err != nil {
		return PlaybackConfig{}, err
	}
	return PlaybackConfig{StartPaused: startPaused, LoopMode: loopMode, Speed: speed, Hwdec: hwdec}, nil
}

func subtitleFromRecord(data Record) (SubtitleConfig, error) {
	defaults := Default().Subtitle
	enabled, err := coerceBool(lookup(data, "enabled", defaults.Enabled), "subtitle.enabled")
	if err != nil {
		return SubtitleConfig{}, err
	}
	language, err := coerceOptString(lookup(data, "default_language", nil), "subtitle.default_language")
	if err != nil {
		return SubtitleConfig{}, err
	}
	fontSize, err := coerceInt(lookup(data, "font_size", defaults.FontSize), "subtitle.font_size", 8, 96)
	if err != nil {
		return SubtitleConfig{}, err
	}
	encoding, err := coerceString(lookup(data, "encoding", defaults.Encoding), "subtitle.encoding")
	if err != nil {
		return SubtitleConfig{}, err
	}
	return SubtitleConfig{Enabled: enabled, DefaultLanguage: language, FontSize: fontSize, Encoding: encoding}, nil
}

func audioFromRecord(data Record) (AudioConfig, error) {
	defaults := Default().Audio
	volume, err := coerceInt(lookup(data, "volume", defaults.Volume), "audio.volume", 0, 130)
	if err != nil {
		return AudioConfig{}, err
	}
	mute, err := coerceBool(lookup(data, "mute", defaults.Mute), "audio.mute")
	if err != nil {
		return AudioConfig{}, err
	}
	device, err := coerceOptString(lookup(data, "audio_device", nil), "audio.audio_device")
	if err != nil {
		return AudioConfig{}, err
	}
	normalize, err := coerceBool(lookup(data, "normalize", defaults.Normalize), "audio.normalize")
	if err != nil {
		return AudioConfig{}, err
	}
	return AudioConfig{Volume: volume, Mute: mute, AudioDevice: device, Normalize: normalize}, nil
}

func videoFromRecord(data Record) (VideoConfig, error) {
	defaults := Default().Video
	brightness, err := coerceInt(lookup(data, "brightness", defaults.Brightness), "video.brightness", -100, 100)
	if err != nil {
		return VideoConfig{}, err
	}
	contrast, err := coerceInt(lookup(data, "contrast", defaults.Contrast), "video.contrast", -100, 100)
	if err != nil {
		return VideoConfig{}, err
	}
	scaler, err := coerceString(lookup(data, "scaler", defaults.Scaler), "video.scaler")
	if err != nil {
		return VideoConfig{}, err
	}
	deinterlace, err := coerceBool(lookup(data, "deinterlace", defaults.Deinterlace), "video.deinterlace")
	if err != nil {
		return VideoConfig{}, err
	}
	return VideoConfig{Brightness: brightness, Contrast: contrast, Scaler: scaler, Deinterlace: deinterlace}, nil
}

// FromRecord validates a generic record and builds a Config from it. Missing
// keys take their defaults, unknown keys are ignored, and the first field
// failing its type, range or choice rule aborts the whole construction.
func FromRecord(data Record) (Config, error) {
	version, err := coerceInt(lookup(data, "version", SchemaVersion), "version", 1, math.MaxInt32)
	if err != nil {
		return Config{}, err
	}

	playbackRec, err := sectionRecord(data, "playback")
	if err != nil {
		return Config{}, err
	}
	playback, err := playbackFromRecord(playbackRec)
	if err != nil {
		return Config{}, err
	}

	subtitleRec, err := sectionRecord(data, "subtitle")
	if err != nil {
		return Config{}, err
	}
	subtitle, err := subtitleFromRecord(subtitleRec)
	if err != nil {
		return Config{}, err
	}

	audioRec, err := sectionRecord(data, "audio")
	if err != nil {
		return Config{}, err
	}
	audio, err := audioFromRecord(audioRec)
	if err != nil {
		return Config{}, err
	}

	videoRec, err := sectionRecord(data, "video")
	if err != nil {
		return Config{}, err
	}
	video, err := videoFromRecord(videoRec)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Version:  version,
		Playback: playback,
		Subtitle: subtitle,
		Audio:    audio,
		Video:    video,
	}, nil
}

func optStringValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// ToRecord serializes the Config into the persistence shape. Every field is
// present; FromRecord(c.ToRecord()) reconstructs c exactly.
func (c Config) ToRecord() Record {
	return Record{
		"version": c.Version,
		"playback": map[string]any{
			"start_paused": c.Playback.StartPaused,
			"loop_mode":    c.Playback.LoopMode,
			"speed":        c.Playback.Speed,
			"hwdec":        c.Playback.Hwdec,
		},
		"subtitle": map[string]any{
			"enabled":          c.Subtitle.Enabled,
			"default_language": optStringValue(c.Subtitle.DefaultLanguage),
			"font_size":        c.Subtitle.FontSize,
			"encoding":         c.Subtitle.Encoding,
		},
		"audio": map[string]any{
			"volume":       c.Audio.Volume,
			"mute":         c.Audio.Mute,
			"audio_device": optStringValue(c.Audio.AudioDevice),
			"normalize":    c.Audio.Normalize,
		},
		"video": map[string]any{
			"brightness":  c.Video.Brightness,
			"contrast":    c.Video.Contrast,
			"scaler":      c.Video.Scaler,
			"deinterlace": c.Video.Deinterlace,
		},
	}
}

var sectionNames = []string{"playback", "subtitle", "audio", "video"}

// SectionNames returns the configuration section names in render order.
func SectionNames() []string {
	return append([]string(nil), sectionNames...)
}

// ApplyOverrides merges a partial record onto this Config and returns a new
// validated instance. For each section present in the override, its keys win
// over the current values and the merged section is re-validated; sections
// absent from the override carry over unchanged. The receiver is never
// mutated.
func (c Config) ApplyOverrides(overrides Record) (Config, error) {
	merged := c.ToRecord()
	for _, name := range sectionNames {
		raw, ok := overrides[name]
		if !ok {
			continue
		}
		section, ok := raw.(map[string]any)
		if !ok {
			return Config{}, errors.Newf(errors.ErrConfigType, "%s override must be an object", name).
				WithDetail("field", name)
		}
		base := merged[name].(map[string]any)
		maps.Merge(section, base)
	}
	if v, ok := overrides["version"]; ok {
		merged["version"] = v
	}
	return FromRecord(merged)
}
