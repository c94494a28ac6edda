package player

import (
	"github.com/vidra-player/vidra/pkg/config"
	"github.com/vidra-player/vidra/pkg/errors"
	"github.com/vidra-player/vidra/pkg/logging"
)

// Player is the facade UI code uses to control playback. It owns an injected
// Engine and keeps an observable State in sync with it via Refresh.
type Player struct {
	engine Engine
	state  *State
}

// New returns a Player driving the given engine.
func New(engine Engine) *Player {
	return &Player{engine: engine, state: NewState()}
}

// State exposes the observable playback state for UI bindings.
func (p *Player) State() *State {
	return p.state
}

// Open loads and starts playing a local media file.
func (p *Player) Open(path string) error {
	if err := p.engine.LoadFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrEngine, "failed to load %s", path)
	}
	p.state.SetFilePath(path)
	p.state.SetEOF(false)
	p.state.SetPlaying(true)
	return nil
}

// Pause pauses playback.
func (p *Player) Pause() error {
	return p.setPause(true)
}

// Resume resumes playback.
func (p *Player) Resume() error {
	return p.setPause(false)
}

// TogglePause flips the pause state.
func (p *Player) TogglePause() error {
	return p.setPause(!p.state.Paused())
}

func (p *Player) setPause(paused bool) error {
	if err := p.engine.SetPause(paused); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to set pause state")
	}
	p.state.SetPaused(paused)
	p.state.SetPlaying(!paused && p.state.FilePath() != "")
	return nil
}

// Seek moves the playback position by seconds (relative) or to seconds
// (absolute).
func (p *Player) Seek(seconds float64, relative bool) error {
	if err := p.engine.Seek(seconds, relative); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "seek failed")
	}
	return nil
}

// SetRenderTarget binds the engine's video output to a native window handle.
func (p *Player) SetRenderTarget(handle uintptr) error {
	if err := p.engine.SetRenderTarget(handle); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to bind render target")
	}
	return nil
}

// Shutdown releases engine resources.
func (p *Player) Shutdown() error {
	if err := p.engine.Shutdown(); err != nil {
		return errors.Wrap(err, errors.ErrEngine, "engine shutdown failed")
	}
	return nil
}

// ApplyConfig pushes configuration values into the engine. This is the only
// place configuration and playback meet; the config subsystem itself never
// talks to the engine.
func (p *Player) ApplyConfig(cfg config.Config) error {
	logger := logging.GetLogger("player")

	type propSet struct {
		name string
		set  func() error
	}

	hwdec := "no"
	if cfg.Playback.Hwdec {
		hwdec = "auto"
	}
	loopFile, loopPlaylist := "no", "no"
	switch cfg.Playback.LoopMode {
	case config.LoopFile:
		loopFile = "inf"
	case config.LoopPlaylist:
		loopPlaylist = "inf"
	}

	sets := []propSet{
		{PropPause, func() error { return p.engine.SetBoolProperty(PropPause, cfg.Playback.StartPaused) }},
		{PropSpeed, func() error { return p.engine.SetFloatProperty(PropSpeed, cfg.Playback.Speed) }},
		{PropHwdec, func() error { return p.engine.SetStringProperty(PropHwdec, hwdec) }},
		{PropLoopFile, func() error { return p.engine.SetStringProperty(PropLoopFile, loopFile) }},
		{PropLoopPlaylist, func() error { return p.engine.SetStringProperty(PropLoopPlaylist, loopPlaylist) }},
		{PropVolume, func() error { return p.engine.SetFloatProperty(PropVolume, float64(cfg.Audio.Volume)) }},
		{PropMute, func() error { return p.engine.SetBoolProperty(PropMute, cfg.Audio.Mute) }},
		{PropSubVisible, func() error { return p.engine.SetBoolProperty(PropSubVisible, cfg.Subtitle.Enabled) }},
		{PropSubFontSize, func() error { return p.engine.SetFloatProperty(PropSubFontSize, float64(cfg.Subtitle.FontSize)) }},
		{PropSubCodepage, func() error { return p.engine.SetStringProperty(PropSubCodepage, cfg.Subtitle.Encoding) }},
		{PropBrightness, func() error { return p.engine.SetFloatProperty(PropBrightness, float64(cfg.Video.Brightness)) }},
		{PropContrast, func() error { return p.engine.SetFloatProperty(PropContrast, float64(cfg.Video.Contrast)) }},
		{PropDeinterlace, func() error { return p.engine.SetBoolProperty(PropDeinterlace, cfg.Video.Deinterlace) }},
	}

	if cfg.Video.Scaler != "auto" {
		sets = append(sets, propSet{PropScaler, func() error {
			return p.engine.SetStringProperty(PropScaler, cfg.Video.Scaler)
		}})
	}
	if cfg.Subtitle.DefaultLanguage != nil {
		sets = append(sets, propSet{PropSubLanguage, func() error {
			return p.engine.SetStringProperty(PropSubLanguage, *cfg.Subtitle.DefaultLanguage)
		}})
	}
	if cfg.Audio.AudioDevice != nil {
		sets = append(sets, propSet{PropAudioDevice, func() error {
			return p.engine.SetStringProperty(PropAudioDevice, *cfg.Audio.AudioDevice)
		}})
	}
	if cfg.Audio.Normalize {
		sets = append(sets, propSet{PropAudioNorm, func() error {
			return p.engine.SetStringProperty(PropAudioNorm, "dynaudnorm")
		}})
	}

	for _, s := range sets {
		if err := s.set(); err != nil {
			return errors.Wrapf(err, errors.ErrEngine, "failed to apply %s", s.name)
		}
	}

	p.state.SetVolume(float64(cfg.Audio.Volume))
	p.state.SetMute(cfg.Audio.Mute)
	p.state.SetSpeed(cfg.Playback.Speed)
	logger.Debug().Msg("configuration applied to engine")
	return nil
}

// Refresh polls the engine's playback properties into the observable state.
// The host application calls this from its timer or event loop.
func (p *Player) Refresh() error {
	position, err := p.engine.FloatProperty(PropPosition)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read position")
	}
	duration, err := p.engine.FloatProperty(PropDuration)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read duration")
	}
	paused, err := p.engine.BoolProperty(PropPause)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read pause state")
	}
	eof, err := p.engine.BoolProperty(PropEOF)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read eof state")
	}
	volume, err := p.engine.FloatProperty(PropVolume)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read volume")
	}
	mute, err := p.engine.BoolProperty(PropMute)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read mute state")
	}
	speed, err := p.engine.FloatProperty(PropSpeed)
	if err != nil {
		return errors.Wrap(err, errors.ErrEngine, "failed to read speed")
	}

	p.state.SetPosition(position)
	p.state.SetDuration(duration)
	p.state.SetPaused(paused)
	p.state.SetPlaying(!paused && p.state.FilePath() != "" && !eof)
	p.state.SetEOF(eof)
	p.state.SetVolume(volume)
	p.state.SetMute(mute)
	p.state.SetSpeed(speed)
	return nil
}
