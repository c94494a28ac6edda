package player

// StateProp identifies which playback property changed in a notification.
type StateProp string

const (
	StateFilePath StateProp = "file_path"
	StatePlaying  StateProp = "playing"
	StatePaused   StateProp = "paused"
	StatePosition StateProp = "position"
	StateDuration StateProp = "duration"
	StateVolume   StateProp = "volume"
	StateMute     StateProp = "mute"
	StateSpeed    StateProp = "speed"
	StateEOF      StateProp = "eof"
)

// Listener receives playback state change notifications.
type Listener func(prop StateProp, value any)

// State is an observable snapshot of the engine's playback status. Setters
// notify subscribed listeners only when the value actually changed, so a UI
// can bind widgets to it without diffing. State is not safe for concurrent
// use; the host application drives it from a single loop.
type State struct {
	filePath  string
	playing   bool
	paused    bool
	position  float64
	duration  float64
	volume    float64
	mute      bool
	speed     float64
	eof       bool
	listeners []Listener
}

// NewState returns a State with idle defaults.
func NewState() *State {
	return &State{volume: 100.0, speed: 1.0}
}

// Subscribe registers a listener for state changes.
func (s *State) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *State) notify(prop StateProp, value any) {
	for _, l := range s.listeners {
		l(prop, value)
	}
}

// FilePath returns the path of the currently loaded file.
func (s *State) FilePath() string { return s.filePath }

// SetFilePath updates the loaded file path.
func (s *State) SetFilePath(v string) {
	if v == s.filePath {
		return
	}
	s.filePath = v
	s.notify(StateFilePath, v)
}

// Playing reports whether playback is active (not paused or stopped).
func (s *State) Playing() bool { return s.playing }

// SetPlaying updates the playing flag.
func (s *State) SetPlaying(v bool) {
	if v == s.playing {
		return
	}
	s.playing = v
	s.notify(StatePlaying, v)
}

// Paused reports whether playback is paused.
func (s *State) Paused() bool { return s.paused }

// SetPaused updates the paused flag.
func (s *State) SetPaused(v bool) {
	if v == s.paused {
		return
	}
	s.paused = v
	s.notify(StatePaused, v)
}

// Position returns the playback position in seconds.
func (s *State) Position() float64 { return s.position }

// SetPosition updates the playback position.
func (s *State) SetPosition(v float64) {
	if v == s.position {
		return
	}
	s.position = v
	s.notify(StatePosition, v)
}

// Duration returns the media duration in seconds, 0 when unknown.
func (s *State) Duration() float64 { return s.duration }

// SetDuration updates the media duration.
func (s *State) SetDuration(v float64) {
	if v == s.duration {
		return
	}
	s.duration = v
	s.notify(StateDuration, v)
}

// Volume returns the current volume.
func (s *State) Volume() float64 { return s.volume }

// SetVolume updates the volume.
func (s *State) SetVolume(v float64) {
	if v == s.volume {
		return
	}
	s.volume = v
	s.notify(StateVolume, v)
}

// Mute reports whether audio is muted.
func (s *State) Mute() bool { return s.mute }

// SetMute updates the mute flag.
func (s *State) SetMute(v bool) {
	if v == s.mute {
		return
	}
	s.mute = v
	s.notify(StateMute, v)
}

// Speed returns the playback speed multiplier.
func (s *State) Speed() float64 { return s.speed }

// SetSpeed updates the playback speed.
func (s *State) SetSpeed(v float64) {
	if v == s.speed {
		return
	}
	s.speed = v
	s.notify(StateSpeed, v)
}

// EOF reports whether playback reached the end of the media.
func (s *State) EOF() bool { return s.eof }

// SetEOF updates the end-of-file flag.
func (s *State) SetEOF(v bool) {
	if v == s.eof {
		return
	}
	s.eof = v
	s.notify(StateEOF, v)
}
