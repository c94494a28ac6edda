// Package player wraps an external media-playback engine behind a narrow
// interface and exposes a UI-agnostic facade plus an observable playback
// state model. The engine itself (libmpv or compatible) lives outside this
// repository; vidra only drives it.
package player

// Property names understood by the engine. These follow the mpv property
// naming scheme since that is the engine the shell is built around.
const (
	PropVolume       = "volume"
	PropMute         = "mute"
	PropPosition     = "time-pos"
	PropDuration     = "duration"
	PropSpeed        = "speed"
	PropPause        = "pause"
	PropEOF          = "eof-reached"
	PropHwdec        = "hwdec"
	PropBrightness   = "brightness"
	PropContrast     = "contrast"
	PropDeinterlace  = "deinterlace"
	PropScaler       = "scale"
	PropSubVisible   = "sub-visibility"
	PropSubFontSize  = "sub-font-size"
	PropSubCodepage  = "sub-codepage"
	PropSubLanguage  = "slang"
	PropAudioDevice  = "audio-device"
	PropAudioNorm    = "af"
	PropLoopFile     = "loop-file"
	PropLoopPlaylist = "loop-playlist"
)

// Engine is the minimal surface vidra needs from a playback engine. All
// calls are synchronous; the engine owns its own threads and event loop.
type Engine interface {
	// LoadFile loads and starts playing a local media file.
	LoadFile(path string) error

	// SetPause pauses or resumes playback.
	SetPause(paused bool) error

	// Seek moves the playback position, in seconds. Relative seeks are
	// offsets from the current position, absolute seeks from the start.
	Seek(seconds float64, relative bool) error

	// SetRenderTarget binds video output to a native window handle.
	SetRenderTarget(handle uintptr) error

	// Property accessors for the engine's named properties.
	FloatProperty(name string) (float64, error)
	BoolProperty(name string) (bool, error)
	SetFloatProperty(name string, value float64) error
	SetBoolProperty(name string, value bool) error
	SetStringProperty(name string, value string) error

	// Shutdown terminates the engine instance. The Engine must not be used
	// afterwards.
	Shutdown() error
}
