package state

import "time"

// PlaybackState walks the recorded frames of a search.
type PlaybackState struct {
	Frame    float64 // current frame, fractional while playing
	MaxFrame float64 // last recorded frame
	Speed    float64 // frames per second
	Playing  bool

	lastUpdate time.Time
}

// NewPlaybackState creates a paused playback at frame 0.
func NewPlaybackState(maxFrame int) *PlaybackState {
	return &PlaybackState{
		MaxFrame:   float64(maxFrame),
		Speed:      10,
		lastUpdate: time.Now(),
	}
}

// Index is the frame to display.
func (p *PlaybackState) Index() int {
	return int(p.Frame)
}

// TogglePlay toggles playback, restarting from the first frame at the end.
func (p *PlaybackState) TogglePlay() {
	if p.Playing {
		p.Pause()
		return
	}
	if p.Frame >= p.MaxFrame {
		p.Frame = 0
	}
	p.Play()
}

func (p *PlaybackState) Play() {
	p.Playing = true
	p.lastUpdate = time.Now()
}

func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset goes back to the first frame and pauses.
func (p *PlaybackState) Reset() {
	p.Frame = 0
	p.Playing = false
}

// Advance moves playback by the time elapsed since the last update.
func (p *PlaybackState) Advance() {
	p.advanceTo(time.Now())
}

func (p *PlaybackState) advanceTo(now time.Time) {
	if !p.Playing {
		return
	}
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.Frame += elapsed * p.Speed
	if p.Frame >= p.MaxFrame {
		p.Frame = p.MaxFrame
		p.Playing = false
	}
}

// SetFrame jumps to frame f, clamped to the recording.
func (p *PlaybackState) SetFrame(f float64) {
	if f < 0 {
		f = 0
	}
	if f > p.MaxFrame {
		f = p.MaxFrame
	}
	p.Frame = f
}

// SetMax updates the last frame while a recording grows.
func (p *PlaybackState) SetMax(maxFrame int) {
	if maxFrame < 0 {
		maxFrame = 0
	}
	p.MaxFrame = float64(maxFrame)
	if p.Frame > p.MaxFrame {
		p.Frame = p.MaxFrame
	}
}

// StepForward pauses and shows the next step.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetFrame(float64(p.Index() + 1))
}

// StepBack pauses and shows the previous step.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetFrame(float64(p.Index() - 1))
}

// SetSpeed sets the frame rate, clamped to [1, 500].
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 500 {
		speed = 500
	}
	p.Speed = speed
}

// Progress returns the playback position as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxFrame <= 0 {
		return 0
	}
	return p.Frame / p.MaxFrame
}
