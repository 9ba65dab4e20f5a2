package ssd1306flip

import (
	"context"
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultFramePeriod is the empirically chosen half-refresh interval.
// At the default oscillator setting the panel refreshes at roughly 132Hz;
// one upload per half has to land inside each scan, and 7572µs is the value
// that keeps the flip ahead of the beam without a feedback channel.
const DefaultFramePeriod = 7572 * time.Microsecond

// idleThreshold is the minimum deadline slack worth sleeping for. Below it
// the loop busy-spins so the wakeup jitter cannot push a tick past its
// deadline.
const idleThreshold = 1500 * time.Microsecond

// debounceSamples is how many consecutive identical reads the mode button
// needs before a level is trusted.
const debounceSamples = 2

// Config is the frame scheduler configuration.
type Config struct {
	// Mode is the initial geometry mode. The button cycles through all
	// modes starting from it.
	Mode GeometryMode

	// DitherPhases is the dither cycle length, 2 or 3 (default 3). With 3
	// phases every third tick is a hold tick: rendering and upload are
	// skipped and the displayed half rests one extra frame, while the
	// start-line flip still happens.
	DitherPhases int

	// FramePeriod is the scheduler period (default DefaultFramePeriod).
	FramePeriod time.Duration

	// Button is an optional active-low mode-select button.
	Button gpio.PinIO
}

// Loop is the frame scheduler. It owns all per-session mutable state: the
// frame counter, the dither phase, the geometry mode and the pacing
// deadline.
type Loop struct {
	dev    *Dev
	scene  *Scene
	period time.Duration
	phases int
	button gpio.PinIO

	// Clock and idle primitives, swappable in tests.
	now  func() time.Time
	idle func(time.Duration)

	frame       uint32
	ditherPhase int
	deadline    time.Time
	mode        GeometryMode

	// Button debounce state
	btnLevel gpio.Level
	btnCount int
	btnHeld  bool

	initialized bool
}

// NewLoop creates a frame scheduler for the device. cfg can be nil to use
// defaults (centered mode, 3 dither phases, DefaultFramePeriod).
func NewLoop(dev *Dev, cfg *Config) (*Loop, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	phases := cfg.DitherPhases
	if phases == 0 {
		phases = 3
	}
	table, err := NewDitherTable(phases)
	if err != nil {
		return nil, err
	}

	period := cfg.FramePeriod
	if period == 0 {
		period = DefaultFramePeriod
	}
	if period < 0 {
		return nil, errors.New("ssd1306flip: frame period must be positive")
	}
	if cfg.Mode < Centered || cfg.Mode > Zoom {
		return nil, errors.New("ssd1306flip: invalid geometry mode")
	}

	return &Loop{
		dev:      dev,
		scene:    NewScene(table),
		period:   period,
		phases:   phases,
		button:   cfg.Button,
		now:      time.Now,
		idle:     time.Sleep,
		mode:     cfg.Mode,
		btnLevel: gpio.High,
	}, nil
}

// Initialize performs the one-time setup: applies the geometry mode, ships
// both (cleared) framebuffer halves so GDDRAM starts blank, selects half 0
// for display and arms the pacing deadline.
func (l *Loop) Initialize() error {
	if err := l.dev.ApplyGeometryMode(l.mode); err != nil {
		return err
	}
	if err := l.dev.UploadAndClear(0); err != nil {
		return err
	}
	if err := l.dev.UploadAndClear(1); err != nil {
		return err
	}
	if err := l.dev.SelectDisplayedHalf(0); err != nil {
		return err
	}

	l.deadline = l.now().Add(l.period)
	l.initialized = true
	return nil
}

// RunOnce performs one pacing iteration. If a full period has elapsed it
// advances the deadline and frame counter, runs the tick body and returns
// true. Otherwise it idles (or spins, when the slack is too short to sleep
// reliably) and returns false.
//
// A tick that overruns its period is absorbed silently: the next call finds
// the deadline already past and fires immediately. The cost is visual
// (flicker under sustained pressure), never structural.
func (l *Loop) RunOnce() (bool, error) {
	if !l.initialized {
		return false, errors.New("ssd1306flip: loop not initialized")
	}

	remaining := l.deadline.Sub(l.now())
	if remaining > 0 {
		if remaining > idleThreshold {
			l.idle(remaining)
		}
		return false, nil
	}

	l.deadline = l.deadline.Add(l.period)
	err := l.tick()
	l.frame++
	return true, err
}

// Run drives the loop until ctx is done, calling Initialize first if the
// caller has not.
func (l *Loop) Run(ctx context.Context) error {
	if !l.initialized {
		if err := l.Initialize(); err != nil {
			return err
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if _, err := l.RunOnce(); err != nil {
			return err
		}
	}
}

// Frame returns the number of ticks run so far.
func (l *Loop) Frame() uint32 {
	return l.frame
}

// Mode returns the geometry mode currently applied.
func (l *Loop) Mode() GeometryMode {
	return l.mode
}

// tick runs one frame: render into the off-screen half, upload and clear
// it, flip the displayed half, then housekeeping. Within a tick the order
// is fixed; across ticks the halves alternate, which is the entire
// discipline keeping the controller from scanning a half mid-rewrite.
func (l *Loop) tick() error {
	displayHalf := int(l.frame % 2)
	renderHalf := 1 - displayHalf

	// Hold tick: the half that just became visible rests one extra frame.
	// The dither phase is a separate counter that only advances on render
	// ticks; tying it to the frame counter would pin the holds to one table
	// column and that column would never reach the panel.
	hold := l.phases == 3 && l.frame%3 == 2
	if !hold {
		l.scene.Render(l.dev.fb, l.frame, renderHalf, l.ditherPhase)
		if err := l.dev.UploadAndClear(renderHalf); err != nil {
			return err
		}
		l.ditherPhase = (l.ditherPhase + 1) % l.phases
	}

	// One geometry command per tick, no more: the start line latches a full
	// blanking interval late and nothing can compensate for that without a
	// feedback signal the hardware does not have.
	if err := l.dev.SelectDisplayedHalf(displayHalf); err != nil {
		return err
	}

	if l.mode == Animated {
		if err := l.dev.setVerticalOffset(l.bounceOffset()); err != nil {
			return err
		}
	}

	return l.pollButton()
}

// bounceOffset computes the Animated-mode vertical offset, a triangle wave
// across the full offset range.
func (l *Loop) bounceOffset() int {
	span := l.dev.rect.Dy() / 2
	period := 2 * span
	t := int(l.frame / barDivisor % uint32(period))
	if t > span {
		t = period - t
	}
	return t
}

// pollButton debounces the mode-select button and cycles the geometry mode
// on each press edge.
func (l *Loop) pollButton() error {
	if l.button == nil {
		return nil
	}

	level := l.button.Read()
	if level == l.btnLevel {
		if l.btnCount < debounceSamples {
			l.btnCount++
		}
	} else {
		l.btnLevel = level
		l.btnCount = 1
	}
	if l.btnCount < debounceSamples {
		return nil
	}

	pressed := l.btnLevel == gpio.Low
	switch {
	case pressed && !l.btnHeld:
		l.btnHeld = true
		l.mode = (l.mode + 1) % geometryModeCount
		return l.dev.ApplyGeometryMode(l.mode)
	case !pressed:
		l.btnHeld = false
	}
	return nil
}
