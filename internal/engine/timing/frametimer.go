// Package timing measures per-frame time and enforces a frame-rate cap.
package timing

import "time"

// fpsSampleCount is the size of the rolling window used to smooth the
// reported FPS.
const fpsSampleCount = 10

// FrameTimer tracks elapsed time per frame, computes a smoothed FPS, and
// sleeps to cap the frame rate at a configured maximum. Pair BeginFrame
// with End once per frame; End without a preceding BeginFrame measures
// against the zero start time and yields a meaningless sample.
type FrameTimer struct {
	maxFPS    float32
	fps       float32
	frameTime time.Duration

	samples     [fpsSampleCount]time.Duration
	sampleIndex int
	sampleCount int

	frameStart time.Time
}

// New returns a FrameTimer capped at maxFPS. A cap of 0 or below disables
// limiting; the timer then never sleeps.
func New(maxFPS float32) *FrameTimer {
	return &FrameTimer{maxFPS: maxFPS}
}

// SetMaxFPS changes the frame-rate cap. Values of 0 or below disable
// limiting.
func (t *FrameTimer) SetMaxFPS(maxFPS float32) {
	t.maxFPS = maxFPS
}

// MaxFPS returns the configured frame-rate cap.
func (t *FrameTimer) MaxFPS() float32 {
	return t.maxFPS
}

// BeginFrame records the start of the current frame.
func (t *FrameTimer) BeginFrame() {
	t.frameStart = time.Now()
}

// End closes the current frame. If the work since BeginFrame took less
// than the budget implied by the cap, End blocks for the remaining time.
// It returns the smoothed FPS estimate.
func (t *FrameTimer) End() float32 {
	elapsed := time.Since(t.frameStart)

	if t.maxFPS > 0 {
		budget := time.Duration(float64(time.Second) / float64(t.maxFPS))
		if elapsed < budget {
			time.Sleep(budget - elapsed)
			elapsed = time.Since(t.frameStart)
		}
	}

	t.frameTime = elapsed
	t.samples[t.sampleIndex] = elapsed
	t.sampleIndex = (t.sampleIndex + 1) % fpsSampleCount
	if t.sampleCount < fpsSampleCount {
		t.sampleCount++
	}

	t.fps = t.calculateFPS()
	return t.fps
}

// FPS returns the FPS estimate from the last End call.
func (t *FrameTimer) FPS() float32 {
	return t.fps
}

// FrameTime returns the duration of the last completed frame, including
// any cap-enforcing sleep.
func (t *FrameTimer) FrameTime() time.Duration {
	return t.frameTime
}

// calculateFPS averages the rolling frame-time window.
func (t *FrameTimer) calculateFPS() float32 {
	if t.sampleCount == 0 {
		return 0
	}

	var total time.Duration
	for i := 0; i < t.sampleCount; i++ {
		total += t.samples[i]
	}
	avg := total / time.Duration(t.sampleCount)
	if avg <= 0 {
		return 0
	}

	return float32(float64(time.Second) / float64(avg))
}
