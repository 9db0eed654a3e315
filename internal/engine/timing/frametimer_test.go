package timing

import (
	"testing"
	"time"
)

func TestUncappedNeverSleeps(t *testing.T) {
	timer := New(0)

	start := time.Now()
	for i := 0; i < 1000; i++ {
		timer.BeginFrame()
		timer.End()
	}
	elapsed := time.Since(start)

	// 1000 empty frames capped at 60 FPS would take ~16s; uncapped they
	// must finish in a tiny fraction of that.
	if elapsed > 500*time.Millisecond {
		t.Errorf("1000 uncapped frames took %v, expected unthrottled execution", elapsed)
	}
}

func TestNegativeCapDisablesLimiting(t *testing.T) {
	timer := New(-30)

	start := time.Now()
	for i := 0; i < 100; i++ {
		timer.BeginFrame()
		timer.End()
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("100 frames with negative cap took %v", elapsed)
	}
}

func TestCapSleepsOutFrameBudget(t *testing.T) {
	timer := New(60)

	timer.BeginFrame()
	fps := timer.End()

	frameTime := timer.FrameTime()
	budget := time.Second / 60

	// Negligible work: the frame should last roughly one budget. Sleep
	// granularity can overshoot, so only bound it loosely from above.
	if frameTime < budget-2*time.Millisecond {
		t.Errorf("frame time %v shorter than 60 FPS budget %v", frameTime, budget)
	}
	if frameTime > 5*budget {
		t.Errorf("frame time %v far exceeds 60 FPS budget %v", frameTime, budget)
	}

	if fps <= 0 {
		t.Errorf("expected positive FPS estimate, got %f", fps)
	}
}

func TestSmoothedFPSNearCap(t *testing.T) {
	timer := New(100)

	var fps float32
	for i := 0; i < fpsSampleCount; i++ {
		timer.BeginFrame()
		fps = timer.End()
	}

	// 100 FPS cap with negligible work: the smoothed estimate should
	// land near the cap. Scheduler jitter keeps this loose.
	if fps < 30 || fps > 120 {
		t.Errorf("smoothed FPS %f not near 100 FPS cap", fps)
	}
}

func TestSetMaxFPS(t *testing.T) {
	timer := New(60)
	if timer.MaxFPS() != 60 {
		t.Errorf("expected cap 60, got %f", timer.MaxFPS())
	}

	timer.SetMaxFPS(0)
	if timer.MaxFPS() != 0 {
		t.Errorf("expected cap 0, got %f", timer.MaxFPS())
	}

	// With the cap removed, frames must not sleep.
	start := time.Now()
	for i := 0; i < 100; i++ {
		timer.BeginFrame()
		timer.End()
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("100 uncapped frames took %v", elapsed)
	}
}

func TestFPSBeforeAnyFrame(t *testing.T) {
	timer := New(0)
	if timer.FPS() != 0 {
		t.Errorf("expected 0 FPS before any frame, got %f", timer.FPS())
	}
	if timer.FrameTime() != 0 {
		t.Errorf("expected 0 frame time before any frame, got %v", timer.FrameTime())
	}
}

func TestRollingWindowTracksRecentFrames(t *testing.T) {
	timer := New(0)

	// Fill the window with slow frames, then with fast ones; the
	// estimate must recover once the slow samples rotate out.
	for i := 0; i < fpsSampleCount; i++ {
		timer.BeginFrame()
		time.Sleep(10 * time.Millisecond)
		timer.End()
	}
	slowFPS := timer.FPS()

	for i := 0; i < fpsSampleCount; i++ {
		timer.BeginFrame()
		timer.End()
	}
	fastFPS := timer.FPS()

	if fastFPS <= slowFPS {
		t.Errorf("expected FPS to rise after fast frames: slow=%f fast=%f", slowFPS, fastFPS)
	}
}
