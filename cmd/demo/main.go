// Package main is a demo client for the ember engine layer: it renders a
// triangle into a multisampled offscreen framebuffer, resolves it, and
// presents it through the full-screen quad, paced by the frame timer.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/driftworks/ember/internal/config"
	"github.com/driftworks/ember/internal/engine/glctx"
	"github.com/driftworks/ember/internal/engine/screen"
	"github.com/driftworks/ember/internal/engine/timing"
	"github.com/driftworks/ember/internal/engine/window"
	"github.com/driftworks/ember/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Ember Demo ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("demo error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("demo closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:       "Ember Demo",
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		MSAASamples: cfg.Graphics.MSAASamples,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	ctx := glctx.New(cfg.Debug.GLStateChecks)

	stack := screen.NewStack()
	demo := newDemoScreen(ctx, int32(cfg.Graphics.Width), int32(cfg.Graphics.Height), cfg.Graphics.MSAASamples)
	stack.Add(demo)
	if err := stack.Set(0); err != nil {
		return fmt.Errorf("entering demo screen: %w", err)
	}
	defer func() {
		if scr := stack.Current(); scr != nil {
			_ = scr.OnExit()
		}
	}()

	timer := timing.New(cfg.Graphics.MaxFPS)

	running := true
	frameCount := 0
	for running {
		timer.BeginFrame()

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Keysym.Sym == sdl.K_ESCAPE && e.State == sdl.PRESSED {
					running = false
				}
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED {
					gl.Viewport(0, 0, e.Data1, e.Data2)
				}
			}
		}

		keepRunning, err := stack.Update(timer.FrameTime().Seconds())
		if err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if !keepRunning {
			running = false
		}

		if err := stack.Draw(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		win.SwapBuffers()

		fps := timer.End()
		frameCount++
		if cfg.Debug.ShowFPS && frameCount%30 == 0 {
			win.SetTitle(fmt.Sprintf("Ember Demo | %.1f FPS", fps))
		}
	}

	return nil
}
