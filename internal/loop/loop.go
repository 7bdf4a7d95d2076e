// Package loop provides the game simulation and the per-session frame loop.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/input"
	"github.com/tomz197/liftrunner/internal/loop/config"
)

// saveInterval throttles best-score writes while a run is in progress.
const saveInterval = time.Second

// BestScoreStore persists the best score of one player.
type BestScoreStore interface {
	LoadBestScore() int
	SaveBestScore(score int) error
}

// Options configures one session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Scores       BestScoreStore // nil keeps the best in memory only
	Audio        audio.Sink     // nil is silent
	Tuning       *config.Tuning // nil uses DefaultTuning
	Seed         int64          // 0 seeds from the clock
	Logger       *log.Logger
	Inactivity   bool // Warn and disconnect idle players
}

// session runs the frame loop for one terminal.
type session struct {
	opts   Options
	logger *log.Logger

	state *State
	snap  Snapshot
	keys  *input.State

	stream  *input.Stream
	intent  input.Intent
	canvas  *draw.Canvas
	cw      *draw.ChunkWriter
	running bool

	phase, prevPhase  GameState
	paused, wasPaused bool
	idle, wasIdle     bool
	lastInput         time.Time
	shutdownTimer     float64
	unsaved           bool
	lastSave          time.Time
	termSizeFunc      draw.TermSizeFunc
	frameDelta        time.Duration
	runs              int
}

func newSession(r *bufio.Reader, w io.Writer, opts Options) *session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := NewState(tuning, seed)
	if opts.Scores != nil {
		state.Session.Best = opts.Scores.LoadBestScore()
	}

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.PlayfieldWidth, config.PlayfieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &session{
		opts:         opts,
		logger:       opts.Logger,
		state:        state,
		keys:         input.NewState(),
		stream:       input.StartStream(r),
		canvas:       canvas,
		cw:           draw.NewChunkWriter(w, offsetCol, offsetRow),
		running:      true,
		phase:        GameStateStart,
		prevPhase:    -1,
		lastInput:    time.Now(),
		termSizeFunc: opts.TermSizeFunc,
	}
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input ends, or after the shutdown
// screen once ctx is cancelled.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	g := newSession(r, w, opts)
	defer g.stream.Close()

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	lastTime := time.Now()

	for g.running {
		frameStart := time.Now()
		g.frameDelta = frameStart.Sub(lastTime)
		lastTime = frameStart

		if g.phase != GameStateShutdown {
			select {
			case <-ctx.Done():
				g.enterShutdown()
			default:
			}
		}

		// ===== INPUT PHASE =====
		g.processInput(frameStart)

		// ===== UPDATE PHASE =====
		g.updateScreen()

		switch g.phase {
		case GameStateStart:
			g.updateStartState()
		case GameStatePlaying:
			g.updatePlayingState()
		case GameStateDead:
			g.updateDeadState()
		case GameStateShutdown:
			g.updateShutdownState()
		}

		// ===== DRAW PHASE =====
		if err := g.drawFrame(); err != nil {
			g.persist()
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	g.persist()
	draw.ClearScreen(w)
	return nil
}

// processInput reads pending bytes and turns held keys into this frame's intent.
func (g *session) processInput(now time.Time) {
	if g.stream.Poll(now, g.keys) {
		g.lastInput = now
		g.idle = false
	} else if g.opts.Inactivity {
		idleFor := now.Sub(g.lastInput).Seconds()
		if idleFor > config.InactivityDisconnectUser {
			g.logger.Info("disconnecting inactive player", "idle", idleFor)
			g.running = false
		} else if idleFor > config.InactivityWarnUser {
			g.idle = true
		}
	}

	if g.stream.Closed() {
		g.running = false
	}

	g.intent = g.keys.Frame()
	if g.intent.Quit {
		g.running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (g *session) updateScreen() {
	termWidth, termHeight, err := g.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != g.canvas.TerminalWidth() || renderHeight != g.canvas.TerminalHeight() ||
		offsetCol != g.canvas.OffsetCol() || offsetRow != g.canvas.OffsetRow() {
		g.cw.WriteString("\033[H\033[2J")
		g.canvas.ForceRedraw()
	}

	g.canvas.Resize(renderWidth, renderHeight)
	g.canvas.SetOffset(offsetCol, offsetRow)
	g.cw.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateStartState starts a run on any key.
func (g *session) updateStartState() {
	if g.intent.Any && !g.intent.Quit && !g.idle {
		g.startRun()
	}
}

// startRun begins a fresh run, keeping the best score.
func (g *session) startRun() {
	g.state.StartRun()
	g.phase = GameStatePlaying
	g.runs++
	g.logger.Info("run started", "run", g.runs, "best", g.state.Session.Best)
}

// updatePlayingState steps the simulation and forwards its side effects.
func (g *session) updatePlayingState() {
	if g.intent.Restart {
		g.persist()
		g.startRun()
		return
	}

	Step(g.state, g.intent, g.frameDelta)
	g.paused = g.state.Session.Paused

	for _, c := range g.state.Cues {
		g.opts.Audio.Play(c)
		if c == audio.CueStage {
			g.logger.Debug("stage advanced", "stage", g.state.StageName(), "score", g.state.Session.Score)
		}
	}

	if g.state.Session.BestChanged {
		g.unsaved = true
	}
	if g.unsaved && time.Since(g.lastSave) >= saveInterval {
		g.persist()
	}

	if !g.state.Player.Alive {
		sess := g.state.Session
		g.logger.Info("run ended",
			"cause", sess.EndCause,
			"score", sess.Score,
			"best", sess.Best,
			"elapsed", fmt.Sprintf("%.1fs", sess.Elapsed),
		)
		g.persist()
		g.paused = false
		g.phase = GameStateDead
	}
}

// updateDeadState lets effects finish and waits for an explicit restart.
func (g *session) updateDeadState() {
	Decay(g.state, g.frameDelta)
	if g.intent.Restart || g.intent.Start {
		g.startRun()
	}
}

func (g *session) enterShutdown() {
	g.persist()
	g.phase = GameStateShutdown
	g.paused = false
	g.shutdownTimer = config.ShutdownDisplaySeconds
}

// updateShutdownState handles the shutdown screen countdown.
func (g *session) updateShutdownState() {
	g.shutdownTimer -= g.frameDelta.Seconds()
	if g.shutdownTimer <= 0 {
		g.running = false
	}
}

// persist writes an improved best score. Failures are logged, not fatal.
func (g *session) persist() {
	if !g.unsaved || g.opts.Scores == nil {
		return
	}
	g.lastSave = time.Now()
	if err := g.opts.Scores.SaveBestScore(g.state.Session.Best); err != nil {
		g.logger.Warn("saving best score failed", "err", err)
		return
	}
	g.unsaved = false
}

// drawFrame draws the current frame.
func (g *session) drawFrame() error {
	// On phase, pause or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if g.phase != g.prevPhase || g.paused != g.wasPaused || g.idle != g.wasIdle {
		g.cw.WriteString("\033[H\033[2J")
		g.canvas.ForceRedraw()
		g.prevPhase = g.phase
		g.wasPaused = g.paused
		g.wasIdle = g.idle
	}

	cv, cw := g.canvas, g.cw
	centerX := cv.TerminalWidth() / 2
	centerY := cv.TerminalHeight() / 2

	switch g.phase {
	case GameStatePlaying, GameStateDead:
		g.state.SnapshotInto(&g.snap)
		ctx := drawContext(cv, cw, &g.snap)
		drawWorld(ctx, &g.snap)
		cv.Render(cw)
		cv.RenderBorder(cw)
		drawWorldText(ctx, &g.snap)
		drawPlayingHUD(cw, cv.TerminalWidth(), &g.snap)
	default:
		cv.Clear()
		if g.phase == GameStateStart {
			g.state.SnapshotInto(&g.snap)
			drawRoads(drawContext(cv, cw, &g.snap), 0)
		}
		cv.Render(cw)
		cv.RenderBorder(cw)
	}

	switch {
	case g.phase == GameStateShutdown:
		drawShutdownScreen(cw, centerX, centerY, g.shutdownTimer)
	case g.idle:
		left := config.InactivityDisconnectUser - time.Since(g.lastInput).Seconds()
		drawInactivityScreen(cw, centerX, centerY, int(left))
	case g.phase == GameStateStart:
		drawStartScreen(cw, centerX, centerY, g.state.Session.Best)
	case g.phase == GameStateDead:
		drawDeadScreen(cw, centerX, centerY, &g.snap)
	case g.paused:
		drawPauseScreen(cw, centerX, centerY)
	}

	return cw.Flush()
}
