package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
)

// roadScrollRate sets how fast lane markings move, in logical px per second.
const roadScrollRate = 220.0

func drawContext(cv *draw.Canvas, cw *draw.ChunkWriter, snap *Snapshot) object.DrawContext {
	return object.DrawContext{
		Canvas:  cv,
		Writer:  cw,
		Palette: snap.Palette,
		Clock:   snap.Session.Elapsed,
	}
}

// drawRoads paints both roadways with kerbs in the stage colour and dashed lane lines.
func drawRoads(ctx object.DrawContext, phase float64) {
	c := ctx.Canvas
	for _, level := range []object.Level{object.Low, object.High} {
		top := object.LaneCenterY(level, config.LanesPerLevel-1) - config.LaneGap/2 - 4
		bottom := object.LaneCenterY(level, 0) + config.LaneGap/2 + 4

		c.SetColor(object.ColorRoad)
		c.FillRect(0, top, c.LogicalWidth(), bottom-top)

		c.SetColor(ctx.Palette)
		c.FillRect(0, top-2, c.LogicalWidth(), 3)
		c.FillRect(0, bottom-1, c.LogicalWidth(), config.RoadHeight/2)

		c.SetColor(object.ColorLaneMark)
		for lane := 1; lane < config.LanesPerLevel; lane++ {
			y := object.LaneCenterY(level, lane) + config.LaneGap/2
			c.DrawDashedLine(y, 30, 26, phase)
		}
	}
}

// drawWorld paints every entity of snap onto the canvas.
func drawWorld(ctx object.DrawContext, snap *Snapshot) {
	ctx.Canvas.Clear()
	drawRoads(ctx, snap.Session.Elapsed*roadScrollRate)

	for _, l := range snap.Lifts {
		l.Draw(ctx)
	}
	for _, p := range snap.Pickups {
		p.Draw(ctx)
	}
	for _, o := range snap.Obstacles {
		o.Draw(ctx)
	}
	for _, u := range snap.UFOs {
		u.Draw(ctx)
	}
	snap.Player.Draw(ctx)
	for _, p := range snap.Particles {
		p.Draw(ctx)
	}
}

// drawWorldText writes the overlays positioned in logical space.
// Must run after the canvas has been rendered.
func drawWorldText(ctx object.DrawContext, snap *Snapshot) {
	for _, t := range snap.Texts {
		t.Draw(ctx)
	}
	if snap.Session.StageMessage > 0 {
		msg := fmt.Sprintf("STAGE %d: %s", snap.Session.Stage+1, strings.ToUpper(snap.StageName))
		ctx.Text(ctx.Canvas.LogicalWidth()/2, ctx.Canvas.LogicalHeight()*0.13, draw.Bold()+draw.Color256(int(snap.Palette)), msg)
	}
}

// turboGauge renders the energy as a fixed-width bar.
func turboGauge(energy, full float64, width int) string {
	filled := 0
	if full > 0 {
		filled = int(energy / full * float64(width))
	}
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// drawPlayingHUD draws scores, stage, turbo and timers.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func drawPlayingHUD(cw *draw.ChunkWriter, termWidth int, snap *Snapshot) {
	sess := snap.Session
	secs := int(sess.Elapsed)

	left := fmt.Sprintf("SCORE %-7d BEST %-7d", sess.Score, sess.Best)
	cw.WriteStyledAt(2, 1, draw.Bold(), left)

	stage := fmt.Sprintf("%-8s %02d:%02d", snap.StageName, secs/60, secs%60)
	cw.WriteStyledAt(2, 2, draw.Color256(int(snap.Palette)), stage)

	turbo := "TURBO " + turboGauge(sess.TurboEnergy, snap.TurboMax, 10)
	style := ""
	if sess.TurboActive {
		style = draw.Color256(int(object.ColorTurbo))
	}
	cw.WriteStyledAt(termWidth-len(turbo)-1, 1, style, turbo)

	status := fmt.Sprintf("%-11s %-9s", shieldLabel(snap.Player.ShieldTime), comboLabel(sess.Combo))
	cw.WriteStyledAt(termWidth-len(status)-1, 2, draw.Color256(int(object.ColorShield)), status)
}

func shieldLabel(t float64) string {
	if t <= 0 {
		return ""
	}
	return fmt.Sprintf("SHIELD %.1fs", t)
}

func comboLabel(c Combo) string {
	if c.Count == 0 {
		return ""
	}
	return fmt.Sprintf("COMBO %d", c.Count)
}
