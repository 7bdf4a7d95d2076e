package loop

import (
	"fmt"

	"github.com/tomz197/liftrunner/internal/draw"
	"github.com/tomz197/liftrunner/internal/loop/config"
	"github.com/tomz197/liftrunner/internal/object"
)

// addScore adds non-negative points and tracks the running best.
func (s *State) addScore(points int) {
	if points <= 0 {
		return
	}
	sess := &s.Session
	sess.Score += points
	if sess.Score > sess.Best {
		sess.Best = sess.Score
		sess.BestChanged = true
	}
}

func (s *State) floatText(x, y float64, value string, col draw.Color) {
	s.World.Texts = append(s.World.Texts, object.NewFloatText(x, y, value, config.FloatTextSeconds, col))
}

// scoreProgress awards one point per whole elapsed second and the overtake
// bonus once per obstacle the player has passed.
func scoreProgress(s *State) {
	sess := &s.Session
	if whole := int(sess.Elapsed); whole > sess.secondsScored {
		s.addScore(whole - sess.secondsScored)
		sess.secondsScored = whole
	}

	p := s.Player
	for i := range s.World.Obstacles {
		o := &s.World.Obstacles[i]
		if o.Scored || o.Falling || o.X+o.W >= p.X {
			continue
		}
		o.Scored = true
		sess.Overtakes++
		s.addScore(s.Tuning.Score.Overtake)
	}
}

// collectBonus adds a bonus value. The bonus that completes ComboCount pickups
// inside the rolling window is multiplied, then the combo starts over.
func collectBonus(s *State, value int, x, y float64) {
	sc := s.Tuning.Score
	expireCombo(s)
	s.comboTimes = append(s.comboTimes, s.Session.Elapsed)

	if len(s.comboTimes) >= sc.ComboCount {
		value *= sc.ComboMult
		s.comboTimes = s.comboTimes[:0]
		s.floatText(x, y, fmt.Sprintf("+%d x%d COMBO", value, sc.ComboMult), object.ColorTurbo)
	} else {
		s.floatText(x, y, fmt.Sprintf("+%d", value), object.ColorBonus)
	}
	s.addScore(value)
	syncCombo(s)
}

// expireCombo drops pickups that fell out of the rolling window.
func expireCombo(s *State) {
	cutoff := s.Session.Elapsed - s.Tuning.Score.ComboWindow
	n := 0
	for n < len(s.comboTimes) && s.comboTimes[n] <= cutoff {
		n++
	}
	if n > 0 {
		s.comboTimes = append(s.comboTimes[:0], s.comboTimes[n:]...)
	}
	syncCombo(s)
}

// syncCombo mirrors the window into the session for display.
func syncCombo(s *State) {
	c := &s.Session.Combo
	c.Count = len(s.comboTimes)
	c.Window = 0
	if c.Count > 0 {
		c.Window = s.comboTimes[0] + s.Tuning.Score.ComboWindow - s.Session.Elapsed
	}
}
