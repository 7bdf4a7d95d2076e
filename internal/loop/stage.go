package loop

import (
	"github.com/tomz197/liftrunner/internal/audio"
	"github.com/tomz197/liftrunner/internal/loop/config"
)

// advanceStage moves to every later stage whose time or score threshold is met.
func advanceStage(s *State) {
	sess := &s.Session
	for next := sess.Stage + 1; next < len(s.Tuning.Stages); next++ {
		st := s.Tuning.Stages[next]
		timeMet := st.AtSeconds > 0 && sess.Elapsed >= st.AtSeconds
		scoreMet := st.AtScore > 0 && sess.Score >= st.AtScore
		if !timeMet && !scoreMet {
			return
		}
		sess.Stage = next
		sess.StageMessage = config.StageMessageSeconds
		s.emit(audio.CueStage)
	}
}
