package audio

import "testing"

func TestRecorderCounts(t *testing.T) {
	var r Recorder
	var s Sink = &r
	s.Play(CueJump)
	s.Play(CueCrash)
	s.Play(CueJump)

	if r.Count(CueJump) != 2 || r.Count(CueCrash) != 1 || r.Count(CueLift) != 0 {
		t.Fatalf("unexpected counts: %v", r.Cues())
	}
	Nop{}.Play(CueLift)
}

func TestCueNames(t *testing.T) {
	if CueTurboOn.String() != "turbo-on" || CueShieldBreak.String() != "shield-break" {
		t.Fatalf("names = %q, %q", CueTurboOn, CueShieldBreak)
	}
}
