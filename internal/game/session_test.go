package game

import (
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/charset"
	"github.com/verte-zerg/keydrill/internal/model"
	"github.com/verte-zerg/keydrill/internal/pool"
)

// scripted returns characters in order, then repeats the last one.
type scripted struct {
	runes []rune
	i     int
}

func (s *scripted) Sample() rune {
	r := s.runes[min(s.i, len(s.runes)-1)]
	s.i++
	return r
}

var t0 = time.Unix(1_700_000_000, 0)

func settingsWith(history, future int) model.Settings {
	s := model.DefaultSettings()
	s.HistoryLength = history
	s.FutureLength = future
	return s
}

func TestNewSessionInitialState(t *testing.T) {
	p, err := pool.Build(charset.Source{}, model.DefaultCategories, pool.NewRandom(3))
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}
	s := New(settingsWith(3, 3), p, t0)
	snap := s.Snapshot()

	if snap.State != StateActive {
		t.Fatalf("expected active state, got %v", snap.State)
	}
	want := []Slot{{' ', false}, {' ', false}, {' ', false}}
	if len(snap.History) != len(want) {
		t.Fatalf("expected %d history slots, got %d", len(want), len(snap.History))
	}
	for i := range want {
		if snap.History[i] != want[i] {
			t.Fatalf("history[%d] = %+v, want %+v", i, snap.History[i], want[i])
		}
	}
	if len(snap.Future) != 3 {
		t.Fatalf("expected 3 future chars, got %d", len(snap.Future))
	}
	for _, r := range append([]rune{snap.Target}, snap.Future...) {
		if r < 'a' || r > 'z' {
			t.Fatalf("sampled %q outside pool", r)
		}
	}
	if snap.Score != 0 || snap.Elapsed != 0 {
		t.Fatalf("expected zero score and elapsed, got %d %v", snap.Score, snap.Elapsed)
	}
	if snap.Remaining != 30*time.Second {
		t.Fatalf("expected 30s remaining, got %v", snap.Remaining)
	}
}

func TestCorrectKeyAdvances(t *testing.T) {
	s := New(settingsWith(3, 3), &scripted{runes: []rune("xabcd")}, t0)
	s.OnKey('x')
	snap := s.Snapshot()

	if snap.Score != 1 {
		t.Fatalf("expected score 1, got %d", snap.Score)
	}
	if snap.Target != 'a' {
		t.Fatalf("expected target to become old future[0], got %q", snap.Target)
	}
	if string(snap.Future) != "bcd" {
		t.Fatalf("expected future to shift with a new sample, got %q", string(snap.Future))
	}
	if last := snap.History[len(snap.History)-1]; last != (Slot{'x', true}) {
		t.Fatalf("unexpected newest history slot: %+v", last)
	}
}

func TestWrongKeyKeepsTarget(t *testing.T) {
	s := New(settingsWith(3, 3), &scripted{runes: []rune("xabc")}, t0)
	s.OnKey('y')
	snap := s.Snapshot()

	if snap.Score != 0 {
		t.Fatalf("expected score unchanged, got %d", snap.Score)
	}
	if snap.Target != 'x' {
		t.Fatalf("expected target unchanged, got %q", snap.Target)
	}
	if string(snap.Future) != "abc" {
		t.Fatalf("expected future unchanged, got %q", string(snap.Future))
	}
	if last := snap.History[len(snap.History)-1]; last != (Slot{'y', false}) {
		t.Fatalf("unexpected newest history slot: %+v", last)
	}
}

func TestMatchIsCaseSensitive(t *testing.T) {
	s := New(settingsWith(1, 1), &scripted{runes: []rune("ab")}, t0)
	s.OnKey('A')
	if s.Score() != 0 {
		t.Fatalf("expected uppercase press not to match lowercase target")
	}
}

func TestTickFinishesAtLimit(t *testing.T) {
	s := New(settingsWith(3, 3), &scripted{runes: []rune("xabc")}, t0)
	s.Tick(t0.Add(29 * time.Second))
	if s.State() != StateActive {
		t.Fatalf("expected active before limit")
	}
	s.Tick(t0.Add(30 * time.Second))
	if s.State() != StateFinished {
		t.Fatalf("expected finished at limit")
	}
	before := s.Snapshot()
	if before.Reason != ReasonTimeUp {
		t.Fatalf("expected time-up reason, got %v", before.Reason)
	}

	s.OnKey('x')
	s.OnKey('q')
	after := s.Snapshot()
	if after.Score != before.Score || after.Target != before.Target || after.State != StateFinished {
		t.Fatalf("expected key presses to be ignored after finish")
	}
	for i := range before.History {
		if before.History[i] != after.History[i] {
			t.Fatalf("history changed after finish")
		}
	}
	if string(before.Future) != string(after.Future) {
		t.Fatalf("future changed after finish")
	}
}

func TestTickIsIdempotentAfterExpiry(t *testing.T) {
	s := New(settingsWith(2, 2), &scripted{runes: []rune("xab")}, t0)
	s.OnKey('x')
	now := t0.Add(31 * time.Second)
	s.Tick(now)
	first := s.Snapshot()
	for i := 0; i < 3; i++ {
		s.Tick(now)
	}
	again := s.Snapshot()
	if again.State != StateFinished || again.Score != first.Score || again.Elapsed != first.Elapsed {
		t.Fatalf("expected repeated ticks to leave state untouched")
	}
	if string(again.Future) != string(first.Future) || again.History[1] != first.History[1] {
		t.Fatalf("expected buffers untouched by ticks")
	}
}

func TestKeyBeforeNextTickStillCounts(t *testing.T) {
	s := New(settingsWith(1, 1), &scripted{runes: []rune("xy")}, t0)
	s.Tick(t0.Add(29 * time.Second))
	// The limit passes here without a tick observing it.
	s.OnKey('x')
	if s.Score() != 1 {
		t.Fatalf("expected press before the next tick to count")
	}
	s.Tick(t0.Add(30 * time.Second))
	if s.State() != StateFinished {
		t.Fatalf("expected finished after tick")
	}
}

func TestResetFromFinished(t *testing.T) {
	src := &scripted{runes: []rune("xabcdefgh")}
	s := New(settingsWith(3, 3), src, t0)
	s.OnKey('x')
	s.OnKey('a')
	s.Tick(t0.Add(time.Minute))
	if s.State() != StateFinished {
		t.Fatalf("expected finished")
	}

	restart := t0.Add(2 * time.Minute)
	s.Reset(restart)
	snap := s.Snapshot()
	if snap.State != StateActive || snap.Score != 0 || snap.Elapsed != 0 {
		t.Fatalf("expected fresh active session, got %+v", snap)
	}
	for i, slot := range snap.History {
		if slot != (Slot{' ', false}) {
			t.Fatalf("history[%d] not blank: %+v", i, slot)
		}
	}
	if snap.Target != 'f' || string(snap.Future) != "ghh" {
		t.Fatalf("expected freshly sampled target and future, got %q %q", snap.Target, string(snap.Future))
	}
	if !s.StartedAt().Equal(restart) {
		t.Fatalf("expected clock restarted at reset")
	}
	s.Tick(restart.Add(10 * time.Second))
	if s.State() != StateActive {
		t.Fatalf("expected elapsed measured from reset")
	}
}

func TestBufferLengthsInvariant(t *testing.T) {
	tests := []struct {
		history, future       int
		wantHistory, wantFut  int
		visibleHist, visibleF int
	}{
		{3, 3, 3, 3, 3, 3},
		{0, 0, 1, 1, 0, 0},
		{5, 1, 5, 1, 5, 1},
		{1, 0, 1, 1, 1, 0},
	}
	keys := []rune("abcabcxyzzyxaaa")
	for _, tt := range tests {
		p, err := pool.Build(charset.Source{}, model.Categories{Lowercase: true}, pool.NewRandom(11))
		if err != nil {
			t.Fatalf("build pool: %v", err)
		}
		s := New(settingsWith(tt.history, tt.future), p, t0)
		check := func(stage string) {
			snap := s.Snapshot()
			if len(snap.History) != tt.wantHistory {
				t.Fatalf("%s: history len %d, want %d", stage, len(snap.History), tt.wantHistory)
			}
			if len(snap.Future) != tt.wantFut {
				t.Fatalf("%s: future len %d, want %d", stage, len(snap.Future), tt.wantFut)
			}
			if len(snap.VisibleHistory()) != tt.visibleHist || len(snap.VisibleFuture()) != tt.visibleF {
				t.Fatalf("%s: unexpected visible lengths %d/%d", stage, len(snap.VisibleHistory()), len(snap.VisibleFuture()))
			}
		}
		check("new")
		for _, k := range keys {
			s.OnKey(k)
			check("on key")
			s.OnKey(s.Snapshot().Target)
			check("on correct key")
		}
		s.Reset(t0)
		check("reset")
	}
}

func TestScoreMonotonicAndCorrectnessTracking(t *testing.T) {
	p, err := pool.Build(charset.Source{}, model.Categories{Lowercase: true, Digits: true}, pool.NewRandom(5))
	if err != nil {
		t.Fatalf("build pool: %v", err)
	}
	s := New(settingsWith(4, 2), p, t0)
	guesses := []rune("a1b2c3d4e5f6g7h8i9j0")
	prevScore := 0
	for i := 0; i < 200; i++ {
		target := s.Snapshot().Target
		press := guesses[i%len(guesses)]
		if i%3 == 0 {
			press = target
		}
		s.OnKey(press)
		snap := s.Snapshot()
		if snap.Score < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, snap.Score)
		}
		prevScore = snap.Score
		last := snap.History[len(snap.History)-1]
		if last.Char != press || last.Correct != (press == target) {
			t.Fatalf("press %q vs target %q recorded as %+v", press, target, last)
		}
	}
}

func TestZeroLengthBuffersStayTotal(t *testing.T) {
	s := New(settingsWith(0, 0), &scripted{runes: []rune("xyz")}, t0)
	s.OnKey('q')
	snap := s.Snapshot()
	last, ok := snap.LastTyped()
	if !ok || last != (Slot{'q', false}) {
		t.Fatalf("expected just-typed feedback without visible history, got %+v %v", last, ok)
	}
	s.OnKey('x')
	if s.Score() != 1 || s.Snapshot().Target != 'y' {
		t.Fatalf("expected advance with single working future slot")
	}
}

func TestHardcoreFinishesOnMistake(t *testing.T) {
	settings := settingsWith(3, 3)
	settings.Hardcore = true
	s := New(settings, &scripted{runes: []rune("xabc")}, t0)
	s.OnKey('x')
	s.OnKey('z')
	snap := s.Snapshot()
	if snap.State != StateFinished || snap.Reason != ReasonMistake {
		t.Fatalf("expected hardcore mistake to finish, got %v %v", snap.State, snap.Reason)
	}
	if snap.Score != 1 {
		t.Fatalf("expected score kept, got %d", snap.Score)
	}
	if last := snap.History[len(snap.History)-1]; last != (Slot{'z', false}) {
		t.Fatalf("expected mistake recorded, got %+v", last)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(settingsWith(2, 2), &scripted{runes: []rune("xab")}, t0)
	snap := s.Snapshot()
	snap.History[0] = Slot{'!', true}
	snap.Future[0] = '!'
	fresh := s.Snapshot()
	if fresh.History[0].Char == '!' || fresh.Future[0] == '!' {
		t.Fatalf("expected snapshot mutation not to leak into session")
	}
}

func TestApplyRoutesEvents(t *testing.T) {
	s := New(settingsWith(1, 1), &scripted{runes: []rune("xyz")}, t0)
	if s.Apply(KeyPress{Rune: 'x'}) {
		t.Fatalf("key press should not exit")
	}
	if s.Score() != 1 {
		t.Fatalf("expected key press applied")
	}
	s.Apply(Tick{Now: t0.Add(time.Hour)})
	if s.State() != StateFinished {
		t.Fatalf("expected tick applied")
	}
	s.Apply(ResetRequested{Now: t0})
	if s.State() != StateActive || s.Score() != 0 {
		t.Fatalf("expected reset applied")
	}
	if !s.Apply(ExitRequested{}) {
		t.Fatalf("expected exit to be reported")
	}
}
