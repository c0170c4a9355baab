package input

import (
	"bytes"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/milk9111/wallkick/ecs/component"
	"github.com/milk9111/wallkick/prefabs"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestScriptReadsContactFlags(t *testing.T) {
	src := []byte(`
left = grounded && !left_wall
right = right_wall
jump = left_wall || tick > 2
`)
	s, err := NewScript("flags", src, quietLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	cases := []struct {
		name string
		ctx  Context
		want State
	}{
		{"grounded", Context{Tick: 1, Flags: component.ContactFlags{Grounded: true}}, State{Left: true}},
		{"left_wall", Context{Tick: 2, Flags: component.ContactFlags{TouchingLeftWall: true}}, State{Jump: true, JumpPressed: true}},
		{"jump_held", Context{Tick: 3}, State{Jump: true}},
		{"right_wall", Context{Tick: 0, Flags: component.ContactFlags{TouchingRightWall: true}}, State{Right: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.Poll(c.ctx); got != c.want {
				t.Fatalf("Poll = %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestScriptOutputsResetEachTick(t *testing.T) {
	s, err := NewScript("once", []byte(`if tick == 1 { left = true }`), quietLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !s.Poll(Context{Tick: 1}).Left {
		t.Fatalf("expected left on tick 1")
	}
	if s.Poll(Context{Tick: 2}).Left {
		t.Fatalf("left should not carry over to tick 2")
	}
}

func TestScriptCompileError(t *testing.T) {
	if _, err := NewScript("broken", []byte(`left = (`), quietLogger()); err == nil {
		t.Fatalf("expected compile error")
	}
}

func TestScriptRuntimeErrorLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewScript("boom", []byte(`x := tick + "a"; jump = x == 0`), log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for tick := 5; tick < 8; tick++ {
		if st := s.Poll(Context{Tick: tick}); st != (State{}) {
			t.Fatalf("failed run should yield no buttons, got %+v", st)
		}
	}
	if n := strings.Count(buf.String(), "script boom"); n != 1 {
		t.Fatalf("expected one log line, got %d: %q", n, buf.String())
	}
}

func TestWallClimbScript(t *testing.T) {
	src, err := prefabs.LoadScript("wall_climb.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := NewScript("wall_climb", src, quietLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if st := s.Poll(Context{Tick: 1, Flags: component.ContactFlags{TouchingLeftWall: true}}); !st.Jump {
		t.Fatalf("expected a wall jump, got %+v", st)
	}
	if st := s.Poll(Context{Tick: 2, Flags: component.ContactFlags{TouchingLeftWall: true, Busy: true}}); st != (State{}) {
		t.Fatalf("expected no input during lockout, got %+v", st)
	}
}

func TestSourceFuncAndEdge(t *testing.T) {
	var e edge
	levels := []bool{false, true, true, false, true}
	want := []bool{false, true, false, false, true}
	for i, held := range levels {
		if got := e.update(held); got != want[i] {
			t.Fatalf("step %d: pressed = %v, want %v", i, got, want[i])
		}
	}

	src := SourceFunc(func(ctx Context) State { return State{Right: ctx.Tick%2 == 0} })
	if !src.Poll(Context{Tick: 4}).Right {
		t.Fatalf("SourceFunc should delegate to the function")
	}
}

func TestScriptReload(t *testing.T) {
	s, err := NewScript("reload", []byte(`left = true`), quietLogger())
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !s.Poll(Context{Tick: 1}).Left {
		t.Fatalf("expected left before reload")
	}

	if err := s.Reload([]byte(`right = true`)); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if st := s.Poll(Context{Tick: 2}); st.Left || !st.Right {
		t.Fatalf("expected the reloaded program to run, got %+v", st)
	}

	if err := s.Reload([]byte(`right = (`)); err == nil {
		t.Fatalf("expected compile error")
	}
	if !s.Poll(Context{Tick: 3}).Right {
		t.Fatalf("a failed reload should keep the running program")
	}
}
