package input

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Script drives the buttons from a tengo program. Before each run the
// program sees `tick`, `grounded`, `left_wall`, `right_wall` and `busy`; it
// answers by assigning `left`, `right` and `jump`.
type Script struct {
	name     string
	compiled *tengo.Compiled
	jump     edge
	logger   *log.Logger
	failed   bool
}

var scriptVars = []struct {
	name string
	zero any
}{
	{"tick", 0},
	{"grounded", false},
	{"left_wall", false},
	{"right_wall", false},
	{"busy", false},
	{"left", false},
	{"right", false},
	{"jump", false},
}

// NewScript compiles src. name is only used in log lines and errors.
func NewScript(name string, src []byte, logger *log.Logger) (*Script, error) {
	if logger == nil {
		logger = log.Default()
	}
	compiled, err := compileScript(name, src)
	if err != nil {
		return nil, err
	}
	return &Script{name: name, compiled: compiled, logger: logger}, nil
}

// Reload swaps in a new program. On error the running program is kept.
func (s *Script) Reload(src []byte) error {
	compiled, err := compileScript(s.name, src)
	if err != nil {
		return err
	}
	s.compiled = compiled
	s.failed = false
	return nil
}

// Name returns the name the script was created with.
func (s *Script) Name() string {
	return s.name
}

func compileScript(name string, src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for _, v := range scriptVars {
		if err := script.Add(v.name, v.zero); err != nil {
			return nil, fmt.Errorf("input: script %s: declare %s: %w", name, v.name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: script %s: compile: %w", name, err)
	}
	return compiled, nil
}

func (s *Script) Poll(ctx Context) State {
	if s == nil || s.compiled == nil {
		return State{}
	}
	st, err := s.run(ctx)
	if err != nil {
		if !s.failed {
			s.logger.Printf("input: script %s: %v", s.name, err)
		}
		s.failed = true
		return State{}
	}
	s.failed = false
	st.JumpPressed = s.jump.update(st.Jump)
	return st
}

func (s *Script) run(ctx Context) (State, error) {
	set := map[string]any{
		"tick":       ctx.Tick,
		"grounded":   ctx.Flags.Grounded,
		"left_wall":  ctx.Flags.TouchingLeftWall,
		"right_wall": ctx.Flags.TouchingRightWall,
		"busy":       ctx.Flags.Busy,
		"left":       false,
		"right":      false,
		"jump":       false,
	}
	for k, v := range set {
		if err := s.compiled.Set(k, v); err != nil {
			return State{}, err
		}
	}
	if err := s.compiled.Run(); err != nil {
		return State{}, err
	}
	return State{
		Left:  s.compiled.Get("left").Bool(),
		Right: s.compiled.Get("right").Bool(),
		Jump:  s.compiled.Get("jump").Bool(),
	}, nil
}
