package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/wallkick/ecs/component"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile     = "player.yaml"
	ControllerFile = "controller.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := ParseSpec[T](data)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// ParseSpec decodes a yaml document into T. Unknown keys are rejected so
// typos in tuning files do not pass silently.
func ParseSpec[T any](data []byte) (T, error) {
	var spec T
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// ControllerSpec tunes the jump and movement decisions.
type ControllerSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	WallJumpX    float64 `yaml:"wall_jump_x"`
	WallJumpY    float64 `yaml:"wall_jump_y"`
	WallJumpLock float64 `yaml:"wall_jump_lock"`
	JumpOnPress  bool    `yaml:"jump_on_press"`
	Gravity      float64 `yaml:"gravity"`
	EventBudget  int     `yaml:"event_budget"`
}

func LoadControllerSpec() (*ControllerSpec, error) {
	spec, err := LoadSpec[ControllerSpec](ControllerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Controller converts the spec into the component, falling back to the
// defaults for zero values.
func (s ControllerSpec) Controller() component.Controller {
	c := component.DefaultController()
	if s.MoveSpeed != 0 {
		c.MoveSpeed = s.MoveSpeed
	}
	if s.JumpSpeed != 0 {
		c.JumpSpeed = s.JumpSpeed
	}
	if s.WallJumpX != 0 {
		c.WallJumpX = s.WallJumpX
	}
	if s.WallJumpY != 0 {
		c.WallJumpY = s.WallJumpY
	}
	if s.WallJumpLock > 0 {
		c.WallJumpLock = s.WallJumpLock
	}
	if s.JumpOnPress {
		c.Trigger = component.JumpOnPress
	}
	return c
}

type PlayerSpec struct {
	Name      string         `yaml:"name"`
	Transform TransformSpec  `yaml:"transform"`
	Radius    float64        `yaml:"radius"`
	Mass      float64        `yaml:"mass"`
	Friction  float64        `yaml:"friction"`
	Color     *YAMLColor     `yaml:"color"`
	Detectors []DetectorSpec `yaml:"detectors"`
}

// DetectorSpec describes one sensor child of the player.
type DetectorSpec struct {
	Name       string     `yaml:"name"`
	Kind       string     `yaml:"kind"`
	OffsetX    float64    `yaml:"offset_x"`
	OffsetY    float64    `yaml:"offset_y"`
	HalfWidth  float64    `yaml:"half_width"`
	HalfHeight float64    `yaml:"half_height"`
	Color      *YAMLColor `yaml:"color"`
}

// DetectorKind maps the yaml kind name to the component kind.
func (d DetectorSpec) DetectorKind() (component.DetectorKind, error) {
	switch strings.ToLower(strings.TrimSpace(d.Kind)) {
	case "ground":
		return component.DetectorGround, nil
	case "left_wall":
		return component.DetectorLeftWall, nil
	case "right_wall":
		return component.DetectorRightWall, nil
	}
	return 0, fmt.Errorf("prefabs: unknown detector kind %q", d.Kind)
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed colour or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
