package prefabs

import (
	"image/color"
	"testing"

	"github.com/milk9111/wallkick/ecs/component"
)

func TestEmbeddedSpecsLoad(t *testing.T) {
	player, err := LoadPlayerSpec()
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	if player.Radius != 25 || player.Transform.Y != 100 {
		t.Fatalf("unexpected player spec %+v", player)
	}
	if len(player.Detectors) != 3 {
		t.Fatalf("expected 3 detectors, got %d", len(player.Detectors))
	}
	kinds := map[component.DetectorKind]bool{}
	for _, d := range player.Detectors {
		k, err := d.DetectorKind()
		if err != nil {
			t.Fatalf("detector %s: %v", d.Name, err)
		}
		kinds[k] = true
	}
	if len(kinds) != 3 {
		t.Fatalf("expected one detector per kind, got %v", kinds)
	}

	ctrl, err := LoadControllerSpec()
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	if got := ctrl.Controller(); got != component.DefaultController() {
		t.Fatalf("shipped tuning should match the defaults, got %+v", got)
	}
	if ctrl.Gravity != -500 || ctrl.EventBudget != 256 {
		t.Fatalf("unexpected controller spec %+v", ctrl)
	}
}

func TestControllerSpecFallsBackToDefaults(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want func(component.Controller) bool
	}{
		{"empty", "{}", func(c component.Controller) bool { return c == component.DefaultController() }},
		{"move_only", "move_speed: 140", func(c component.Controller) bool {
			return c.MoveSpeed == 140 && c.JumpSpeed == 250
		}},
		{"press_trigger", "jump_on_press: true", func(c component.Controller) bool {
			return c.Trigger == component.JumpOnPress
		}},
		{"negative_lock_ignored", "wall_jump_lock: -1", func(c component.Controller) bool {
			return c.WallJumpLock == 0.25
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec, err := ParseSpec[ControllerSpec]([]byte(c.yaml))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := spec.Controller(); !c.want(got) {
				t.Fatalf("unexpected controller %+v", got)
			}
		})
	}
}

func TestParseSpecRejectsUnknownFields(t *testing.T) {
	if _, err := ParseSpec[ControllerSpec]([]byte("jump_sped: 300")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestDetectorKindNames(t *testing.T) {
	cases := []struct {
		kind    string
		want    component.DetectorKind
		wantErr bool
	}{
		{"ground", component.DetectorGround, false},
		{" Left_Wall ", component.DetectorLeftWall, false},
		{"right_wall", component.DetectorRightWall, false},
		{"ceiling", 0, true},
	}
	for _, c := range cases {
		t.Run(c.kind, func(t *testing.T) {
			got, err := DetectorSpec{Kind: c.kind}.DetectorKind()
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if got != c.want {
				t.Fatalf("kind = %v, want %v", got, c.want)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	type doc struct {
		Color *YAMLColor `yaml:"color"`
	}
	cases := []struct {
		name    string
		yaml    string
		want    color.Color
		wantErr bool
	}{
		{"rgb", `color: "#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"rgba", `color: "10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"unset", `{}`, color.White, false},
		{"short", `color: "#fff"`, nil, true},
		{"not_hex", `color: "#gg0000"`, nil, true},
		{"not_scalar", `color: [1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := ParseSpec[doc]([]byte(c.yaml))
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if c.wantErr {
				return
			}
			if got := d.Color.ColorOr(color.White); got != c.want {
				t.Fatalf("color = %v, want %v", got, c.want)
			}
		})
	}
}

func TestScriptPaths(t *testing.T) {
	for _, name := range []string{"wall_climb.tengo", "scripts/wall_climb.tengo", "prefabs/scripts/wall_climb.tengo"} {
		if got := cleanScriptPath(name); got != "scripts/wall_climb.tengo" {
			t.Fatalf("cleanScriptPath(%q) = %q", name, got)
		}
	}
	if _, err := LoadScript("wall_climb.tengo"); err != nil {
		t.Fatalf("embedded script should load: %v", err)
	}
	if _, err := Load("missing.yaml"); err == nil {
		t.Fatalf("missing prefab should fail")
	}
}
