package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and the contact HUD")
	watch := flag.Bool("watch", false, "reload controller.yaml from prefabs/ when it changes")
	autopilot := flag.Bool("autopilot", false, "drive the player from a tengo script instead of the keyboard")
	script := flag.String("script", "wall_climb.tengo", "script in prefabs/scripts used by -autopilot")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("wallkick")

	game, err := NewGame(Options{
		Debug:     *debug,
		Watch:     *watch,
		Autopilot: *autopilot,
		Script:    *script,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
