package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	seed := flag.Int64("seed", 0, "explosion seed (0 uses the spec's seed, or the time if that is 0 too)")
	configPath := flag.String("config", "", "sandbox spec yaml (defaults to prefabs/sandbox.yaml)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{Debug: *debug, Seed: *seed, ConfigPath: *configPath})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.LayoutF(0, 0)
	ebiten.SetWindowSize(int(w), int(h))
	ebiten.SetWindowTitle("ballblast")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
