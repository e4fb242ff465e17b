package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/skyshooter/internal/desktop"
	"github.com/tomz197/skyshooter/internal/loop/config"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	scale := flag.Float64("scale", 1, "window scale factor")
	flag.Parse()
	width, height, err := windowSize(*scale)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "desktop",
	})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("skyshooter")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TargetFPS)

	app := desktop.NewApp(desktop.Options{Logger: logger})
	if err := ebiten.RunGame(app); err != nil {
		logger.Fatal("game error", "err", err)
	}
}

// windowSize returns the initial window size for a scale factor.
func windowSize(scale float64) (int, int, error) {
	if !(scale > 0) {
		return 0, 0, fmt.Errorf("invalid -scale %g: must be positive", scale)
	}
	w := max(1, int(config.PlayfieldWidth*scale))
	h := max(1, int(config.PlayfieldHeight*scale))
	return w, h, nil
}
