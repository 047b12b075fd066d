package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/iamasit07/connectfour/internal/config"
	"github.com/iamasit07/connectfour/internal/transport/terminal"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fs := flag.NewFlagSet("connectfour", flag.ExitOnError)
	rows := fs.Int("rows", cfg.Rows, "number of board rows")
	columns := fs.Int("columns", cfg.Columns, "number of board columns")
	toWin := fs.Int("to-win", cfg.ToWin, "run length needed to win")
	emptyMarker := fs.Int("empty-marker", cfg.EmptyMarker, "marker printed for empty squares")
	fs.Parse(os.Args[1:])

	cfg.Rows, cfg.Columns, cfg.ToWin, cfg.EmptyMarker = *rows, *columns, *toWin, *emptyMarker
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	g := terminal.New(os.Stdin, os.Stdout, cfg.GameOptions(), cfg.EmptyMarker)
	if err := g.Play(); err != nil {
		if errors.Is(err, terminal.ErrInputClosed) {
			os.Exit(1)
		}
		log.Fatalf("connectfour: %v", err)
	}
}
