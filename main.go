package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"

	"go-gridlink/config"
	"go-gridlink/debug"
	"go-gridlink/midi"
	"go-gridlink/sequencer"
	"go-gridlink/theme"
	"go-gridlink/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defer gomidi.CloseDriver()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Debug.Enabled {
		path, err := cfg.DebugPath()
		if err != nil {
			return err
		}
		if err := debug.EnableAt(path); err != nil {
			return fmt.Errorf("debug log: %w", err)
		}
		defer debug.Disable()
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Create MIDI device manager (handles hot-plug)
	deviceMgr := midi.NewDeviceManager(engine, cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return deviceMgr.Run(ctx) })
	g.Go(func() error { return engine.Run(ctx) })
	g.Go(func() error {
		// Quitting the UI stops everything else.
		defer cancel()
		m := tui.NewModel(engine, deviceMgr, deviceMgr.Events(), th)
		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	})

	return g.Wait()
}

func newEngine(cfg *config.Config) (*sequencer.Engine, error) {
	ec := cfg.Engine
	engine := sequencer.New(ec.Tracks, ec.Slots)
	engine.SetTempo(ec.Tempo)
	engine.SetBeatsPerBar(ec.BeatsPerBar)

	for _, c := range ec.Clips {
		notes := make([]sequencer.Note, len(c.Notes))
		for i, n := range c.Notes {
			notes[i] = sequencer.Note{Step: n.Step, Pitch: n.Pitch, Velocity: n.Velocity}
		}
		err := engine.AddClip(sequencer.ClipSpec{
			Track:   c.Track,
			Slot:    c.Slot,
			Color:   c.Color,
			Length:  c.Length,
			NoteOn:  c.NoteOn,
			NoteOff: c.NoteOff,
			Notes:   notes,
		})
		if err != nil {
			return nil, err
		}
	}

	if name := cfg.SynthOutput.PortName; name != "" {
		out, err := gomidi.FindOutPort(name)
		if err != nil {
			return nil, fmt.Errorf("synth output %q: %w", name, err)
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("synth output %q: %w", name, err)
		}
		engine.SetOutput(send)
	}

	return engine, nil
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	if cfg.UI.Palette == "" {
		return theme.New(theme.Launchpad()), nil
	}
	palette, err := theme.LoadGPL(cfg.UI.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	return theme.New(palette), nil
}
