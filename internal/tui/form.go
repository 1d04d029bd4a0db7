package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// WindowForm holds the answers of the interactive window setup form.
type WindowForm struct {
	Title       string
	Size        string // WIDTHxHEIGHT, empty for the default
	Monitor     int    // index into the monitor list, -1 for windowed
	Decorations bool
	Transparent bool
}

// RunWindowForm asks for window options. monitors are labels in
// enumeration order; choosing one makes the window fullscreen there.
func RunWindowForm(form *WindowForm, monitors []string) error {
	monitorOpts := []huh.Option[int]{huh.NewOption("windowed", -1)}
	for i, label := range monitors {
		monitorOpts = append(monitorOpts, huh.NewOption(fmt.Sprintf("fullscreen on %s", label), i))
	}

	f := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&form.Title),

			huh.NewInput().
				Key("size").
				Title("Size").
				Description("WIDTHxHEIGHT in points, empty for the default").
				Validate(func(s string) error {
					_, _, err := ParseSize(s)
					return err
				}).
				Value(&form.Size),

			huh.NewSelect[int]().
				Key("monitor").
				Title("Mode").
				Options(monitorOpts...).
				Value(&form.Monitor),

			huh.NewConfirm().
				Key("decorations").
				Title("Window decorations?").
				Value(&form.Decorations),

			huh.NewConfirm().
				Key("transparent").
				Title("Transparent background?").
				Value(&form.Transparent),
		),
	).WithShowHelp(true).WithShowErrors(true)

	return f.Run()
}

// ParseSize parses "WIDTHxHEIGHT". An empty string yields zeros.
func ParseSize(s string) (uint32, uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseUint(strings.TrimSpace(ws), 10, 32)
	if err != nil || w == 0 {
		return 0, 0, fmt.Errorf("size %q: invalid width", s)
	}
	h, err := strconv.ParseUint(strings.TrimSpace(hs), 10, 32)
	if err != nil || h == 0 {
		return 0, 0, fmt.Errorf("size %q: invalid height", s)
	}
	return uint32(w), uint32(h), nil
}
