package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// LoadGPL reads a GIMP palette. A 128-entry file can stand in for the
// Launchpad palette.
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// Parse RGB values (first 3 fields are R G B)
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

// Index returns color at specific index (no interpolation)
func (p *Palette) Index(i int) RGB {
	if i < 0 {
		return p.Colors[0]
	}
	if i >= len(p.Colors) {
		return p.Colors[len(p.Colors)-1]
	}
	return p.Colors[i]
}

// hues are the 15 colour families of palette entries 4-63, four entries
// each from light to dark.
var hues = [15]RGB{
	{255, 0, 0},     // red
	{255, 84, 0},    // orange
	{255, 255, 0},   // yellow
	{136, 255, 0},   // lime
	{0, 255, 0},     // green
	{0, 255, 68},    // mint
	{0, 255, 153},   // sea
	{0, 255, 255},   // cyan
	{0, 170, 255},   // sky
	{0, 85, 255},    // blue
	{0, 0, 255},     // deep blue
	{136, 0, 255},   // violet
	{255, 0, 255},   // magenta
	{255, 0, 85},    // rose
	{255, 136, 136}, // salmon
}

// known are measured colours of entries outside the hue block.
var known = map[int]RGB{
	72:  {255, 0, 0},
	78:  {100, 100, 255},
	84:  {255, 150, 50},
	87:  {150, 255, 100},
	97:  {180, 180, 60},
	119: {255, 255, 255},
}

// Launchpad returns an approximation of the 128-entry Mk3 palette.
func Launchpad() *Palette {
	p := &Palette{Name: "Launchpad Mk3", Colors: make([]RGB, 128)}
	p.Colors[1] = RGB{60, 60, 60}
	p.Colors[2] = RGB{150, 150, 150}
	p.Colors[3] = RGB{255, 255, 255}

	for i := 4; i < 64; i++ {
		base := hues[(i-4)/4]
		switch (i - 4) % 4 {
		case 0:
			p.Colors[i] = blend(base, RGB{255, 255, 255}, 0.4)
		case 1:
			p.Colors[i] = base
		case 2:
			p.Colors[i] = scale(base, 0.45)
		case 3:
			p.Colors[i] = scale(base, 0.2)
		}
	}

	// The upper half repeats the hues at varying brightness.
	for i := 64; i < 128; i++ {
		if c, ok := known[i]; ok {
			p.Colors[i] = c
			continue
		}
		p.Colors[i] = scale(hues[(i-64)%len(hues)], 0.6+0.4*float64((i-64)/len(hues)%2))
	}
	return p
}

func scale(c RGB, f float64) RGB {
	return RGB{uint8(float64(c[0]) * f), uint8(float64(c[1]) * f), uint8(float64(c[2]) * f)}
}

func blend(a, b RGB, t float64) RGB {
	return RGB{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
