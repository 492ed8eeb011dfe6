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

// Default is the built-in palette, dark slate through teal to amber.
func Default() *Palette {
	return &Palette{
		Name: "padscript",
		Colors: []RGB{
			{16, 18, 28},
			{34, 40, 58},
			{70, 82, 110},
			{120, 150, 170},
			{64, 196, 190},
			{120, 220, 140},
			{236, 200, 90},
			{240, 130, 70},
			{250, 240, 210},
		},
	}
}

// LoadGPL reads a GIMP palette file.
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

		if name, ok := strings.CutPrefix(line, "Name:"); ok {
			p.Name = strings.TrimSpace(name)
			continue
		}
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		if c, ok := parseRGB(strings.Fields(line)); ok {
			p.Colors = append(p.Colors, c)
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

// LoadOrDefault loads path, falling back to Default when path is empty.
func LoadOrDefault(path string) (*Palette, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadGPL(path)
}

// first three fields are R G B, the rest is the color name
func parseRGB(fields []string) (RGB, bool) {
	if len(fields) < 3 {
		return RGB{}, false
	}
	var c RGB
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil || v < 0 || v > 255 {
			return RGB{}, false
		}
		c[i] = uint8(v)
	}
	return c, true
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 || len(p.Colors) == 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)
	c0, c1 := p.Colors[i], p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
