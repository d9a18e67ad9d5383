package sheet

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"stylecascade/font"
	"stylecascade/style"
)

// millipoints per unit
var lengthUnits = map[string]float64{
	"mpt": 1,
	"pt":  1000,
	"px":  750,
	"in":  72000,
	"cm":  72000 / 2.54,
	"mm":  7200 / 2.54,
	"pc":  12000,
	"":    1000, // unitless lengths are points
}

// splitNumber separates a leading number from its unit suffix.
func splitNumber(s string) (float64, string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			end = i + 1
		} else {
			break
		}
	}
	if end == 0 {
		return 0, "", fmt.Errorf("not a number: %q", s)
	}
	num, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, "", fmt.Errorf("not a number: %q", s)
	}
	return num, strings.TrimSpace(s[end:]), nil
}

// ParseLength converts a length like "12pt", "3mm" or "0.5in" into
// millipoints. Plain numbers are points.
func ParseLength(s string) (int32, error) {
	num, unit, err := splitNumber(s)
	if err != nil {
		return 0, err
	}
	factor, ok := lengthUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q in %q", unit, s)
	}
	v := math.Round(num * factor)
	if v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("length out of range: %q", s)
	}
	return int32(v), nil
}

// ParseLineHeight accepts "normal", relative values ("150%", "1.5") and
// absolute lengths ("14pt").
func ParseLineHeight(s string) (style.LineHeight, error) {
	if strings.EqualFold(strings.TrimSpace(s), "normal") {
		return style.SingleSpacing, nil
	}
	num, unit, err := splitNumber(s)
	if err != nil {
		return style.LineHeight{}, err
	}
	switch unit {
	case "%":
		return style.LineHeight{Height: int32(math.Round(num * 100)), Relative: true}, nil
	case "":
		return style.LineHeight{Height: int32(math.Round(num * 10000)), Relative: true}, nil
	}
	h, err := ParseLength(s)
	if err != nil {
		return style.LineHeight{}, err
	}
	return style.LineHeight{Height: h}, nil
}

// ParseBorder accepts one to four lengths in CSS order: top, trailing,
// bottom, leading.
func ParseBorder(s string) (style.BorderThickness, error) {
	var v []int32
	for f := range strings.FieldsSeq(s) {
		l, err := ParseLength(f)
		if err != nil {
			return style.BorderThickness{}, err
		}
		v = append(v, l)
	}
	switch len(v) {
	case 1:
		return style.BorderThickness{Top: v[0], Trailing: v[0], Bottom: v[0], Leading: v[0]}, nil
	case 2:
		return style.BorderThickness{Top: v[0], Trailing: v[1], Bottom: v[0], Leading: v[1]}, nil
	case 3:
		return style.BorderThickness{Top: v[0], Trailing: v[1], Bottom: v[2], Leading: v[1]}, nil
	case 4:
		return style.BorderThickness{Top: v[0], Trailing: v[1], Bottom: v[2], Leading: v[3]}, nil
	}
	return style.BorderThickness{}, fmt.Errorf("border needs 1 to 4 lengths: %q", s)
}

var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"blue":    {0, 0, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
	"silver":  {192, 192, 192, 255},
	"maroon":  {128, 0, 0, 255},
	"navy":    {0, 0, 128, 255},
	"teal":    {0, 128, 128, 255},
	"olive":   {128, 128, 0, 255},
	"purple":  {128, 0, 128, 255},
	"fuchsia": {255, 0, 255, 255},
	"magenta": {255, 0, 255, 255},
	"aqua":    {0, 255, 255, 255},
	"cyan":    {0, 255, 255, 255},
	"lime":    {0, 255, 0, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"brown":   {165, 42, 42, 255},
	"pink":    {255, 192, 203, 255},
}

// ParseColor supports #RGB, #RRGGBB, rgb(r,g,b), "transparent" and common
// color keywords.
func ParseColor(s string) (color.RGBA, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	if raw == "transparent" {
		return font.Transparent, nil
	}

	if hex, ok := strings.CutPrefix(raw, "#"); ok {
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
			fallthrough
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("bad color %q", s)
			}
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
		return color.RGBA{}, fmt.Errorf("bad color %q", s)
	}

	if inner, ok := strings.CutPrefix(raw, "rgb("); ok {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("bad color %q", s)
		}
		var c [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("bad color %q", s)
			}
			c[i] = uint8(v)
		}
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
	}

	if c, ok := namedColors[raw]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// ParseBool accepts the strconv spellings plus yes/no and on/off.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(s))
}

// ParseFontWeight maps CSS font-weight values to bold.
func ParseFontWeight(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bold", "bolder":
		return true, nil
	case "normal", "lighter":
		return false, nil
	}
	if w, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return w >= 600, nil
	}
	return ParseBool(s)
}

// ParseFontStyle maps CSS font-style values to italic.
func ParseFontStyle(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "italic", "oblique":
		return true, nil
	case "normal":
		return false, nil
	}
	return ParseBool(s)
}

// ParseUnderline accepts underline names and CSS text-decoration values.
func ParseUnderline(s string) (font.Underline, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(raw, "line-through"):
		return font.UnderlineStrikethrough, nil
	case raw == "underline" || strings.Contains(raw, "underline solid"):
		return font.UnderlineSingle, nil
	case strings.Contains(raw, "underline wavy"):
		return font.UnderlineSquiggle, nil
	case strings.Contains(raw, "underline double"):
		return font.UnderlineDouble, nil
	case strings.Contains(raw, "underline dotted"):
		return font.UnderlineDotted, nil
	case strings.Contains(raw, "underline dashed"):
		return font.UnderlineDashed, nil
	}
	return font.ParseUnderline(raw)
}
