package color

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

const None = "none"

// Validate reports whether colorString parses as a CSS color. "none" is
// accepted as the explicit absence of a color.
func Validate(colorString string) error {
	if colorString == None {
		return nil
	}
	_, err := csscolorparser.Parse(colorString)
	return err
}

// Darken returns colorString with its luminance decreased by 10%, as a hex
// string. Node borders use this so they read against the fill without the
// model carrying a second color.
func Darken(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

// Luminance is the perceived brightness of the color in [0, 1].
func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B, nil
}

// ContrastingText picks black or white label text for the given fill.
func ContrastingText(fillColor string) string {
	l, err := Luminance(fillColor)
	if err != nil || l >= .55 {
		return "#0a0f25"
	}
	return "#ffffff"
}
