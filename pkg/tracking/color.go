package tracking

import "fmt"

// HSV is one corner of an HSV threshold range, in OpenCV's scaling
// (H 0-180, S and V 0-255).
type HSV struct {
	H, S, V float64
}

// ColorRange is an HSV threshold band for one target color.
type ColorRange struct {
	Name  string
	Lower HSV
	Upper HSV
}

// Threshold bands measured under the robot's onboard camera. Indoor
// lighting shifts hue slightly, so the bands are generous.
var (
	Red = ColorRange{
		Name:  "red",
		Lower: HSV{0, 70, 72},
		Upper: HSV{7, 255, 255},
	}

	Green = ColorRange{
		Name:  "green",
		Lower: HSV{35, 43, 46},
		Upper: HSV{77, 255, 255},
	}

	Blue = ColorRange{
		Name:  "blue",
		Lower: HSV{92, 100, 62},
		Upper: HSV{121, 251, 255},
	}

	Yellow = ColorRange{
		Name:  "yellow",
		Lower: HSV{26, 100, 91},
		Upper: HSV{32, 255, 255},
	}
)

// Colors returns all tracked color presets.
func Colors() []ColorRange {
	return []ColorRange{Red, Green, Blue, Yellow}
}

// ColorByName looks up a preset by name.
func ColorByName(name string) (ColorRange, error) {
	for _, c := range Colors() {
		if c.Name == name {
			return c, nil
		}
	}
	return ColorRange{}, fmt.Errorf("tracking: unknown color %q", name)
}
