package compose

import (
	"fmt"
	"strings"
)

// BlendMode selects how source pixels combine with destination pixels.
type BlendMode int

const (
	BlendReplace BlendMode = iota
	BlendNormal
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendAdd
	BlendDifference
)

var blendNames = map[BlendMode]string{
	BlendReplace:    "replace",
	BlendNormal:     "normal",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendAdd:        "add",
	BlendDifference: "difference",
}

func (m BlendMode) String() string {
	if name, ok := blendNames[m]; ok {
		return name
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode returns the mode with the given name, ignoring case.
func ParseBlendMode(name string) (BlendMode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range blendNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode: %q", name)
}

// BlendModeNames lists the mode names in declaration order.
func BlendModeNames() []string {
	names := make([]string, 0, len(blendNames))
	for m := BlendReplace; m <= BlendDifference; m++ {
		names = append(names, blendNames[m])
	}
	return names
}
