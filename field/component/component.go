// Package component validates the root element's type attribute.
package component

import (
	"fmt"

	"github.com/reoring/metainfo/reader"
)

// Type classifies what kind of software the document describes.
type Type int

const (
	DesktopApp Type = iota
	ConsoleApp
	WebApp
	Service
	Addon
	Font
	Codec
	InputMethod
	Firmware
	Driver
	Localization
)

var names = [...]string{
	DesktopApp:   "desktop-application",
	ConsoleApp:   "console-application",
	WebApp:       "web-application",
	Service:      "service",
	Addon:        "addon",
	Font:         "font",
	Codec:        "codec",
	InputMethod:  "inputmethod",
	Firmware:     "firmware",
	Driver:       "driver",
	Localization: "localization",
}

// String renders the canonical attribute value.
func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return names[t]
}

// Parse accepts the canonical names plus the legacy "desktop" alias.
func Parse(s string) (Type, error) {
	if s == "desktop" {
		return DesktopApp, nil
	}
	for i, n := range names {
		if n == s {
			return Type(i), nil
		}
	}
	return 0, &TypeError{Value: s}
}

// FromRoot reads the type attribute of the root element. roots holds what
// the reader matched for the root path.
func FromRoot(roots []reader.Element) (Type, error) {
	if len(roots) == 0 {
		return 0, &TypeError{Missing: true}
	}
	v, ok := roots[0].Attr("type")
	if !ok {
		return 0, &TypeError{Missing: true}
	}
	return Parse(v)
}

// TypeError reports a missing or unknown component type.
type TypeError struct {
	Value   string
	Missing bool
}

func (e *TypeError) Error() string {
	if e.Missing {
		return "missing component `type` attribute"
	}
	return fmt.Sprintf("invalid component `type` attribute: %s", e.Value)
}

func (e *TypeError) Code() string { return "invalid_component_type" }
