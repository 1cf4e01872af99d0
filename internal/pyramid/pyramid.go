// Package pyramid models the five-layer UI pyramid used to scope where a
// style rule is allowed to live: base, brand, application, sub-application
// and component, ordered from broadest to narrowest reach.
package pyramid

import (
	"path"
	"strings"
)

// Layer is one level of the UI pyramid.
type Layer int

// Pyramid layers, ordered from the bottom up.
const (
	Unknown Layer = iota - 1
	Base
	Brand
	Application
	Subapplication
	Component
)

var layerNames = map[Layer]string{
	Base:           "base",
	Brand:          "brand",
	Application:    "application",
	Subapplication: "sub-application",
	Component:      "component",
}

func (l Layer) String() string {
	if name, ok := layerNames[l]; ok {
		return name
	}
	return "unknown"
}

// FromName resolves a layer from its directory or config name.
func FromName(name string) Layer {
	switch strings.ToLower(name) {
	case "base", "reset":
		return Base
	case "brand", "theme":
		return Brand
	case "application", "app":
		return Application
	case "sub-application", "subapplication", "subapp":
		return Subapplication
	case "component", "components":
		return Component
	}
	return Unknown
}

// FromPath infers the layer of a stylesheet from its location below
// sourceDir. The expected shape is layers/{layerName}/**/*.css, with a
// fallback for root-level files named after a layer (base.less, brand.css).
func FromPath(filePath, sourceDir string) Layer {
	// Normalize separators so Windows paths resolve on every platform.
	p := strings.ReplaceAll(filePath, "\\", "/")
	src := strings.TrimSuffix(strings.ReplaceAll(sourceDir, "\\", "/"), "/")

	rel := strings.TrimPrefix(p, src)
	rel = strings.TrimPrefix(rel, "/")

	parts := strings.Split(rel, "/")
	if len(parts) >= 2 && parts[0] == "layers" {
		name := parts[1]
		// The file itself may be the layer (layers/base.less).
		name = strings.TrimSuffix(name, path.Ext(name))
		return FromName(name)
	}

	// Root-level files named after their layer.
	stem := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	return FromName(stem)
}

// AllowsClassSelectors reports whether the layer may introduce class
// selectors. The base layer styles raw elements and resets only.
func (l Layer) AllowsClassSelectors() bool {
	return l != Base
}

// AllowsStateStyling reports whether state classes may be styled in this
// layer. States describe component behaviour, so they belong to the
// component and sub-application layers.
func (l Layer) AllowsStateStyling() bool {
	return l == Component || l == Subapplication || l == Unknown
}
