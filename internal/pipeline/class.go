package pipeline

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Class is an asset class.
type Class int

const (
	ModuleSource Class = iota + 1
	Stylesheet
	Template
	StaticBinary
)

var classes = []Class{ModuleSource, Stylesheet, Template, StaticBinary}

var classExtensions = map[Class][]string{
	ModuleSource: {".elm", ".js"},
	Stylesheet:   {".sass", ".scss", ".css"},
	Template:     {".html"},
	StaticBinary: {".png", ".svg", ".jpg", ".jpeg", ".gif", ".eot", ".ttf", ".woff", ".woff2"},
}

// Classes returns every asset class in emission order.
func Classes() []Class {
	return slices.Clone(classes)
}

func (c Class) String() string {
	switch c {
	case ModuleSource:
		return "module-source"
	case Stylesheet:
		return "stylesheet"
	case Template:
		return "template"
	case StaticBinary:
		return "static-binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Extensions returns the file extensions owned by c.
func (c Class) Extensions() []string {
	return slices.Clone(classExtensions[c])
}

// ClassOf maps a fixed extension to its class. Compound extensions such as
// ".module.css" are classified by their final segment.
func ClassOf(ext string) (Class, bool) {
	final := strings.ToLower(path.Ext(ext))
	for _, c := range classes {
		if slices.Contains(classExtensions[c], final) {
			return c, true
		}
	}
	return 0, false
}
