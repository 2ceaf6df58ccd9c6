package shape

import (
	"errors"
	"fmt"
	"strings"
)

// Template names a silhouette the particle field can morph into.
type Template int

const (
	TemplateSphere Template = iota
	TemplateHeart
	TemplateFlower
	TemplateSaturn
	TemplateBuddha
	TemplateFireworks
)

// ErrUnknownTemplate is returned for names or values outside the enumeration.
var ErrUnknownTemplate = errors.New("unknown template")

// Templates lists every template in menu order.
var Templates = []Template{
	TemplateSphere,
	TemplateHeart,
	TemplateFlower,
	TemplateSaturn,
	TemplateBuddha,
	TemplateFireworks,
}

var templateNames = [...]string{"sphere", "heart", "flower", "saturn", "buddha", "fireworks"}

// Menu labels shown by the frontends.
var templateLabels = [...]string{"Orb", "Love", "Nature", "Space", "Zen", "Spark"}

func (t Template) Valid() bool {
	return t >= TemplateSphere && t <= TemplateFireworks
}

func (t Template) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Template(%d)", int(t))
	}
	return templateNames[t]
}

// Label returns the short menu label.
func (t Template) Label() string {
	if !t.Valid() {
		return "?"
	}
	return templateLabels[t]
}

// ParseTemplate resolves a template by name, case-insensitively.
func ParseTemplate(name string) (Template, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range templateNames {
		if s == n {
			return Template(i), nil
		}
	}
	return TemplateSphere, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}
