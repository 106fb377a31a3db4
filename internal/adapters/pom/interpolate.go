package pom

import "go.trai.ch/mvninspect/internal/adapters/interpolation"

// interpolator expands ${...} expressions against the model values and
// properties of one project.
type interpolator struct {
	*interpolation.Expander
}

func newInterpolator() *interpolator {
	return &interpolator{Expander: interpolation.New()}
}

// setModel registers a model value under its project. and pom. forms.
func (in *interpolator) setModel(key, value string) {
	in.Set("project."+key, value)
	in.Set("pom."+key, value)
}
