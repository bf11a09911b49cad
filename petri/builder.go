package petri

import "fmt"

// Builder provides a fluent API for constructing nets. The first
// construction error is retained and returned by Done; later calls are
// no-ops once an error occurred.
//
// Example:
//
//	net, err := petri.Build("chain").
//	    Place("P0", 1).
//	    Place("P1", 0).
//	    Transition("T0").
//	    Arc("P0", "T0").
//	    Arc("T0", "P1").
//	    Done()
type Builder struct {
	net      *Net
	err      error
	warnings []string
}

// Build creates a new Builder for a net with the given name.
func Build(name string) *Builder {
	return &Builder{net: NewNet(name)}
}

// Place declares a place with the given initial token count. Counts above
// one are clamped to a single token and recorded as a warning.
func (b *Builder) Place(id string, tokens int) *Builder {
	if b.err != nil {
		return b
	}
	if b.err = b.net.AddPlace(id); b.err != nil {
		return b
	}
	clamped, err := b.net.SetInitial(id, tokens)
	if err != nil {
		b.err = err
		return b
	}
	if clamped {
		b.warnings = append(b.warnings, fmt.Sprintf("place %q: initial marking %d clamped to 1", id, tokens))
	}
	return b
}

// Transition declares a transition.
func (b *Builder) Transition(id string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.net.AddTransition(id)
	return b
}

// Arc connects a place to a transition or vice versa.
func (b *Builder) Arc(source, target string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.net.AddArc(source, target)
	return b
}

// Flow adds the common place → transition → place pattern in one call.
func (b *Builder) Flow(fromPlace, transition, toPlace string) *Builder {
	return b.Arc(fromPlace, transition).Arc(transition, toPlace)
}

// Warnings returns non-fatal construction warnings (token clamping).
func (b *Builder) Warnings() []string {
	return b.warnings
}

// Done returns the constructed net, or the first construction error.
func (b *Builder) Done() (*Net, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.net, nil
}
