package locate

import (
	"github.com/chriserin/cukenav/internal/node"
)

// Focuser opens a file, selects the location's range and reveals it, as a
// single action.
type Focuser interface {
	Focus(loc Location) error
}

// Open resolves n and hands the result to f. f is not called when the
// node cannot be resolved.
func (r *Resolver) Open(n node.Node, f Focuser) (Location, error) {
	loc, err := r.Resolve(n)
	if err != nil {
		return Location{}, err
	}
	if err := f.Focus(loc); err != nil {
		return Location{}, err
	}
	return loc, nil
}
