package path

import (
	"fmt"

	"github.com/creachadair/jindex"
	"github.com/creachadair/jindex/node"
)

// Error is the concrete type of errors reported when a path cannot be
// resolved against a tree.
type Error struct {
	Path    string // the complete path expression
	Segment string // the segment that could not be resolved, as written
	Index   int    // the offset of the segment among the elements of the path
	Err     error  // the underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("path %q: segment %d (%s): %v", e.Path, e.Index, e.Segment, e.Err)
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.Err }

// Eval resolves p starting from root, and returns the node it denotes. An
// empty path denotes root itself. If any segment cannot be resolved, Eval
// reports an error of concrete type *Error.
//
// Only the nodes along the path are constructed; the siblings of those
// nodes are not visited.
func (p *Path) Eval(root node.Node) (node.Node, error) {
	cur := root
	for i, e := range p.elems {
		next, err := step(cur, e)
		if err != nil {
			return nil, &Error{Path: p.expr, Segment: segmentText(e), Index: i, Err: err}
		}
		cur = next
	}
	return cur, nil
}

func step(cur node.Node, e Element) (node.Node, error) {
	if r, ok := cur.(*node.Root); ok {
		cur = r.Value()
	}
	switch c := cur.(type) {
	case *node.Object:
		k, ok := e.(*Key)
		if !ok {
			return nil, &node.TypeError{Want: "array", Got: jindex.Object}
		}
		name, err := k.Name()
		if err != nil {
			return nil, err
		}
		return c.Get(name)

	case *node.Array:
		x, ok := e.(*Index)
		if !ok {
			return nil, &node.TypeError{Want: "object", Got: jindex.Array}
		}
		i, err := x.Value()
		if err != nil {
			return nil, err
		}
		return c.At(i)

	case node.Collection:
		return c.Lookup(e.Label())

	case nil:
		return nil, fmt.Errorf("no value")
	}
	return nil, &node.TypeError{Want: "collection", Got: cur.Kind()}
}

// At parses expr and resolves it starting from root.
func At(expr string, root node.Node) (node.Node, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return p.Eval(root)
}

// AtJSON parses data using the default configuration and resolves expr
// against the resulting tree.
func AtJSON(expr string, data []byte) (node.Node, error) {
	root, err := node.Parse(data)
	if err != nil {
		return nil, err
	}
	return At(expr, root)
}
