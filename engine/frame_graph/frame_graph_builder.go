package frame_graph

// GraphBuilderOption is a functional option for configuring a Graph during construction.
type GraphBuilderOption func(*graphImpl)

// WithViewName sets the view label carried in every frame Context. The
// default is "main".
//
// Parameters:
//   - name: the view label
//
// Returns:
//   - GraphBuilderOption: the option to apply
func WithViewName(name string) GraphBuilderOption {
	return func(g *graphImpl) {
		g.viewName = name
	}
}

// WithNodes appends nodes during construction, in the given order.
//
// Parameters:
//   - nodes: the nodes to append
//
// Returns:
//   - GraphBuilderOption: the option to apply
func WithNodes(nodes ...Node) GraphBuilderOption {
	return func(g *graphImpl) {
		g.nodes = append(g.nodes, nodes...)
	}
}
