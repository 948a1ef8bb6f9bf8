package opaque_pass

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithName overrides the node's name. The default is "main_opaque_pass".
//
// Parameters:
//   - name: the node name used for labels and error reporting
//
// Returns:
//   - NodeBuilderOption: the option to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}
