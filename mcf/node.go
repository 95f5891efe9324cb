package mcf

// Property is a single property:value pair of a node.
type Property struct {
	Name  string
	Value Value
}

// Node is a schema record keyed by its dcid. Properties keep file order.
type Node struct {
	DCID       string
	Properties []Property
}

// NewNode creates an empty node with the given key.
func NewNode(dcid string) *Node {
	return &Node{DCID: dcid}
}

// Get returns the value of a property.
func (n *Node) Get(name string) (Value, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Add appends a value for a property. Adding to an existing property turns
// its value into a Sequence; a value already present is not repeated.
func (n *Node) Add(name, value string) {
	for i, p := range n.Properties {
		if p.Name != name {
			continue
		}
		for _, item := range p.Value.items {
			if item == value {
				return
			}
		}
		n.Properties[i].Value = p.Value.Append(value)
		return
	}
	n.Properties = append(n.Properties, Property{Name: name, Value: Scalar(value)})
}

// Set replaces the value of a property, adding it when missing.
func (n *Node) Set(name string, value Value) {
	for i, p := range n.Properties {
		if p.Name == name {
			n.Properties[i].Value = value
			return
		}
	}
	n.Properties = append(n.Properties, Property{Name: name, Value: value})
}

// Merge adds every property value of other into n.
func (n *Node) Merge(other *Node) {
	for _, p := range other.Properties {
		for _, item := range p.Value.items {
			n.Add(p.Name, item)
		}
	}
}
