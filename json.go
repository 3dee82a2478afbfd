package hcluster

import "github.com/goccy/go-json"

// jsonNode is the wire form of a Node. Vectors are left out; they can be
// recomputed from the input table.
type jsonNode struct {
	ID       int       `json:"id"`
	Label    string    `json:"label,omitempty"`
	Distance *float64  `json:"distance,omitempty"`
	Left     *jsonNode `json:"left,omitempty"`
	Right    *jsonNode `json:"right,omitempty"`
}

func toJSONNode(n *Node, labels []string) *jsonNode {
	if n.IsLeaf() {
		jn := &jsonNode{ID: n.id}
		if n.id < len(labels) {
			jn.Label = labels[n.id]
		}
		return jn
	}
	d := n.distance
	return &jsonNode{
		ID:       n.id,
		Distance: &d,
		Left:     toJSONNode(n.left, labels),
		Right:    toJSONNode(n.right, labels),
	}
}

// MarshalJSON encodes the subtree rooted at n as nested objects with id,
// distance (merge nodes only), left and right.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(n, nil))
}

// MarshalLabeled is like MarshalJSON but also attaches labels[id] to each
// leaf that has one.
func MarshalLabeled(root *Node, labels []string) ([]byte, error) {
	if root == nil {
		return []byte("null"), nil
	}
	return json.Marshal(toJSONNode(root, labels))
}
