package hcluster

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Fprint writes the dendrogram rooted at root to w, one node per line in
// pre-order, indented by one space per level. Merge nodes are written as
// "+ [distance]" and leaves as labels[id], or "#id" when labels has no entry
// for the leaf. A nil root writes nothing.
func Fprint(w io.Writer, root *Node, labels []string) error {
	if root == nil {
		return nil
	}

	bw := bufio.NewWriter(w)
	root.Walk(func(node *Node, level int) bool {
		bw.WriteString(strings.Repeat(" ", level))
		if node.IsLeaf() {
			bw.WriteString(leafLabel(node.id, labels))
		} else {
			fmt.Fprintf(bw, "+ [%.2f]", node.distance)
		}
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

func leafLabel(id int, labels []string) string {
	if id < len(labels) {
		return labels[id]
	}
	return fmt.Sprintf("#%d", id)
}
