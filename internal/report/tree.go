package report

import (
	"sort"
	"strings"
)

// treeNode is one entry of the sidebar file tree. Files carry the anchor of
// their section in the page; directories carry children.
type treeNode struct {
	Name     string
	Anchor   string
	Children []*treeNode
}

// IsFile reports whether n is a leaf.
func (n *treeNode) IsFile() bool {
	return n.Children == nil
}

// buildTree arranges files into a directory tree. anchors maps each file to
// its in-page anchor. Directories whose only child is another directory are
// merged into one node named "a/b/c".
func buildTree(files []string, anchors map[string]string) []*treeNode {
	root := &treeNode{Children: []*treeNode{}}
	for _, file := range files {
		parts := strings.Split(file, "/")
		cur := root
		for _, dir := range parts[:len(parts)-1] {
			cur = cur.child(dir)
		}
		cur.Children = append(cur.Children, &treeNode{Name: parts[len(parts)-1], Anchor: anchors[file]})
	}

	for _, n := range root.Children {
		compress(n)
	}
	sortTree(root.Children)
	return root.Children
}

func (n *treeNode) child(name string) *treeNode {
	for _, c := range n.Children {
		if c.Name == name && !c.IsFile() {
			return c
		}
	}
	c := &treeNode{Name: name, Children: []*treeNode{}}
	n.Children = append(n.Children, c)
	return c
}

func compress(n *treeNode) {
	if n.IsFile() {
		return
	}
	for len(n.Children) == 1 && !n.Children[0].IsFile() {
		only := n.Children[0]
		n.Name += "/" + only.Name
		n.Children = only.Children
	}
	for _, c := range n.Children {
		compress(c)
	}
}

// sortTree orders directories before files, each by name.
func sortTree(nodes []*treeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].IsFile() != nodes[j].IsFile() {
			return !nodes[i].IsFile()
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		if !n.IsFile() {
			sortTree(n.Children)
		}
	}
}
