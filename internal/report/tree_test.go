package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*treeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestBuildTree(t *testing.T) {
	t.Run("should collapse single-child directory chains", func(t *testing.T) {
		files := []string{
			"com/example/app/ui/Main.java",
			"com/example/app/ui/View.java",
			"com/example/app/net/Client.java",
		}
		anchors := map[string]string{files[0]: "file-0", files[1]: "file-1", files[2]: "file-2"}

		tree := buildTree(files, anchors)
		require.Len(t, tree, 1)
		assert.Equal(t, "com/example/app", tree[0].Name)
		assert.Equal(t, []string{"net", "ui"}, names(tree[0].Children))

		ui := tree[0].Children[1]
		assert.Equal(t, []string{"Main.java", "View.java"}, names(ui.Children))
		assert.True(t, ui.Children[0].IsFile())
		assert.Equal(t, "file-0", ui.Children[0].Anchor)
	})

	t.Run("should collapse the whole chain down to the file's directory", func(t *testing.T) {
		tree := buildTree([]string{"a/b/c/d/X.java"}, map[string]string{"a/b/c/d/X.java": "file-0"})
		require.Len(t, tree, 1)
		assert.Equal(t, "a/b/c/d", tree[0].Name)
		assert.Equal(t, []string{"X.java"}, names(tree[0].Children))
	})

	t.Run("should list directories before files", func(t *testing.T) {
		tree := buildTree([]string{"Z.java", "pkg/A.java", "B.java"}, nil)
		assert.Equal(t, []string{"pkg", "B.java", "Z.java"}, names(tree))
	})

	t.Run("should handle no files", func(t *testing.T) {
		assert.Empty(t, buildTree(nil, nil))
	})
}
