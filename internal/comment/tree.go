package comment

// treeNode is the mutable shape used while threading; it is flattened
// into CommentResponse values once the structure is settled.
type treeNode struct {
	resp    CommentResponse
	replies []*treeNode
}

// BuildTree nests a flat, created-at-ascending comment list into
// threads. Ascending order guarantees every parent is placed before
// its replies. Rows pointing at a parent missing from the slice are
// dropped, so excluding a soft-deleted comment from the input hides
// its whole reply subtree.
func BuildTree(comments []Comment) []CommentResponse {
	nodes := make(map[string]*treeNode, len(comments))
	roots := make([]*treeNode, 0)

	for i := range comments {
		node := &treeNode{resp: ToCommentResponse(&comments[i])}
		nodes[node.resp.ID] = node

		if node.resp.ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}

		if parent, ok := nodes[*node.resp.ParentCommentID]; ok {
			parent.replies = append(parent.replies, node)
		}
	}

	tree := make([]CommentResponse, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, flatten(root))
	}

	return tree
}

func flatten(node *treeNode) CommentResponse {
	resp := node.resp
	resp.Replies = make([]CommentResponse, 0, len(node.replies))

	for _, reply := range node.replies {
		resp.Replies = append(resp.Replies, flatten(reply))
	}

	return resp
}
