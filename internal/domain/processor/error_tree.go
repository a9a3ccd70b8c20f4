package processor

// FieldError ゲートウェイが返す1件の検証エラー
type FieldError struct {
	Attribute string
	Code      string
	Message   string
}

// ErrorNode フィールドグループ単位の検証エラー木
// 例: transaction > credit-card > billing-address
type ErrorNode struct {
	FieldGroup  string
	FieldErrors []FieldError
	Children    []*ErrorNode
}

// NewErrorNode 新しいErrorNodeを作成
func NewErrorNode(group string, fieldErrors ...FieldError) *ErrorNode {
	return &ErrorNode{FieldGroup: group, FieldErrors: fieldErrors}
}

// AddChild 子グループを追加して返す
func (n *ErrorNode) AddChild(child *ErrorNode) *ErrorNode {
	n.Children = append(n.Children, child)
	return n
}

// DeepErrors 木全体を深さ優先で平坦化する
// 各ノードは自身のエラーを子より先に、文書順のまま並べる
// nilの場合も空スライスを返す
func (n *ErrorNode) DeepErrors() []FieldError {
	out := []FieldError{}
	if n == nil {
		return out
	}
	return n.appendDeep(out)
}

func (n *ErrorNode) appendDeep(out []FieldError) []FieldError {
	out = append(out, n.FieldErrors...)
	for _, child := range n.Children {
		if child != nil {
			out = child.appendDeep(out)
		}
	}
	return out
}

// Size 木全体のエラー件数
func (n *ErrorNode) Size() int {
	if n == nil {
		return 0
	}
	size := len(n.FieldErrors)
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}
