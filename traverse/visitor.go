package traverse

import "context"

// Visitor inspects nodes during a walk. Visitors run in composed order
// at every attribute-addressing node, pre-order, before the walker
// descends into the node's children. Returning an error aborts the
// whole walk; the Result decides what happens to the node otherwise.
type Visitor interface {
	Visit(ctx context.Context, n *Node) (Result, error)
}

// Func adapts an ordinary function to the Visitor interface.
type Func func(ctx context.Context, n *Node) (Result, error)

// Visit calls f(ctx, n).
func (f Func) Visit(ctx context.Context, n *Node) (Result, error) {
	return f(ctx, n)
}

type resultKind uint8

const (
	resultPass resultKind = iota
	resultRewrite
	resultRemove
)

// Result tells the walker what to do with a visited node. The zero
// value keeps the node as is.
type Result struct {
	kind  resultKind
	value any
}

// Rewrite replaces the node's value in its parent. Later visitors and
// any descent observe the new value.
func Rewrite(v any) Result {
	return Result{kind: resultRewrite, value: v}
}

// Remove deletes the node from its parent and skips descent. Later
// visitors do not run.
func Remove() Result {
	return Result{kind: resultRemove}
}

// visit runs the visitors in order against n. Rewrites are folded into
// n.Value; a removal short-circuits.
func visit(ctx context.Context, vs []Visitor, n *Node) (removed bool, err error) {
	for _, v := range vs {
		res, err := v.Visit(ctx, n)
		if err != nil {
			return false, err
		}
		switch res.kind {
		case resultRemove:
			return true, nil
		case resultRewrite:
			n.Value = res.value
		}
	}
	return false, nil
}
