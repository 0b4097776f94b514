package expr

import (
	"fmt"
	"strings"
)

// node is one expression tree node. String renders the canonical source form,
// which tests and error messages use.
type node interface {
	fmt.Stringer
}

type identifier struct {
	name string
}

func (n *identifier) String() string { return n.name }

type integerLiteral struct {
	value int64
}

func (n *integerLiteral) String() string { return fmt.Sprintf("%d", n.value) }

type floatLiteral struct {
	value float64
}

func (n *floatLiteral) String() string { return fmt.Sprintf("%g", n.value) }

type stringLiteral struct {
	value string
}

func (n *stringLiteral) String() string { return fmt.Sprintf("%q", n.value) }

type booleanLiteral struct {
	value bool
}

func (n *booleanLiteral) String() string { return fmt.Sprintf("%t", n.value) }

type prefixExpression struct {
	operator string
	right    node
}

func (n *prefixExpression) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.operator)
	sb.WriteString(n.right.String())
	sb.WriteString(")")
	return sb.String()
}

type infixExpression struct {
	operator string
	left     node
	right    node
}

func (n *infixExpression) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(n.left.String())
	sb.WriteString(" ")
	sb.WriteString(n.operator)
	sb.WriteString(" ")
	sb.WriteString(n.right.String())
	sb.WriteString(")")
	return sb.String()
}
