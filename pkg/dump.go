package algoritmo

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DumpYAML renders the AST as a YAML document. Keys keep a fixed order:
// node kind first, then the location, then the node fields.
func DumpYAML(p *Program) ([]byte, error) {
	doc := mapping(
		"node", str("Program"),
		"name", str(p.Name),
		"body", stmtList(p.Body),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func mapping(kv ...interface{}) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Content = append(n.Content, str(kv[i].(string)), kv[i+1].(*yaml.Node))
	}

	return n
}

func str(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	return n
}

func plain(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func sequence(items []*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Content: items}
}

func stmtList(stmts []Statement) *yaml.Node {
	items := make([]*yaml.Node, 0, len(stmts))
	for _, s := range stmts {
		items = append(items, stmtNode(s))
	}

	return sequence(items)
}

func exprList(exprs []Expression) *yaml.Node {
	items := make([]*yaml.Node, 0, len(exprs))
	for _, e := range exprs {
		items = append(items, exprNode(e))
	}

	return sequence(items)
}

func located(kind string, loc *Location, kv ...interface{}) *yaml.Node {
	head := []interface{}{"node", str(kind)}
	if loc != nil {
		head = append(head, "at", str(loc.String()))
	}

	return mapping(append(head, kv...)...)
}

func stmtNode(stmt Statement) *yaml.Node {
	switch s := stmt.(type) {
	case *Assignment:
		return located("Assignment", s.Loc, "name", str(s.Name), "value", exprNode(s.Value))
	case *ArrayDecl:
		return located("ArrayDecl", s.Loc, "name", str(s.Name), "size", exprNode(s.Size))
	case *ArrayAssign:
		return located("ArrayAssign", s.Loc, "name", str(s.Name), "index", exprNode(s.Index), "value", exprNode(s.Value))
	case *PrintStmt:
		return located("Print", s.Loc, "exprs", exprList(s.Exprs))
	case *ReadStmt:
		targets := make([]Expression, len(s.Targets))
		for i, t := range s.Targets {
			targets[i] = t
		}

		return located("Read", s.Loc, "targets", exprList(targets))
	case *IfStmt:
		kv := []interface{}{"cond", exprNode(s.Cond), "then", stmtList(s.Then)}
		if s.Else != nil {
			kv = append(kv, "else", stmtList(s.Else))
		}

		return located("If", s.Loc, kv...)
	case *SwitchStmt:
		cases := make([]*yaml.Node, len(s.Cases))
		for i, c := range s.Cases {
			cases[i] = mapping("label", exprNode(c), "body", stmtList(s.Blocks[i]))
		}

		return located("Switch", s.Loc, "subject", exprNode(s.Subject), "cases", sequence(cases), "default", stmtList(s.Default))
	case *WhileStmt:
		return located("While", s.Loc, "cond", exprNode(s.Cond), "body", stmtList(s.Body))
	case *RepeatStmt:
		return located("Repeat", s.Loc, "body", stmtList(s.Body), "until", exprNode(s.Cond))
	case *ForStmt:
		return located("For", s.Loc,
			"var", str(s.Var),
			"from", plain(formatNumber(s.From)),
			"to", plain(formatNumber(s.To)),
			"step", plain(formatNumber(s.Step)),
			"body", stmtList(s.Body),
		)
	default:
		return str(fmt.Sprintf("%T", stmt))
	}
}

func exprNode(expr Expression) *yaml.Node {
	switch e := expr.(type) {
	case *StringLiteral:
		return located("String", e.Loc, "value", str(e.Value))
	case *NumberLiteral:
		return located("Number", e.Loc, "value", plain(formatNumber(e.Value)))
	case *BooleanLiteral:
		return located("Boolean", e.Loc, "value", plain(strconv.FormatBool(e.Value)))
	case *Identifier:
		return located("Identifier", e.Loc, "name", str(e.Name))
	case *UnaryExpr:
		return located("Unary", e.Loc, "op", str(string(e.Operation)), "operand", exprNode(e.Operand))
	case *BinaryExpr:
		return located("Binary", e.Loc, "op", str(string(e.Operation)), "left", exprNode(e.Op1), "right", exprNode(e.Op2))
	case *ArrayAccess:
		return located("ArrayAccess", e.Loc, "name", str(e.Name), "index", exprNode(e.Index))
	case *FuncCall:
		return located("Call", e.Loc, "name", str(e.Name), "args", exprList(e.Args))
	default:
		return str(fmt.Sprintf("%T", expr))
	}
}
