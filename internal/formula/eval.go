// Package formula provides a safe arithmetic evaluator for user-authored
// emission formulas.
//
// Formulas are plain arithmetic over named parameters: the four basic
// operators, exponentiation, unary minus, and parentheses. There is no
// function call syntax and no escape into the host language, so a formula
// read from a monitoring plan cannot execute code.
package formula

import (
	"fmt"
	"math"
	"strings"
)

// Result is the outcome of evaluating a formula. Exactly one of Value
// and Err is meaningful: on error Value is 0 and Err is non-empty.
type Result struct {
	Value float64 `json:"value"`
	Err   string  `json:"error,omitempty"`
}

// Validation is the outcome of checking a formula against a set of
// known parameter names.
type Validation struct {
	Valid   bool     `json:"valid"`
	Unknown []string `json:"unknown_variables,omitempty"`
	Err     string   `json:"error,omitempty"`
}

// Evaluate parses and evaluates a formula with the given variable values.
//
// An empty or all-whitespace formula evaluates to 0 with no error; a
// deliberately inert block is not a mistake. Syntax errors, unknown
// variables, and non-finite results (division by zero, overflow) all
// produce a zero value with a descriptive Err, never a partial result.
func Evaluate(expr string, vars map[string]float64) Result {
	if strings.TrimSpace(expr) == "" {
		return Result{Value: 0}
	}

	root, err := compile(expr)
	if err != nil {
		return Result{Err: err.Error()}
	}

	v, err := root.eval(vars)
	if err != nil {
		return Result{Err: err.Error()}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Result{Err: "formula result is not a finite number"}
	}
	return Result{Value: v}
}

// Validate checks a formula's syntax and reports any identifiers that
// are not in known. Known identifiers are substituted with a dummy
// value of 1 so evaluation errors unrelated to syntax do not mask the
// unknown-variable report.
func Validate(expr string, known []string) Validation {
	if strings.TrimSpace(expr) == "" {
		return Validation{Valid: true}
	}

	root, err := compile(expr)
	if err != nil {
		return Validation{Err: err.Error()}
	}

	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}

	var unknown []string
	seen := map[string]bool{}
	walk(root, func(n node) {
		v, ok := n.(*variableNode)
		if !ok || knownSet[v.name] || seen[v.name] {
			return
		}
		seen[v.name] = true
		unknown = append(unknown, v.name)
	})

	if len(unknown) > 0 {
		return Validation{Unknown: unknown, Err: fmt.Sprintf("unknown variables: %s", strings.Join(unknown, ", "))}
	}

	dummy := make(map[string]float64, len(known))
	for _, k := range known {
		dummy[k] = 1
	}
	if _, err := root.eval(dummy); err != nil {
		return Validation{Err: err.Error()}
	}
	return Validation{Valid: true}
}

// ExtractVariables returns the de-duplicated identifiers referenced by
// a formula, in order of first appearance. Callers use it to suggest
// parameters that a block still needs. Returns nil for formulas that
// do not parse.
func ExtractVariables(expr string) []string {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	root, err := compile(expr)
	if err != nil {
		return nil
	}
	var names []string
	seen := map[string]bool{}
	walk(root, func(n node) {
		if v, ok := n.(*variableNode); ok && !seen[v.name] {
			seen[v.name] = true
			names = append(names, v.name)
		}
	})
	return names
}

// compile tokenizes and parses a formula into an AST.
func compile(expr string) (node, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	return parse(tokens)
}

// walk visits every node of the tree in source order (left to right).
func walk(n node, visit func(node)) {
	visit(n)
	switch t := n.(type) {
	case *binaryNode:
		walk(t.left, visit)
		walk(t.right, visit)
	case *unaryMinusNode:
		walk(t.operand, visit)
	}
}

func (n *numberNode) eval(map[string]float64) (float64, error) {
	return n.value, nil
}

func (n *variableNode) eval(vars map[string]float64) (float64, error) {
	v, ok := vars[n.name]
	if !ok {
		return 0, fmt.Errorf("unknown variable %q", n.name)
	}
	return v, nil
}

func (n *unaryMinusNode) eval(vars map[string]float64) (float64, error) {
	v, err := n.operand.eval(vars)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *binaryNode) eval(vars map[string]float64) (float64, error) {
	left, err := n.left.eval(vars)
	if err != nil {
		return 0, err
	}
	right, err := n.right.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokenPlus:
		return left + right, nil
	case tokenMinus:
		return left - right, nil
	case tokenStar:
		return left * right, nil
	case tokenSlash:
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return left / right, nil
	case tokenCaret:
		return math.Pow(left, right), nil
	default:
		return 0, fmt.Errorf("unsupported operator")
	}
}
