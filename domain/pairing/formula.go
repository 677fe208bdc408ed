package pairing

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// MaxIndex is the largest index that still fits a 3-digit filename segment.
const MaxIndex = 999

var (
	// ErrFormula reports a formula that failed to parse or evaluate.
	ErrFormula = errors.New("index formula")
	// ErrIndexRange reports a result that cannot be written as a 3-digit index.
	ErrIndexRange = errors.New("index out of range")
)

// IndexFunc maps the numeric index embedded in one filename to the index of
// its paired file.
type IndexFunc func(index int) (int, error)

// Formula is a validated, named IndexFunc.
type Formula struct {
	Name string
	fn   IndexFunc
}

// Apply evaluates the formula and checks the result fits 0..MaxIndex.
func (f Formula) Apply(index int) (int, error) {
	if f.fn == nil {
		return 0, fmt.Errorf("%w: empty formula", ErrFormula)
	}
	out, err := f.fn(index)
	if err != nil {
		return 0, err
	}
	if out < 0 || out > MaxIndex {
		return 0, fmt.Errorf("%w: %s(%d) = %d", ErrIndexRange, f.Name, index, out)
	}
	return out, nil
}

func (f Formula) String() string { return f.Name }

var named = map[string]IndexFunc{
	"identity": func(i int) (int, error) { return i, nil },
	"prev":     func(i int) (int, error) { return i - 1, nil },
	"next":     func(i int) (int, error) { return i + 1, nil },
	"double":   func(i int) (int, error) { return i * 2, nil },
}

// variables accepted inside expressions; both bind the same source index.
var variables = map[string]bool{"index": true, "x": true}

// Parse resolves src into a Formula. src is either a registered name or an
// integer arithmetic expression over index (or x) using + - * / % and
// parentheses. Division must be exact. Nothing else is accepted, so the
// expression can never do more than integer arithmetic.
func Parse(src string) (Formula, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return Formula{}, fmt.Errorf("%w: empty expression", ErrFormula)
	}
	if fn, ok := named[src]; ok {
		return Formula{Name: src, fn: fn}, nil
	}
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return Formula{}, fmt.Errorf("%w: %q: %v", ErrFormula, src, err)
	}
	if err := validate(expr); err != nil {
		return Formula{}, fmt.Errorf("%w: %q: %v", ErrFormula, src, err)
	}
	return Formula{Name: src, fn: func(i int) (int, error) {
		v, err := eval(expr, i)
		if err != nil {
			return 0, fmt.Errorf("%w: %q with index %d: %v", ErrFormula, src, i, err)
		}
		return v, nil
	}}, nil
}

func validate(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT {
			return fmt.Errorf("literal %s is not an integer", n.Value)
		}
		if _, err := strconv.ParseInt(n.Value, 0, 64); err != nil {
			return err
		}
		return nil
	case *ast.Ident:
		if !variables[n.Name] {
			return fmt.Errorf("unknown identifier %q", n.Name)
		}
		return nil
	case *ast.ParenExpr:
		return validate(n.X)
	case *ast.UnaryExpr:
		if n.Op != token.ADD && n.Op != token.SUB {
			return fmt.Errorf("operator %s not allowed", n.Op)
		}
		return validate(n.X)
	case *ast.BinaryExpr:
		switch n.Op {
		case token.ADD, token.SUB, token.MUL, token.QUO, token.REM:
		default:
			return fmt.Errorf("operator %s not allowed", n.Op)
		}
		if err := validate(n.X); err != nil {
			return err
		}
		return validate(n.Y)
	default:
		return fmt.Errorf("unsupported expression %T", e)
	}
}

func eval(e ast.Expr, index int) (int, error) {
	switch n := e.(type) {
	case *ast.BasicLit:
		v, err := strconv.ParseInt(n.Value, 0, 64)
		return int(v), err
	case *ast.Ident:
		return index, nil
	case *ast.ParenExpr:
		return eval(n.X, index)
	case *ast.UnaryExpr:
		v, err := eval(n.X, index)
		if err != nil {
			return 0, err
		}
		if n.Op == token.SUB {
			return -v, nil
		}
		return v, nil
	case *ast.BinaryExpr:
		a, err := eval(n.X, index)
		if err != nil {
			return 0, err
		}
		b, err := eval(n.Y, index)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case token.ADD:
			return a + b, nil
		case token.SUB:
			return a - b, nil
		case token.MUL:
			return a * b, nil
		case token.QUO:
			if b == 0 {
				return 0, errors.New("division by zero")
			}
			if a%b != 0 {
				return 0, fmt.Errorf("%d / %d is not an integer", a, b)
			}
			return a / b, nil
		case token.REM:
			if b == 0 {
				return 0, errors.New("modulo by zero")
			}
			return a % b, nil
		}
	}
	return 0, fmt.Errorf("unsupported expression %T", e)
}
