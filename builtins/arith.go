// ABOUTME: Numeric built-ins: + - * / 1+ 1-
// ABOUTME: Folds with int/float contagion; floats are boxed in the arena

package builtins

import (
	"fmt"

	"github.com/prateek/gcroot/arena"
	"github.com/prateek/gcroot/object"
)

// These functions allocate only their result and never reach a safe point,
// so their arguments need no rooting.

type number struct {
	i       int64
	f       float64
	isFloat bool
}

func toNumber(a *arena.Arena, o object.Obj) (number, error) {
	if i, ok := o.AsInt(); ok {
		return number{i: i}, nil
	}
	if f, ok := a.FloatOf(o); ok {
		return number{f: f, isFloat: true}, nil
	}
	return number{}, fmt.Errorf("%w: number-or-marker-p, %s", ErrWrongType, a.Format(o))
}

func (n number) float() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

type intOp func(x, y int64) (int64, error)

type floatOp func(x, y float64) float64

func (n number) acc(next number, iop intOp, fop floatOp) (number, error) {
	if n.isFloat || next.isFloat {
		return number{f: fop(n.float(), next.float()), isFloat: true}, nil
	}
	i, err := iop(n.i, next.i)
	return number{i: i}, err
}

func (n number) obj(a *arena.Arena) object.Obj {
	if n.isFloat {
		return a.AddFloat(n.f)
	}
	return object.Int(n.i)
}

func fold(a *arena.Arena, start number, args []object.Obj, iop intOp, fop floatOp) (object.Obj, error) {
	acc := start
	for _, arg := range args {
		next, err := toNumber(a, arg)
		if err != nil {
			return object.Nil, err
		}
		if acc, err = acc.acc(next, iop, fop); err != nil {
			return object.Nil, err
		}
	}
	return acc.obj(a), nil
}

// fixnum rejects results outside the immediate Int range.
func fixnum(n int64) (int64, error) {
	if n > object.MaxInt || n < object.MinInt {
		return 0, fmt.Errorf("%w: overflow, %d", ErrArithRange, n)
	}
	return n, nil
}

var (
	// Operands are fixnums, so sums and differences cannot overflow int64.
	addInt = func(x, y int64) (int64, error) { return fixnum(x + y) }
	subInt = func(x, y int64) (int64, error) { return fixnum(x - y) }
	mulInt = func(x, y int64) (int64, error) {
		r := x * y
		if x != 0 && r/x != y {
			return 0, fmt.Errorf("%w: overflow, %d * %d", ErrArithRange, x, y)
		}
		return fixnum(r)
	}
	divInt = func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrArithRange)
		}
		return fixnum(x / y)
	}

	addFloat = func(x, y float64) float64 { return x + y }
	subFloat = func(x, y float64) float64 { return x - y }
	mulFloat = func(x, y float64) float64 { return x * y }
	divFloat = func(x, y float64) float64 { return x / y }
)

// Add implements (+ &rest numbers).
func Add(a *arena.Arena, args []object.Obj) (object.Obj, error) {
	return fold(a, number{}, args, addInt, addFloat)
}

// Sub implements (- &optional number &rest numbers). With one argument it
// negates it.
func Sub(a *arena.Arena, args []object.Obj) (object.Obj, error) {
	if len(args) == 0 {
		return object.Int(0), nil
	}
	first, err := toNumber(a, args[0])
	if err != nil {
		return object.Nil, err
	}
	if len(args) == 1 {
		if first.isFloat {
			return a.AddFloat(-first.f), nil
		}
		n, err := fixnum(-first.i)
		if err != nil {
			return object.Nil, err
		}
		return object.Int(n), nil
	}
	return fold(a, first, args[1:], subInt, subFloat)
}

// Mul implements (* &rest numbers).
func Mul(a *arena.Arena, args []object.Obj) (object.Obj, error) {
	return fold(a, number{i: 1}, args, mulInt, mulFloat)
}

// Div implements (/ number &rest divisors).
func Div(a *arena.Arena, args []object.Obj) (object.Obj, error) {
	if len(args) == 0 {
		return object.Nil, fmt.Errorf("%w: / needs at least 1", ErrWrongArgCount)
	}
	first, err := toNumber(a, args[0])
	if err != nil {
		return object.Nil, err
	}
	return fold(a, first, args[1:], divInt, divFloat)
}

// PlusOne implements (1+ number).
func PlusOne(a *arena.Arena, n object.Obj) (object.Obj, error) {
	return fold(a, number{i: 1}, []object.Obj{n}, addInt, addFloat)
}

// MinusOne implements (1- number).
func MinusOne(a *arena.Arena, n object.Obj) (object.Obj, error) {
	num, err := toNumber(a, n)
	if err != nil {
		return object.Nil, err
	}
	res, err := num.acc(number{i: 1}, subInt, subFloat)
	if err != nil {
		return object.Nil, err
	}
	return res.obj(a), nil
}
