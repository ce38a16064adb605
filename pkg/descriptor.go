package pipeline

import (
	"reflect"

	"github.com/mumoshu/pipeline/pkg/api/step"
	"github.com/pkg/errors"
)

// Instance is a step ready to run, built from a Descriptor and the values of
// its dependencies. A nil result means the step produced nothing.
type Instance interface {
	Run() (interface{}, error)
}

// Descriptor describes a step registered to a Pipeline.
//
// Descriptors are usually built with Step0..Step3 or Action0..Action2, which
// derive Requires and Produces from the constructor and result types. New
// receives one argument per entry in Requires, in the same order.
type Descriptor struct {
	Name     string
	Requires []step.Key
	Produces step.Key
	New      func(args []interface{}) (Instance, error)
}

// Named returns a copy of d registered under name.
func (d Descriptor) Named(name string) Descriptor {
	d.Name = name
	return d
}

// Step0 describes a step without dependencies producing R.
func Step0[R any, S step.Step[R]](newStep func() S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Produces: step.KeyOf[R](),
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 0); err != nil {
				return nil, err
			}
			return newResultInstance[R](newStep())
		},
	}
}

// Step1 describes a step depending on A and producing R.
func Step1[A, R any, S step.Step[R]](newStep func(A) S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Requires: []step.Key{step.KeyOf[A]()},
		Produces: step.KeyOf[R](),
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 1); err != nil {
				return nil, err
			}
			a, err := argAt[A](args, 0)
			if err != nil {
				return nil, err
			}
			return newResultInstance[R](newStep(a))
		},
	}
}

// Step2 describes a step depending on A and B and producing R.
func Step2[A, B, R any, S step.Step[R]](newStep func(A, B) S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Requires: []step.Key{step.KeyOf[A](), step.KeyOf[B]()},
		Produces: step.KeyOf[R](),
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 2); err != nil {
				return nil, err
			}
			a, err := argAt[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAt[B](args, 1)
			if err != nil {
				return nil, err
			}
			return newResultInstance[R](newStep(a, b))
		},
	}
}

// Step3 describes a step depending on A, B and C and producing R.
func Step3[A, B, C, R any, S step.Step[R]](newStep func(A, B, C) S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Requires: []step.Key{step.KeyOf[A](), step.KeyOf[B](), step.KeyOf[C]()},
		Produces: step.KeyOf[R](),
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 3); err != nil {
				return nil, err
			}
			a, err := argAt[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAt[B](args, 1)
			if err != nil {
				return nil, err
			}
			c, err := argAt[C](args, 2)
			if err != nil {
				return nil, err
			}
			return newResultInstance[R](newStep(a, b, c))
		},
	}
}

// Action0 describes a step without dependencies or result.
func Action0[S step.Action](newAction func() S) Descriptor {
	return Descriptor{
		Name: nameOf[S](),
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 0); err != nil {
				return nil, err
			}
			return newActionInstance(newAction())
		},
	}
}

// Action1 describes a step depending on A that produces no result.
func Action1[A any, S step.Action](newAction func(A) S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Requires: []step.Key{step.KeyOf[A]()},
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 1); err != nil {
				return nil, err
			}
			a, err := argAt[A](args, 0)
			if err != nil {
				return nil, err
			}
			return newActionInstance(newAction(a))
		},
	}
}

// Action2 describes a step depending on A and B that produces no result.
func Action2[A, B any, S step.Action](newAction func(A, B) S) Descriptor {
	return Descriptor{
		Name:     nameOf[S](),
		Requires: []step.Key{step.KeyOf[A](), step.KeyOf[B]()},
		New: func(args []interface{}) (Instance, error) {
			if err := checkArity(args, 2); err != nil {
				return nil, err
			}
			a, err := argAt[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := argAt[B](args, 1)
			if err != nil {
				return nil, err
			}
			return newActionInstance(newAction(a, b))
		},
	}
}

type resultInstance[R any] struct {
	step step.Step[R]
}

func (i resultInstance[R]) Run() (interface{}, error) {
	r, err := i.step.Execute()
	if err != nil {
		return nil, err
	}
	return r, nil
}

type actionInstance struct {
	action step.Action
}

func (i actionInstance) Run() (interface{}, error) {
	return nil, i.action.Execute()
}

func newResultInstance[R any, S step.Step[R]](s S) (Instance, error) {
	if isNil(s) {
		return nil, errors.New("constructor returned a nil step")
	}
	return resultInstance[R]{step: s}, nil
}

func newActionInstance[S step.Action](s S) (Instance, error) {
	if isNil(s) {
		return nil, errors.New("constructor returned a nil step")
	}
	return actionInstance{action: s}, nil
}

func nameOf[S any]() string {
	return step.KeyOf[S]().ShortString()
}

func checkArity(args []interface{}, n int) error {
	if len(args) != n {
		return errors.Errorf("expected %d argument(s), got %d", n, len(args))
	}
	return nil
}

func argAt[T any](args []interface{}, i int) (T, error) {
	v, ok := args[i].(T)
	if !ok {
		var zero T
		return zero, errors.Errorf("argument %d: expected %s, got %T", i, step.KeyOf[T](), args[i])
	}
	return v, nil
}

// isNil reports whether v is nil or a typed nil. Such values count as "no result".
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
