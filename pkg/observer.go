package pipeline

import (
	"github.com/mumoshu/pipeline/pkg/api/step"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type observer func(interface{}) error

// OnStepExecuted registers fn to be called with every result of type R, right
// before the result is cached. Only one observer may be registered per type.
func OnStepExecuted[R any](p *Pipeline, fn func(R) error) error {
	k := step.KeyOf[R]()

	if fn == nil {
		return errors.Errorf("observer for %s must not be nil", k)
	}

	if _, exists := p.observers[k]; exists {
		return &DuplicateObserverError{Result: k}
	}

	p.observers[k] = func(v interface{}) error {
		r, ok := v.(R)
		if !ok {
			return errors.Errorf("expected %s, got %T", k, v)
		}
		return fn(r)
	}

	p.log.WithField("result", k.String()).Debugf("observer registered for %s", k.ShortString())

	return nil
}

func (p *Pipeline) notify(d Descriptor, result interface{}, ctx *logrus.Entry) error {
	o, ok := p.observers[d.Produces]
	if !ok {
		return nil
	}

	ctx.WithField("result", d.Produces.String()).Debugf("step %s notifying observer", d.Name)

	if err := o(result); err != nil {
		return &ObserverError{Result: d.Produces, Step: d.Name, Err: err}
	}

	return nil
}
