package pipeline

import (
	"fmt"

	"github.com/mumoshu/pipeline/pkg/api/step"
	"github.com/mumoshu/pipeline/pkg/cache"
	"github.com/sirupsen/logrus"
)

type Opts struct {
	// Name is logged as the app of every entry the pipeline writes.
	Name string
	Log  *logrus.Logger
}

// Pipeline runs registered steps in registration order, feeding each step
// the cached results of the steps it depends on.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	steps     []Descriptor
	results   *cache.ResultCache
	observers map[step.Key]observer
	name      string
	log       *logrus.Logger
}

func New(opts ...Opts) *Pipeline {
	var o Opts
	if len(opts) == 1 {
		o = opts[0]
	} else if len(opts) > 1 {
		panic(fmt.Sprintf("bug! unexpected number of opts to New: %d", len(opts)))
	}

	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Pipeline{
		steps:     []Descriptor{},
		results:   cache.New(),
		observers: map[step.Key]observer{},
		name:      o.Name,
		log:       log,
	}
}

// Add appends d to the registry. Dependencies are not checked until Execute.
func (p *Pipeline) Add(d Descriptor) *Pipeline {
	if d.Requires != nil {
		requires := make([]step.Key, len(d.Requires))
		copy(requires, d.Requires)
		d.Requires = requires
	}
	p.steps = append(p.steps, d)
	return p
}

// Steps returns the registered descriptors in registration order.
func (p *Pipeline) Steps() []Descriptor {
	steps := make([]Descriptor, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Execute runs every registered step in order and stops at the first error.
//
// Results are cached per pipeline and survive across calls. Every call
// re-runs all steps from the first one.
func (p *Pipeline) Execute() error {
	log := p.entry()

	log.WithField("steps", len(p.steps)).Debugf("pipeline started")

	for i, d := range p.steps {
		ctx := log.WithFields(logrus.Fields{"step": d.Name, "index": i})

		ctx.Debugf("step %s started", d.Name)

		if err := p.runStep(i, d, ctx); err != nil {
			ctx.Debugf("step %s failed: %v", d.Name, err)
			return err
		}

		ctx.Debugf("step %s finished", d.Name)
	}

	log.WithFields(logrus.Fields{"steps": len(p.steps), "results": p.cachedResults()}).Debugf("pipeline finished with %d cached result(s)", p.results.Len())

	return nil
}

func (p *Pipeline) entry() *logrus.Entry {
	e := logrus.NewEntry(p.log)
	if p.name != "" {
		e = e.WithField("app", p.name)
	}
	return e
}

// cachedResults names the cached result types.
func (p *Pipeline) cachedResults() []string {
	names := []string{}
	for _, k := range p.results.Keys() {
		names = append(names, k.String())
	}
	return names
}

func (p *Pipeline) runStep(i int, d Descriptor, ctx *logrus.Entry) error {
	args, err := p.resolveDependencies(i, d, ctx)
	if err != nil {
		return err
	}

	if d.New == nil {
		return &MalformedStepError{Step: d.Name, Reason: "no constructor"}
	}

	instance, err := d.New(args)
	if err != nil {
		return &MalformedStepError{Step: d.Name, Reason: err.Error()}
	}
	if instance == nil {
		return &MalformedStepError{Step: d.Name, Reason: "constructor returned no instance"}
	}

	result, err := instance.Run()
	if err != nil {
		return &StepError{Step: d.Name, Err: err}
	}

	if isNil(result) {
		ctx.Debugf("step %s produced no result", d.Name)
		return nil
	}

	if d.Produces.IsZero() {
		return &MalformedStepError{Step: d.Name, Reason: fmt.Sprintf("declares no result but produced %s", step.KeyFor(result))}
	}
	if !d.Produces.Accepts(result) {
		return &MalformedStepError{Step: d.Name, Reason: fmt.Sprintf("declares %s but produced %s", d.Produces, step.KeyFor(result))}
	}

	if err := p.notify(d, result, ctx); err != nil {
		return err
	}

	p.results.Put(d.Produces, result)

	ctx.WithField("result", d.Produces.String()).Debugf("step %s cached its result", d.Name)

	return nil
}

// Result returns the latest value of type R produced by p.
func Result[R any](p *Pipeline) (R, bool) {
	v, ok := p.results.Get(step.KeyOf[R]())
	if !ok {
		var zero R
		return zero, false
	}
	r, ok := v.(R)
	return r, ok
}
