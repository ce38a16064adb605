package pipeline

import (
	"github.com/mumoshu/pipeline/pkg/api/step"
	"github.com/sirupsen/logrus"
)

// resolveDependencies looks up each dependency of d, the step at index i, in
// the result cache, in declaration order.
func (p *Pipeline) resolveDependencies(i int, d Descriptor, ctx *logrus.Entry) ([]interface{}, error) {
	args := make([]interface{}, 0, len(d.Requires))

	for _, dep := range d.Requires {
		if v, ok := p.results.Get(dep); ok {
			ctx.WithField("dependency", dep.String()).Debugf("step %s resolved %s", d.Name, dep.ShortString())
			args = append(args, v)
			continue
		}

		producer, found := p.findProducer(dep, i)
		if !found {
			return nil, &MissingDependencyError{Dependency: dep, Step: d.Name}
		}

		return nil, &OutOfOrderRegistrationError{Dependency: dep, Step: d.Name, Producer: producer.Name}
	}

	return args, nil
}

// findProducer returns the step producing k that the step at index requester
// waits for. The first producer registered after requester wins over earlier
// ones, which have already run. A step never produces its own dependency.
func (p *Pipeline) findProducer(k step.Key, requester int) (Descriptor, bool) {
	var (
		earlier Descriptor
		found   bool
	)

	for i, d := range p.steps {
		if i == requester || d.Produces.IsZero() || d.Produces != k {
			continue
		}
		if i > requester {
			return d, true
		}
		if !found {
			earlier, found = d, true
		}
	}

	return earlier, found
}
