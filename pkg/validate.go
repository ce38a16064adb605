package pipeline

import (
	"github.com/hashicorp/go-multierror"
	"github.com/mumoshu/pipeline/pkg/api/step"
)

// Validate checks the registry without running any step and reports every
// dependency that registration order alone cannot satisfy.
//
// Results cached by earlier calls to Execute are not taken into account, so
// Validate may fail for a pipeline whose second Execute would succeed.
func (p *Pipeline) Validate() error {
	var result *multierror.Error

	produced := map[step.Key]bool{}

	for i, d := range p.steps {
		if d.New == nil {
			result = multierror.Append(result, &MalformedStepError{Step: d.Name, Reason: "no constructor"})
		}

		for _, dep := range d.Requires {
			if produced[dep] {
				continue
			}

			producer, found := p.findProducer(dep, i)
			if !found {
				result = multierror.Append(result, &MissingDependencyError{Dependency: dep, Step: d.Name})
			} else {
				result = multierror.Append(result, &OutOfOrderRegistrationError{Dependency: dep, Step: d.Name, Producer: producer.Name})
			}
		}

		if !d.Produces.IsZero() {
			produced[d.Produces] = true
		}
	}

	return result.ErrorOrNil()
}
