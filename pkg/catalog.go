package pipeline

import (
	"sort"

	"github.com/mumoshu/pipeline/pkg/api/step"
	"github.com/mumoshu/pipeline/pkg/util/stringutil"
	"github.com/pkg/errors"
)

// Catalog maps names to step descriptors and result types so that pipelines
// can be assembled from definitions.
type Catalog struct {
	steps   map[string]Descriptor
	results map[string]ResultType
}

// ResultType is a result type registered to a Catalog.
type ResultType struct {
	Name string
	Key  step.Key

	observe func(p *Pipeline, fn func(interface{}) error) error
}

// Observe registers fn as the observer of this result type on p.
func (r ResultType) Observe(p *Pipeline, fn func(interface{}) error) error {
	return r.observe(p, fn)
}

func NewCatalog() *Catalog {
	return &Catalog{
		steps:   map[string]Descriptor{},
		results: map[string]ResultType{},
	}
}

// Register adds d under name. The descriptor is renamed to name.
func (c *Catalog) Register(name string, d Descriptor) error {
	key := stringutil.ToName(name)
	if key == "" {
		return errors.New("step name must not be empty")
	}
	if _, exists := c.steps[key]; exists {
		return errors.Errorf("step %s is already registered", name)
	}
	c.steps[key] = d.Named(name)
	return nil
}

// RegisterResult adds the result type R under name.
func RegisterResult[R any](c *Catalog, name string) error {
	key := stringutil.ToName(name)
	if key == "" {
		return errors.New("result name must not be empty")
	}
	if _, exists := c.results[key]; exists {
		return errors.Errorf("result %s is already registered", name)
	}
	c.results[key] = ResultType{
		Name: name,
		Key:  step.KeyOf[R](),
		observe: func(p *Pipeline, fn func(interface{}) error) error {
			return OnStepExecuted(p, func(r R) error {
				return fn(r)
			})
		},
	}
	return nil
}

func (c *Catalog) Step(name string) (Descriptor, bool) {
	d, ok := c.steps[stringutil.ToName(name)]
	return d, ok
}

func (c *Catalog) Result(name string) (ResultType, bool) {
	r, ok := c.results[stringutil.ToName(name)]
	return r, ok
}

func (c *Catalog) StepNames() []string {
	names := []string{}
	for _, d := range c.steps {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) ResultNames() []string {
	names := []string{}
	for _, r := range c.results {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names
}
