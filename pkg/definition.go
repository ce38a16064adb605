package pipeline

import (
	"strings"

	"github.com/mumoshu/pipeline/pkg/util/maputil"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v2"
)

// Definition lists, by catalog name, the steps of a pipeline in registration
// order and the result types whose values should be observed.
type Definition struct {
	Name    string   `yaml:"name,omitempty"`
	Steps   []string `yaml:"steps"`
	Observe []string `yaml:"observe,omitempty"`
}

const definitionSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "steps": {
      "type": "array",
      "items": {"type": "string", "minLength": 1}
    },
    "observe": {
      "type": "array",
      "items": {"type": "string", "minLength": 1},
      "uniqueItems": true
    }
  },
  "required": ["steps"],
  "additionalProperties": false
}`

var definitionSchemaLoader = gojsonschema.NewStringLoader(definitionSchema)

func ReadDefinitionFromString(data string) (*Definition, error) {
	return ReadDefinitionFromBytes([]byte(data))
}

func ReadDefinitionFromBytes(data []byte) (*Definition, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}

	doc, err := maputil.StringifyKeys(raw)
	if err != nil {
		return nil, errors.Wrap(err, "invalid pipeline definition")
	}

	result, err := gojsonschema.Validate(definitionSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, errors.Wrap(err, "failed validating pipeline definition")
	}
	if !result.Valid() {
		problems := []string{}
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, errors.Errorf("invalid pipeline definition: %s", strings.Join(problems, "; "))
	}

	d := &Definition{}
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, errors.Wrap(err, "yaml.Unmarshal failed")
	}

	return d, nil
}

// Build registers the steps named by d, in order, to a new Pipeline, and
// registers observe as the observer of every result type listed in Observe.
func (d *Definition) Build(c *Catalog, opts Opts, observe func(result string, v interface{}) error) (*Pipeline, error) {
	if opts.Name == "" {
		opts.Name = d.Name
	}

	p := New(opts)

	for _, name := range d.Steps {
		s, ok := c.Step(name)
		if !ok {
			return nil, errors.Errorf("unknown step %q. available steps: %s", name, strings.Join(c.StepNames(), ", "))
		}
		p.Add(s)
	}

	for _, name := range d.Observe {
		r, ok := c.Result(name)
		if !ok {
			return nil, errors.Errorf("unknown result %q. available results: %s", name, strings.Join(c.ResultNames(), ", "))
		}
		if observe == nil {
			continue
		}
		resultName := r.Name
		if err := r.Observe(p, func(v interface{}) error {
			return observe(resultName, v)
		}); err != nil {
			return nil, errors.Wrapf(err, "failed observing %s", name)
		}
	}

	return p, nil
}
