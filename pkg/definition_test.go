package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

const sampleDefinitionYaml = `
name: sample
steps:
- source
- appender
observe:
- text
`

func TestReadDefinition(t *testing.T) {
	actual, err := ReadDefinitionFromString(sampleDefinitionYaml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &Definition{
		Name:    "sample",
		Steps:   []string{"source", "appender"},
		Observe: []string{"text"},
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("ReadDefinitionFromString() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadDefinitionRejectsInvalidDocuments(t *testing.T) {
	testcases := []struct {
		name    string
		yaml    string
		message string
	}{
		{name: "not yaml", yaml: "steps: [", message: "yaml"},
		{name: "missing steps", yaml: "name: x\n", message: "steps"},
		{name: "unknown field", yaml: "steps: []\nretries: 3\n", message: "retries"},
		{name: "non-string step", yaml: "steps: [1]\n", message: "string"},
		{name: "duplicate observers", yaml: "steps: []\nobserve: [a, a]\n", message: "unique"},
		{name: "top-level list", yaml: "- a\n", message: "mapping"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadDefinitionFromString(tc.yaml)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.message) {
				t.Errorf("expected the error to mention %q, got %v", tc.message, err)
			}
		})
	}
}

func TestDefinitionBuild(t *testing.T) {
	c := newTestCatalog(t)

	d, err := ReadDefinitionFromString(sampleDefinitionYaml)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type observation struct {
		Result string
		Value  interface{}
	}
	observed := []observation{}

	p, err := d.Build(c, Opts{Log: quietLogger()}, func(result string, v interface{}) error {
		observed = append(observed, observation{Result: result, Value: v})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []observation{
		{Result: "text", Value: Text{Message: "from-catalog"}},
		{Result: "text", Value: Text{Message: "X+from-catalog"}},
	}
	if diff := cmp.Diff(expected, observed); diff != "" {
		t.Errorf("observations mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionBuildPreservesRegistrationOrder(t *testing.T) {
	c := newTestCatalog(t)

	d := &Definition{Steps: []string{"appender", "source"}}
	p, err := d.Build(c, Opts{Log: quietLogger()}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var outOfOrder *OutOfOrderRegistrationError
	if err := p.Execute(); !errors.As(err, &outOfOrder) {
		t.Fatalf("expected an OutOfOrderRegistrationError, got %v", err)
	}
	if outOfOrder.Producer != "source" || outOfOrder.Step != "appender" {
		t.Errorf("expected catalog names in the error, got %v", outOfOrder)
	}
}

func TestDefinitionBuildRejectsUnknownNames(t *testing.T) {
	c := newTestCatalog(t)

	testcases := []struct {
		name       string
		definition Definition
		message    string
	}{
		{name: "step", definition: Definition{Steps: []string{"nope"}}, message: `unknown step "nope". available steps: appender, source`},
		{name: "result", definition: Definition{Steps: []string{"source"}, Observe: []string{"nope"}}, message: `unknown result "nope". available results: text`},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.definition.Build(c, Opts{Log: quietLogger()}, nil)
			if err == nil || err.Error() != tc.message {
				t.Errorf("expected %q, got %v", tc.message, err)
			}
		})
	}
}
