package steps

import (
	"fmt"
	"io"

	pipeline "github.com/mumoshu/pipeline/pkg"
	"github.com/pkg/errors"
)

// Pipe prints a fixed line and produces nothing.
type Pipe struct {
	out io.Writer
}

func NewPipe(out io.Writer) *Pipe {
	return &Pipe{out: out}
}

func (p *Pipe) Execute() error {
	_, err := fmt.Fprintln(p.out, "Empty")
	return err
}

type Pipe1Result struct {
	Message string
}

type Pipe1 struct{}

func NewPipe1() Pipe1 {
	return Pipe1{}
}

func (Pipe1) Execute() (Pipe1Result, error) {
	return Pipe1Result{Message: "Pipe1"}, nil
}

type Pipe2Result struct {
	Message string
}

// Pipe2 depends on the result of Pipe1.
type Pipe2 struct {
	pipe1Result Pipe1Result
}

func NewPipe2(pipe1Result Pipe1Result) *Pipe2 {
	return &Pipe2{pipe1Result: pipe1Result}
}

func (p *Pipe2) Execute() (Pipe2Result, error) {
	return Pipe2Result{Message: fmt.Sprintf("Pipe1 + %s", p.pipe1Result.Message)}, nil
}

// Register adds the sample steps and their result types to c. Steps that
// print write to out.
func Register(c *pipeline.Catalog, out io.Writer) error {
	descriptors := []struct {
		name string
		d    pipeline.Descriptor
	}{
		{name: "pipe", d: pipeline.Action0(func() *Pipe { return NewPipe(out) })},
		{name: "pipe1", d: pipeline.Step0[Pipe1Result](NewPipe1)},
		{name: "pipe2", d: pipeline.Step1[Pipe1Result, Pipe2Result](NewPipe2)},
	}

	for _, s := range descriptors {
		if err := c.Register(s.name, s.d); err != nil {
			return errors.Wrapf(err, "registering step %s", s.name)
		}
	}

	if err := pipeline.RegisterResult[Pipe1Result](c, "pipe1-result"); err != nil {
		return err
	}
	if err := pipeline.RegisterResult[Pipe2Result](c, "pipe2-result"); err != nil {
		return err
	}

	return nil
}

// DefaultDefinition runs every sample step and prints the result of Pipe1.
func DefaultDefinition() *pipeline.Definition {
	return &pipeline.Definition{
		Name:    "sample",
		Steps:   []string{"pipe", "pipe1", "pipe2"},
		Observe: []string{"pipe1-result"},
	}
}
