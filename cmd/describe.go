package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	pipeline "github.com/mumoshu/pipeline/pkg"
	"github.com/mumoshu/pipeline/pkg/util/stringutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

type description struct {
	Name     string            `yaml:"name,omitempty"`
	Steps    []stepDescription `yaml:"steps"`
	Problems []string          `yaml:"problems,omitempty"`
}

type stepDescription struct {
	Name     string   `yaml:"name"`
	Requires []string `yaml:"requires,omitempty"`
	Produces string   `yaml:"produces,omitempty"`
}

func newDescribeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the steps of a pipeline definition and the problems found in it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			def, err := a.definition(cmd.Context())
			if err != nil {
				return err
			}

			c, err := a.catalog()
			if err != nil {
				return err
			}

			p, err := def.Build(c, pipeline.Opts{Log: a.log}, nil)
			if err != nil {
				return err
			}

			d := describe(def.Name, p)

			switch format {
			case "text":
				writeText(a.out, d)
			case "yaml":
				bs, err := yaml.Marshal(d)
				if err != nil {
					return errors.Wrap(err, "yaml.Marshal failed")
				}
				if _, err := a.out.Write(bs); err != nil {
					return err
				}
			default:
				return errors.Errorf("unexpected describe format specified: %s", format)
			}

			if len(d.Problems) > 0 {
				return errors.Errorf("pipeline %s has %d problem(s)", def.Name, len(d.Problems))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "as", "text", "Describe format. One of: text|yaml")

	bindDefinitionFlags(a, cmd)

	return cmd
}

func describe(name string, p *pipeline.Pipeline) description {
	d := description{Name: name, Steps: []stepDescription{}}

	for _, s := range p.Steps() {
		sd := stepDescription{Name: s.Name}
		for _, r := range s.Requires {
			sd.Requires = append(sd.Requires, r.String())
		}
		if !s.Produces.IsZero() {
			sd.Produces = s.Produces.String()
		}
		d.Steps = append(d.Steps, sd)
	}

	if err := p.Validate(); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				d.Problems = append(d.Problems, e.Error())
			}
		} else {
			d.Problems = append(d.Problems, err.Error())
		}
	}

	return d
}

func writeText(w io.Writer, d description) {
	if d.Name != "" {
		fmt.Fprintf(w, "pipeline %s\n", d.Name)
	}

	for i, s := range d.Steps {
		line := fmt.Sprintf("%d. %s", i+1, s.Name)
		if len(s.Requires) > 0 {
			line += fmt.Sprintf(" requires %s", strings.Join(s.Requires, ", "))
		}
		if s.Produces != "" {
			line += fmt.Sprintf(" produces %s", s.Produces)
		}
		fmt.Fprintln(w, line)
	}

	for _, p := range d.Problems {
		fmt.Fprintf(w, "problem: %s\n", p)
	}
}

// bindDefinitionFlags adds --file to cmd. The flag is bound to the
// "definition" key only when cmd runs, as every subcommand has its own.
func bindDefinitionFlags(a *app, cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Path or go-getter source of the pipeline definition")
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.v.BindPFlag("definition", cmd.Flags().Lookup("file"))
	}
}

// bind binds flag to key and mentions the environment variable that sets
// key in the flag's usage.
func (a *app) bind(key string, flag *pflag.Flag) error {
	if err := a.v.BindPFlag(key, flag); err != nil {
		return errors.Wrapf(err, "binding flag --%s", flag.Name)
	}
	flag.Usage = fmt.Sprintf("%s (env %s_%s)", flag.Usage, EnvPrefix, stringutil.ToEnvironmentName(key))
	return nil
}

func (a *app) mustBind(key string, flag *pflag.Flag) {
	if err := a.bind(key, flag); err != nil {
		panic(errors.Wrap(err, "bug!"))
	}
}
