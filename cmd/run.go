package cmd

import (
	"context"

	pipeline "github.com/mumoshu/pipeline/pkg"
	"github.com/mumoshu/pipeline/pkg/get"
	"github.com/mumoshu/pipeline/pkg/steps"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline definition",
		Long: `Run a pipeline definition. Without --file, the sample pipeline runs:
pipe, pipe1 and pipe2, printing the result of pipe1.

Example:
pipeline run
pipeline run -f pipeline.definition.yaml --format '{{ .Message | upper }}'
pipeline run -f git::https://github.com/example/pipelines.git//sample.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context())
		},
	}

	bindDefinitionFlags(a, cmd)

	cmd.Flags().String("format", steps.DefaultFormat, "Go template used to print observed results")
	a.mustBind("format", cmd.Flags().Lookup("format"))

	return cmd
}

func (a *app) run(ctx context.Context) error {
	def, err := a.definition(ctx)
	if err != nil {
		return err
	}

	c, err := a.catalog()
	if err != nil {
		return err
	}

	printer, err := steps.NewPrinter(a.out, a.v.GetString("format"))
	if err != nil {
		return err
	}

	p, err := def.Build(c, pipeline.Opts{Log: a.log}, printer)
	if err != nil {
		return err
	}

	a.log.WithField("definition", def.Name).Debugf("running %d step(s)", len(p.Steps()))

	return p.Execute()
}

// definition loads the definition named by the "definition" key, falling
// back to the sample one.
func (a *app) definition(ctx context.Context) (*pipeline.Definition, error) {
	src := a.v.GetString("definition")
	if src == "" {
		return steps.DefaultDefinition(), nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	bs, err := get.GetBytes(ctx, src)
	if err != nil {
		return nil, err
	}

	def, err := pipeline.ReadDefinitionFromBytes(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "reading definition %s", src)
	}

	return def, nil
}

func (a *app) catalog() (*pipeline.Catalog, error) {
	c := pipeline.NewCatalog()
	if err := steps.Register(c, a.out); err != nil {
		return nil, err
	}
	return c, nil
}
