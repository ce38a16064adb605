package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/mumoshu/pipeline/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			v := version.Get()

			if a.v.GetString("output") == "json" {
				bs, err := json.Marshal(v)
				if err != nil {
					return errors.Wrap(err, "json.Marshal failed")
				}
				_, err = fmt.Fprintln(a.out, string(bs))
				return err
			}

			_, err := fmt.Fprintf(a.out, "%s version %s (%s)\n", CommandName, v.Version, v.GoVersion)
			return err
		},
	}
}
