package steps

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
)

// DefaultFormat prints the Message field every sample result carries.
const DefaultFormat = "{{ .Message }}"

// NewPrinter returns an observer writing each result to out, rendered with
// format. The template gets the result as its dot and sprig's functions.
func NewPrinter(out io.Writer, format string) (func(result string, v interface{}) error, error) {
	tmpl, err := template.New("result").Option("missingkey=error").Funcs(sprig.TxtFuncMap()).Parse(format)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing format %q", format)
	}

	return func(result string, v interface{}) error {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, v); err != nil {
			return errors.Wrapf(err, "rendering %s", result)
		}
		_, err := fmt.Fprintln(out, buf.String())
		return err
	}, nil
}
