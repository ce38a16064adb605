package pipeline

import (
	"fmt"

	"github.com/mitchellh/colorstring"
	"github.com/sirupsen/logrus"
)

// textFormatter prefixes each message with a colored level marker and, when
// present, the app and step the entry belongs to.
type textFormatter struct {
	colorize *colorstring.Colorize
	colors   map[logrus.Level]string
}

func newTextFormatter(colors map[logrus.Level]string, enabled bool) *textFormatter {
	return &textFormatter{
		colorize: &colorstring.Colorize{
			Colors:  colorstring.DefaultColors,
			Disable: !enabled,
			Reset:   true,
		},
		colors: colors,
	}
}

func (f *textFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix string
	if c, ok := f.colors[entry.Level]; ok && c != "" {
		prefix = "[" + c + "]"
	}

	if app, ok := entry.Data["app"].(string); ok {
		if s, ok := entry.Data["step"].(string); ok {
			prefix = fmt.Sprintf("%s%s.%s ≫ ", prefix, app, s)
		} else {
			prefix = fmt.Sprintf("%s%s ≫ ", prefix, app)
		}
	} else if s, ok := entry.Data["step"].(string); ok {
		prefix = fmt.Sprintf("%s%s ≫ ", prefix, s)
	}

	return []byte(f.colorize.Color(fmt.Sprintf("%s%s\n", prefix, entry.Message))), nil
}
