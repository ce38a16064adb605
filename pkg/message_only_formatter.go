package pipeline

import (
	"github.com/sirupsen/logrus"
)

// MessageOnlyFormatter writes nothing but the message of each entry.
type MessageOnlyFormatter struct {
}

func (f *MessageOnlyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}
