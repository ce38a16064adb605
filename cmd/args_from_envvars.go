package cmd

import (
	"os"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

const (
	RunEnvVar           = EnvPrefix + "_RUN"
	RunTrimPrefixEnvVar = EnvPrefix + "_RUN_TRIM_PREFIX"
)

// ArgsFromEnvVars splits PIPELINE_RUN into command-line arguments, after
// removing PIPELINE_RUN_TRIM_PREFIX from its head.
func ArgsFromEnvVars() ([]string, error) {
	return argsFromEnvVars(os.Getenv)
}

func argsFromEnvVars(getenv func(string) string) ([]string, error) {
	run := getenv(RunEnvVar)
	prefix := getenv(RunTrimPrefixEnvVar)

	if run == "" {
		return nil, nil
	}

	run = strings.TrimSpace(run)
	if prefix != "" {
		run = strings.TrimPrefix(run, prefix)
	}

	args, err := shellwords.Parse(run)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", RunEnvVar)
	}

	return args, nil
}
