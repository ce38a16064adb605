package cmd

import (
	"fmt"
	"os"
	"strings"

	pipeline "github.com/mumoshu/pipeline/pkg"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Exit statuses of the pipeline command.
const (
	StatusOK            = 0
	StatusFailed        = 1
	StatusMisconfigured = 2
)

func MustRun() {
	if opts, err := RunE(); err != nil {
		HandleErrorAndExit(err, opts)
	}
}

// RunE runs the command with os.Args, followed by the arguments found in
// PIPELINE_RUN.
func RunE() (Opts, error) {
	opts := Opts{
		CommandPath: os.Args[0],
		Args:        os.Args[1:],
		Log:         logrus.StandardLogger(),
	}

	additionalArgs, err := ArgsFromEnvVars()
	if err != nil {
		return opts, err
	}
	opts.Args = append(opts.Args, additionalArgs...)

	rootCmd, err := New(opts)
	if err != nil {
		return opts, err
	}

	return opts, rootCmd.Execute()
}

func HandleErrorAndExit(err error, opts Opts) {
	msg, status := HandleError(err, opts)
	if msg != "" {
		opts.Log.Errorf("%s", msg)
	}
	os.Exit(status)
}

// HandleError turns err into the message to log and the exit status.
func HandleError(err error, opts Opts) (string, int) {
	if err == nil {
		return "", StatusOK
	}

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	var msg string
	if log.GetLevel() >= logrus.DebugLevel {
		msg = fmt.Sprintf("Stack trace: %+v\n", err)
	}

	var (
		missing    *pipeline.MissingDependencyError
		outOfOrder *pipeline.OutOfOrderRegistrationError
		malformed  *pipeline.MalformedStepError
		stepErr    *pipeline.StepError
		observer   *pipeline.ObserverError
	)

	switch {
	case errors.As(err, &missing), errors.As(err, &outOfOrder), errors.As(err, &malformed):
		msg += fmt.Sprintf("Error: pipeline is misconfigured: %v", err)
		return msg, StatusMisconfigured
	case errors.As(err, &stepErr):
		msg += fmt.Sprintf("Error: `%s` failed", stepErr.Step)
		msg += causedBy(stepErr.Err)
	case errors.As(err, &observer):
		msg += fmt.Sprintf("Error: observer for %s failed", observer.Result.ShortString())
		msg += causedBy(observer.Err)
	default:
		msg += fmt.Sprintf("Error: %v", err)
	}

	return msg, StatusFailed
}

func causedBy(err error) string {
	cause := strings.Trim(err.Error(), " \n\t")
	if cause == "" {
		return ""
	}
	return fmt.Sprintf("\nCaused by: %s", cause)
}
