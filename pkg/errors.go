package pipeline

import (
	"fmt"

	"github.com/mumoshu/pipeline/pkg/api/step"
)

// MissingDependencyError is returned when no registered step produces a
// dependency.
type MissingDependencyError struct {
	Dependency step.Key
	Step       string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %s for step %s was not found for any registered step", e.Dependency, e.Step)
}

// OutOfOrderRegistrationError is returned when the producer of a dependency
// is registered but has not run before the step needing it.
type OutOfOrderRegistrationError struct {
	Dependency step.Key
	Step       string
	Producer   string
}

func (e *OutOfOrderRegistrationError) Error() string {
	return fmt.Sprintf("register step %s before step %s: %s depends on %s", e.Producer, e.Step, e.Step, e.Dependency)
}

// MalformedStepError is returned when a step cannot be instantiated or its
// outcome does not match its descriptor.
type MalformedStepError struct {
	Step   string
	Reason string
}

func (e *MalformedStepError) Error() string {
	return fmt.Sprintf("step %s is malformed: %s", e.Step, e.Reason)
}

// DuplicateObserverError is returned by OnStepExecuted when an observer is
// already registered for the result type.
type DuplicateObserverError struct {
	Result step.Key
}

func (e *DuplicateObserverError) Error() string {
	return fmt.Sprintf("an observer for %s is already registered", e.Result)
}

// StepError wraps an error returned by a step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Cause() error  { return e.Err }
func (e *StepError) Unwrap() error { return e.Err }

// ObserverError wraps an error returned by an observer.
type ObserverError struct {
	Result step.Key
	Step   string
	Err    error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("observer for %s produced by step %s failed: %v", e.Result, e.Step, e.Err)
}

func (e *ObserverError) Cause() error  { return e.Err }
func (e *ObserverError) Unwrap() error { return e.Err }
