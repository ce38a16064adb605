package step

// Step is a unit of work producing a result of type R.
//
// Dependencies of a step are the parameters of the constructor it is
// registered with, not arguments of Execute.
type Step[R any] interface {
	Execute() (R, error)
}

// Action is a step that produces no result.
type Action interface {
	Execute() error
}
