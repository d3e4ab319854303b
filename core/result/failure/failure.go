package failure

import (
	"errors"
	"fmt"
	"runtime"

	pkgerrors "github.com/pkg/errors"

	"github.com/familycoin/go-familycoin/core/result/failure/datamodel"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

type Failure interface {
	error
	Named
}

type NamedWithStackTrace interface {
	Named
	WithStackTrace
}

type namedWithStackTrace struct {
	name  string
	stack pkgerrors.StackTrace
}

func (n namedWithStackTrace) Name() string {
	return n.name
}

func (n namedWithStackTrace) Stack() string {
	return fmt.Sprintf("%+v", n.stack)
}

func NamedWithCurrentStackTrace(name string) NamedWithStackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])

	f := make(pkgerrors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = pkgerrors.Frame(pcs[i])
	}

	return namedWithStackTrace{name, f}
}

type failure struct {
	model datamodel.FailureModel
	cause error
}

func (f failure) Name() string {
	if f.model.Name == nil {
		return "Error"
	}
	return *f.model.Name
}

func (f failure) Message() string {
	return f.model.Message
}

func (f failure) Error() string {
	return f.model.Message
}

func (f failure) Stack() string {
	if f.model.Stack == nil {
		return ""
	}
	return *f.model.Stack
}

func (f failure) Unwrap() error {
	return f.cause
}

// FromError converts any error into a [Failure]. The name is taken from the
// first error in the chain that implements [Named], and likewise the stack.
// Errors without a name are called "Error".
func FromError(err error) Failure {
	return failure{model: ToModel(err), cause: err}
}

// ToModel returns the serializable form of err.
func ToModel(err error) datamodel.FailureModel {
	model := datamodel.FailureModel{Message: err.Error()}
	var named Named
	if errors.As(err, &named) {
		name := named.Name()
		model.Name = &name
	}
	var withStackTrace WithStackTrace
	if errors.As(err, &withStackTrace) {
		if stack := withStackTrace.Stack(); stack != "" {
			model.Stack = &stack
		}
	}
	return model
}
