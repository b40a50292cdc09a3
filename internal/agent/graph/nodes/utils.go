package nodes

import "context"

type faultKey struct{}

// Fault keeps the first error raised by a stage during one graph run, so the
// runner can hand the caller that exact error instead of the graph's wrapper.
type Fault struct {
	err error
}

// Err returns the recorded stage error, if any.
func (f *Fault) Err() error {
	if f == nil {
		return nil
	}
	return f.err
}

// WithFaultCapture attaches a fresh Fault to ctx.
func WithFaultCapture(ctx context.Context) (context.Context, *Fault) {
	f := &Fault{}
	return context.WithValue(ctx, faultKey{}, f), f
}

// recordFault stores err on the Fault carried by ctx (first one wins) and returns err.
func recordFault(ctx context.Context, err error) error {
	if f, ok := ctx.Value(faultKey{}).(*Fault); ok && f.err == nil {
		f.err = err
	}
	return err
}
