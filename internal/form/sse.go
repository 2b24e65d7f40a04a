package form

import (
	"github.com/brizzai/target-wizard/internal/headers"
	"github.com/brizzai/target-wizard/internal/target"
)

// SSEForm edits an SSE target. It has the same fields as StreamableHTTPForm.
type SSEForm struct {
	remoteForm
}

func NewSSEForm(name string, onSubmit SubmitFunc, opts ...Option) *SSEForm {
	f := &SSEForm{}
	f.init(target.TypeSSE, name, onSubmit, opts)
	f.headers = headers.NewEditor(nil)
	f.payload = func(r target.RemoteTarget) target.Spec {
		return target.SSETarget{RemoteTarget: r}
	}
	f.extract = func(d *target.Descriptor) *target.RemoteTarget {
		if d.SSE == nil {
			return nil
		}
		return &d.SSE.RemoteTarget
	}
	return f
}
