package form

import (
	"github.com/brizzai/target-wizard/internal/headers"
	"github.com/brizzai/target-wizard/internal/target"
)

// StreamableHTTPForm edits a Streamable HTTP target
type StreamableHTTPForm struct {
	remoteForm
}

// NewStreamableHTTPForm creates an empty Streamable HTTP form
func NewStreamableHTTPForm(name string, onSubmit SubmitFunc, opts ...Option) *StreamableHTTPForm {
	f := &StreamableHTTPForm{}
	f.init(target.TypeStreamableHTTP, name, onSubmit, opts)
	f.headers = headers.NewEditor(nil)
	f.payload = func(r target.RemoteTarget) target.Spec {
		return target.StreamableHTTPTarget{RemoteTarget: r}
	}
	f.extract = func(d *target.Descriptor) *target.RemoteTarget {
		if d.StreamableHTTP == nil {
			return nil
		}
		return &d.StreamableHTTP.RemoteTarget
	}
	return f
}
