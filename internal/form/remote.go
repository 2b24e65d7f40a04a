package form

import (
	"context"

	"github.com/brizzai/target-wizard/internal/headers"
	"github.com/brizzai/target-wizard/internal/target"
	"github.com/brizzai/target-wizard/internal/urlcodec"
)

// remoteForm edits the fields shared by the SSE and Streamable HTTP
// transports: one URL, a header list and the auth/TLS switches
type remoteForm struct {
	base

	url                string
	headers            *headers.Editor
	passthroughAuth    bool
	insecureSkipVerify bool

	payload func(target.RemoteTarget) target.Spec
	extract func(*target.Descriptor) *target.RemoteTarget
}

func (f *remoteForm) SetURL(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.url = url
}

func (f *remoteForm) URL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.url
}

func (f *remoteForm) SetPassthroughAuth(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.passthroughAuth = on
}

func (f *remoteForm) PassthroughAuth() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.passthroughAuth
}

func (f *remoteForm) SetInsecureSkipVerify(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insecureSkipVerify = on
}

func (f *remoteForm) InsecureSkipVerify() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insecureSkipVerify
}

// SetPendingHeader stages the header the next AddHeader commits
func (f *remoteForm) SetPendingHeader(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headers.SetPendingKey(key)
	f.headers.SetPendingValue(value)
}

func (f *remoteForm) PendingHeader() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers.Pending()
}

func (f *remoteForm) AddHeader() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers.Add()
}

func (f *remoteForm) RemoveHeader(index int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers.Remove(index)
}

func (f *remoteForm) Headers() []target.Header {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headers.Entries()
}

// Load seeds listeners from any existing target, and the URL, headers and
// switches only when it carries this form's payload
func (f *remoteForm) Load(existing *target.Descriptor) {
	if existing == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seed(existing)
	remote := f.extract(existing)
	if remote == nil {
		return
	}
	f.insecureSkipVerify = remote.InsecureSkipVerify()
	f.passthroughAuth = remote.PassthroughAuth()
	f.url = urlcodec.Encode(urlcodec.Endpoint{
		Host: remote.Host,
		Port: remote.Port,
		Path: remote.Path,
	}, f.insecureSkipVerify)
	f.headers.Reset(remote.Headers)
}

func (f *remoteForm) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmit(f.url)
}

func (f *remoteForm) PressSubmit(ctx context.Context) error {
	if !f.CanSubmit() {
		return ErrSubmitDisabled
	}
	return f.SubmitForm(ctx)
}

// SubmitForm decodes the URL and submits the target. The listener check of
// the default button is not applied here.
func (f *remoteForm) SubmitForm(ctx context.Context) error {
	return f.submit(ctx, f.build)
}

// build runs with f.mu held
func (f *remoteForm) build() (target.Target, error) {
	endpoint, err := urlcodec.Decode(f.url)
	if err != nil {
		return target.Target{}, err
	}

	remote := target.RemoteTarget{
		Host:    endpoint.Host,
		Port:    endpoint.Port,
		Path:    endpoint.Path,
		Headers: f.headers.Entries(),
	}
	if f.passthroughAuth {
		remote.Auth = &target.BackendAuth{Passthrough: true}
	}
	if f.insecureSkipVerify {
		remote.TLS = &target.BackendTLS{InsecureSkipVerify: true}
	}

	return target.Target{
		Name:      f.name,
		Listeners: append([]string{}, f.listeners...),
		Spec:      f.payload(remote),
	}, nil
}
