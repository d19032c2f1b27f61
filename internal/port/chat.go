package port

import "context"

// ChatRequest carries one structured-extraction request to a language model.
// Text and ImageBase64 are alternatives: image requests carry a base64 PNG
// payload without a data-URI prefix.
type ChatRequest struct {
	System      string
	Text        string
	ImageBase64 string
}

// ChatCompleter abstracts a JSON-mode chat-completion endpoint. Configured
// reports whether a credential is present; callers use it to choose between
// the model and the deterministic fallback.
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
	Configured() bool
}
