// Package json writes command results as indented JSON documents
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/sdkpack/pkg/errors"
)

// Renderer encodes one document per call
type Renderer struct {
	enc *json.Encoder
}

type errorPayload struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messagePayload struct {
	Message string `json:"message"`
}

// New returns a renderer writing to output
func New(output io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return &Renderer{enc: enc}, nil
}

// RenderResult encodes result with its own json tags
func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError encodes err with its code, so scripts can branch on it
func (r *Renderer) RenderError(err error) error {
	return r.enc.Encode(errorPayload{
		Error:   err.Error(),
		Code:    errors.GetErrorCode(err),
		Details: errors.GetErrorDetails(err),
	})
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messagePayload{Message: msg})
}
