// internal/service/errors.go
package service

import "errors"

// Pipeline failure kinds. The HTTP layer collapses everything except
// ErrUnauthorized into a 500, but logs keep the kinds apart, so each
// stage's failures stay observable.
var (
	ErrUnauthorized       = errors.New("secret mismatch")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateRender     = errors.New("template render failed")
	ErrAttachmentNotFound = errors.New("ics attachment not found")
	ErrDocumentService    = errors.New("qrbill generator unavailable")
	ErrDocumentConversion = errors.New("qrbill conversion failed")
	ErrMessageAssembly    = errors.New("message assembly failed")
	ErrDelivery           = errors.New("smtp delivery failed")
)
