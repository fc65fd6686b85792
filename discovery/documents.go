package discovery

import (
	"context"
	"io"
	"net/http"

	"github.com/broady/watson"
)

// AddDocumentOptions are the arguments of AddDocument and UpdateDocument.
// At least one of File and Metadata must be set. DocumentID is used only
// by UpdateDocument.
type AddDocumentOptions struct {
	EnvironmentID string `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string `url:"-" path:"collection_id" validate:"required"`
	DocumentID    string `url:"-" path:"document_id"`

	// File is the document content: JSON, HTML, PDF, or Microsoft Word.
	File     io.Reader `url:"-" form:"file"`
	Filename string    `url:"-"`
	// FileContentType overrides the type detected by the service.
	FileContentType string `url:"-"`

	// Metadata is a JSON object stored with the document, for example
	// {"Creator": "Johnny Appleseed"}.
	Metadata string `url:"-" form:"metadata"`

	Headers map[string]string `url:"-"`
}

func (o *AddDocumentOptions) form(b *watson.RequestBuilder) (*watson.RequestBuilder, error) {
	if o.File == nil && o.Metadata == "" {
		return nil, &watson.MissingArgumentError{Field: "file"}
	}
	return b.AddFormFile("file", o.Filename, o.FileContentType, o.File).
		AddFormField("metadata", o.Metadata), nil
}

// AddDocument queues a document for ingestion into a collection. The
// returned DocumentID can be polled with GetDocumentStatus.
func (s *Service) AddDocument(ctx context.Context, opts *AddDocumentOptions) (*DocumentAccepted, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b, err := opts.form(s.newRequest(http.MethodPost, collectionTemplate+"/documents",
		collectionPath(opts.EnvironmentID, opts.CollectionID)))
	if err != nil {
		return nil, nil, err
	}
	return invoke[DocumentAccepted](ctx, s, "add_document", b, opts.Headers)
}

// DocumentOptions identify a document.
type DocumentOptions struct {
	EnvironmentID string            `url:"-" path:"environment_id" validate:"required"`
	CollectionID  string            `url:"-" path:"collection_id" validate:"required"`
	DocumentID    string            `url:"-" path:"document_id" validate:"required"`
	Headers       map[string]string `url:"-"`
}

func documentPath(environmentID, collectionID, documentID string) map[string]string {
	return map[string]string{
		"environment_id": environmentID,
		"collection_id":  collectionID,
		"document_id":    documentID,
	}
}

const documentTemplate = collectionTemplate + "/documents/{document_id}"

// GetDocumentStatus returns the ingestion status of a document, including
// any notices raised while processing it.
func (s *Service) GetDocumentStatus(ctx context.Context, opts *DocumentOptions) (*DocumentStatus, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodGet, documentTemplate, documentPath(opts.EnvironmentID, opts.CollectionID, opts.DocumentID))
	return invoke[DocumentStatus](ctx, s, "get_document_status", b, opts.Headers)
}

// UpdateDocument replaces a document, or creates it with the given ID.
func (s *Service) UpdateDocument(ctx context.Context, opts *AddDocumentOptions) (*DocumentAccepted, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	if opts.DocumentID == "" {
		return nil, nil, &watson.MissingArgumentError{Field: "document_id"}
	}
	b, err := opts.form(s.newRequest(http.MethodPost, documentTemplate,
		documentPath(opts.EnvironmentID, opts.CollectionID, opts.DocumentID)))
	if err != nil {
		return nil, nil, err
	}
	return invoke[DocumentAccepted](ctx, s, "update_document", b, opts.Headers)
}

// DeleteDocument removes a document from a collection. Deleting a document
// that does not exist still succeeds.
func (s *Service) DeleteDocument(ctx context.Context, opts *DocumentOptions) (*DeleteDocumentResponse, *watson.DetailedResponse, error) {
	if err := watson.Validate(opts); err != nil {
		return nil, nil, err
	}
	b := s.newRequest(http.MethodDelete, documentTemplate, documentPath(opts.EnvironmentID, opts.CollectionID, opts.DocumentID))
	return invoke[DeleteDocumentResponse](ctx, s, "delete_document", b, opts.Headers)
}
