package domain

import "time"

// DefaultDocumentSource is the source recorded for text typed by a user.
const DefaultDocumentSource = "direct_input"

// DefaultDocumentTitle is used when a description is added without a title.
const DefaultDocumentTitle = "Untitled"

// KnowledgeDocument is a description document held by the backend's
// knowledge base. The client only lists, creates, updates and deletes.
type KnowledgeDocument struct {
	// ID is the backend document identifier (doc_id).
	ID string

	// Title is the human-readable title.
	Title string

	// Content is the full document text.
	Content string

	// Source records where the text came from (a URL or direct_input).
	Source string

	// CreatedAt is when the backend stored the document.
	CreatedAt time.Time

	// UpdatedAt is when the backend last replaced the document.
	UpdatedAt time.Time
}

// DisplayTitle returns the title, falling back to the ID.
func (d *KnowledgeDocument) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	if d.ID != "" {
		return d.ID
	}
	return DefaultDocumentTitle
}

// DescriptionInput is the client-side form for adding or updating a description.
type DescriptionInput struct {
	ID     string
	Title  string
	Text   string
	Source string
}

// Validate checks the form before submission.
// requireID is set for update and remove.
func (in DescriptionInput) Validate(requireID bool) error {
	if requireID && in.ID == "" {
		return MissingField("doc_id")
	}
	return ValidateText(in.Text)
}

// WithDefaults fills the title and source defaults.
func (in DescriptionInput) WithDefaults() DescriptionInput {
	if in.Title == "" {
		in.Title = DefaultDocumentTitle
	}
	if in.Source == "" {
		in.Source = DefaultDocumentSource
	}
	return in
}

// ManageAction is the action tag accepted by the manage-description endpoint.
type ManageAction string

// Manage actions.
const (
	ManageAdd    ManageAction = "add"
	ManageUpdate ManageAction = "update"
	ManageRemove ManageAction = "remove"
)

// IsValid returns true if the action is recognised.
func (a ManageAction) IsValid() bool {
	switch a {
	case ManageAdd, ManageUpdate, ManageRemove:
		return true
	default:
		return false
	}
}

// Validate checks the input for this action.
func (a ManageAction) Validate(in DescriptionInput) error {
	switch a {
	case ManageAdd:
		return in.Validate(false)
	case ManageUpdate:
		return in.Validate(true)
	case ManageRemove:
		if in.ID == "" {
			return MissingField("doc_id")
		}
		return nil
	default:
		return ErrUnknownAction
	}
}
