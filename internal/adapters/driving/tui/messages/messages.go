// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and backend replies that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/siteassist/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewChat is the assistant chat.
	ViewChat
	// ViewURLs is the classify, adjust and process workflow.
	ViewURLs
	// ViewText is the free-text processing panel.
	ViewText
	// ViewDescriptions manages stored descriptions.
	ViewDescriptions
	// ViewProducts manages the product catalogue.
	ViewProducts
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewChat:
		return "chat"
	case ViewURLs:
		return "urls"
	case ViewText:
		return "text"
	case ViewDescriptions:
		return "descriptions"
	case ViewProducts:
		return "products"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ChatReplied carries the backend's answer to the pending chat query.
type ChatReplied struct {
	Reply string
	Err   error
}

// URLsClassified carries the lists produced from a seed URL.
type URLsClassified struct {
	Seed string
	Set  *domain.ClassifiedURLSet
	Err  error
}

// ListProcessed carries the outcome of submitting one URL list.
type ListProcessed struct {
	Result domain.ProcessResult
}

// TextProcessed carries the outcome of submitting a text blob.
type TextProcessed struct {
	Result domain.ProcessResult
	Err    error
}

// DescriptionsLoaded carries the stored descriptions.
type DescriptionsLoaded struct {
	Documents []domain.KnowledgeDocument
	Err       error
}

// DescriptionSaved signals a description was added or updated.
type DescriptionSaved struct {
	ID      string
	Message string
	Err     error
}

// DescriptionRemoved signals a description was removed.
type DescriptionRemoved struct {
	ID      string
	Message string
	Err     error
}

// ProductsLoaded carries the product catalogue.
type ProductsLoaded struct {
	Products []domain.Product
	Err      error
}

// ProductSaved signals a product was added or updated.
type ProductSaved struct {
	Product *domain.Product
	Message string
	Err     error
}

// ProductRemoved signals products were removed.
type ProductRemoved struct {
	IDs     []string
	Message string
	Err     error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ConfigChanged signals the config file was rewritten outside the TUI.
type ConfigChanged struct{}
