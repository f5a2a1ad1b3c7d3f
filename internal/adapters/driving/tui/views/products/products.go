// Package products provides the product catalogue view for the TUI.
package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/form"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/siteassist/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

// ErrNoProductService is returned when the view has no product service.
var ErrNoProductService = errors.New("product service not available")

// ErrInvalidPrice is returned when the price field is not a number.
var ErrInvalidPrice = domain.ErrPriceNotNumber

// Mode is what the view is currently doing.
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeConfirmDelete
)

const (
	fieldName = iota
	fieldDescription
	fieldPrice
	fieldSpecifications
	fieldFeatures
	fieldImageURL
)

// View lists products and edits them in place.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	form      *form.Form
	statusbar *status.Bar

	productService driving.ProductService
	ctx            context.Context

	products  []domain.Product
	selected  int
	mode      Mode
	editingID string
	loading   bool
	saving    bool

	width  int
	height int
	ready  bool
}

// NewView creates a new products view.
func NewView(s *styles.Styles, productService driving.ProductService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		styles: s,
		keymap: km,
		form: form.New(s, "Add product",
			form.Spec{Label: "Name"},
			form.Spec{Label: "Description"},
			form.Spec{Label: "Price", Placeholder: "0.00"},
			form.Spec{Label: "Specifications"},
			form.Spec{Label: "Features"},
			form.Spec{Label: "Image URL", Placeholder: "https://"},
		),
		statusbar:      status.NewBar(s, km),
		productService: productService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
	v.statusbar.SetHints(km.RecordListHelp())
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the catalogue.
func (v *View) Init() tea.Cmd {
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	v.statusbar.Set(status.StatePending, "Loading products...")
	svc := v.productService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ProductsLoaded{Err: ErrNoProductService}
		}
		products, err := svc.List(ctx)
		return messages.ProductsLoaded{Products: products, Err: err}
	}
}

// Update handles messages for the products view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ProductsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		v.products = msg.Products
		if v.selected >= len(v.products) {
			v.selected = max(len(v.products)-1, 0)
		}
		v.statusbar.Set(status.StateReady, fmt.Sprintf("%d products", len(v.products)))
		return v, nil

	case messages.ProductSaved:
		v.saving = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		v.closeForm()
		cmd := v.load()
		v.statusbar.Set(status.StateSuccess, orDefault(msg.Message, "Product saved"))
		return v, cmd

	case messages.ProductRemoved:
		v.saving = false
		if msg.Err != nil {
			v.statusbar.Set(status.StateError, domain.UserMessage(msg.Err, ""))
			return v, nil
		}
		cmd := v.load()
		v.statusbar.Set(status.StateSuccess, orDefault(msg.Message, "Product removed"))
		return v, cmd

	case tea.KeyMsg:
		switch v.mode {
		case ModeForm:
			return v.handleFormKeys(msg)
		case ModeConfirmDelete:
			return v.handleConfirmKeys(msg)
		case ModeList:
			return v.handleListKeys(msg)
		}
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	km := v.keymap
	key := msg.String()

	switch {
	case key == "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(key, km.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, km.Down):
		if v.selected < len(v.products)-1 {
			v.selected++
		}
	case keymap.Matches(key, km.Refresh):
		if !v.loading {
			return v, v.load()
		}
	case keymap.Matches(key, km.Add):
		v.editingID = ""
		v.form.SetTitle("Add product")
		v.mode = ModeForm
		return v, v.form.Reset()
	case keymap.Matches(key, km.Edit):
		p := v.Selected()
		if p == nil {
			return v, nil
		}
		cmd := v.form.Reset()
		v.editingID = p.ID
		v.form.SetTitle("Edit " + p.Name)
		v.form.SetValue(fieldName, p.Name)
		v.form.SetValue(fieldDescription, p.Description)
		v.form.SetValue(fieldPrice, strconv.FormatFloat(p.Price, 'f', -1, 64))
		v.form.SetValue(fieldSpecifications, p.Specifications)
		v.form.SetValue(fieldFeatures, p.Features)
		v.form.SetValue(fieldImageURL, p.ImageURL)
		v.mode = ModeForm
		return v, cmd
	case keymap.Matches(key, km.Delete):
		if v.Selected() != nil {
			v.mode = ModeConfirmDelete
		}
	}
	return v, nil
}

func (v *View) handleFormKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.closeForm()
		return v, nil
	case "tab":
		return v, v.form.Next()
	case "shift+tab":
		return v, v.form.Prev()
	case "ctrl+s":
		return v, v.save()
	}

	var cmd tea.Cmd
	v.form, cmd = v.form.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeList
	if msg.String() != "y" {
		return v, nil
	}
	p := v.Selected()
	if p == nil || v.saving {
		return v, nil
	}

	v.saving = true
	v.statusbar.Set(status.StatePending, "Removing "+p.Name+"...")
	ref := domain.ProductRef{ID: p.ID, Name: p.Name}
	svc := v.productService
	ctx := v.ctx
	return v, func() tea.Msg {
		if svc == nil {
			return messages.ProductRemoved{Err: ErrNoProductService}
		}
		ids, message, err := svc.Remove(ctx, ref)
		return messages.ProductRemoved{IDs: ids, Message: message, Err: err}
	}
}

// save validates locally so a negative price never reaches the backend.
func (v *View) save() tea.Cmd {
	if v.saving {
		return nil
	}
	p, err := v.formProduct()
	if err == nil {
		err = p.Validate()
	}
	if err != nil {
		v.statusbar.Set(status.StateError, domain.UserMessage(err, ""))
		return nil
	}

	v.saving = true
	v.statusbar.Set(status.StatePending, "Saving product...")
	editing := p.ID != ""
	svc := v.productService
	ctx := v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.ProductSaved{Err: ErrNoProductService}
		}
		var (
			saved   *domain.Product
			message string
			err     error
		)
		if editing {
			saved, message, err = svc.Update(ctx, p)
		} else {
			saved, message, err = svc.Add(ctx, p)
		}
		return messages.ProductSaved{Product: saved, Message: message, Err: err}
	}
}

func (v *View) formProduct() (domain.Product, error) {
	p := domain.Product{
		ID:             v.editingID,
		Name:           strings.TrimSpace(v.form.Value(fieldName)),
		Description:    strings.TrimSpace(v.form.Value(fieldDescription)),
		Specifications: strings.TrimSpace(v.form.Value(fieldSpecifications)),
		Features:       strings.TrimSpace(v.form.Value(fieldFeatures)),
		ImageURL:       strings.TrimSpace(v.form.Value(fieldImageURL)),
	}
	if raw := strings.TrimSpace(v.form.Value(fieldPrice)); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, ErrInvalidPrice
		}
		p.Price = price
	}
	return p, nil
}

func (v *View) closeForm() {
	v.mode = ModeList
	v.editingID = ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// View renders the products view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("Products"), ""}

	switch v.mode {
	case ModeForm:
		sections = append(sections, v.form.View(),
			v.styles.Help.Render("[tab] Next field  [ctrl+s] Save  [esc] Cancel"))
	default:
		sections = append(sections, v.renderList())
		if v.mode == ModeConfirmDelete {
			if p := v.Selected(); p != nil {
				sections = append(sections, "",
					v.styles.Warning.Render(fmt.Sprintf("Remove %q? [y] Yes  [any key] No", p.Name)))
			}
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderList() string {
	if len(v.products) == 0 {
		return v.styles.Muted.Render("No products. Press [a] to add one.")
	}

	visible := max((v.height-8)/2, 1)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.products))

	nameWidth := max(v.width-16, 10)
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		p := &v.products[i]
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		row := fmt.Sprintf("%-*s %10.2f", nameWidth, truncate(name, nameWidth), p.Price)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+row))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+row))
		}
		lines = append(lines, v.styles.Muted.Render("    "+truncate(p.Description, v.width-6)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	width = max(width, 10)
	r := []rune(s)
	if len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.form.SetWidth(width - 4)
	v.statusbar.SetWidth(width)
}

// SetBackend sets the backend host shown in the status bar.
func (v *View) SetBackend(host string) {
	v.statusbar.SetBackend(host)
}

// Reset returns to the list.
func (v *View) Reset() {
	v.closeForm()
}

// Products returns the loaded catalogue.
func (v *View) Products() []domain.Product {
	return v.products
}

// Selected returns the selected product, or nil.
func (v *View) Selected() *domain.Product {
	if v.selected < 0 || v.selected >= len(v.products) {
		return nil
	}
	return &v.products[v.selected]
}

// Mode returns what the view is doing.
func (v *View) Mode() Mode {
	return v.mode
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
