package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
	"github.com/custodia-labs/siteassist/internal/core/ports/driving"
)

var (
	productID          string
	productName        string
	productDescription string
	productPrice       float64
	productSpecs       string
	productFeatures    string
	productImage       string
	productJSON        bool
)

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products"},
	Short:   "Manage the product catalogue",
	Long:    `List, add, update, remove, or bulk-import the products held by the backend.`,
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE:  runProductList,
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE:  runProductAdd,
}

var productUpdateCmd = &cobra.Command{
	Use:   "update [product-id]",
	Short: "Replace an existing product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductUpdate,
}

var productRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove products by id or name",
	Long:  `Removes every product matching --id or --name. At least one is required.`,
	Args:  cobra.NoArgs,
	RunE:  runProductRemove,
}

var productImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Add every product in a YAML or JSON catalogue",
	Long: `Reads a catalogue file and adds each entry. The file holds either a list
of products or a "products" key with that list:

  products:
    - name: Widget
      description: A sturdy widget
      price: 19.99
      features: pocket sized

Entries are added one at a time; a failing entry is reported and the rest
continue.`,
	Args: cobra.ExactArgs(1),
	RunE: runProductImport,
}

func init() {
	productListCmd.Flags().BoolVar(&productJSON, "json", false, "output products as JSON")

	for _, c := range []*cobra.Command{productAddCmd, productUpdateCmd} {
		f := c.Flags()
		f.StringVar(&productName, "name", "", "product name (required)")
		f.StringVar(&productDescription, "description", "", "product description (required)")
		f.Float64Var(&productPrice, "price", 0, "price")
		f.StringVar(&productSpecs, "specifications", "", "specifications")
		f.StringVar(&productFeatures, "features", "", "features")
		f.StringVar(&productImage, "image-url", "", "image URL")
	}
	productAddCmd.Flags().StringVar(&productID, "id", "", "product id (default generated)")

	productRemoveCmd.Flags().StringVar(&productID, "id", "", "product id")
	productRemoveCmd.Flags().StringVar(&productName, "name", "", "product name")

	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productUpdateCmd)
	productCmd.AddCommand(productRemoveCmd)
	productCmd.AddCommand(productImportCmd)
	rootCmd.AddCommand(productCmd)
}

func runProductList(cmd *cobra.Command, _ []string) error {
	if productService == nil {
		return errNotConfigured("product")
	}

	products, err := productService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if productJSON {
		return outputProductsJSON(cmd, products)
	}

	if len(products) == 0 {
		cmd.Println("No products found.")
		return nil
	}

	for i := range products {
		printProduct(cmd, &products[i])
		cmd.Println()
	}
	cmd.Printf("Total: %d products\n", len(products))
	return nil
}

func runProductAdd(cmd *cobra.Command, _ []string) error {
	if productService == nil {
		return errNotConfigured("product")
	}

	p, msg, err := productService.Add(commandContext(cmd), productFromFlags(productID))
	if err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}

	cmd.Println(successText(orDefault(msg, "Product added.")))
	cmd.Printf("ID: %s\n", p.ID)
	return nil
}

func runProductUpdate(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return errNotConfigured("product")
	}

	_, msg, err := productService.Update(commandContext(cmd), productFromFlags(args[0]))
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	cmd.Println(successText(orDefault(msg, "Product updated.")))
	return nil
}

func runProductRemove(cmd *cobra.Command, _ []string) error {
	if productService == nil {
		return errNotConfigured("product")
	}

	ids, msg, err := productService.Remove(commandContext(cmd), domain.ProductRef{ID: productID, Name: productName})
	if err != nil {
		return fmt.Errorf("failed to remove product: %w", err)
	}

	cmd.Println(successText(orDefault(msg, fmt.Sprintf("Removed %d products.", len(ids)))))
	for _, id := range ids {
		cmd.Printf("  %s\n", id)
	}
	return nil
}

func runProductImport(cmd *cobra.Command, args []string) error {
	if productService == nil {
		return errNotConfigured("product")
	}

	path := args[0]
	format, err := driving.CatalogueFormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalogue: %w", err)
	}
	defer f.Close()

	outcomes, err := productService.Import(commandContext(cmd), f, format)
	for _, o := range outcomes {
		name := orDefault(o.Name, fmt.Sprintf("entry %d", o.Index+1))
		if o.OK() {
			cmd.Printf("  %s %s (%s)\n", successText("✓"), name, o.ID)
		} else {
			cmd.Printf("  %s %s: %s\n", errorText("✗"), name, domain.UserMessage(o.Err, ""))
		}
	}
	if err != nil {
		return fmt.Errorf("failed to import catalogue: %w", err)
	}

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	cmd.Printf("\nImported %d of %d products\n", len(outcomes)-failed, len(outcomes))
	if failed > 0 {
		return fmt.Errorf("%d products failed to import", failed)
	}
	return nil
}

func productFromFlags(id string) domain.Product {
	return domain.Product{
		ID:             id,
		Name:           productName,
		Description:    productDescription,
		Price:          productPrice,
		Specifications: productSpecs,
		Features:       productFeatures,
		ImageURL:       productImage,
	}
}

func printProduct(cmd *cobra.Command, p *domain.Product) {
	cmd.Printf("  %s", accentText(p.Name))
	if p.Price > 0 {
		cmd.Printf("  %.2f", p.Price)
	}
	cmd.Println()
	if p.ID != "" {
		cmd.Printf("    ID:       %s\n", p.ID)
	}
	if p.Description != "" {
		cmd.Printf("    %s\n", truncate(p.Description, 100))
	}
	if p.Features != "" {
		cmd.Printf("    Features: %s\n", truncate(p.Features, 80))
	}
	if p.ImageURL != "" {
		cmd.Printf("    Image:    %s\n", p.ImageURL)
	}
}

func outputProductsJSON(cmd *cobra.Command, products []domain.Product) error {
	type productRow struct {
		ID             string  `json:"product_id"`
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		Price          float64 `json:"price"`
		Specifications string  `json:"specifications,omitempty"`
		Features       string  `json:"features,omitempty"`
		ImageURL       string  `json:"image_url,omitempty"`
	}
	out := make([]productRow, 0, len(products))
	for i := range products {
		p := &products[i]
		out = append(out, productRow{
			ID:             p.ID,
			Name:           p.Name,
			Description:    p.Description,
			Price:          p.Price,
			Specifications: p.Specifications,
			Features:       p.Features,
			ImageURL:       p.ImageURL,
		})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
