package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var (
	descTitle  string
	descSource string
	descID     string
	descFile   string
	descJSON   bool
)

var descriptionCmd = &cobra.Command{
	Use:     "description",
	Aliases: []string{"desc"},
	Short:   "Manage stored descriptions",
	Long:    `List, add, update, or remove the description documents held by the backend.`,
}

var descriptionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored descriptions",
	Args:  cobra.NoArgs,
	RunE:  runDescriptionList,
}

var descriptionAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a description",
	Long: `Adds a description document. The text comes from the arguments,
--file, or stdin. A new id is generated unless --id is given.
Without --title, a file's own title (or its name) is used.`,
	RunE: runDescriptionAdd,
}

var descriptionUpdateCmd = &cobra.Command{
	Use:   "update [doc-id] [text]",
	Short: "Replace a description's title and text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDescriptionUpdate,
}

var descriptionRemoveCmd = &cobra.Command{
	Use:   "remove [doc-id]",
	Short: "Remove a description",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescriptionRemove,
}

func init() {
	descriptionListCmd.Flags().BoolVar(&descJSON, "json", false, "output descriptions as JSON")

	for _, c := range []*cobra.Command{descriptionAddCmd, descriptionUpdateCmd} {
		c.Flags().StringVarP(&descTitle, "title", "t", "", "document title")
		c.Flags().StringVarP(&descFile, "file", "f", "", "read text from a file")
	}
	descriptionAddCmd.Flags().StringVar(&descSource, "source", "", "document source (default direct_input)")
	descriptionAddCmd.Flags().StringVar(&descID, "id", "", "document id (default generated)")

	descriptionCmd.AddCommand(descriptionListCmd)
	descriptionCmd.AddCommand(descriptionAddCmd)
	descriptionCmd.AddCommand(descriptionUpdateCmd)
	descriptionCmd.AddCommand(descriptionRemoveCmd)
	rootCmd.AddCommand(descriptionCmd)
}

func runDescriptionList(cmd *cobra.Command, _ []string) error {
	if descriptionService == nil {
		return errNotConfigured("description")
	}

	docs, err := descriptionService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list descriptions: %w", err)
	}

	if descJSON {
		return outputDescriptionsJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No descriptions found.")
		return nil
	}

	for i := range docs {
		d := &docs[i]
		cmd.Printf("  %s\n", accentText(d.DisplayTitle()))
		cmd.Printf("    ID:      %s\n", d.ID)
		if d.Source != "" {
			cmd.Printf("    Source:  %s\n", d.Source)
		}
		if !d.UpdatedAt.IsZero() {
			cmd.Printf("    Updated: %s\n", d.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		cmd.Printf("    %s\n", dimText(truncate(d.Content, 100)))
		cmd.Println()
	}

	cmd.Printf("Total: %d descriptions\n", len(docs))
	return nil
}

func runDescriptionAdd(cmd *cobra.Command, args []string) error {
	if descriptionService == nil {
		return errNotConfigured("description")
	}

	text, title, err := readText(cmd, args, descFile)
	if err != nil {
		return err
	}
	if descTitle != "" {
		title = descTitle
	}

	id, msg, err := descriptionService.Add(commandContext(cmd), domain.DescriptionInput{
		ID:     descID,
		Title:  title,
		Text:   text,
		Source: descSource,
	})
	if err != nil {
		return fmt.Errorf("failed to add description: %w", err)
	}

	cmd.Println(successText(orDefault(msg, "Description added.")))
	cmd.Printf("ID: %s\n", id)
	return nil
}

func runDescriptionUpdate(cmd *cobra.Command, args []string) error {
	if descriptionService == nil {
		return errNotConfigured("description")
	}

	text, _, err := readText(cmd, args[1:], descFile)
	if err != nil {
		return err
	}

	msg, err := descriptionService.Update(commandContext(cmd), domain.DescriptionInput{
		ID:    args[0],
		Title: descTitle,
		Text:  text,
	})
	if err != nil {
		return fmt.Errorf("failed to update description: %w", err)
	}

	cmd.Println(successText(orDefault(msg, "Description updated.")))
	return nil
}

func runDescriptionRemove(cmd *cobra.Command, args []string) error {
	if descriptionService == nil {
		return errNotConfigured("description")
	}

	msg, err := descriptionService.Remove(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to remove description: %w", err)
	}

	cmd.Println(successText(orDefault(msg, "Description removed.")))
	return nil
}

func outputDescriptionsJSON(cmd *cobra.Command, docs []domain.KnowledgeDocument) error {
	type docJSON struct {
		ID        string `json:"doc_id"`
		Title     string `json:"title"`
		Source    string `json:"source,omitempty"`
		Content   string `json:"content"`
		CreatedAt string `json:"created_at,omitempty"`
		UpdatedAt string `json:"updated_at,omitempty"`
	}
	out := make([]docJSON, 0, len(docs))
	for i := range docs {
		d := &docs[i]
		j := docJSON{ID: d.ID, Title: d.Title, Source: d.Source, Content: d.Content}
		if !d.CreatedAt.IsZero() {
			j.CreatedAt = d.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		if !d.UpdatedAt.IsZero() {
			j.UpdatedAt = d.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, j)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal descriptions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
