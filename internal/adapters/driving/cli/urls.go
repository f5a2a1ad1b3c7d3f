package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siteassist/internal/core/domain"
)

var (
	urlsJSON bool

	processDescURLs    []string
	processProductURLs []string

	runMoveToProduct []string
	runMoveToDesc    []string
	runDrop          []string
	runAddDesc       []string
	runAddProduct    []string
)

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Classify and process a site's pages",
	Long: `Classify the pages reachable from a seed URL into description and
product/service lists, adjust the lists, and submit them for processing.`,
}

var urlsClassifyCmd = &cobra.Command{
	Use:   "classify [seed-url]",
	Short: "Classify the pages reachable from a seed URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runURLsClassify,
}

var urlsProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Process description and product URL lists",
	Long: `Submits each list to its own processing endpoint. Both lists are sent
concurrently and each reports its own outcome; one failing does not affect
the other.`,
	Args: cobra.NoArgs,
	RunE: runURLsProcess,
}

var urlsRunCmd = &cobra.Command{
	Use:   "run [seed-url]",
	Short: "Classify, adjust and process in one step",
	Long: `Runs the full workflow: classify the seed URL, apply any corrections,
then process both lists.

Corrections are applied in order: drops, then moves, then additions.

Examples:
  siteassist urls run https://example.com
  siteassist urls run https://example.com \
      --move-to-product https://example.com/pricing \
      --drop https://example.com/careers \
      --add-desc https://example.com/history`,
	Args: cobra.ExactArgs(1),
	RunE: runURLsRun,
}

func init() {
	urlsClassifyCmd.Flags().BoolVar(&urlsJSON, "json", false, "output lists as JSON")

	urlsProcessCmd.Flags().StringSliceVar(&processDescURLs, "desc", nil, "description URLs (repeatable)")
	urlsProcessCmd.Flags().StringSliceVar(&processProductURLs, "product", nil, "product/service URLs (repeatable)")

	f := urlsRunCmd.Flags()
	f.StringSliceVar(&runMoveToProduct, "move-to-product", nil, "move a URL from the description list to the product list")
	f.StringSliceVar(&runMoveToDesc, "move-to-desc", nil, "move a URL from the product list to the description list")
	f.StringSliceVar(&runDrop, "drop", nil, "remove a URL from whichever list holds it")
	f.StringSliceVar(&runAddDesc, "add-desc", nil, "add a URL to the description list")
	f.StringSliceVar(&runAddProduct, "add-product", nil, "add a URL to the product list")

	urlsCmd.AddCommand(urlsClassifyCmd)
	urlsCmd.AddCommand(urlsProcessCmd)
	urlsCmd.AddCommand(urlsRunCmd)
	rootCmd.AddCommand(urlsCmd)
}

func runURLsClassify(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	set, err := classify(cmd, args[0])
	if err != nil {
		return err
	}

	if urlsJSON {
		return outputURLSetJSON(cmd, set)
	}
	printURLSet(cmd, set)
	return nil
}

func runURLsProcess(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	set := domain.NewClassifiedURLSet(nil, nil)
	for kind, raws := range map[domain.ListKind][]string{
		domain.KindDescription: processDescURLs,
		domain.KindProduct:     processProductURLs,
	} {
		for _, raw := range raws {
			if _, err := set.Add(kind, raw); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
				return fmt.Errorf("%s URL %q: %w", kind.Label(), raw, err)
			}
		}
	}
	if set.Len() == 0 {
		return domain.ErrEmptyList
	}

	return processSet(cmd, set)
}

func runURLsRun(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured("ingest")
	}

	set, err := classify(cmd, args[0])
	if err != nil {
		return err
	}

	if err := applyCorrections(cmd, set); err != nil {
		return err
	}

	printURLSet(cmd, set)
	cmd.Println()
	return processSet(cmd, set)
}

func classify(cmd *cobra.Command, seed string) (*domain.ClassifiedURLSet, error) {
	var set *domain.ClassifiedURLSet
	err := withSpinner(cmd, "Classifying pages...", func() error {
		var err error
		set, err = ingestService.Classify(commandContext(cmd), seed)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to classify: %w", err)
	}
	return set, nil
}

// applyCorrections edits the classified lists from the run flags.
func applyCorrections(cmd *cobra.Command, set *domain.ClassifiedURLSet) error {
	for _, u := range runDrop {
		removed := set.Remove(domain.KindDescription, u)
		removed = set.Remove(domain.KindProduct, u) || removed
		if !removed {
			cmd.Printf("%s %s is in neither list\n", dimText("note:"), u)
		}
	}

	moves := []struct {
		urls     []string
		from, to domain.ListKind
	}{
		{runMoveToProduct, domain.KindDescription, domain.KindProduct},
		{runMoveToDesc, domain.KindProduct, domain.KindDescription},
	}
	for _, m := range moves {
		for _, u := range m.urls {
			if err := set.Move(u, m.from, m.to); err != nil {
				return fmt.Errorf("move %s to %s list: %w", u, m.to.Label(), err)
			}
		}
	}

	adds := []struct {
		urls []string
		kind domain.ListKind
	}{
		{runAddDesc, domain.KindDescription},
		{runAddProduct, domain.KindProduct},
	}
	for _, a := range adds {
		for _, raw := range a.urls {
			if _, err := set.Add(a.kind, raw); err != nil {
				if errors.Is(err, domain.ErrAlreadyExists) {
					continue
				}
				return fmt.Errorf("add %q to %s list: %w", raw, a.kind.Label(), err)
			}
		}
	}
	return nil
}

// processSet submits both lists and reports each outcome. It fails when
// either list failed, after printing both.
func processSet(cmd *cobra.Command, set *domain.ClassifiedURLSet) error {
	var batch domain.BatchResult
	_ = withSpinner(cmd, "Processing URLs...", func() error {
		batch = ingestService.ProcessAll(commandContext(cmd), set)
		return nil
	})

	failed := 0
	for _, kind := range domain.AllListKinds() {
		result := batch.For(kind)
		printStatus(cmd, fmt.Sprintf("%-17s", kind.Label()+":"), result.Status)
		if result.Status.State == domain.ProcessError {
			failed++
		}
		for _, p := range result.Products {
			cmd.Printf("    - %s\n", p.Name)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d lists failed to process", failed, len(domain.AllListKinds()))
	}
	return nil
}

func printURLSet(cmd *cobra.Command, set *domain.ClassifiedURLSet) {
	for i, kind := range domain.AllListKinds() {
		if i > 0 {
			cmd.Println()
		}
		urls := set.List(kind)
		cmd.Printf("%s URLs (%d):\n", kind.Label(), len(urls))
		if len(urls) == 0 {
			cmd.Printf("  %s\n", dimText("(none)"))
		}
		for _, u := range urls {
			cmd.Printf("  %s\n", u)
		}
	}
}

func outputURLSetJSON(cmd *cobra.Command, set *domain.ClassifiedURLSet) error {
	out := struct {
		Description []string `json:"desc_urls"`
		Product     []string `json:"product_service_urls"`
	}{
		Description: nonNil(set.Description),
		Product:     nonNil(set.Product),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal URLs: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// commandContext returns the command's context, or Background when the
// command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
