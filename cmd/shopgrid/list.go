package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/jask/shopgrid/internal/catalog"
	"github.com/jask/shopgrid/internal/grid"
	"github.com/jask/shopgrid/internal/prefs"
	"github.com/jask/shopgrid/internal/reveal"
	"github.com/jask/shopgrid/internal/service"
)

type listOptions struct {
	category string
	min      float64
	max      float64
	sort     string
	usePrefs bool
	initial  int
	batch    int
	reveal   int
}

func newListCmd(rt *runtime) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the product grid without the interactive browser",
		Long: `Prints the first page of the grid for the given filters, like the
browser would show it. Use --reveal to load more pages.

Example:
  shopgrid list --category Kitchen --max 50 --sort priceLow --reveal 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.list(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.category, "category", "c", string(catalog.AllCategories), "category label, exact match")
	f.Float64Var(&opts.min, "min", 0, "minimum price, inclusive")
	f.Float64Var(&opts.max, "max", 0, "maximum price, inclusive")
	f.StringVarP(&opts.sort, "sort", "s", "", "priceLow, priceHigh, nameAZ, nameZA or rating")
	f.BoolVar(&opts.usePrefs, "prefs", false, "apply the preferences file")
	f.IntVar(&opts.initial, "initial", 0, "products shown before loading more (default from config)")
	f.IntVar(&opts.batch, "batch", 0, "products added per load (default from config)")
	f.IntVar(&opts.reveal, "reveal", 0, "number of times to load more")
	return cmd
}

func (rt *runtime) list(cmd *cobra.Command, opts *listOptions) error {
	ctx := cmd.Context()
	db, err := rt.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := rt.catalogService(db).Load(ctx)
	if err != nil {
		return err
	}

	criteria := catalog.Criteria{PreferencesEnabled: opts.usePrefs}
	if cmd.Flags().Changed("min") {
		criteria.MinPrice = catalog.Float(opts.min)
	}
	if cmd.Flags().Changed("max") {
		criteria.MaxPrice = catalog.Float(opts.max)
	}
	if opts.sort != "" {
		key, ok := catalog.ParseSortKey(opts.sort)
		if !ok {
			return fmt.Errorf("unknown sort %q", opts.sort)
		}
		criteria.SortBy = key
	}

	var userPrefs *catalog.Preferences
	if opts.usePrefs && rt.cfg.Prefs.Path != "" {
		userPrefs, err = prefs.Load(rt.cfg.Prefs.Path)
		if err != nil {
			return err
		}
	}

	revealCfg := rt.cfg.Grid.Reveal()
	if opts.initial > 0 {
		revealCfg.InitialCount = opts.initial
	}
	if opts.batch > 0 {
		revealCfg.BatchSize = opts.batch
	}

	pipeline := catalog.Pipeline{
		Classify: snap.Classify,
		Prefer:   prefs.NewFilter(snap.Classify),
		Locale:   language.Make(rt.cfg.UI.Locale),
	}
	g := grid.New(pipeline, reveal.New(revealCfg, nil, rt.log), rt.log)
	defer g.Close()
	g.Apply(grid.Inputs{
		Items:       snap.Items,
		Selection:   catalog.Selection(opts.category),
		Criteria:    criteria,
		Preferences: userPrefs,
	})
	for i := 0; i < opts.reveal; i++ {
		if !g.RevealMore() {
			break
		}
	}

	return printGrid(cmd.OutOrStdout(), g, snap, rt.cfg.UI.CurrencySymbol, opts.reveal+1)
}

func printGrid(w io.Writer, g *grid.Grid, snap service.Snapshot, currency string, nextReveal int) error {
	v := g.View()
	classify := snap.Classify
	fmt.Fprintln(w, v.Heading)
	fmt.Fprintln(w, v.Summary())
	if v.Empty() {
		fmt.Fprintln(w, "No products found")
		sel := g.Inputs().Selection
		if s, ok := catalog.SuggestCategory(snap.Labels(), string(sel)); ok && sel != catalog.AllCategories {
			fmt.Fprintf(w, "Did you mean %q?\n", s)
		}
		return nil
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, it := range v.Items {
		rating := "unrated"
		if it.Rating != nil {
			rating = fmt.Sprintf("%.1f", *it.Rating)
		}
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s%.2f\t%s\n", i+1, it.Name, classify(it), currency, it.Price, rating)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if v.HasMore {
		fmt.Fprintf(w, "\n%d of %d shown. Load more with --reveal %d\n", len(v.Items), v.Total, nextReveal)
	}
	return nil
}
