package commands

import (
	"log/slog"
	"os"

	"webprobe/lib/dedup"
	"webprobe/lib/discover"
	"webprobe/lib/element"
	"webprobe/lib/reportstore"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var discoverDb string

func init() {
	discoverCmd.Flags().StringVar(&discoverDb, "db", "", "The database to write discovered elements to, defaults to the configured one.")
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover <url> [--db <path/to/output.db>]",
	Short: "Fetches a page and records the elements found on it.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, registry, err := newClient()
		if err != nil {
			return err
		}

		page, err := element.NewLink(element.Config{
			URL:       args[0],
			Platforms: registry,
			Transport: client,
		})
		if err != nil {
			return err
		}
		h, err := page.Submit(ctx, element.Options{Auditor: cliAuditor("webprobe discover")}, nil)
		if err != nil {
			return err
		}
		res, err := h.Wait()
		if err != nil {
			return err
		}

		found, err := discover.FromResponse(ctx, res, discover.Options{
			Platforms: registry,
			Transport: client,
		})
		if err != nil {
			return err
		}

		seen, err := dedup.New(0)
		if err != nil {
			return err
		}
		seen.Add(page)
		unique := seen.Filter(found)
		slog.Info("discovered elements", "url", res.URL, "found", len(found), "unique", len(unique))

		dbPath := discoverDb
		if dbPath == "" {
			dbPath = config.Database
		}
		store, err := reportstore.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Kind", "Method", "Action", "Inputs", "New"})
		for _, e := range unique {
			inserted, err := store.Save(ctx, e)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{e.Kind(), e.Method(), e.Action(), inputNames(e), inserted})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
		return nil
	},
}
