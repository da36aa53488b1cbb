package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/app"
	"github.com/mesh-intelligence/backoffice/internal/export"
	"github.com/mesh-intelligence/backoffice/internal/paths"
)

func (c *cli) newCatalogCmd() *cobra.Command {
	var opts app.ListOptions
	cmd := &cobra.Command{
		Use:     "catalog",
		Aliases: []string{"store"},
		Short:   "Browse the storefront of active products and services",
		Long:    "Browse the storefront. Only active products and services appear; search ignores accents.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession()
			if err != nil {
				return err
			}
			items := s.Catalog()
			if opts.PageSize < 1 {
				opts.PageSize = s.Config().PageSize
			}
			if c.jsonMode {
				t := app.CatalogTable(items, opts.PageSize)
				t.SetQuery(opts.Query)
				t.SetPage(opts.Page)
				return writeJSON(c.out, t.PageRows())
			}
			app.RenderCatalog(c.out, items, opts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "search text")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "rows per page (default: page_size from config)")
	return cmd
}

func (c *cli) newExportCmd() *cobra.Command {
	var format, dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of every collection to disk",
		Long:  "Write a snapshot of every collection as " + strings.Join(export.Formats, ", ") + ". Snapshots are never read back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openSession()
			if err != nil {
				return err
			}
			target, err := paths.ResolveExportDir(dir, c.cfg.ExportDir)
			if err != nil {
				return systemError(err)
			}
			written, err := s.Export(cmd.Context(), target, format)
			if err != nil {
				if errors.Is(err, export.ErrUnknownFormat) {
					return err
				}
				return systemError(err)
			}
			if c.jsonMode {
				return writeJSON(c.out, map[string]any{"format": format, "files": written})
			}
			for _, path := range written {
				fmt.Fprintln(c.out, path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", export.FormatJSONL, "export format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "target directory (default: export_dir from config)")
	return cmd
}
