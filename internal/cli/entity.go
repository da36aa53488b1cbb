package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/app"
	"github.com/mesh-intelligence/backoffice/internal/crud"
)

const entityHelp = "Entities: users, products, roles, purchase-orders (po), services."

func (c *cli) newListCmd() *cobra.Command {
	var opts app.ListOptions
	cmd := &cobra.Command{
		Use:     "list <entity>",
		Aliases: []string{"ls"},
		Short:   "List an entity as a paginated table",
		Long:    "List an entity as a paginated table. --query keeps the rows where any searchable field contains the text, ignoring case.\n" + entityHelp,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			if c.jsonMode {
				return writeJSON(c.out, p.Records(opts))
			}
			return p.Render(c.out, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "search text")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number, clamped to the available pages")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "rows per page (default: page_size from config)")
	return cmd
}

func (c *cli) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entity> <id>",
		Short: "Display one record with all its fields",
		Long:  "Display one record with all its fields.\n" + entityHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			if c.jsonMode {
				rec, err := p.Record(id)
				if err != nil {
					return err
				}
				return writeJSON(c.out, rec)
			}
			return p.Show(c.out, id)
		},
	}
}

func (c *cli) newFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields <entity>",
		Short: "List the form fields and row actions of an entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			if c.jsonMode {
				return writeJSON(c.out, map[string]any{
					"entity":  p.Name(),
					"fields":  p.Fields(),
					"actions": p.Actions(),
				})
			}
			fmt.Fprintf(c.out, "fields:  %s\n", strings.Join(p.Fields(), ", "))
			if actions := p.Actions(); len(actions) > 0 {
				fmt.Fprintf(c.out, "actions: %s\n", strings.Join(actions, ", "))
			}
			return nil
		},
	}
}

func (c *cli) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <entity> <field=value>...",
		Short: "Create a record",
		Long:  "Create a record from field=value pairs. Every field is validated; nothing is created unless all pass.\n" + entityHelp,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}
			id, err := p.Create(values)
			if err != nil {
				return c.reportValidation(err)
			}
			return c.printRecord(p, id)
		},
	}
}

func (c *cli) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <entity> <id> <field=value>...",
		Short: "Change fields of a record",
		Long:  "Change fields of a record. Fields not given keep their value.\n" + entityHelp,
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			values, err := parseValues(args[2:])
			if err != nil {
				return err
			}
			if err := p.Update(id, values); err != nil {
				return c.reportValidation(err)
			}
			return c.printRecord(p, id)
		},
	}
}

func (c *cli) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a record after confirmation",
		Long:  "Delete a record. The command asks first unless --yes is given or confirm_deletes is false.\n" + entityHelp,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			deleted, err := p.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.jsonMode {
				return writeJSON(c.out, map[string]any{"id": id, "deleted": deleted})
			}
			if !deleted {
				fmt.Fprintf(c.out, "Nothing deleted.\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&c.assumeYes, "yes", "y", false, "delete without asking")
	return cmd
}

func (c *cli) newActionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "action <entity> <action> <id>",
		Short: "Run a row action such as receive or toggle-status",
		Long:  "Run a row action. Purchase orders support receive and cancel while pending; other entities support toggle-status.\n" + entityHelp,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.page(args[0])
			if err != nil {
				return err
			}
			id, err := parseID(args[2])
			if err != nil {
				return err
			}
			if err := p.Do(args[1], id); err != nil {
				return c.reportValidation(err)
			}
			return c.printRecord(p, id)
		},
	}
}

// printRecord shows the record after a successful change.
func (c *cli) printRecord(p app.Page, id int64) error {
	if c.jsonMode {
		rec, err := p.Record(id)
		if err != nil {
			return err
		}
		return writeJSON(c.out, rec)
	}
	return p.Show(c.out, id)
}

// reportValidation lists every field error of a rejected draft; the
// notification only carries the first one.
func (c *cli) reportValidation(err error) error {
	var verr *crud.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	if c.jsonMode {
		fields := make(map[string]string)
		for _, f := range verr.Fields() {
			fields[f] = verr.Field(f)
		}
		if werr := writeJSON(c.out, map[string]any{"errors": fields}); werr != nil {
			return werr
		}
		return err
	}
	for _, f := range verr.Fields() {
		fmt.Fprintf(c.errOut, "  %s: %s\n", f, verr.Field(f))
	}
	return err
}
