package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  "Create the configuration directory and a default config.yaml. An existing file is left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(c.resolvedDir, configFileExt)
			wrote, err := writeConfigIfMissing(c.resolvedDir)
			if err != nil {
				return systemError(err)
			}
			if c.jsonMode {
				return writeJSON(c.out, map[string]any{"path": path, "created": wrote})
			}
			if wrote {
				fmt.Fprintf(c.out, "Wrote %s\n", path)
			} else {
				fmt.Fprintf(c.out, "%s already exists\n", path)
			}
			return nil
		},
	}
}
