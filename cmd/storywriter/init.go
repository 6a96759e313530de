package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/gdoct/ai-storywriter-sub001/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a storywriter configuration file",
	Long: `Writes the default configuration, merged with the global flags, to the
--config path. An existing file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	// the file may not exist or be valid yet
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := writeConfig(cfgFile, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("wrote"), cfgFile)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

// writeConfig saves DefaultConfig with the global flag overrides to path.
func writeConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config %s already exists, use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	c := config.DefaultConfig()
	applyOverrides(c)
	if modelName != "" {
		c.Model = modelName
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Save(path)
}
