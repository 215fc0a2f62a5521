package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Print format, dimensions and size of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := newService().Analyze(args[0])
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert an image to another format, optionally resizing it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newService().Convert(args[0], args[1], conversionOptions())
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove-bg <input> <output>",
	Aliases: []string{"rmbg"},
	Short:   "Make a solid background color transparent and save as PNG",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newService().RemoveBackground(args[0], args[1], backgroundOptions())
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range newService().ListFormats() {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := effectiveConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}
		out, err := cfg.YAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd, convertCmd, removeCmd, formatsCmd, configCmd)
}
