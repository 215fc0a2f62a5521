package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvr-ai/go-imaging/batch"
	"github.com/nvr-ai/go-imaging/images"
	"github.com/nvr-ai/go-imaging/watch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var removeBackground bool

var batchCmd = &cobra.Command{
	Use:   "batch <input-dir> <output-dir>",
	Short: "Process every supported image in a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, format, err := folderOperation()
		if err != nil {
			return err
		}
		jobs, err := batch.Plan(args[0], args[1], format)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		outcomes := batch.Run(ctx, jobs, viper.GetInt("batch.workers"), op)
		summary := batch.Summarize(outcomes)
		if err := printJSON(summary); err != nil {
			return err
		}
		if summary.Failed > 0 {
			return errors.Errorf("%d of %d files failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <input-dir> <output-dir>",
	Short: "Process images as they are dropped into a folder",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, format, err := folderOperation()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(args[1], 0o755); err != nil {
			return err
		}
		w, err := watch.NewWatcher(watch.Options{
			InputDir:  args[0],
			OutputDir: args[1],
			Format:    format,
			Operation: op,
			Debounce:  time.Duration(viper.GetInt("watch.debounce_ms")) * time.Millisecond,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return w.Run(ctx)
	},
}

// folderOperation picks background removal or conversion and the output
// format that goes with it.
func folderOperation() (batch.Operation, images.Format, error) {
	svc := newService()
	if removeBackground {
		return batch.RemoveBackground(svc, backgroundOptions()), images.AlphaFormat, nil
	}
	opts := conversionOptions()
	format, err := images.ParseFormat(opts.Format)
	if err != nil {
		return nil, "", err
	}
	return batch.Convert(svc, opts), format, nil
}

func init() {
	for _, c := range []*cobra.Command{batchCmd, watchCmd} {
		c.Flags().BoolVar(&removeBackground, "remove-bg", false, "remove the background instead of converting")
	}
	rootCmd.AddCommand(batchCmd, watchCmd)
}
