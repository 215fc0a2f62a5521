package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvr-ai/go-imaging/config"
	"github.com/nvr-ai/go-imaging/pipeline"
	"github.com/nvr-ai/go-imaging/progress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "imaging",
	Short: "Convert images between formats and remove solid backgrounds",
	Long: `imaging converts images between JPEG, PNG, WebP, BMP, TIFF and GIF, optionally
resizing them, and removes solid-color backgrounds into transparent PNGs.

Examples:
  # Inspect an image
  imaging analyze photo.jpg

  # Convert to WebP, fitting within 800x600
  imaging convert photo.jpg out/photo.webp --format webp --max-width 800 --max-height 600

  # Cut a green screen with soft edges
  imaging remove-bg shot.png shot-cut.png --color "#00FF00" --tolerance 40 --soften --radius 2

  # Convert a whole folder on 4 workers
  imaging batch ./in ./out --format jpeg --quality 70 --workers 4

  # Turn a folder into a hot folder
  imaging watch ./drop ./out --remove-bg`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.imaging.yaml)")
	flags.BoolP("verbose", "v", false, "log every progress checkpoint")

	// Conversion options
	flags.StringP("format", "f", "", "output format (jpeg|png|webp|bmp|tiff|gif)")
	flags.IntP("quality", "q", 0, "JPEG quality 1-100")
	flags.Uint32("max-width", 0, "maximum output width; needs --max-height too")
	flags.Uint32("max-height", 0, "maximum output height; needs --max-width too")
	flags.Bool("preserve-aspect", true, "fit within the bounds instead of stretching")

	// Background removal options
	flags.String("color", "", "background color as #RRGGBB")
	flags.Uint8("tolerance", 0, "RGB distance treated as background (0-255)")
	flags.Bool("soften", false, "soften partially transparent edges")
	flags.Uint8("radius", 0, "edge softening radius in pixels")

	// Batch and watch options
	flags.IntP("workers", "w", 0, "parallel workers (0 = one per CPU)")
	flags.Int("debounce", 0, "hot folder debounce in milliseconds")

	bind := map[string]string{
		"verbose":                  "verbose",
		"convert.format":           "format",
		"convert.quality":          "quality",
		"convert.max_width":        "max-width",
		"convert.max_height":       "max-height",
		"convert.preserve_aspect":  "preserve-aspect",
		"background.key_color":     "color",
		"background.tolerance":     "tolerance",
		"background.soften_edges":  "soften",
		"background.soften_radius": "radius",
		"batch.workers":            "workers",
		"watch.debounce_ms":        "debounce",
	}
	for key, flag := range bind {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

// initConfig loads the config file, if any, into viper's defaults and enables
// IMAGING_* environment overrides. Explicit flags take precedence over both.
func initConfig() {
	cfg := config.DefaultConfig()
	if cfgFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			if path := filepath.Join(home, ".imaging.yaml"); fileExists(path) {
				cfgFile = path
			}
		}
	}
	if cfgFile != "" {
		loaded, err := config.LoadConfig(cfgFile)
		cobra.CheckErr(err)
		cfg = loaded
		fmt.Fprintln(os.Stderr, "Using config file:", cfgFile)
	}

	viper.SetDefault("verbose", cfg.Verbose)
	viper.SetDefault("convert.format", cfg.Convert.Format)
	viper.SetDefault("convert.quality", cfg.Convert.Quality)
	viper.SetDefault("convert.max_width", cfg.Convert.MaxWidth)
	viper.SetDefault("convert.max_height", cfg.Convert.MaxHeight)
	viper.SetDefault("convert.preserve_aspect", cfg.Convert.PreserveAspect)
	viper.SetDefault("background.key_color", cfg.Background.KeyColor)
	viper.SetDefault("background.tolerance", cfg.Background.Tolerance)
	viper.SetDefault("background.soften_edges", cfg.Background.SoftenEdges)
	viper.SetDefault("background.soften_radius", cfg.Background.SoftenRadius)
	viper.SetDefault("batch.workers", cfg.Batch.Workers)
	viper.SetDefault("watch.debounce_ms", cfg.Watch.DebounceMillis)

	viper.SetEnvPrefix("imaging")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// effectiveConfig rebuilds a Config from the merged flag, env and file values.
func effectiveConfig() *config.Config {
	return &config.Config{
		Convert: config.ConvertConfig{
			Format:         viper.GetString("convert.format"),
			Quality:        viper.GetInt("convert.quality"),
			MaxWidth:       viper.GetUint32("convert.max_width"),
			MaxHeight:      viper.GetUint32("convert.max_height"),
			PreserveAspect: viper.GetBool("convert.preserve_aspect"),
		},
		Background: config.BackgroundConfig{
			KeyColor:     viper.GetString("background.key_color"),
			Tolerance:    viper.GetUint8("background.tolerance"),
			SoftenEdges:  viper.GetBool("background.soften_edges"),
			SoftenRadius: viper.GetUint8("background.soften_radius"),
		},
		Batch:   config.BatchConfig{Workers: viper.GetInt("batch.workers")},
		Watch:   config.WatchConfig{DebounceMillis: viper.GetInt("watch.debounce_ms")},
		Verbose: viper.GetBool("verbose"),
	}
}

// newService builds a pipeline service that logs progress.
func newService() *pipeline.Service {
	return pipeline.NewService(progress.LogFactory(viper.GetBool("verbose")))
}

// conversionOptions reads conversion settings from flags, env and config.
func conversionOptions() pipeline.ConversionOptions {
	opts := pipeline.ConversionOptions{
		Format:         viper.GetString("convert.format"),
		PreserveAspect: viper.GetBool("convert.preserve_aspect"),
	}
	if q := viper.GetInt("convert.quality"); q > 0 {
		opts.Quality = &q
	}
	if w := viper.GetUint32("convert.max_width"); w > 0 {
		opts.MaxWidth = &w
	}
	if h := viper.GetUint32("convert.max_height"); h > 0 {
		opts.MaxHeight = &h
	}
	return opts
}

// backgroundOptions reads background removal settings from flags, env and config.
func backgroundOptions() pipeline.BackgroundRemovalOptions {
	return pipeline.BackgroundRemovalOptions{
		KeyColor:     viper.GetString("background.key_color"),
		Tolerance:    viper.GetUint8("background.tolerance"),
		SoftenEdges:  viper.GetBool("background.soften_edges"),
		SoftenRadius: viper.GetUint8("background.soften_radius"),
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
