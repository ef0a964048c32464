// Command progresscharts 在命令行生成学习进度图表配置或图片
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"progress_charts/internal/config"
	"progress_charts/internal/model"
	"progress_charts/internal/repository"
	"progress_charts/internal/service"
	"progress_charts/pkg/chartrender"
	"progress_charts/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	defaultWidth  = 800
	defaultHeight = 400
)

type options struct {
	statsPath string
	verbose   bool

	outDir   string
	format   string
	width    int
	height   int
	fontPath string
	surfaces []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "progresscharts",
		Short:        "Build learning progress charts",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.InitConsole(opts.verbose)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.statsPath, "stats", "", "stats JSON file, '-' for stdin (default: built-in sample data)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newConfigsCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	return rootCmd
}

func newConfigsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "configs",
		Short: "Print the Chart.js configurations as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := readStats(cmd.InOrStdin(), opts.statsPath)
			if err != nil {
				return err
			}

			specs := service.BuildProgressCharts(stats)
			configs := make(map[string]model.ChartJSConfig, len(specs))
			for _, spec := range specs {
				configs[spec.TargetID] = spec.ChartJS()
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(configs)
		},
	}
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the charts as images",
		Long: "Render the charts into <out>/charts/<surface>.<format>.\n" +
			"Only the surfaces passed with --surface exist; charts whose target is not among them are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&opts.format, "format", string(model.FormatPNG), "image format: png or svg")
	cmd.Flags().IntVar(&opts.width, "width", defaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", defaultHeight, "image height in pixels")
	cmd.Flags().StringVar(&opts.fontPath, "font", "", "TrueType font used for labels (needed for CJK text)")
	cmd.Flags().StringSliceVar(&opts.surfaces, "surface", []string{
		service.DailyWordsChartID,
		service.MasteryChartID,
		service.LearningTrendChartID,
	}, "existing surface ids")

	return cmd
}

func runRender(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stats, err := readStats(cmd.InOrStdin(), opts.statsPath)
	if err != nil {
		return err
	}

	font, err := chartrender.LoadFont(opts.fontPath)
	if err != nil {
		return err
	}

	storage := &service.LocalStorageProvider{Config: &config.StorageConfig{LocalPath: opts.outDir}}
	surfaces := repository.NewMemorySurfaceRepository()
	surfaceService := service.NewSurfaceService(surfaces, storage)

	for _, id := range opts.surfaces {
		_, err := surfaceService.Register(ctx, service.RegisterSurfaceRequest{
			ID:     id,
			Format: model.ImageFormat(opts.format),
			Width:  opts.width,
			Height: opts.height,
		})
		if err != nil {
			return fmt.Errorf("surface %q: %w", id, err)
		}
	}

	renderer := service.NewImageRenderer(surfaces, storage, chartrender.Settings{
		Format: model.ImageFormat(opts.format),
		Width:  opts.width,
		Height: opts.height,
		Font:   font,
	})
	rendered, err := service.NewChartService(renderer, surfaces).RenderProgressCharts(ctx, stats)

	for _, r := range rendered {
		name := model.ImageObjectName(r.TargetID, model.ImageFormat(opts.format))
		path := filepath.Join(opts.outDir, filepath.FromSlash(name))
		logger.Log.Debug("Chart rendered", zap.String("surface", r.TargetID), zap.String("kind", string(r.Kind)))
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return err
}

// readStats 路径为空时返回 nil，使用内置示例数据
func readStats(stdin io.Reader, path string) (*model.StatsInput, error) {
	if path == "" {
		return nil, nil
	}

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var stats model.StatsInput
	if err := json.NewDecoder(r).Decode(&stats); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if err := service.ValidateStats(&stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
