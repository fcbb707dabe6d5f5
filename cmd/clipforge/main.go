package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"clipforge/internal/config"
	"clipforge/internal/ffmpeg"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/pkg/util"
)

var version = "dev"

var (
	cfgFile string
	verbose bool
	quiet   bool
)

func main() {
	ctx := context.Background()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clipforge",
	Short: "clipforge - engagement-driven short clip planner",
	Long:  "Analyzes long-form video and plans short vertical clips: engaging windows, idea-aware endpoints, and a per-clip effect timeline for an external renderer.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose, quiet)

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./clipforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "warnings and errors only")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

var (
	analyzeDurations  []float64
	analyzeStride     float64
	analyzeMaxClips   int
	analyzeMinGap     float64
	analyzeProfile    string
	analyzeOut        string
	analyzeExtractDir string
	analyzeNoSpeech   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input video]",
	Short: "Plan short clips from a long-form video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		if !util.FileExists(input) {
			return fmt.Errorf("input video not found: %s", input)
		}

		cfg := config.FromContext(cmd.Context())
		if _, err := cfg.Profile(analyzeProfile); err != nil {
			return err
		}

		engine, err := pipeline.New(log.Logger, cfg, nil)
		if err != nil {
			return err
		}

		opts := pipeline.Options{
			DurationsSec: analyzeDurations,
			StrideSec:    analyzeStride,
			MaxClips:     analyzeMaxClips,
			MinGapSec:    analyzeMinGap,
			Transcribe:   !analyzeNoSpeech,
			Profile:      analyzeProfile,
		}

		result, err := engine.Analyze(cmd.Context(), input, opts)
		if err != nil {
			return err
		}

		if analyzeExtractDir != "" {
			if err := extractClips(cmd.Context(), engine.Executor(), result, analyzeExtractDir); err != nil {
				return err
			}
		}

		return writeResult(result, analyzeOut)
	},
}

var probeCmd = &cobra.Command{
	Use:   "probe [input video]",
	Short: "Show media metadata as seen by the engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		exec, err := ffmpeg.New(log.Logger, cfg.FFmpeg.Threads)
		if err != nil {
			return err
		}

		info, err := exec.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Config management commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "./clipforge.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if util.FileExists(path) {
			return fmt.Errorf("refusing to overwrite existing %s", path)
		}
		cfg := config.FromContext(cmd.Context())
		if err := cfg.Save(path); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("config written")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the clipforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	analyzeCmd.Flags().Float64SliceVar(&analyzeDurations, "durations", nil, "candidate clip durations in seconds (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeStride, "stride", 0, "window stride in seconds (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeMaxClips, "max-clips", 0, "maximum clips to plan (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeMinGap, "min-gap", 0, "minimum gap between clips in seconds (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeProfile, "profile", "tiktok", "output profile for the renderer hand-off")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "write the plan JSON to this path instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeExtractDir, "extract", "", "also cut planned clips into this directory")
	analyzeCmd.Flags().BoolVar(&analyzeNoSpeech, "no-speech", false, "skip transcription even if whisper is installed")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func writeResult(result *pipeline.Result, outPath string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := util.EnsureDir(filepath.Dir(outPath)); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Msg("plan written")
	return nil
}

func extractClips(ctx context.Context, exec *ffmpeg.Executor, result *pipeline.Result, dir string) error {
	if err := util.EnsureDir(dir); err != nil {
		return err
	}

	for _, clip := range result.Clips {
		output := filepath.Join(dir, clip.ID+".mp4")
		opts := ffmpeg.ClipOptions{
			StartSec: clip.StartSec,
			EndSec:   clip.EndSec,
			Output:   output,
		}
		if err := exec.ExtractClip(ctx, result.Source, opts); err != nil {
			return fmt.Errorf("extract %s: %w", clip.ID, err)
		}
	}
	return nil
}
