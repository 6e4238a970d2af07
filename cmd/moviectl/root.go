package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/moviescope/internal/config"
	"github.com/user/moviescope/internal/service"
)

// cli 保存全局参数和加载后的配置
type cli struct {
	downloadDir string
	threshold   float64
	fillMedian  bool
	quiet       bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	app := &cli{}
	root := &cobra.Command{
		Use:           "moviectl",
		Short:         "Movie metadata explorer (CMU Movie Summary Corpus)",
		Long:          `moviectl downloads the CMU Movie Summary Corpus, cleans it and answers the same queries as the web dashboard from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadConfig(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&app.downloadDir, "download-dir", "", "download directory (overrides DOWNLOAD_DIR)")
	f.Float64Var(&app.threshold, "height-threshold", 0, "heights below this value are treated as meters (overrides HEIGHT_METER_THRESHOLD)")
	f.BoolVar(&app.fillMedian, "fill-median", false, "fill missing box office and runtime with the column median")
	f.BoolVarP(&app.quiet, "quiet", "q", false, "suppress progress logs")

	root.AddCommand(
		newFetchCmd(app),
		newQueryCmd(app),
		newProfileCmd(app),
		newExportCmd(app),
	)
	return root
}

func (a *cli) loadConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err == nil && !a.quiet {
		log.Println("[Config] 已加载 .env")
	}
	if a.quiet {
		log.SetOutput(io.Discard)
	}

	a.cfg = config.Load()
	f := cmd.Flags()
	if f.Changed("download-dir") && a.downloadDir != "" {
		a.cfg.DownloadDir = a.downloadDir
	}
	if f.Changed("height-threshold") {
		if a.threshold <= 0 {
			return fmt.Errorf("--height-threshold must be positive")
		}
		a.cfg.HeightMeterThreshold = a.threshold
	}
	if f.Changed("fill-median") {
		a.cfg.FillMedian = a.fillMedian
	}
	return nil
}

// dataset 加载已解压的数据；文件缺失时提示先执行 fetch
func (a *cli) dataset() (*service.Dataset, error) {
	ds, err := service.LoadDataset(a.cfg)
	if errors.Is(err, service.ErrDataNotLoaded) {
		return nil, fmt.Errorf("%w (run `moviectl fetch` first)", err)
	}
	return ds, err
}
