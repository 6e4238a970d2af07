package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/user/moviescope/internal/config"
	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/repository"
	"github.com/user/moviescope/internal/utils"
)

// 解压后的数据文件名
const (
	MovieFile     = "movie.metadata.tsv"
	CharacterFile = "character.metadata.tsv"
	SummaryFile   = "plot_summaries.txt"
)

// Dataset 启动时构建一次的只读数据集，通过指针传给查询服务
type Dataset struct {
	Movies      []model.Movie
	Characters  []model.Character
	Summaries   map[int64]string
	LoadReports []repository.LoadReport
	CleanReport CleanReport
	LoadedAt    time.Time

	movieIndex map[int64]int
}

// NewDataset 用已清洗的数据构建数据集
func NewDataset(movies []model.Movie, chars []model.Character, summaries map[int64]string) *Dataset {
	if summaries == nil {
		summaries = map[int64]string{}
	}
	idx := make(map[int64]int, len(movies))
	for i := range movies {
		if _, dup := idx[movies[i].WikipediaID]; dup {
			log.Printf("[Loader] 电影 ID %d 重复，保留第一条", movies[i].WikipediaID)
			continue
		}
		idx[movies[i].WikipediaID] = i
	}
	return &Dataset{
		Movies:     movies,
		Characters: chars,
		Summaries:  summaries,
		LoadedAt:   time.Now(),
		movieIndex: idx,
	}
}

// Movie 按 ID 查找电影
func (d *Dataset) Movie(id int64) (model.Movie, bool) {
	i, ok := d.movieIndex[id]
	if !ok {
		return model.Movie{}, false
	}
	return d.Movies[i], true
}

// RandomMovie 随机选取一部电影
func (d *Dataset) RandomMovie(rng *rand.Rand) (model.Movie, error) {
	if len(d.Movies) == 0 {
		return model.Movie{}, ErrDataNotLoaded
	}
	return d.Movies[rng.Intn(len(d.Movies))], nil
}

// Fetch 下载并解压数据集，两步都会在结果已存在时跳过
func Fetch(ctx context.Context, cfg *config.Config) error {
	client := utils.NewHTTPClient(cfg.DownloadTimeout)
	if _, err := client.Download(ctx, cfg.DataURL, cfg.ArchivePath()); err != nil {
		return fmt.Errorf("下载数据集失败: %w", err)
	}
	if _, err := utils.ExtractTarGz(cfg.ArchivePath(), cfg.ExtractDir()); err != nil {
		return fmt.Errorf("解压数据集失败: %w", err)
	}
	return nil
}

// LoadDataset 加载并清洗解压后的数据文件
func LoadDataset(cfg *config.Config) (*Dataset, error) {
	movies, movieRep, err := repository.LoadMovies(cfg.DataFile(MovieFile))
	if err != nil {
		return nil, err
	}
	chars, charRep, err := repository.LoadCharacters(cfg.DataFile(CharacterFile))
	if err != nil {
		return nil, err
	}
	summaries, sumRep, err := repository.LoadSummaries(cfg.DataFile(SummaryFile))
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: 电影表为空", ErrDataNotLoaded)
	}

	cleaner := NewCleaner(CleanOptions{
		HeightMeterThreshold: cfg.HeightMeterThreshold,
		FillMedian:           cfg.FillMedian,
	})
	report := cleaner.Clean(movies, chars)

	ds := NewDataset(movies, chars, summaries)
	ds.LoadReports = []repository.LoadReport{movieRep, charRep, sumRep}
	ds.CleanReport = report
	return ds, nil
}

// Bootstrap 启动流程：下载 -> 解压 -> 加载 -> 清洗
func Bootstrap(ctx context.Context, cfg *config.Config) (*Dataset, error) {
	start := time.Now()
	if err := Fetch(ctx, cfg); err != nil {
		return nil, err
	}
	ds, err := LoadDataset(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[Dataset] 数据集就绪: %d 部电影, %d 条角色记录, %d 条简介, 耗时 %v",
		len(ds.Movies), len(ds.Characters), len(ds.Summaries), time.Since(start))
	return ds, nil
}
