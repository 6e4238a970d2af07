package repository

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/utils"
)

// 数据文件的固定列（无表头，按位置解析）
var (
	MovieColumns = []string{
		"wikipedia_movie_id", "freebase_movie_id", "movie_name", "movie_release_date",
		"movie_box_office_revenue", "movie_runtime", "movie_languages", "movie_countries", "movie_genres",
	}
	CharacterColumns = []string{
		"wikipedia_movie_id", "freebase_movie_id", "movie_release_date",
		"character_name", "actor_date_of_birth", "actor_gender", "actor_height",
		"actor_ethnicity", "actor_name", "actor_age_at_movie_release",
		"freebase_character_actor_map_id", "freebase_character_id", "freebase_actor_id",
	}
	SummaryColumns = []string{"wikipedia_movie_id", "plot_summary"}
)

// 单行最大长度，剧情简介可能很长
const maxLineBytes = 16 << 20

// LoadReport 加载统计，列数不符或主键无法解析的行被跳过
type LoadReport struct {
	File    string `json:"file"`
	Rows    int    `json:"rows"`
	Skipped int    `json:"skipped"`
}

// readTSV 逐行读取制表符分隔文件，列数不等于 width 的行跳过并计数
func readTSV(path string, width int, fn func(fields []string) bool) (LoadReport, error) {
	rep := LoadReport{File: path}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rep, fmt.Errorf("%w: 文件不存在 %s", ErrDataNotLoaded, path)
		}
		return rep, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != width {
			rep.Skipped++
			if rep.Skipped <= 5 {
				log.Printf("[Loader] %s 第 %d 行列数为 %d（应为 %d），已跳过", path, line, len(fields), width)
			}
			continue
		}
		if !fn(fields) {
			rep.Skipped++
			continue
		}
		rep.Rows++
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	log.Printf("[Loader] %s 加载 %d 行，跳过 %d 行", path, rep.Rows, rep.Skipped)
	return rep, nil
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil
}

// LoadMovies 加载 movie.metadata.tsv
func LoadMovies(path string) ([]model.Movie, LoadReport, error) {
	var movies []model.Movie
	rep, err := readTSV(path, len(MovieColumns), func(f []string) bool {
		id, ok := parseID(f[0])
		if !ok {
			return false
		}
		movies = append(movies, model.Movie{
			WikipediaID:    id,
			FreebaseID:     f[1],
			Name:           f[2],
			ReleaseDateRaw: f[3],
			BoxOffice:      utils.ParseOptionalFloat(f[4]),
			Runtime:        utils.ParseOptionalFloat(f[5]),
			Languages:      f[6],
			Countries:      f[7],
			Genres:         f[8],
		})
		return true
	})
	if err != nil {
		return nil, rep, err
	}
	return movies, rep, nil
}

// LoadCharacters 加载 character.metadata.tsv
func LoadCharacters(path string) ([]model.Character, LoadReport, error) {
	var chars []model.Character
	rep, err := readTSV(path, len(CharacterColumns), func(f []string) bool {
		id, ok := parseID(f[0])
		if !ok {
			return false
		}
		chars = append(chars, model.Character{
			MovieID:             id,
			FreebaseMovieID:     f[1],
			MovieReleaseRaw:     f[2],
			CharacterName:       f[3],
			ActorBirthRaw:       f[4],
			ActorGender:         f[5],
			ActorHeightRaw:      f[6],
			ActorEthnicity:      f[7],
			ActorName:           f[8],
			ActorAge:            utils.ParseOptionalFloat(f[9]),
			FreebaseMapID:       f[10],
			FreebaseCharacterID: f[11],
			FreebaseActorID:     f[12],
		})
		return true
	})
	if err != nil {
		return nil, rep, err
	}
	return chars, rep, nil
}

// LoadSummaries 加载 plot_summaries.txt，文件缺失时返回空集合
func LoadSummaries(path string) (map[int64]string, LoadReport, error) {
	summaries := map[int64]string{}
	rep, err := readTSV(path, len(SummaryColumns), func(f []string) bool {
		id, ok := parseID(f[0])
		if !ok {
			return false
		}
		summaries[id] = strings.TrimSpace(f[1])
		return true
	})
	if errors.Is(err, ErrDataNotLoaded) {
		log.Printf("[Loader] 未找到剧情简介文件 %s，分类时将不提供简介", path)
		return summaries, rep, nil
	}
	if err != nil {
		return nil, rep, err
	}
	return summaries, rep, nil
}
