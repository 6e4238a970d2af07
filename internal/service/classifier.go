package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/utils"
	"golang.org/x/sync/singleflight"
)

// AvailableGenres 允许模型返回的类型
var AvailableGenres = []string{
	"Crime Fiction", "Comedy film", "Comedy-drama", "Romantic comedy", "Musical",
	"Romance Film", "Comedy", "Drama", "Romantic drama", "Action", "Thriller",
	"Science Fiction", "Animation", "Horror", "Fantasy", "Documentary", "Western",
	"Biography", "Mystery", "Adventure", "War", "History", "Sports",
}

const noSummary = "No summary available."

// 推理模型会先输出 <think>...</think>
var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Generator 文本生成接口，生产环境为 Ollama
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier 使用 LLM 根据剧情简介预测电影类型，并与数据库中的类型比对
type Classifier struct {
	gen   Generator
	ds    *Dataset
	cache *cache.Cache
	sf    singleflight.Group

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier 创建分类服务
func NewClassifier(gen Generator, ds *Dataset, ttl time.Duration) *Classifier {
	return &Classifier{
		gen:   gen,
		ds:    ds,
		cache: utils.NewTTLCache(ttl),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClassifyRandom 随机选一部电影分类
func (c *Classifier) ClassifyRandom(ctx context.Context) (*model.Classification, error) {
	c.mu.Lock()
	movie, err := c.ds.RandomMovie(c.rng)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return c.Classify(ctx, movie.WikipediaID)
}

// Classify 对指定电影分类，结果按电影 ID 缓存
func (c *Classifier) Classify(ctx context.Context, movieID int64) (*model.Classification, error) {
	movie, ok := c.ds.Movie(movieID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrMovieNotFound, movieID)
	}

	key := strconv.FormatInt(movieID, 10)
	if v, found := c.cache.Get(key); found {
		return cloneClassification(v.(*model.Classification)), nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		summary := c.ds.Summaries[movieID]
		if summary == "" {
			summary = noSummary
		}
		prompt := BuildPrompt(movie.Name, movie.Genres, summary)

		start := time.Now()
		raw, err := c.gen.Generate(ctx, prompt)
		if err != nil {
			log.Printf("[Classifier] 电影 %d 分类失败: %v", movieID, err)
			return nil, fmt.Errorf("调用模型失败: %w", err)
		}
		log.Printf("[Classifier] 电影 %d 分类完成, 耗时 %v", movieID, time.Since(start))

		res := Compare(movie, summary, raw)
		c.cache.Set(key, res, cache.DefaultExpiration)
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return cloneClassification(v.(*model.Classification)), nil
}

// cloneClassification 复制结果，调用方修改切片不会影响缓存
func cloneClassification(c *model.Classification) *model.Classification {
	res := *c
	res.DatabaseGenres = cloneRows(c.DatabaseGenres)
	res.Predicted = cloneRows(c.Predicted)
	res.Matched = cloneRows(c.Matched)
	return &res
}

// BuildPrompt 构造分类提示词
func BuildPrompt(title, genres, summary string) string {
	var b strings.Builder
	b.WriteString("You are a movie classification assistant. Your task is to classify the following movie into genres\n")
	b.WriteString("based on its summary. Prioritize choosing genres that are already present in the database.\n\n")
	b.WriteString("ONLY return a comma-separated list of genres from the predefined list below. Do NOT add extra text.\n\n")
	b.WriteString("Available Genres: ")
	b.WriteString(strings.Join(AvailableGenres, ", "))
	b.WriteString(".\n\n")
	fmt.Fprintf(&b, "Database Genres for this movie: %s\n\n", genres)
	fmt.Fprintf(&b, "Movie Title: %s\n", title)
	fmt.Fprintf(&b, "Movie Summary: %s\n\n", summary)
	b.WriteString("Genres:\n")
	return b.String()
}

// ParsePrediction 解析模型输出，只保留合法类型，去重并保持顺序
func ParsePrediction(raw string) []string {
	valid := make(map[string]struct{}, len(AvailableGenres))
	for _, g := range AvailableGenres {
		valid[g] = struct{}{}
	}
	text := thinkBlock.ReplaceAllString(raw, "")
	seen := map[string]struct{}{}
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		g := strings.Trim(strings.TrimSpace(part), ".\"'")
		if _, ok := valid[g]; !ok {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Compare 比对预测类型与数据库类型
func Compare(movie model.Movie, summary, raw string) *model.Classification {
	predicted := ParsePrediction(raw)
	actual := movie.GetGenres()
	actualSet := make(map[string]struct{}, len(actual))
	for _, g := range actual {
		actualSet[g] = struct{}{}
	}
	matched := []string{}
	for _, g := range predicted {
		if _, ok := actualSet[g]; ok {
			matched = append(matched, g)
		}
	}
	return &model.Classification{
		MovieID:        movie.WikipediaID,
		Title:          movie.Name,
		Summary:        summary,
		DatabaseGenres: actual,
		Predicted:      predicted,
		RawResponse:    strings.TrimSpace(thinkBlock.ReplaceAllString(raw, "")),
		Matched:        matched,
		Match:          len(matched) > 0,
	}
}
