package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultDataURL 数据集默认下载地址
const DefaultDataURL = "http://www.cs.cmu.edu/~ark/personas/data/MovieSummaries.tar.gz"

// Config 应用配置
type Config struct {
	Env       string
	AppSecret string
	Port      string
	SiteName  string

	// 数据集
	DataURL         string
	DownloadDir     string
	DatasetDir      string // 压缩包内的顶层目录名
	DownloadTimeout time.Duration

	// 清洗
	HeightMeterThreshold float64
	FillMedian           bool

	// 查询缓存
	QueryCacheSize int
	QueryCacheTTL  time.Duration

	// LLM
	OllamaHost  string
	OllamaModel string

	// 快照导出
	DatabaseURL     string
	SnapshotOnStart bool
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "moviescope")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := getEnv("DATABASE_URL", fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL))

	appSecret := getEnv("APP_SECRET", "moviescope-secret-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && appSecret == "moviescope-secret-change-in-production" {
		log.Println("[Config] 生产环境正在使用默认密钥，请设置 APP_SECRET 环境变量")
	}

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		AppSecret: appSecret,
		Port:      getEnv("PORT", "5008"),
		SiteName:  getEnv("SITE_NAME", "Movie Data Explorer"),

		DataURL:         getEnv("DATA_URL", DefaultDataURL),
		DownloadDir:     getEnv("DOWNLOAD_DIR", "downloads"),
		DatasetDir:      getEnv("DATASET_DIR", "MovieSummaries"),
		DownloadTimeout: time.Duration(getEnvInt("DOWNLOAD_TIMEOUT_SEC", 300)) * time.Second,

		HeightMeterThreshold: getEnvFloat("HEIGHT_METER_THRESHOLD", 10),
		FillMedian:           getEnvBool("FILL_MEDIAN", false),

		QueryCacheSize: getEnvInt("QUERY_CACHE_SIZE", 256),
		QueryCacheTTL:  time.Duration(getEnvInt("QUERY_CACHE_TTL_MIN", 30)) * time.Minute,

		OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "deepseek-r1:1.5b"),

		DatabaseURL:     dbURL,
		SnapshotOnStart: getEnvBool("SNAPSHOT_ON_START", false),
	}
}

// ArchivePath 压缩包本地路径
func (c *Config) ArchivePath() string {
	return filepath.Join(c.DownloadDir, c.DatasetDir+".tar.gz")
}

// ExtractDir 解压目标目录
func (c *Config) ExtractDir() string {
	return filepath.Join(c.DownloadDir, "extracted")
}

// DataFile 解压后数据文件路径
func (c *Config) DataFile(name string) string {
	return filepath.Join(c.ExtractDir(), c.DatasetDir, name)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("[Config] %s=%q 无效，使用默认值 %d", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		log.Printf("[Config] %s=%q 无效，使用默认值 %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[Config] %s=%q 无效，使用默认值 %v", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
