package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // 确保在精简镜像中也能识别时区

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/moviescope/internal/config"
	"github.com/user/moviescope/internal/handler"
	"github.com/user/moviescope/internal/middleware"
	"github.com/user/moviescope/internal/router"
	"github.com/user/moviescope/internal/service"
	"github.com/user/moviescope/internal/utils"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 加载配置
	cfg := config.Load()

	// 准备数据集：下载 -> 解压 -> 加载 -> 清洗，失败则不启动服务
	bootCtx, bootCancel := context.WithTimeout(context.Background(), cfg.DownloadTimeout+time.Minute)
	ds, err := service.Bootstrap(bootCtx, cfg)
	bootCancel()
	if err != nil {
		log.Fatalf("数据集准备失败: %v", err)
	}

	// 可选：导出快照
	if cfg.SnapshotOnStart {
		if err := service.ExportSnapshot(cfg.DatabaseURL, ds); err != nil {
			log.Printf("[Snapshot] 导出失败: %v", err)
		}
	}

	// 初始化服务
	queries := service.NewQueryService(ds, cfg.QueryCacheSize, cfg.QueryCacheTTL)
	ollama := utils.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel)
	classifier := service.NewClassifier(ollama, ds, cfg.QueryCacheTTL)
	log.Printf("[Classifier] 使用模型 %s @ %s", ollama.Model(), cfg.OllamaHost)

	// 启动定时清理任务
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	service.NewCleanupService(queries, cfg.DownloadDir, cfg.QueryCacheTTL).Start(cleanupCtx)

	if err := handler.RegisterValidators(); err != nil {
		log.Fatalf("注册校验规则失败: %v", err)
	}

	// 指标
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := middleware.NewHTTPMetrics(reg)

	// 初始化 Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// 启用 gzip，默认压缩级别
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 设置 Session 中间件，仅用于记住仪表盘参数
	store := cookie.NewStore([]byte(cfg.AppSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("moviescope", store))

	// 加载模板（使用 multitemplate 解决继承问题）
	r.HTMLRender = router.LoadTemplates("./web/templates")

	// 静态文件
	r.Static("/static", "./web/static")

	// 中间件
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics(httpMetrics))

	// 注册路由
	h := handler.NewHandler(cfg, queries, classifier)
	router.RegisterRoutes(r, h, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   150 * time.Second, // 分类接口需要等待本地模型
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("服务器启动于 http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("正在关闭服务器...")
	stopCleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("服务器强制关闭:", err)
	}

	log.Println("服务器已退出")
}
