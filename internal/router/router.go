package router

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/moviescope/internal/handler"
)

// RegisterRoutes 注册所有路由，metrics 为 nil 时不暴露 /metrics
func RegisterRoutes(r *gin.Engine, h *handler.Handler, metrics http.Handler) {
	// 健康检查
	r.GET("/health", h.Health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	// ==================== 页面 ====================
	r.GET("/", h.Dashboard)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/genres", h.GenreList)
		api.GET("/genres/top", h.TopGenres)
		api.GET("/actors/histogram", h.ActorHistogram)
		api.GET("/actors/heights", h.ActorHeights)
		api.GET("/releases", h.Releases)
		api.GET("/births", h.Births)
		api.GET("/profile", h.Profile)
		api.POST("/classify", h.Classify)
	}

	r.NoRoute(h.NotFoundPage)
}

// TemplateFuncs 模板函数
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"default": func(defaultValue, value interface{}) interface{} {
			switch v := value.(type) {
			case string:
				if v == "" {
					return defaultValue
				}
			case int:
				if v == 0 {
					return defaultValue
				}
			case nil:
				return defaultValue
			}
			return value
		},
		// 把 Go 值序列化后嵌入脚本
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}
}

// LoadTemplates 使用 multitemplate 加载模板（布局 + 局部 + 页面）
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(filepath.Join(templatesDir, "layouts", "*.html"))
	if err != nil {
		panic(err)
	}
	partials, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(partials)+1)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	funcMap := TemplateFuncs()
	for _, page := range []string{"dashboard", "404"} {
		viewPath := filepath.Join(templatesDir, "pages", page+".html")
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}
	return r
}
