package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviescope/internal/config"
	"github.com/user/moviescope/internal/service"
	"github.com/user/moviescope/internal/utils"
)

// 查询结果为空时的提示
const emptyResultMessage = "没有符合条件的数据"

// Handler HTTP 处理器
type Handler struct {
	Config     *config.Config
	Queries    *service.QueryService
	Classifier *service.Classifier
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, queries *service.QueryService, classifier *service.Classifier) *Handler {
	return &Handler{
		Config:     cfg,
		Queries:    queries,
		Classifier: classifier,
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"Path":     c.Request.URL.Path,
	}
	for k, v := range data {
		res[k] = v
	}
	return res
}

// NotFoundPage 404 页面
func (h *Handler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "页面未找到 - " + h.Config.SiteName,
	}))
}

// respondRows 返回查询结果；空结果附带提示，参数错误返回 400 和空数组
func respondRows[T any](c *gin.Context, rows []T, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	if len(rows) == 0 {
		utils.SuccessWithMessage(c, emptyResultMessage, rows)
		return
	}
	utils.Success(c, rows)
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, service.ErrInvalidParam):
		utils.BadRequest(c, err.Error(), []struct{}{})
	case errors.Is(err, service.ErrMovieNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDataNotLoaded):
		utils.ServiceUnavailable(c, err.Error())
	default:
		utils.InternalServerError(c, "")
	}
}
