package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/moviescope/internal/model"
	"github.com/user/moviescope/internal/service"
	"github.com/user/moviescope/internal/utils"
)

type topGenresQuery struct {
	N int `form:"n,default=10" binding:"min=1,max=500"`
}

type heightsQuery struct {
	Gender      string  `form:"gender,default=all" binding:"gender"`
	Min         float64 `form:"min,default=150"`
	Max         float64 `form:"max,default=200"`
	Bins        int     `form:"bins,default=20" binding:"min=1,max=200"`
	IncludeRows bool    `form:"rows"`
}

type releasesQuery struct {
	Genre string `form:"genre" binding:"max=100"`
}

type birthsQuery struct {
	Unit string `form:"unit,default=year" binding:"period"`
}

type classifyRequest struct {
	MovieID int64 `form:"movie_id" json:"movie_id" binding:"min=0"`
}

// bindQuery 绑定查询参数，失败时直接返回 400 和空结果
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		_ = c.Error(err)
		utils.BadRequest(c, bindingMessage(err), []struct{}{})
		return false
	}
	return true
}

// TopGenres 最常见的 N 个类型
func (h *Handler) TopGenres(c *gin.Context) {
	var q topGenresQuery
	if !bindQuery(c, &q) {
		return
	}
	rows, err := h.Queries.TopGenres(q.N)
	respondRows(c, rows, err)
}

// GenreList 全部类型（供下拉框使用）
func (h *Handler) GenreList(c *gin.Context) {
	rows, err := h.Queries.Genres()
	respondRows(c, rows, err)
}

// ActorHistogram 每部电影演员数分布
func (h *Handler) ActorHistogram(c *gin.Context) {
	rows, err := h.Queries.ActorCountHistogram()
	respondRows(c, rows, err)
}

// ActorHeights 按性别和身高范围筛选演员，返回分布直方图
func (h *Handler) ActorHeights(c *gin.Context) {
	var q heightsQuery
	if !bindQuery(c, &q) {
		return
	}
	rows, err := h.Queries.ActorsByGenderAndHeight(q.Gender, q.Min, q.Max)
	if err != nil {
		respondError(c, err)
		return
	}

	data := gin.H{
		"gender": q.Gender,
		"min":    q.Min,
		"max":    q.Max,
		"count":  len(rows),
		"bins":   service.HeightHistogram(rows, q.Min, q.Max, q.Bins),
	}
	if q.IncludeRows {
		data["rows"] = rows
	}
	if len(rows) == 0 {
		data["bins"] = []model.HeightBin{}
		utils.SuccessWithMessage(c, emptyResultMessage, data)
		return
	}
	utils.Success(c, data)
}

// Releases 每年上映数量，可按类型过滤
func (h *Handler) Releases(c *gin.Context) {
	var q releasesQuery
	if !bindQuery(c, &q) {
		return
	}
	rows, err := h.Queries.ReleasesPerYear(q.Genre)
	respondRows(c, rows, err)
}

// Births 演员出生数量，按年或按月
func (h *Handler) Births(c *gin.Context) {
	var q birthsQuery
	if !bindQuery(c, &q) {
		return
	}
	unit, err := service.ParsePeriod(q.Unit)
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := h.Queries.BirthsPerPeriod(unit)
	respondRows(c, rows, err)
}

// Profile 缺失值与偏度概览，附带加载与清洗统计
func (h *Handler) Profile(c *gin.Context) {
	columns, err := h.Queries.Profile()
	if err != nil {
		respondError(c, err)
		return
	}
	ds := h.Queries.Dataset()
	utils.Success(c, gin.H{
		"columns":      columns,
		"load_reports": ds.LoadReports,
		"clean_report": ds.CleanReport,
		"loaded_at":    ds.LoadedAt,
	})
}

// Classify 使用 LLM 对电影分类；未指定 movie_id 时随机选择
func (h *Handler) Classify(c *gin.Context) {
	var (
		req classifyRequest
		res *model.Classification
		err error
	)
	if c.Request.ContentLength > 0 {
		err = c.ShouldBind(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		_ = c.Error(err)
		utils.BadRequest(c, bindingMessage(err), nil)
		return
	}

	if req.MovieID > 0 {
		res, err = h.Classifier.Classify(c.Request.Context(), req.MovieID)
	} else {
		res, err = h.Classifier.ClassifyRandom(c.Request.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) || errors.Is(err, service.ErrDataNotLoaded) {
			respondError(c, err)
			return
		}
		_ = c.Error(err)
		utils.Error(c, http.StatusBadGateway, "模型服务不可用: "+err.Error(), nil)
		return
	}
	utils.Success(c, res)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	ds := h.Queries.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"movies":     len(ds.Movies),
		"characters": len(ds.Characters),
	})
}
