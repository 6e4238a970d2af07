package handler

import (
	"encoding/gob"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ReleaseGenreOptions 上映趋势图的类型快捷选项
var ReleaseGenreOptions = []string{"Drama", "Comedy", "Action", "Romance", "Horror", "Thriller"}

// DashboardPrefs 仪表盘参数，保存在 Session 中
type DashboardPrefs struct {
	TopN      int
	Gender    string
	MinHeight float64
	MaxHeight float64
	Genre     string
	Unit      string
}

// DefaultPrefs 默认仪表盘参数
func DefaultPrefs() DashboardPrefs {
	return DashboardPrefs{
		TopN:      10,
		Gender:    "all",
		MinHeight: 150,
		MaxHeight: 200,
		Genre:     "",
		Unit:      "year",
	}
}

type dashboardForm struct {
	TopN      *int     `form:"n" binding:"omitempty,min=1,max=50"`
	Gender    *string  `form:"gender" binding:"omitempty,gender"`
	MinHeight *float64 `form:"min" binding:"omitempty,min=100,max=250"`
	MaxHeight *float64 `form:"max" binding:"omitempty,min=100,max=250"`
	Genre     *string  `form:"genre" binding:"omitempty,max=100"`
	Unit      *string  `form:"unit" binding:"omitempty,period"`
}

const prefsKey = "dashboard_prefs"

func init() {
	// cookie store 使用 gob 编码
	gob.Register(DashboardPrefs{})
}

// Dashboard 首页仪表盘，参数优先取自查询串，其次取 Session 中上次的选择
func (h *Handler) Dashboard(c *gin.Context) {
	session := sessions.Default(c)
	prefs := DefaultPrefs()
	if saved, ok := session.Get(prefsKey).(DashboardPrefs); ok {
		prefs = saved
	}

	notice := ""
	var form dashboardForm
	if err := c.ShouldBindQuery(&form); err != nil {
		notice = bindingMessage(err)
	} else {
		applyForm(&prefs, form)
		session.Set(prefsKey, prefs)
		if err := session.Save(); err != nil {
			log.Printf("[Dashboard] 保存 Session 失败: %v", err)
		}
	}
	if prefs.MinHeight > prefs.MaxHeight {
		notice = "最小身高不能大于最大身高"
	}

	genres, _ := h.Queries.Genres()
	ds := h.Queries.Dataset()

	c.HTML(http.StatusOK, "dashboard.html", h.RenderData(c, gin.H{
		"Title":         h.Config.SiteName,
		"Prefs":         prefs,
		"Notice":        notice,
		"Genres":        genres,
		"GenreOptions":  ReleaseGenreOptions,
		"MovieCount":    len(ds.Movies),
		"CharCount":     len(ds.Characters),
		"SummaryCount":  len(ds.Summaries),
		"CleanReport":   ds.CleanReport,
		"ClassifyModel": h.Config.OllamaModel,
	}))
}

func applyForm(p *DashboardPrefs, f dashboardForm) {
	if f.TopN != nil {
		p.TopN = *f.TopN
	}
	if f.Gender != nil {
		p.Gender = *f.Gender
	}
	if f.MinHeight != nil {
		p.MinHeight = *f.MinHeight
	}
	if f.MaxHeight != nil {
		p.MaxHeight = *f.MaxHeight
	}
	if f.Genre != nil {
		p.Genre = *f.Genre
	}
	if f.Unit != nil {
		p.Unit = *f.Unit
	}
}
