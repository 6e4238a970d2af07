package model

// GenreCount 类型出现次数
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// ActorCountBin 演员数量直方图的一个桶：有 Actors 个演员的电影共 Movies 部
type ActorCountBin struct {
	Actors int `json:"actors"`
	Movies int `json:"movies"`
}

// ActorHeight 身高查询结果行
type ActorHeight struct {
	MovieID   int64   `json:"movie_id"`
	ActorName string  `json:"actor_name"`
	Gender    string  `json:"gender"`
	Height    float64 `json:"height"`
}

// HeightBin 身高分布直方图的一个区间 [Lower, Upper)
type HeightBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// PeriodCount 按年或按月的计数
type PeriodCount struct {
	Period int `json:"period"`
	Count  int `json:"count"`
}

// ColumnProfile 列缺失值与偏度概览
type ColumnProfile struct {
	Table    string   `json:"table"`
	Column   string   `json:"column"`
	Total    int      `json:"total"`
	Missing  int      `json:"missing"`
	Numeric  bool     `json:"numeric"`
	Skewness *float64 `json:"skewness,omitempty"`
}

// Classification LLM 类型分类结果
type Classification struct {
	MovieID        int64    `json:"movie_id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	DatabaseGenres []string `json:"database_genres"`
	Predicted      []string `json:"predicted"`
	RawResponse    string   `json:"raw_response"`
	Matched        []string `json:"matched"`
	Match          bool     `json:"match"`
}
