package model

// 规范化后的性别取值
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
	// GenderAll 查询时表示不过滤性别
	GenderAll = "all"
)

// Character 角色/演员记录（character.metadata.tsv 的一行）
// MovieID 引用 Movie.WikipediaID，不做外键校验
type Character struct {
	MovieID             int64    `json:"movie_id"`
	FreebaseMovieID     string   `json:"freebase_movie_id"`
	MovieReleaseRaw     string   `json:"-"`
	CharacterName       string   `json:"character_name"`
	ActorBirthRaw       string   `json:"-"`
	ActorBirth          *Date    `json:"actor_birth,omitempty"`
	ActorGender         string   `json:"actor_gender"`
	ActorHeightRaw      string   `json:"-"`
	ActorHeight         *float64 `json:"actor_height,omitempty"` // 厘米
	ActorEthnicity      string   `json:"actor_ethnicity"`
	ActorName           string   `json:"actor_name"`
	ActorAge            *float64 `json:"actor_age,omitempty"` // 上映时年龄
	FreebaseMapID       string   `json:"freebase_map_id"`
	FreebaseCharacterID string   `json:"freebase_character_id"`
	FreebaseActorID     string   `json:"freebase_actor_id"`
}
