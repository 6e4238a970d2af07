package repository

import (
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/user/moviescope/internal/model"
	"gorm.io/gorm"
)

// 批量写入大小
const snapshotBatchSize = 1000

// MovieSnapshot 清洗后电影表快照
type MovieSnapshot struct {
	WikipediaID int64          `gorm:"primaryKey;autoIncrement:false"`
	FreebaseID  string         `gorm:"index"`
	Name        string
	ReleaseDate *time.Time     `gorm:"type:date"`
	ReleaseYear *int           `gorm:"index"`
	BoxOffice   *float64
	Runtime     *float64
	Languages   pq.StringArray `gorm:"type:text[]"`
	Countries   pq.StringArray `gorm:"type:text[]"`
	Genres      pq.StringArray `gorm:"type:text[]"`
	ExportedAt  time.Time
}

// TableName 表名
func (MovieSnapshot) TableName() string { return "movie_snapshots" }

// CharacterSnapshot 清洗后角色表快照
type CharacterSnapshot struct {
	ID              uint       `gorm:"primaryKey"`
	MovieID         int64      `gorm:"index"`
	CharacterName   string
	ActorName       string     `gorm:"index"`
	ActorBirth      *time.Time `gorm:"type:date"`
	ActorGender     string     `gorm:"index"`
	ActorHeight     *float64
	ActorEthnicity  string
	ActorAge        *float64
	FreebaseActorID string
	ExportedAt      time.Time
}

// TableName 表名
func (CharacterSnapshot) TableName() string { return "character_snapshots" }

// SnapshotRepository 快照仓库
type SnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository 创建快照仓库
func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Migrate 自动建表
func (r *SnapshotRepository) Migrate() error {
	return r.db.AutoMigrate(&MovieSnapshot{}, &CharacterSnapshot{})
}

// Replace 在一个事务内清空并重写两张快照表
func (r *SnapshotRepository) Replace(movies []model.Movie, chars []model.Character) error {
	now := time.Now()
	movieRows, dups := MovieSnapshots(movies, now)
	if dups > 0 {
		log.Printf("[Snapshot] 跳过 %d 条重复电影 ID，保留第一条", dups)
	}
	charRows := make([]CharacterSnapshot, 0, len(chars))
	for i := range chars {
		charRows = append(charRows, ToCharacterSnapshot(&chars[i], now))
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("TRUNCATE TABLE movie_snapshots, character_snapshots RESTART IDENTITY").Error; err != nil {
			return fmt.Errorf("清空快照表失败: %w", err)
		}
		if len(movieRows) > 0 {
			if err := tx.CreateInBatches(movieRows, snapshotBatchSize).Error; err != nil {
				return fmt.Errorf("写入电影快照失败: %w", err)
			}
		}
		if len(charRows) > 0 {
			if err := tx.CreateInBatches(charRows, snapshotBatchSize).Error; err != nil {
				return fmt.Errorf("写入角色快照失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("[Snapshot] 已导出 %d 部电影, %d 条角色记录", len(movieRows), len(charRows))
	return nil
}

// MovieSnapshots 转换电影行，同一 ID 只保留第一条（与 Dataset.Movie 一致），返回被跳过的重复数
func MovieSnapshots(movies []model.Movie, exportedAt time.Time) ([]MovieSnapshot, int) {
	rows := make([]MovieSnapshot, 0, len(movies))
	seen := make(map[int64]struct{}, len(movies))
	dups := 0
	for i := range movies {
		if _, ok := seen[movies[i].WikipediaID]; ok {
			dups++
			continue
		}
		seen[movies[i].WikipediaID] = struct{}{}
		rows = append(rows, ToMovieSnapshot(&movies[i], exportedAt))
	}
	return rows, dups
}

// Counts 快照表行数
func (r *SnapshotRepository) Counts() (movies, chars int64, err error) {
	if err = r.db.Model(&MovieSnapshot{}).Count(&movies).Error; err != nil {
		return
	}
	err = r.db.Model(&CharacterSnapshot{}).Count(&chars).Error
	return
}

// ToMovieSnapshot 转换为快照行
func ToMovieSnapshot(m *model.Movie, exportedAt time.Time) MovieSnapshot {
	row := MovieSnapshot{
		WikipediaID: m.WikipediaID,
		FreebaseID:  m.FreebaseID,
		Name:        m.Name,
		BoxOffice:   m.BoxOffice,
		Runtime:     m.Runtime,
		Languages:   pq.StringArray(m.GetLanguages()),
		Countries:   pq.StringArray(m.GetCountries()),
		Genres:      pq.StringArray(m.GetGenres()),
		ExportedAt:  exportedAt,
	}
	if m.ReleaseDate != nil {
		t := dateToTime(*m.ReleaseDate)
		year := m.ReleaseDate.Year
		row.ReleaseDate = &t
		row.ReleaseYear = &year
	}
	return row
}

// ToCharacterSnapshot 转换为快照行
func ToCharacterSnapshot(c *model.Character, exportedAt time.Time) CharacterSnapshot {
	row := CharacterSnapshot{
		MovieID:         c.MovieID,
		CharacterName:   c.CharacterName,
		ActorName:       c.ActorName,
		ActorGender:     c.ActorGender,
		ActorHeight:     c.ActorHeight,
		ActorEthnicity:  c.ActorEthnicity,
		ActorAge:        c.ActorAge,
		FreebaseActorID: c.FreebaseActorID,
		ExportedAt:      exportedAt,
	}
	if c.ActorBirth != nil {
		t := dateToTime(*c.ActorBirth)
		row.ActorBirth = &t
	}
	return row
}

func dateToTime(d model.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
