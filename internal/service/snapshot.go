package service

import (
	"fmt"
	"log"
	"time"

	"github.com/user/moviescope/internal/repository"
)

// ExportSnapshot 把清洗后的数据集写入 Postgres 快照表
func ExportSnapshot(databaseURL string, ds *Dataset) error {
	if ds == nil || len(ds.Movies) == 0 {
		return ErrDataNotLoaded
	}
	db, err := repository.InitDB(databaseURL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	start := time.Now()
	repo := repository.NewSnapshotRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("快照表迁移失败: %w", err)
	}
	if err := repo.Replace(ds.Movies, ds.Characters); err != nil {
		return err
	}
	movies, chars, err := repo.Counts()
	if err != nil {
		return fmt.Errorf("统计快照行数失败: %w", err)
	}
	log.Printf("[Snapshot] 快照完成: movie_snapshots=%d character_snapshots=%d, 耗时 %v",
		movies, chars, time.Since(start))
	return nil
}
