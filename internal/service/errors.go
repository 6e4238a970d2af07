package service

import (
	"errors"

	"github.com/user/moviescope/internal/repository"
)

var (
	// ErrInvalidParam 查询参数校验失败
	ErrInvalidParam = errors.New("invalid query parameter")
	// ErrDataNotLoaded 数据文件缺失或数据集为空
	ErrDataNotLoaded = repository.ErrDataNotLoaded
	// ErrMovieNotFound 电影不存在
	ErrMovieNotFound = errors.New("movie not found")
)
