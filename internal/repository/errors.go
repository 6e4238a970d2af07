package repository

import "errors"

// ErrDataNotLoaded 数据文件缺失或尚未加载
var ErrDataNotLoaded = errors.New("data not loaded")
