package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/user/moviescope/internal/model"
)

// ErrMalformedMap 类别映射无法解析
var ErrMalformedMap = errors.New("malformed category map")

// 与纳秒时间戳可表示范围一致，超出范围的日期视为无效
const (
	minDateYear = 1678
	maxDateYear = 2261
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// IsCategoryMap 判断单元格是否仍是序列化的 {编码: 名称} 映射
func IsCategoryMap(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "{")
}

// ParseCategoryMap 解析形如 {"/m/02h40lc": "English Language", ...} 的映射，
// 按原始键顺序返回名称列表
func ParseCategoryMap(raw string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: 缺少左花括号", ErrMalformedMap)
	}

	names := []string{}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // 键
			return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: 值不是字符串", ErrMalformedMap)
		}
		names = append(names, name)
	}
	if _, err := dec.Token(); err != nil { // 右花括号
		return nil, fmt.Errorf("%w: %v", ErrMalformedMap, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: 映射后存在多余内容", ErrMalformedMap)
	}
	return names, nil
}

// NormalizeGender 规范化性别编码：m -> male, f -> female，其余为 unknown
func NormalizeGender(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", model.GenderMale:
		return model.GenderMale
	case "f", model.GenderFemale:
		return model.GenderFemale
	default:
		return model.GenderUnknown
	}
}

// ParseOptionalFloat 解析可缺失的数值，空值与 NaN 返回 nil
func ParseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NormalizeHeight 小于阈值的身高按米处理，换算为厘米并保留两位小数。
// 非正数视为缺失。
func NormalizeHeight(v, threshold float64) (float64, bool) {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < threshold {
		v = math.Round(v*100*100) / 100
	}
	return v, true
}

// ParseDate 解析年、年-月、年-月-日以及带时间的日期
func ParseDate(raw string) (model.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Date{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t.Year() < minDateYear || t.Year() > maxDateYear {
			return model.Date{}, false
		}
		return model.Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, true
	}
	return model.Date{}, false
}
