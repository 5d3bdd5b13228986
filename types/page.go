package types

import "strings"

// Pagination 分页常量
const (
	DefaultPage     int = 1  // 默认页码
	DefaultPageSize int = 20 // 默认每页数量
	MaxPageSize     int = 100
)

// 允许排序的字段 -> 列名
var sortColumns = map[string]string{
	"created_at":  "created_at",
	"dateCreated": "created_at",
	"id":          "id",
	"updated_at":  "updated_at",
}

// PageRequest 分页与排序参数，默认按创建时间倒序
type PageRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Sort     string `form:"sort" json:"sort"`
	Order    string `form:"order" json:"order"`
}

func (p PageRequest) Limit() int {
	switch {
	case p.PageSize <= 0:
		return DefaultPageSize
	case p.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return p.PageSize
}

func (p PageRequest) Offset() int {
	page := p.Page
	if page < DefaultPage {
		page = DefaultPage
	}
	return (page - 1) * p.Limit()
}

// OrderBy 生成 ORDER BY 子句，未知字段回退到 created_at；
// 非 id 排序时追加同方向的 id，保证同一时间戳下翻页顺序稳定
func (p PageRequest) OrderBy(table string) string {
	column, ok := sortColumns[p.Sort]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(p.Order, "asc") {
		dir = "ASC"
	}

	prefix := ""
	if table != "" {
		prefix = table + "."
	}
	clause := prefix + column + " " + dir
	if column != "id" {
		clause += ", " + prefix + "id " + dir
	}
	return clause
}

// PageResult 一页数据和总数
type PageResult[T any] struct {
	Rows  []T   `json:"rows"`
	Total int64 `json:"total"`
}

func EmptyPage[T any]() *PageResult[T] {
	return &PageResult[T]{Rows: make([]T, 0), Total: 0}
}
