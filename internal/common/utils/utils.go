// Package utils 提供通用工具函数
package utils

import (
	"cmp"
	"slices"
)

// 分页默认值
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Deref 解引用指针，nil 返回零值
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Unique 切片去重，保持首次出现的顺序
func Unique[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// SortedUnique 去重并升序，多行或多键加锁时保证顺序一致
func SortedUnique[T cmp.Ordered](slice []T) []T {
	out := Unique(slice)
	slices.Sort(out)
	return out
}

// Pagination 分页参数
type Pagination struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// NewPagination 创建规范化后的分页参数
func NewPagination(page, pageSize int) Pagination {
	p := Pagination{Page: page, PageSize: pageSize}
	p.Normalize()
	return p
}

// Normalize 页码从 1 开始，每页条数限制在 [1, MaxPageSize]
func (p *Pagination) Normalize() {
	p.Page = max(p.Page, 1)
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	p.PageSize = min(p.PageSize, MaxPageSize)
}

// Offset 获取偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
