package repository

import "gorm.io/gorm"

// 仓库层兜底的单页上限，与 HTTP 层的归一化保持一致
const maxPageSize = 100

// applyPagination 应用分页参数。pageSize 不合法时不分页。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
