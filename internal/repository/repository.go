// Package repository 提供数据访问层
package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict 乐观锁版本不匹配，记录已被并发修改
var ErrVersionConflict = errors.New("version conflict")

// forUpdate 为查询加行级排他锁
// SQLite 不支持 FOR UPDATE，依靠单连接串行化事务
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
