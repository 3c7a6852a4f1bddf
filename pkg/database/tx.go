package database

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Every
// read-modify-write of wallet, ledger or activity rows must go through it so
// that a failure rolls back all partial writes together.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
