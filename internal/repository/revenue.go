package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/finvoice/dashboard/internal/errs"
	"github.com/finvoice/dashboard/internal/model"
)

type RevenueRepository interface {
	Series(ctx context.Context) ([]model.Revenue, error)
}

type RevenueRepositoryImpl struct {
	db *sqlx.DB
}

func NewRevenueRepository(db *sqlx.DB) *RevenueRepositoryImpl {
	return &RevenueRepositoryImpl{db: db}
}

var _ RevenueRepository = (*RevenueRepositoryImpl)(nil)

// Series returns the full precomputed monthly aggregate table in calendar
// order. There is no pagination; the table holds at most twelve rows.
func (r *RevenueRepositoryImpl) Series(ctx context.Context) ([]model.Revenue, error) {
	rows := []model.Revenue{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT month, revenue
		  FROM revenue
		 ORDER BY FIELD(month, 'Jan','Feb','Mar','Apr','May','Jun','Jul','Aug','Sep','Oct','Nov','Dec')
	`)
	if err != nil {
		return nil, errs.DataAccess("revenue.Series", err)
	}
	return rows, nil
}
