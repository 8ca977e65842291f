package db

import (
	"context"
	"fmt"
)

// MethodCount is the number of stored translations produced by one method.
type MethodCount struct {
	Method string `json:"method"`
	Count  int64  `json:"count"`
}

// CountTranslationsByMethod groups stored rows by the tier that produced them,
// largest group first.
func (p *Pool) CountTranslationsByMethod(ctx context.Context) ([]MethodCount, error) {
	tx, err := p.session(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]MethodCount, 0, 8)
	err = tx.Model(&Translation{}).
		Select("method, COUNT(*) AS count").
		Group("method").
		Order("count DESC, method").
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("query translation method counts: %w", err)
	}
	return items, nil
}
