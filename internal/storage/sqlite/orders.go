package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmynk/idine/internal/models"
)

// SaveOrder persists an order snapshot and its items in one transaction.
func (s *SQLiteStore) SaveOrder(ctx context.Context, userID string, record *models.OrderRecord) error {
	if record.ID == "" {
		return fmt.Errorf("order record has no id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// seq breaks ties between orders finalized within the same second.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, total_price, created_at, seq)
		 VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM orders))`,
		record.ID, userID, record.TotalPrice, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i, item := range record.Items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to encode order item: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, position, item_json) VALUES (?, ?, ?)",
			record.ID, i, string(payload),
		)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListOrders returns the user's orders, newest first, with their items.
func (s *SQLiteStore) ListOrders(ctx context.Context, userID string) ([]models.OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, total_price, created_at FROM orders
		 WHERE user_id = ?
		 ORDER BY created_at DESC, seq DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	records := []models.OrderRecord{}
	for rows.Next() {
		var rec models.OrderRecord
		if err := rows.Scan(&rec.ID, &rec.TotalPrice, &rec.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	rows.Close()

	for i := range records {
		items, err := s.orderItems(ctx, records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Items = items
	}
	return records, nil
}

func (s *SQLiteStore) orderItems(ctx context.Context, orderID string) ([]models.MenuItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_json FROM order_items WHERE order_id = ? ORDER BY position",
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		var item models.MenuItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("failed to decode order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return items, nil
}
