package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	lifted "github.com/benjamonnguyen/lifted-go"
)

const SelectAllNotifications = "SELECT id, session_id, handle, fire_at, strategy, status, created_at, updated_at FROM notifications"

type notificationEntity struct {
	ID        string
	SessionID string
	Handle    int32
	FireAt    int64
	Strategy  string
	Status    uint8
	CreatedAt int64
	UpdatedAt int64
}

// notificationRepo
type notificationRepo struct {
	dbGetter txStdLib.DBGetter
	clock    clockwork.Clock
	l        log.Logger
}

var _ lifted.NotificationLedger = (*notificationRepo)(nil)

func NewNotificationRepo(dbGetter txStdLib.DBGetter, clock clockwork.Clock, logger log.Logger) *notificationRepo {
	return &notificationRepo{
		dbGetter: dbGetter,
		clock:    clock,
		l:        logger,
	}
}

func (r *notificationRepo) InsertNotification(ctx context.Context, n lifted.NotificationRecord) (lifted.ExistingNotificationRecord, error) {
	if n.SessionID == "" {
		return lifted.ExistingNotificationRecord{}, fmt.Errorf("provide required field 'SessionID'")
	}

	existingRecord := lifted.ExistingNotificationRecord{
		NotificationRecord: n,
		ExistingRecord:     lifted.NewExistingRecord[lifted.NotificationRecordID](uuid.NewString(), r.clock.Now()),
	}
	e := mapToNotificationEntity(existingRecord)

	args := []any{
		e.ID,
		e.SessionID,
		e.Handle,
		e.FireAt,
		e.Strategy,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := "INSERT INTO notifications (id, session_id, handle, fire_at, strategy, status, created_at, updated_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating notification", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return lifted.ExistingNotificationRecord{}, err
	}

	return existingRecord, nil
}

func (r *notificationRepo) UpdateNotificationStatus(ctx context.Context, id lifted.NotificationRecordID, status lifted.NotificationStatus) (lifted.ExistingNotificationRecord, error) {
	existing, err := r.GetNotification(ctx, id)
	if err != nil {
		return existing, err
	}

	existing.Status = status
	existing.ExistingRecord = existing.Touch(r.clock.Now())
	e := mapToNotificationEntity(existing)

	query := "UPDATE notifications SET status = ?, updated_at = ? WHERE id = ?"
	args := []any{e.Status, e.UpdatedAt, e.ID}
	r.l.Debug("updating notification", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return lifted.ExistingNotificationRecord{}, err
	}

	return existing, nil
}

func (r *notificationRepo) GetNotification(ctx context.Context, id lifted.NotificationRecordID) (lifted.ExistingNotificationRecord, error) {
	if id == "" {
		return lifted.ExistingNotificationRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllNotifications), id,
	)
	return extractNotification(row)
}

func (r *notificationRepo) GetNotificationsByStatus(ctx context.Context, statuses ...lifted.NotificationStatus) ([]lifted.ExistingNotificationRecord, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("%s WHERE status IN %s ORDER BY created_at", SelectAllNotifications, generateParameters(len(statuses)))
	r.l.Debug("getting notifications by status", "query", query, "statuses", statuses)
	var statusInts []any
	for _, s := range statuses {
		statusInts = append(statusInts, uint8(s))
	}
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, statusInts...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var records []lifted.ExistingNotificationRecord
	for rows.Next() {
		record, err := extractNotification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteNotificationsBefore prunes settled rows last updated before t.
func (r *notificationRepo) DeleteNotificationsBefore(ctx context.Context, t time.Time) (int64, error) {
	query := "DELETE FROM notifications WHERE status != ? AND updated_at < ?"
	r.l.Debug("pruning notifications", "query", query, "before", t)
	res, err := r.dbGetter(ctx).ExecContext(ctx, query, uint8(lifted.NotificationScheduled), t.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func extractNotification(s Scannable) (lifted.ExistingNotificationRecord, error) {
	var e notificationEntity
	if err := s.Scan(&e.ID, &e.SessionID, &e.Handle, &e.FireAt, &e.Strategy, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lifted.ExistingNotificationRecord{}, ErrNotFound
		}
		return lifted.ExistingNotificationRecord{}, err
	}

	return mapToExistingNotificationRecord(e), nil
}

func mapToNotificationEntity(n lifted.ExistingNotificationRecord) notificationEntity {
	return notificationEntity{
		ID:        string(n.ID),
		SessionID: string(n.SessionID),
		Handle:    int32(n.Handle),
		FireAt:    n.FireAt.UnixMilli(),
		Strategy:  n.Strategy,
		Status:    uint8(n.Status),
		CreatedAt: n.CreatedAt.Unix(),
		UpdatedAt: n.UpdatedAt.Unix(),
	}
}

func mapToExistingNotificationRecord(e notificationEntity) lifted.ExistingNotificationRecord {
	return lifted.ExistingNotificationRecord{
		ExistingRecord: lifted.ExistingRecord[lifted.NotificationRecordID]{
			ID:        lifted.NotificationRecordID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
			UpdatedAt: time.Unix(e.UpdatedAt, 0),
		},
		NotificationRecord: lifted.NotificationRecord{
			SessionID: lifted.SessionID(e.SessionID),
			Handle:    lifted.NotificationHandle(e.Handle),
			FireAt:    time.UnixMilli(e.FireAt),
			Strategy:  e.Strategy,
			Status:    lifted.NotificationStatus(e.Status),
		},
	}
}
