package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wenqianzh/medpoint-backend/internal/model"
)

// ScheduleRepo persists per-(doctor, date, period) capacity rows.  The
// plain methods are non-locking reads and admin configuration writes;
// the ...Tx methods are the locking primitives the booking engine runs
// inside its transaction.
type ScheduleRepo struct {
	db *sql.DB
}

// NewScheduleRepo returns a new ScheduleRepo bound to the given database.
func NewScheduleRepo(db *sql.DB) *ScheduleRepo { return &ScheduleRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *ScheduleRepo) DB() *sql.DB { return r.db }

const scheduleColumns = `id, doctor_id, schedule_date, period, total_slots, remaining_slots, created_at, updated_at`

func scanSchedule(row interface{ Scan(...any) error }, s *model.ScheduleSlot) error {
	var d time.Time
	var period string
	if err := row.Scan(&s.ID, &s.DoctorID, &d, &period, &s.TotalSlots, &s.RemainingSlots,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return err
	}
	s.ScheduleDate = d.Format("2006-01-02")
	s.Period = model.Period(period)
	return nil
}

// Upsert creates or resets the capacity row for one slot key.  Reset
// semantics are deliberate and total: remaining_slots is overwritten to
// the new total, discarding the count of bookings already taken against
// the key.  Callers that need to preserve in-flight reservations must
// not reset a key that has active appointments.
func (r *ScheduleRepo) Upsert(ctx context.Context, doctorID uint64, date string, period model.Period, totalSlots int) (uint64, error) {
	const q = `INSERT INTO doctor_schedules (doctor_id, schedule_date, period, total_slots, remaining_slots)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE total_slots = VALUES(total_slots), remaining_slots = VALUES(remaining_slots),
		id = LAST_INSERT_ID(id)`
	res, err := r.db.ExecContext(ctx, q, doctorID, date, period, totalSlots, totalSlots)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpsertRange applies the same morning/afternoon capacity to every date
// in the slice within one transaction, so a batch either configures the
// whole range or none of it.  A nil slot count skips that period.
func (r *ScheduleRepo) UpsertRange(ctx context.Context, doctorID uint64, dates []string, morningSlots, afternoonSlots *int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	const q = `INSERT INTO doctor_schedules (doctor_id, schedule_date, period, total_slots, remaining_slots)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE total_slots = VALUES(total_slots), remaining_slots = VALUES(remaining_slots)`
	for _, date := range dates {
		if morningSlots != nil && *morningSlots >= 0 {
			if _, err := tx.ExecContext(ctx, q, doctorID, date, model.PeriodMorning, *morningSlots, *morningSlots); err != nil {
				return err
			}
		}
		if afternoonSlots != nil && *afternoonSlots >= 0 {
			if _, err := tx.ExecContext(ctx, q, doctorID, date, model.PeriodAfternoon, *afternoonSlots, *afternoonSlots); err != nil {
				return err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByDoctorFrom returns a doctor's schedule rows on or after the
// given ISO date, ordered by date then period.  This is the public
// browsing query; it takes no locks and may lag behind concurrent
// reservations.
func (r *ScheduleRepo) ListByDoctorFrom(ctx context.Context, doctorID uint64, from string) ([]model.ScheduleSlot, error) {
	const q = `SELECT ` + scheduleColumns + ` FROM doctor_schedules
		WHERE doctor_id = ? AND schedule_date >= ?
		ORDER BY schedule_date, period`
	rows, err := r.db.QueryContext(ctx, q, doctorID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	slots := make([]model.ScheduleSlot, 0)
	for rows.Next() {
		var s model.ScheduleSlot
		if err := scanSchedule(rows, &s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// AdminList returns schedule rows joined with doctor display fields.
// doctorID of zero means all doctors; empty date strings skip that
// bound, and when neither bound is set only today-and-later rows are
// returned.
func (r *ScheduleRepo) AdminList(ctx context.Context, doctorID uint64, startDate, endDate string) ([]model.AdminScheduleRow, error) {
	q := `SELECT s.id, s.doctor_id, s.schedule_date, s.period, s.total_slots, s.remaining_slots,
		s.created_at, s.updated_at, COALESCE(d.name, ''), COALESCE(d.hospital_name, ''), COALESCE(d.department_name, '')
		FROM doctor_schedules s
		LEFT JOIN doctors d ON d.id = s.doctor_id
		WHERE 1=1`
	var args []any
	if doctorID != 0 {
		q += ` AND s.doctor_id = ?`
		args = append(args, doctorID)
	}
	if startDate != "" {
		q += ` AND s.schedule_date >= ?`
		args = append(args, startDate)
	}
	if endDate != "" {
		q += ` AND s.schedule_date <= ?`
		args = append(args, endDate)
	}
	if startDate == "" && endDate == "" {
		q += ` AND s.schedule_date >= CURDATE()`
	}
	q += ` ORDER BY s.schedule_date, s.doctor_id, s.period`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.AdminScheduleRow, 0)
	for rows.Next() {
		var row model.AdminScheduleRow
		var d time.Time
		var period string
		if err := rows.Scan(&row.ID, &row.DoctorID, &d, &period, &row.TotalSlots, &row.RemainingSlots,
			&row.CreatedAt, &row.UpdatedAt, &row.DoctorName, &row.HospitalName, &row.DepartmentName); err != nil {
			return nil, err
		}
		row.ScheduleDate = d.Format("2006-01-02")
		row.Period = model.Period(period)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ResetByID overwrites both slot counts of one schedule row, identified
// by its primary key.  Same full-reset semantics as Upsert.
func (r *ScheduleRepo) ResetByID(ctx context.Context, scheduleID uint64, totalSlots int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE doctor_schedules SET total_slots = ?, remaining_slots = ? WHERE id = ?`,
		totalSlots, totalSlots, scheduleID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var id uint64
		gerr := r.db.QueryRowContext(ctx, `SELECT id FROM doctor_schedules WHERE id = ?`, scheduleID).Scan(&id)
		if gerr == sql.ErrNoRows {
			return ErrScheduleNotFound
		}
		return gerr
	}
	return nil
}

// LockByKeyTx acquires an exclusive row lock on the slot identified by
// the composite key and returns its current state.  Concurrent
// reservations for the same key serialize here; the lock is held until
// the surrounding transaction commits or rolls back.  Returns
// ErrScheduleNotFound when no capacity is configured for the key.
func (r *ScheduleRepo) LockByKeyTx(ctx context.Context, tx *sql.Tx, doctorID uint64, date string, period model.Period) (*model.ScheduleSlot, error) {
	const q = `SELECT ` + scheduleColumns + ` FROM doctor_schedules
		WHERE doctor_id = ? AND schedule_date = ? AND period = ?
		FOR UPDATE`
	var s model.ScheduleSlot
	err := scanSchedule(tx.QueryRowContext(ctx, q, doctorID, date, period), &s)
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DecrementTx takes one unit of capacity from a locked slot row.  The
// caller must hold the row lock from LockByKeyTx and have verified that
// remaining_slots is positive.
func (r *ScheduleRepo) DecrementTx(ctx context.Context, tx *sql.Tx, scheduleID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE doctor_schedules SET remaining_slots = remaining_slots - 1 WHERE id = ?`, scheduleID)
	return err
}

// IncrementByKeyTx returns one unit of capacity to the slot matching the
// composite key.  The appointment stores the key rather than a row
// reference, so if the slot row was deleted or reset since booking this
// is a silent no-op on the capacity side.
func (r *ScheduleRepo) IncrementByKeyTx(ctx context.Context, tx *sql.Tx, doctorID uint64, date string, period model.Period) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE doctor_schedules SET remaining_slots = remaining_slots + 1
		WHERE doctor_id = ? AND schedule_date = ? AND period = ?`,
		doctorID, date, period)
	return err
}
