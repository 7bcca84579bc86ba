package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wenqianzh/medpoint-backend/internal/model"
	"github.com/wenqianzh/medpoint-backend/internal/repository"
)

// MySQL error numbers for lock wait timeout and deadlock.  Both mean
// the row lock could not be taken in time; the request failed cleanly
// and may be retried by the caller.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// Engine owns the reservation protocol.  All capacity mutations go
// through it inside a single database transaction per request; the row
// lock on the schedule row is the only synchronization primitive, so
// no remaining-slot value is ever cached between requests.
type Engine struct {
	db           *sql.DB
	doctors      *repository.DoctorRepo
	schedules    *repository.ScheduleRepo
	appointments *repository.AppointmentRepo
	logger       *zap.Logger
}

// NewEngine constructs an Engine.  All dependencies must be non-nil.
func NewEngine(db *sql.DB, doctors *repository.DoctorRepo, schedules *repository.ScheduleRepo, appointments *repository.AppointmentRepo, logger *zap.Logger) *Engine {
	if db == nil || doctors == nil || schedules == nil || appointments == nil {
		panic("nil dependency passed to NewEngine")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{db: db, doctors: doctors, schedules: schedules, appointments: appointments, logger: logger}
}

// Reserve atomically claims one unit of capacity for the requested
// (doctor, date, period) key and records the appointment.  The schedule
// row is locked first, so two concurrent Reserve calls for the same key
// serialize: the second waits for the first's commit or rollback and
// then re-evaluates the remaining count.  On any error the transaction
// is rolled back and neither the decrement nor the insert is visible.
func (e *Engine) Reserve(ctx context.Context, req ReserveRequest) (*model.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var appt *model.Appointment
	err := e.withTx(ctx, func(tx *sql.Tx) error {
		slot, err := e.schedules.LockByKeyTx(ctx, tx, req.DoctorID, req.ScheduleDate, req.Period)
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return ErrNoSuchSlot
		}
		if err != nil {
			return wrapContention(err, "lock schedule")
		}
		if slot.RemainingSlots <= 0 {
			return ErrSlotFull
		}
		if err := e.schedules.DecrementTx(ctx, tx, slot.ID); err != nil {
			return fmt.Errorf("decrement slot: %w", err)
		}

		name, hospital, department, fee, err := e.doctors.GetSnapshotTx(ctx, tx, req.DoctorID)
		if errors.Is(err, repository.ErrDoctorNotFound) {
			return fmt.Errorf("%w: unknown doctor", ErrInvalidInput)
		}
		if err != nil {
			return fmt.Errorf("doctor snapshot: %w", err)
		}

		appt = &model.Appointment{
			OrderNo:         uuid.NewString(),
			DoctorID:        req.DoctorID,
			DoctorName:      name,
			HospitalName:    hospital,
			DepartmentName:  department,
			ScheduleDate:    req.ScheduleDate,
			Period:          req.Period,
			PatientName:     req.PatientName,
			PatientGender:   req.PatientGender,
			PatientAge:      req.PatientAge,
			PatientPhone:    req.PatientPhone,
			Symptoms:        req.Symptoms,
			RegistrationFee: fee,
			Status:          model.AppointmentPending,
		}
		if err := e.appointments.CreateTx(ctx, tx, appt); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("slot reserved",
		zap.Uint64("appointment_id", appt.ID),
		zap.String("order_no", appt.OrderNo),
		zap.Uint64("doctor_id", appt.DoctorID),
		zap.String("date", appt.ScheduleDate),
		zap.String("period", string(appt.Period)),
	)
	return appt, nil
}

// Release cancels an appointment and returns its capacity unit.  The
// appointment row is locked first so a concurrent double-cancel cannot
// increment the slot twice; a second Release of the same id fails with
// ErrAlreadyCancelled and mutates nothing.
//
// The schedule slot is found by the appointment's stored composite key,
// not a row reference: if the slot row was deleted or reset since
// booking, the increment silently touches nothing.  The count is also
// not clamped to total_slots, so releasing after an admin lowered the
// configured total can leave remaining above the new total.  Both are
// deliberate, documented trade-offs of the reset semantics.
func (e *Engine) Release(ctx context.Context, appointmentID uint64) (*model.Appointment, error) {
	var appt *model.Appointment
	err := e.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		appt, err = e.appointments.LockByIDTx(ctx, tx, appointmentID)
		if errors.Is(err, repository.ErrAppointmentNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return wrapContention(err, "lock appointment")
		}
		if appt.Status == model.AppointmentCancelled {
			return ErrAlreadyCancelled
		}
		if err := e.appointments.CancelTx(ctx, tx, appointmentID); err != nil {
			return fmt.Errorf("cancel appointment: %w", err)
		}
		if err := e.schedules.IncrementByKeyTx(ctx, tx, appt.DoctorID, appt.ScheduleDate, appt.Period); err != nil {
			return wrapContention(err, "restore slot")
		}
		appt.Status = model.AppointmentCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("slot released",
		zap.Uint64("appointment_id", appt.ID),
		zap.String("order_no", appt.OrderNo),
		zap.Uint64("doctor_id", appt.DoctorID),
		zap.String("date", appt.ScheduleDate),
		zap.String("period", string(appt.Period)),
	)
	return appt, nil
}

// withTx runs fn inside a transaction, rolling back on error or panic
// and committing otherwise.
func (e *Engine) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapContention(err, "commit")
	}
	committed = true
	return nil
}

// wrapContention converts lock-wait timeouts and deadlocks into
// ErrContended so callers can treat them as retryable; every other
// error passes through with context.
func wrapContention(err error, op string) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && (me.Number == mysqlErrLockWaitTimeout || me.Number == mysqlErrDeadlock) {
		return fmt.Errorf("%w: %s: %v", ErrContended, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
