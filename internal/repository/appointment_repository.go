package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wenqianzh/medpoint-backend/internal/model"
)

// AppointmentRepo provides persistence for the appointment ledger.
// Rows are created exactly once per successful reservation and are
// never physically deleted; cancellation only flips the status.
type AppointmentRepo struct {
	db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

const appointmentColumns = `id, order_no, doctor_id, doctor_name, hospital_name, department_name,
	schedule_date, period, patient_name, patient_gender, patient_age, patient_phone,
	symptoms, registration_fee, status, created_at`

func scanAppointment(row interface{ Scan(...any) error }, a *model.Appointment) error {
	var d time.Time
	var period string
	var gender, symptoms sql.NullString
	var age sql.NullInt64
	if err := row.Scan(&a.ID, &a.OrderNo, &a.DoctorID, &a.DoctorName, &a.HospitalName, &a.DepartmentName,
		&d, &period, &a.PatientName, &gender, &age, &a.PatientPhone,
		&symptoms, &a.RegistrationFee, &a.Status, &a.CreatedAt); err != nil {
		return err
	}
	a.ScheduleDate = d.Format("2006-01-02")
	a.Period = model.Period(period)
	a.PatientGender = gender.String
	a.PatientAge = int(age.Int64)
	a.Symptoms = symptoms.String
	return nil
}

// CreateTx inserts a new appointment within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided struct.  The caller must commit or rollback the transaction.
func (r *AppointmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
	const q = `INSERT INTO appointments
		(order_no, doctor_id, doctor_name, hospital_name, department_name, schedule_date, period,
		patient_name, patient_gender, patient_age, patient_phone, symptoms, registration_fee, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, a.OrderNo, a.DoctorID, a.DoctorName, a.HospitalName, a.DepartmentName,
		a.ScheduleDate, a.Period, a.PatientName, nullString(a.PatientGender), nullInt(a.PatientAge),
		a.PatientPhone, nullString(a.Symptoms), a.RegistrationFee, a.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	return scanAppointment(tx.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, a.ID), a)
}

// LockByIDTx acquires an exclusive row lock on an appointment so the
// cancellation path can check and flip the status without racing a
// concurrent cancel of the same row.  Returns ErrAppointmentNotFound
// when the id is unknown.
func (r *AppointmentRepo) LockByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Appointment, error) {
	var a model.Appointment
	err := scanAppointment(tx.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ? FOR UPDATE`, id), &a)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CancelTx marks a locked appointment as cancelled.  The caller must
// hold the row lock from LockByIDTx and have verified the current
// status is still pending.
func (r *AppointmentRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE appointments SET status = ? WHERE id = ?`, model.AppointmentCancelled, id)
	return err
}

// GetByID returns a single appointment or ErrAppointmentNotFound.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (*model.Appointment, error) {
	var a model.Appointment
	err := scanAppointment(r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id), &a)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns appointments newest first, filtered by any combination
// of patient phone, doctor id and status.  Zero values skip the filter.
func (r *AppointmentRepo) List(ctx context.Context, phone string, doctorID uint64, status string) ([]model.Appointment, error) {
	q := `SELECT ` + appointmentColumns + ` FROM appointments WHERE 1=1`
	var args []any
	if phone != "" {
		q += ` AND patient_phone = ?`
		args = append(args, phone)
	}
	if doctorID != 0 {
		q += ` AND doctor_id = ?`
		args = append(args, doctorID)
	}
	if status != "" {
		q += ` AND status = ?`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
