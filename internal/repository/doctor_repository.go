package repository

import (
	"context"
	"database/sql"

	"github.com/wenqianzh/medpoint-backend/internal/model"
)

// DoctorRepo provides CRUD operations for doctor profiles.  Avatar
// payloads are stored as base64 text on the row and loaded only by the
// avatar-specific methods so listings stay cheap.
type DoctorRepo struct {
	db *sql.DB
}

// NewDoctorRepo returns a new DoctorRepo bound to the given database.
func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *DoctorRepo) DB() *sql.DB { return r.db }

const doctorColumns = `id, name, title, expertise, intro, hospital_id, hospital_name, department_name, registration_fee, created_at`

func scanDoctor(row interface{ Scan(...any) error }, d *model.Doctor) error {
	var intro sql.NullString
	if err := row.Scan(&d.ID, &d.Name, &d.Title, &d.Expertise, &intro,
		&d.HospitalID, &d.HospitalName, &d.DepartmentName, &d.RegistrationFee, &d.CreatedAt); err != nil {
		return err
	}
	d.Intro = intro.String
	return nil
}

// List returns doctors ordered by id, optionally filtered by a keyword
// matched against name and expertise.
func (r *DoctorRepo) List(ctx context.Context, keyword string) ([]model.Doctor, error) {
	q := `SELECT ` + doctorColumns + ` FROM doctors`
	var args []any
	if keyword != "" {
		q += ` WHERE name LIKE ? OR expertise LIKE ?`
		like := "%" + keyword + "%"
		args = append(args, like, like)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	doctors := make([]model.Doctor, 0)
	for rows.Next() {
		var d model.Doctor
		if err := scanDoctor(rows, &d); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	return doctors, rows.Err()
}

// ListSummaries returns the lightweight directory projection used by the
// doctor-team listing, with the same optional keyword filter as List.
func (r *DoctorRepo) ListSummaries(ctx context.Context, keyword string) ([]model.DoctorSummary, error) {
	q := `SELECT id, name, title, expertise, intro, hospital_id, hospital_name, department_name FROM doctors`
	var args []any
	if keyword != "" {
		q += ` WHERE name LIKE ? OR expertise LIKE ?`
		like := "%" + keyword + "%"
		args = append(args, like, like)
	}
	q += ` ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.DoctorSummary, 0)
	for rows.Next() {
		var s model.DoctorSummary
		var intro sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Title, &s.Expertise, &intro,
			&s.HospitalID, &s.HospitalName, &s.DepartmentName); err != nil {
			return nil, err
		}
		s.Intro = intro.String
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID returns a single doctor or ErrDoctorNotFound.
func (r *DoctorRepo) GetByID(ctx context.Context, id uint64) (*model.Doctor, error) {
	var d model.Doctor
	err := scanDoctor(r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = ?`, id), &d)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetSnapshotTx loads the denormalized fields the booking engine copies
// onto a new appointment.  It runs inside the reservation transaction so
// the snapshot and the slot decrement commit together.
func (r *DoctorRepo) GetSnapshotTx(ctx context.Context, tx *sql.Tx, id uint64) (name, hospital, department string, fee float64, err error) {
	const q = `SELECT name, hospital_name, department_name, registration_fee FROM doctors WHERE id = ?`
	err = tx.QueryRowContext(ctx, q, id).Scan(&name, &hospital, &department, &fee)
	if err == sql.ErrNoRows {
		err = ErrDoctorNotFound
	}
	return
}

// GetAvatar returns the stored base64 avatar for a doctor.  An empty
// string means the doctor exists but has no avatar of their own.
func (r *DoctorRepo) GetAvatar(ctx context.Context, id uint64) (string, error) {
	var avatar sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT avatar_image FROM doctors WHERE id = ?`, id).Scan(&avatar)
	if err == sql.ErrNoRows {
		return "", ErrDoctorNotFound
	}
	if err != nil {
		return "", err
	}
	return avatar.String, nil
}

// Create inserts a new doctor and populates the generated ID plus
// database defaults on the passed struct.
func (r *DoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	const q = `INSERT INTO doctors
		(name, title, expertise, intro, hospital_id, hospital_name, department_name, avatar_image, registration_fee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Title, d.Expertise, d.Intro,
		d.HospitalID, d.HospitalName, d.DepartmentName, nullString(d.AvatarImage), d.RegistrationFee)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return scanDoctor(r.db.QueryRowContext(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = ?`, d.ID), d)
}

// Update overwrites the editable profile fields of a doctor.  The avatar
// is managed separately via UpdateAvatar.
func (r *DoctorRepo) Update(ctx context.Context, d *model.Doctor) error {
	const q = `UPDATE doctors SET name = ?, title = ?, expertise = ?, intro = ?,
		hospital_id = ?, hospital_name = ?, department_name = ?, registration_fee = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Title, d.Expertise, d.Intro,
		d.HospitalID, d.HospitalName, d.DepartmentName, d.RegistrationFee, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, gerr := r.GetByID(ctx, d.ID); gerr != nil {
			return gerr
		}
	}
	return nil
}

// UpdateAvatar replaces the stored avatar for a doctor.
func (r *DoctorRepo) UpdateAvatar(ctx context.Context, id uint64, avatarBase64 string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE doctors SET avatar_image = ? WHERE id = ?`, avatarBase64, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
	}
	return nil
}

// Delete removes a doctor profile.  Historical appointments keep their
// denormalized snapshot and are not touched.
func (r *DoctorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
