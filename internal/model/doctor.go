package model

import "time"

// Doctor is a bookable physician profile.  The hospital and department
// fields are stored directly on the row so the directory can be served
// without joins; appointments additionally snapshot them at booking time
// so later edits never rewrite booking history.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name.
//  Title           – professional title (e.g. "Chief Physician").
//  Expertise       – free-text specialty summary, searchable.
//  Intro           – longer biography shown on the detail page.
//  HospitalID      – external identifier of the hospital.
//  HospitalName    – hospital display name.
//  DepartmentName  – department display name.
//  AvatarImage     – base64-encoded avatar, served separately as binary.
//  RegistrationFee – booking fee in yuan.
//  CreatedAt       – timestamp when the record was created.
type Doctor struct {
	ID              uint64    `json:"id"`              // doctors.id
	Name            string    `json:"name"`            // doctors.name
	Title           string    `json:"title"`           // doctors.title
	Expertise       string    `json:"expertise"`       // doctors.expertise
	Intro           string    `json:"intro"`           // doctors.intro
	HospitalID      string    `json:"hospitalId"`      // doctors.hospital_id
	HospitalName    string    `json:"hospitalName"`    // doctors.hospital_name
	DepartmentName  string    `json:"departmentName"`  // doctors.department_name
	AvatarImage     string    `json:"-"`               // doctors.avatar_image (base64, never inlined in JSON)
	RegistrationFee float64   `json:"registrationFee"` // doctors.registration_fee
	CreatedAt       time.Time `json:"-"`               // doctors.created_at
}

// DoctorSummary is the projection returned by list endpoints when the
// caller asks for summary rows.  It omits the avatar and fee columns so
// directory listings stay small.
type DoctorSummary struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Expertise      string `json:"expertise"`
	Intro          string `json:"intro"`
	HospitalID     string `json:"hospitalId"`
	HospitalName   string `json:"hospitalName"`
	DepartmentName string `json:"departmentName"`
}
