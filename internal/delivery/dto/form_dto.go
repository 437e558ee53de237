package dto

import "go-clinic-dashboard/internal/domain/entity"

// Form DTOs mirror the create/edit forms of each screen. Field order is the
// order rules are checked in; the first failure is reported.

type AppointmentForm struct {
	Client          entity.ID `json:"client" validate:"required"`
	Service         entity.ID `json:"service" validate:"required"`
	Cosmetologist   entity.ID `json:"cosmetologist" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,datetime=15:04"`
	Duration        int       `json:"duration" validate:"gte=0"`
	Price           float64   `json:"price" validate:"gte=0"`
	Status          string    `json:"status" validate:"omitempty,oneof=scheduled confirmed in_progress completed cancelled"`
	Notes           string    `json:"notes"`
}

type ConsultationForm struct {
	Client           entity.ID `json:"client" validate:"required"`
	Cosmetologist    entity.ID `json:"cosmetologist" validate:"required"`
	ConsultationType entity.ID `json:"consultation_type" validate:"required"`
	ConsultationDate string    `json:"consultation_date" validate:"required,datetime=2006-01-02"`
	ConsultationTime string    `json:"consultation_time" validate:"required,datetime=15:04"`
	PrimaryConcern   string    `json:"primary_concern" validate:"required,min=10"`
	Duration         int       `json:"duration" validate:"gte=0"`
	Fee              float64   `json:"fee" validate:"gte=0"`
	SkinType         string    `json:"skin_type"`
	Recommendations  string    `json:"recommendations"`
	Status           string    `json:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled follow_up_required"`
}

type ProductForm struct {
	Name          string  `json:"name" validate:"required,min=2"`
	Category      string  `json:"category" validate:"required"`
	Price         float64 `json:"price" validate:"gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Brand         string  `json:"brand"`
	Description   string  `json:"description"`
	IsActive      bool    `json:"is_active"`
}

type ServiceForm struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gt=0"`
	Duration    int     `json:"duration" validate:"gt=0"`
	Description string  `json:"description"`
	IsActive    bool    `json:"is_active"`
}

type TreatmentPlanForm struct {
	Name             string      `json:"name" validate:"required"`
	Client           entity.ID   `json:"client" validate:"required"`
	Cosmetologist    entity.ID   `json:"cosmetologist" validate:"required"`
	StartDate        string      `json:"start_date" validate:"required,datetime=2006-01-02"`
	DurationWeeks    int         `json:"duration_weeks" validate:"min=1"`
	Services         []entity.ID `json:"services" validate:"min=1"`
	Products         []entity.ID `json:"products"`
	Goals            string      `json:"goals"`
	EstimatedCost    float64     `json:"estimated_cost" validate:"gte=0"`
	EstimatedEndDate string      `json:"estimated_end_date"`
	Status           string      `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
}

type AdmissionForm struct {
	Patient            entity.ID `json:"patient" validate:"required"`
	Department         entity.ID `json:"department" validate:"required"`
	AdmissionDate      string    `json:"admission_date" validate:"required,datetime=2006-01-02"`
	AdmissionTime      string    `json:"admission_time" validate:"required,datetime=15:04"`
	AdmissionType      string    `json:"admission_type" validate:"required,oneof=emergency elective urgent transfer"`
	ChiefComplaint     string    `json:"chief_complaint" validate:"required,min=10"`
	PrimaryDiagnosis   string    `json:"primary_diagnosis"`
	AttendingPhysician entity.ID `json:"attending_physician"`
	RoomNumber         string    `json:"room_number"`
	BedNumber          string    `json:"bed_number"`
	Status             string    `json:"status" validate:"omitempty,oneof=admitted in_treatment under_observation ready_for_discharge discharged transferred"`
}
