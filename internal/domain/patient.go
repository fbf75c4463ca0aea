package domain

import "time"

// Patient es la persona evaluada, con el contacto del cuidador que recibe
// las alertas de riesgo alto.
type Patient struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	CaregiverName  string    `json:"caregiver_name,omitempty"`
	CaregiverEmail string    `json:"caregiver_email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
