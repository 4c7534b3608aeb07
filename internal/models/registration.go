package models

// AccountStatus is the lease state of a registered lab
type AccountStatus string

const (
	AccountActive     AccountStatus = "active"
	AccountSuspended  AccountStatus = "suspended"
	AccountTerminated AccountStatus = "terminated"
)

// LabProfile holds the public details a lab enters at registration
type LabProfile struct {
	Name        string `json:"name" validate:"required"`
	RUC         string `json:"ruc,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Address     string `json:"address,omitempty"`
}

// AdminAccount identifies the lab administrator. The password is not part of
// the record and lives in the OS keyring.
type AdminAccount struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// PlanSelection is the subscription chosen during registration
type PlanSelection struct {
	PlanID      string       `json:"plan_id" validate:"required"`
	Users       int          `json:"users"`
	LeaseMonths int          `json:"lease_months" validate:"required"`
	Admin       AdminAccount `json:"admin"`
}

// Registration is the persisted result of the lab onboarding wizard
type Registration struct {
	Lab              LabProfile    `json:"lab"`
	Exams            []string      `json:"exams"`
	Plan             PlanSelection `json:"plan"`
	PaymentCompleted bool          `json:"payment_completed"`
	RegisteredAt     string        `json:"registered_at,omitempty"`
	LeaseExpiresAt   string        `json:"lease_expires_at,omitempty"`
	Status           AccountStatus `json:"status"`
}

// AuthState is the pseudo-auth session of the local console
type AuthState struct {
	IsLoggedIn bool   `json:"is_logged_in"`
	UserEmail  string `json:"user_email,omitempty"`
	UserName   string `json:"user_name,omitempty"`
}
