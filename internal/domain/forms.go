package domain

// RegistrationForm is the sign-up payload.
type RegistrationForm struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=120"`
	CPF             string `json:"cpf" validate:"required,cpf"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,phone_br"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// PasswordChangeForm is the payload for changing the account password.
type PasswordChangeForm struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// ProfileForm holds the editable profile fields. CPF is immutable.
type ProfileForm struct {
	FullName string `json:"fullName" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,phone_br"`
}

// PetForm is the create/update payload for a pet.
type PetForm struct {
	Name      string   `json:"name" validate:"required,petname"`
	Species   string   `json:"species" validate:"required,species"`
	Breed     string   `json:"breed" validate:"max=100"`
	BirthDate string   `json:"birthDate" validate:"omitempty,isodate"`
	WeightKg  *float64 `json:"weightKg" validate:"omitempty,gt=0"`
}

// VaccineForm is the create/update payload for a vaccine.
type VaccineForm struct {
	PetID           int64  `json:"petId" validate:"required"`
	Name            string `json:"name" validate:"required,vaccinename"`
	Description     string `json:"description" validate:"max=500"`
	ApplicationDate string `json:"applicationDate" validate:"required,isodate"`
	NextDoseDate    string `json:"nextDoseDate" validate:"omitempty,isodate"`
	Veterinarian    string `json:"veterinarian" validate:"max=100"`
	BatchNumber     string `json:"batchNumber" validate:"max=50"`
}
