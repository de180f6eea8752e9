package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level problem reported back to a form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	errRequired    = errors.New("é obrigatório")
	errInvalidCPF  = errors.New("CPF inválido")
	errInvalidMail = errors.New("Email inválido")
	errInvalidTel  = errors.New("Telefone inválido")
	errPetName     = errors.New("Nome deve ter de 1 a 50 letras")
	errVaccineName = errors.New("Nome da vacina deve ter de 1 a 100 caracteres")
	errSpecies     = errors.New("Espécie deve ser cachorro ou gato")
	errISODate     = errors.New("Data inválida (esperado AAAA-MM-DD)")
	errTooShort    = errors.New("é muito curto")
	errTooLong     = errors.New("é muito longo")
	errMismatch    = errors.New("Senhas não coincidem")
	errPositive    = errors.New("deve ser maior que zero")
)

var tagErrors = map[string]error{
	"required":    errRequired,
	"cpf":         errInvalidCPF,
	"email":       errInvalidMail,
	"phone_br":    errInvalidTel,
	"petname":     errPetName,
	"vaccinename": errVaccineName,
	"species":     errSpecies,
	"isodate":     errISODate,
	"min":         errTooShort,
	"max":         errTooLong,
	"eqfield":     errMismatch,
	"gt":          errPositive,
}

// New returns a validator with the application's custom tags registered.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "cpf", func(fl validator.FieldLevel) bool { return CPF(fl.Field().String()) })
	mustRegister(v, "email", func(fl validator.FieldLevel) bool { return Email(fl.Field().String()) })
	mustRegister(v, "phone_br", func(fl validator.FieldLevel) bool { return Phone(fl.Field().String()) })
	mustRegister(v, "petname", func(fl validator.FieldLevel) bool { return PetName(fl.Field().String()) })
	mustRegister(v, "vaccinename", func(fl validator.FieldLevel) bool { return VaccineName(fl.Field().String()) })
	mustRegister(v, "password", func(fl validator.FieldLevel) bool { return Password(fl.Field().String()).Valid })
	mustRegister(v, "species", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "cachorro" || s == "gato"
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// FieldErrors converts validator errors into FieldErrors. A failed "password"
// tag expands into one entry per policy violation so forms can show the first.
func FieldErrors(err error) []FieldError {
	out := make([]FieldError, 0)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return out
	}
	for _, e := range verrs {
		if e.Tag() == "password" {
			for _, msg := range Password(e.Value().(string)).Violations {
				out = append(out, FieldError{Field: e.Field(), Message: msg})
			}
			continue
		}
		msg := fmt.Sprintf("%s é inválido", e.Field())
		if v, ok := tagErrors[e.Tag()]; ok {
			msg = v.Error()
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
