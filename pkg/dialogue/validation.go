package dialogue

import "regexp"

// Result of validating one onboarding field. Message is user facing,
// in Spanish, and only set when OK is false.
type Result struct {
	OK      bool
	Message string
}

var (
	identificacionPattern = regexp.MustCompile(`^\d{4,11}$`)
	nombrePattern         = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]{1,100}$`)
	telefonoPattern       = regexp.MustCompile(`^[63]\d{9}$`)
	emailPattern          = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
)

const (
	msgIdentificacionFormat   = "La identificación debe tener entre 4 y 11 dígitos numéricos."
	msgIdentificacionNotFound = "No encontramos esa identificación. Verifica el número o regístrate como nuevo."
	msgIdentificacionTaken    = "Esta identificación ya está registrada. Usa otra o inicia como cliente frecuente."
	msgNombreInvalid          = "El nombre debe tener entre 1 y 100 letras, sin números ni caracteres especiales (excepto tildes y ñ)."
	msgTelefonoInvalid        = "El teléfono debe tener 10 dígitos y empezar con 6 o 3."
	msgEmailInvalid           = "El correo debe contener '@' y un dominio válido."
)

func ValidateIdentificacionFormat(identificacion string) Result {
	if !identificacionPattern.MatchString(identificacion) {
		return Result{OK: false, Message: msgIdentificacionFormat}
	}
	return Result{OK: true}
}

func ValidateNombre(nombre string) Result {
	if !nombrePattern.MatchString(nombre) {
		return Result{OK: false, Message: msgNombreInvalid}
	}
	return Result{OK: true}
}

func ValidateTelefono(telefono string) Result {
	if !telefonoPattern.MatchString(telefono) {
		return Result{OK: false, Message: msgTelefonoInvalid}
	}
	return Result{OK: true}
}

func ValidateEmail(email string) Result {
	if !emailPattern.MatchString(email) {
		return Result{OK: false, Message: msgEmailInvalid}
	}
	return Result{OK: true}
}
