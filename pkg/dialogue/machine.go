package dialogue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retail-assistant-be/internal/entity"
	"retail-assistant-be/pkg/store"
)

// Customer is the directory-facing view of a registered client.
type Customer struct {
	Identificacion string
	Nombre         string
	Telefono       string
	Email          string
}

// Directory resolves and registers customers. Lookup returns (nil, nil)
// when no customer matches. Any non-nil error means the directory could
// not be reached and the turn must not advance the conversation.
type Directory interface {
	Lookup(ctx context.Context, identificacion string) (*Customer, error)
	Create(ctx context.Context, customer *Customer) (*Customer, error)
}

const (
	msgDisambiguate   = "Hola, ¿eres un cliente frecuente o es tu primera vez con nosotros? Por favor, dime si eres 'frecuente' o 'nuevo'."
	msgAskFrequentID  = "¡Bienvenido de nuevo! Por favor, ingresa tu número de identificación."
	msgAskNewID       = "¡Hola! Bienvenido al Supermercado 😊. Para empezar, por favor ingresa tu número de identificación (solo números, entre 4 y 11 dígitos)."
	msgAskNombre      = "Gracias por tu identificación. Ahora, por favor ingresa tu nombre completo (solo letras, sin números ni caracteres especiales)."
	msgAskTelefono    = "Gracias por tu nombre. Ahora, por favor ingresa tu número de teléfono (10 dígitos, empezando con 6 o 3)."
	msgAskEmail       = "Gracias por tu teléfono. Por último, por favor ingresa tu correo electrónico (debe incluir '@' y un dominio)."
	msgRegistered     = "¡Muchas gracias! 🎉 Tus datos han sido registrados con éxito. ¿En qué puedo ayudarte ahora?"
	msgWelcomeBackFmt = "¡Bienvenido de nuevo, %s! ¿En qué puedo ayudarte hoy?"

	retrySuffix = " Intenta de nuevo."
)

// Machine drives the onboarding conversation up to the QA phase.
// It mutates session phase and collected fields; appending the turns
// to the transcript is the caller's job.
type Machine struct {
	directory Directory
}

func NewMachine(directory Directory) *Machine {
	return &Machine{
		directory: directory,
	}
}

// Step consumes one user message and returns the assistant reply.
// A non-nil error means the directory failed; the session is left
// exactly as it was so the user can retry the same step.
func (m *Machine) Step(ctx context.Context, session *store.Session, input string) (string, error) {
	switch session.Phase {
	case store.PhaseInitial:
		return m.stepInitial(session, input), nil
	case store.PhaseFrequentID:
		return m.stepFrequentID(ctx, session, input)
	case store.PhaseNewID:
		return m.stepNewID(ctx, session, input)
	case store.PhaseNewName:
		return m.stepNewName(session, input), nil
	case store.PhaseNewPhone:
		return m.stepNewPhone(session, input), nil
	case store.PhaseNewEmail:
		return m.stepNewEmail(ctx, session, input)
	default:
		return "", fmt.Errorf("dialogue: no onboarding step for phase %q", session.Phase)
	}
}

func (m *Machine) stepInitial(session *store.Session, input string) string {
	lowered := strings.ToLower(input)
	switch {
	case strings.Contains(lowered, "frecuente"):
		session.Phase = store.PhaseFrequentID
		return msgAskFrequentID
	case strings.Contains(lowered, "nuevo"):
		session.Phase = store.PhaseNewID
		return msgAskNewID
	default:
		return msgDisambiguate
	}
}

func (m *Machine) stepFrequentID(ctx context.Context, session *store.Session, input string) (string, error) {
	if res := ValidateIdentificacionFormat(input); !res.OK {
		return res.Message + retrySuffix, nil
	}

	customer, err := m.directory.Lookup(ctx, input)
	if err != nil {
		return "", fmt.Errorf("lookup identificacion: %w", err)
	}
	if customer == nil {
		return msgIdentificacionNotFound + retrySuffix, nil
	}

	session.Fields[store.FieldIdentificacion] = input
	session.Phase = store.PhaseQA
	return fmt.Sprintf(msgWelcomeBackFmt, customer.Nombre), nil
}

func (m *Machine) stepNewID(ctx context.Context, session *store.Session, input string) (string, error) {
	if res := ValidateIdentificacionFormat(input); !res.OK {
		return res.Message + retrySuffix, nil
	}

	customer, err := m.directory.Lookup(ctx, input)
	if err != nil {
		return "", fmt.Errorf("lookup identificacion: %w", err)
	}
	if customer != nil {
		return msgIdentificacionTaken + retrySuffix, nil
	}

	session.Fields[store.FieldIdentificacion] = input
	session.Phase = store.PhaseNewName
	return msgAskNombre, nil
}

func (m *Machine) stepNewName(session *store.Session, input string) string {
	if res := ValidateNombre(input); !res.OK {
		return res.Message + retrySuffix
	}
	session.Fields[store.FieldNombre] = input
	session.Phase = store.PhaseNewPhone
	return msgAskTelefono
}

func (m *Machine) stepNewPhone(session *store.Session, input string) string {
	if res := ValidateTelefono(input); !res.OK {
		return res.Message + retrySuffix
	}
	session.Fields[store.FieldTelefono] = input
	session.Phase = store.PhaseNewEmail
	return msgAskEmail
}

func (m *Machine) stepNewEmail(ctx context.Context, session *store.Session, input string) (string, error) {
	if res := ValidateEmail(input); !res.OK {
		return res.Message + retrySuffix, nil
	}

	customer := &Customer{
		Identificacion: session.Fields[store.FieldIdentificacion],
		Nombre:         session.Fields[store.FieldNombre],
		Telefono:       session.Fields[store.FieldTelefono],
		Email:          input,
	}
	if _, err := m.directory.Create(ctx, customer); err != nil {
		if errors.Is(err, entity.ErrDuplicateIdentification) {
			// Someone else registered this id since the new_id check.
			// Send the user back to pick another one.
			session.Phase = store.PhaseNewID
			return msgIdentificacionTaken + retrySuffix, nil
		}
		// The email stays uncollected so the retry re-runs the whole
		// registration, never leaving a half written record behind.
		return "", fmt.Errorf("create customer: %w", err)
	}

	session.Fields[store.FieldEmail] = input
	session.Phase = store.PhaseQA
	return msgRegistered, nil
}
