package twofactor

import "fmt"

// MethodKind names a second-factor method in storage and API responses.
type MethodKind string

const (
	MethodNone  MethodKind = "none"
	MethodTOTP  MethodKind = "totp"
	MethodEmail MethodKind = "email"
)

// Method is a configured second factor: TOTP or Email.
type Method interface {
	Kind() MethodKind
	isMethod()
}

// TOTP is an authenticator-app method. The secret is stored encrypted.
type TOTP struct {
	EncryptedSecret string
}

func (TOTP) Kind() MethodKind { return MethodTOTP }
func (TOTP) isMethod() {}

// Email delivers one-time codes to the user's address.
type Email struct{}

func (Email) Kind() MethodKind { return MethodEmail }
func (Email) isMethod() {}

// State is a user's two-factor state: Disabled, PendingSetup or Enabled.
type State interface {
	isState()
}

// Disabled means no second factor is configured.
type Disabled struct{}

// PendingSetup means a method was chosen but its first code has not been
// confirmed yet. It does not protect the account.
type PendingSetup struct {
	Method Method
}

// Enabled means the method was confirmed and recovery codes were issued.
type Enabled struct {
	Method         Method
	RecoveryHashes []string
}

func (Disabled) isState() {}
func (PendingSetup) isState() {}
func (Enabled) isState() {}

// Record is the flat shape a State is stored in.
type Record struct {
	Enabled         bool
	Method          MethodKind
	EncryptedSecret *string
	RecoveryHashes  []string
}

// RecordOf flattens s for storage.
func RecordOf(s State) Record {
	switch s := s.(type) {
	case PendingSetup:
		r := Record{Method: s.Method.Kind()}
		if t, ok := s.Method.(TOTP); ok {
			r.EncryptedSecret = &t.EncryptedSecret
		}
		return r
	case Enabled:
		r := Record{Enabled: true, Method: s.Method.Kind(), RecoveryHashes: append([]string(nil), s.RecoveryHashes...)}
		if t, ok := s.Method.(TOTP); ok {
			r.EncryptedSecret = &t.EncryptedSecret
		}
		return r
	default:
		return Record{Method: MethodNone}
	}
}

// State rebuilds the typed state, rejecting rows that break the invariants:
// an enabled row needs a method, and a TOTP row needs its secret.
func (r Record) State() (State, error) {
	kind := r.Method
	if kind == "" {
		kind = MethodNone
	}

	var method Method
	switch kind {
	case MethodNone:
		if r.Enabled {
			return nil, fmt.Errorf("%w: enabled without a method", ErrCorruptProfile)
		}
		return Disabled{}, nil
	case MethodTOTP:
		if r.EncryptedSecret == nil || *r.EncryptedSecret == "" {
			return nil, fmt.Errorf("%w: totp method without a secret", ErrCorruptProfile)
		}
		method = TOTP{EncryptedSecret: *r.EncryptedSecret}
	case MethodEmail:
		method = Email{}
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrCorruptProfile, r.Method)
	}

	if !r.Enabled {
		return PendingSetup{Method: method}, nil
	}
	return Enabled{Method: method, RecoveryHashes: append([]string(nil), r.RecoveryHashes...)}, nil
}
