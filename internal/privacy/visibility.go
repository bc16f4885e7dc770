// Package privacy implements field-level data protection for officer
// records: visibility classification, the access decision table, and
// masking. Everything here is a pure function over its inputs so the
// policy can be tested exhaustively and invoked concurrently without
// shared state.
package privacy

// Level classifies how sensitive a field is. The set is closed on
// purpose: access rules stay auditable as one decision table instead
// of conditionals scattered across call sites.
type Level string

const (
	LevelPublic     Level = "public"
	LevelInternal   Level = "internal"
	LevelRestricted Level = "restricted"
)

// Role is the caller's role for the duration of one request.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleHR      Role = "hr"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
	RoleViewer  Role = "viewer"
)

// ParseRole maps a stored role string onto the closed role set. Anything
// unknown degrades to viewer, the least privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleHR, RoleManager, RoleUser, RoleViewer:
		return Role(s)
	default:
		return RoleViewer
	}
}

// Protected field names as they appear in rendered records, override
// columns and audit entries.
const (
	FieldFullName    = "full_name"
	FieldDesignation = "designation"
	FieldOffice      = "office"
	FieldMobile      = "personal_mobile"
	FieldEmail       = "personal_email"
	FieldNationalID  = "national_id"
	FieldSalary      = "salary"
	FieldDateOfBirth = "date_of_birth"
)

// baselineLevels is the compiled-in default classification per field.
// Identity numbers, salary and birth dates default to restricted;
// contact fields to internal; the public directory fields to public.
var baselineLevels = map[string]Level{
	FieldFullName:    LevelPublic,
	FieldDesignation: LevelPublic,
	FieldOffice:      LevelPublic,
	FieldMobile:      LevelInternal,
	FieldEmail:       LevelInternal,
	FieldNationalID:  LevelRestricted,
	FieldSalary:      LevelRestricted,
	FieldDateOfBirth: LevelRestricted,
}

// renderOrder keeps rendered records and exports stable.
var renderOrder = []string{
	FieldFullName,
	FieldDesignation,
	FieldOffice,
	FieldMobile,
	FieldEmail,
	FieldNationalID,
	FieldSalary,
	FieldDateOfBirth,
}

// Fields returns every classified field name in render order.
func Fields() []string {
	out := make([]string, len(renderOrder))
	copy(out, renderOrder)
	return out
}

// IsProtected reports whether the field participates in visibility
// classification at all.
func IsProtected(field string) bool {
	_, ok := baselineLevels[field]
	return ok
}

// ValidLevel reports whether s is one of the three visibility levels.
func ValidLevel(s string) bool {
	switch Level(s) {
	case LevelPublic, LevelInternal, LevelRestricted:
		return true
	default:
		return false
	}
}

// Subject is the record whose fields are being protected. Implemented by
// the officer data model; the policy layer only ever reads visibility
// attributes, never business data.
type Subject interface {
	SubjectID() int64
	// VisibilityOverride returns the per-record override for a field,
	// or empty string when the baseline applies.
	VisibilityOverride(field string) string
}

// LevelFor resolves the effective visibility of one field on one subject:
// a valid per-subject override wins, otherwise the baseline applies. An
// invalid override or an unknown field resolves to restricted, never to
// something more permissive.
func LevelFor(subject Subject, field string) Level {
	if subject != nil {
		if override := subject.VisibilityOverride(field); override != "" {
			if ValidLevel(override) {
				return Level(override)
			}
			return LevelRestricted
		}
	}
	if level, ok := baselineLevels[field]; ok {
		return level
	}
	return LevelRestricted
}
