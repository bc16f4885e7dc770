package privacy

// Outcome is what the renderer is allowed to do with one field value.
type Outcome string

const (
	// OutcomeShow renders the raw value.
	OutcomeShow Outcome = "SHOW"
	// OutcomeMask renders the masked representation.
	OutcomeMask Outcome = "MASK"
	// OutcomeRedact omits the field key from the response entirely, so a
	// caller can tell "hidden value" apart from "no value".
	OutcomeRedact Outcome = "REDACT"
)

// GrantSet is the set of fields a caller holds active unmask grants for
// on one specific subject. A nil GrantSet covers nothing.
type GrantSet map[string]struct{}

// NewGrantSet builds a GrantSet from field names.
func NewGrantSet(fields ...string) GrantSet {
	gs := make(GrantSet, len(fields))
	for _, f := range fields {
		gs[f] = struct{}{}
	}
	return gs
}

// Covers reports whether the grant set includes the field.
func (gs GrantSet) Covers(field string) bool {
	if gs == nil {
		return false
	}
	_, ok := gs[field]
	return ok
}

// AccessDecision is the per-field result of one evaluation. It is never
// persisted; it drives masking and seeds the audit entry for restricted
// fields.
type AccessDecision struct {
	Field   string
	Level   Level
	Outcome Outcome
}

// Decide applies the closed decision table. Rules in order, first match
// wins:
//
//	public     -> SHOW for everyone
//	internal   -> SHOW for admin/hr/manager/user, MASK for viewer
//	restricted -> SHOW for admin/hr, SHOW with an active grant,
//	              MASK for manager/user, REDACT for viewer
//
// Roles and levels outside the table take the viewer/restricted branch,
// the most restrictive one.
func Decide(role Role, field string, level Level, grants GrantSet) Outcome {
	switch level {
	case LevelPublic:
		return OutcomeShow

	case LevelInternal:
		switch role {
		case RoleAdmin, RoleHR, RoleManager, RoleUser:
			return OutcomeShow
		default:
			return OutcomeMask
		}

	default:
		// restricted, plus anything unknown
		switch role {
		case RoleAdmin, RoleHR:
			return OutcomeShow
		case RoleManager, RoleUser:
			if grants.Covers(field) {
				return OutcomeShow
			}
			return OutcomeMask
		default:
			// Viewers are redacted even when a grant exists; a grant must
			// never raise a role above what the table allows it.
			return OutcomeRedact
		}
	}
}

// Evaluate resolves the field's effective level on the subject and runs
// it through the decision table in one step.
func Evaluate(role Role, subject Subject, field string, grants GrantSet) AccessDecision {
	level := LevelFor(subject, field)
	return AccessDecision{
		Field:   field,
		Level:   level,
		Outcome: Decide(role, field, level, grants),
	}
}
