package privacy

import "strings"

// Fixed placeholders. Identity numbers and dates never get a partial
// reveal, a partially visible national ID is still a national ID.
const (
	placeholderOpaque = "∗∗∗∗∗∗∗∗"
	placeholderMoney  = "—"
)

// Mask produces the partially obscured representation of a raw value.
// It is pure and stateless and is never handed the grant context, so it
// cannot branch on permissions; the access decision happens before the
// masker is called.
func Mask(field, raw string) string {
	switch field {
	case FieldMobile:
		return maskMobile(raw)
	case FieldEmail:
		return maskEmail(raw)
	case FieldSalary:
		return placeholderMoney
	case FieldNationalID, FieldDateOfBirth:
		return placeholderOpaque
	default:
		return placeholderOpaque
	}
}

// maskMobile keeps the leading 3 and trailing 2 characters and stars the
// rest, preserving length. Values too short to hide anything that way
// are starred entirely.
func maskMobile(raw string) string {
	runes := []rune(raw)
	if len(runes) <= 5 {
		return strings.Repeat("*", len(runes))
	}

	var b strings.Builder
	b.Grow(len(runes))
	for i, r := range runes {
		if i < 3 || i >= len(runes)-2 {
			b.WriteRune(r)
		} else {
			b.WriteRune('*')
		}
	}
	return b.String()
}

// maskEmail keeps the first character of the local part and the full
// domain. Anything that does not look like an email is fully replaced.
func maskEmail(raw string) string {
	at := strings.Index(raw, "@")
	if at <= 0 {
		return placeholderOpaque
	}

	local := []rune(raw[:at])
	var b strings.Builder
	b.WriteRune(local[0])
	b.WriteString(strings.Repeat("*", len(local)-1))
	b.WriteString(raw[at:])
	return b.String()
}
