// Package validation holds the pure input checks shared by every form in the
// application: CPF check digits, contact-field shapes, the password policy,
// free-text sanitizing and name shapes.
//
// Every function is total over arbitrary strings and keeps no state, so they
// are safe to call concurrently and on every keystroke.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	cpfLength = 11

	passwordMinLength = 6
	passwordMaxLength = 128

	petNameMaxLength     = 50
	vaccineNameMaxLength = 100
)

// Password policy messages, in the order the rules are evaluated.
const (
	MsgPasswordTooShort  = "A senha deve ter pelo menos 6 caracteres"
	MsgPasswordNoUpper   = "A senha deve conter pelo menos uma letra maiúscula"
	MsgPasswordNoLower   = "A senha deve conter pelo menos uma letra minúscula"
	MsgPasswordNoDigit   = "A senha deve conter pelo menos um número"
	MsgPasswordTooLong   = "A senha não pode ter mais de 128 caracteres"
	MsgPasswordTooCommon = "Esta senha é muito comum. Escolha uma senha mais segura"
)

// space matches what browsers treat as whitespace: RE2's \s is ASCII only.
const space = `\s\v\p{Z}\x{FEFF}`

var (
	emailPattern   = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
	petNamePattern = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}` + space + `]+$`)

	commonPasswords = map[string]struct{}{
		"123456":    {},
		"password":  {},
		"123456789": {},
		"qwerty":    {},
		"abc123":    {},
	}
)

// PasswordResult is the outcome of checking a password against the policy.
type PasswordResult struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

// Digits returns s with every non-digit character removed.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// CPF reports whether raw holds a valid CPF once formatting is stripped.
// Sequences of eleven identical digits are rejected even though they satisfy
// the check-digit equations.
func CPF(raw string) bool {
	d := Digits(raw)
	if len(d) != cpfLength {
		return false
	}
	if strings.Count(d, d[:1]) == cpfLength {
		return false
	}
	if cpfCheckDigit(d[:9], 10) != int(d[9]-'0') {
		return false
	}
	return cpfCheckDigit(d[:10], 11) == int(d[10]-'0')
}

// cpfCheckDigit computes the modulo-11 check digit over digits, weighting the
// first position with firstWeight and decreasing by one per position.
func cpfCheckDigit(digits string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		rem = 0
	}
	return rem
}

// Email is a syntactic sanity check: something@something.something with no
// whitespace or extra '@'.
func Email(raw string) bool {
	return emailPattern.MatchString(raw)
}

// Phone accepts 10 (landline) or 11 (mobile) digits, area code included.
func Phone(raw string) bool {
	n := len(Digits(raw))
	return n == 10 || n == 11
}

// Password evaluates every rule of the policy and collects all violations.
func Password(raw string) PasswordResult {
	violations := make([]string, 0, 6)
	length := utf8.RuneCountInString(raw)

	if length < passwordMinLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if !strings.ContainsFunc(raw, isASCIIUpper) {
		violations = append(violations, MsgPasswordNoUpper)
	}
	if !strings.ContainsFunc(raw, isASCIILower) {
		violations = append(violations, MsgPasswordNoLower)
	}
	if !strings.ContainsFunc(raw, isASCIIDigit) {
		violations = append(violations, MsgPasswordNoDigit)
	}
	if length > passwordMaxLength {
		violations = append(violations, MsgPasswordTooLong)
	}
	if _, ok := commonPasswords[strings.ToLower(raw)]; ok {
		violations = append(violations, MsgPasswordTooCommon)
	}

	return PasswordResult{Valid: len(violations) == 0, Violations: violations}
}

func isASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isASCIILower(r rune) bool { return r >= 'a' && r <= 'z' }
func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

// Sanitize trims surrounding whitespace and drops '<' and '>'. It is not a
// replacement for encoding output at render time.
func Sanitize(raw string) string {
	s := strings.TrimFunc(raw, unicode.IsSpace)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	// Removing brackets can expose new outer whitespace ("< x >").
	return strings.TrimFunc(s, unicode.IsSpace)
}

// PetName accepts 1 to 50 letters (accented Latin letters included) and
// whitespace after sanitizing.
func PetName(raw string) bool {
	s := norm.NFC.String(Sanitize(raw))
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= petNameMaxLength && petNamePattern.MatchString(s)
}

// VaccineName accepts 1 to 100 characters of any kind after sanitizing.
func VaccineName(raw string) bool {
	n := utf8.RuneCountInString(Sanitize(raw))
	return n >= 1 && n <= vaccineNameMaxLength
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Anything else is
// returned unchanged.
func FormatCPF(raw string) string {
	d := Digits(raw)
	if len(d) != cpfLength {
		return raw
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatPhone renders 10 or 11 digits as (00) 0000-0000 or (00) 00000-0000.
func FormatPhone(raw string) string {
	d := Digits(raw)
	switch len(d) {
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:10]
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:11]
	default:
		return raw
	}
}
