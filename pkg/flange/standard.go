package flange

import (
	"regexp"
	"strings"
)

// ReferenceStandard is the standard the embedded table follows
const ReferenceStandard = "SABS 1123"

var (
	leadingDigits = regexp.MustCompile(`^(\d+)`)
	trailingTable = regexp.MustCompile(`/\d+$`)
)

// IsFallbackFriendly reports whether reference table values are acceptable
// for the standard without a caveat. SABS and SANS standards qualify.
func IsFallbackFriendly(standard string) bool {
	s := strings.ToLower(standard)
	return strings.Contains(s, "sabs") || strings.Contains(s, "sans")
}

// Designation formats "<standard> T<pressure><type>", for example
// "SABS 1123 T1000/3". The pressure is the leading number of the class
// designation, or the designation with any trailing "/NN" removed.
func Designation(standard, pressureClass, typeCode string) string {
	standard = strings.TrimSpace(standard)
	if standard == "" {
		standard = ReferenceStandard
	}
	pressureClass = strings.TrimSpace(pressureClass)
	typeCode = strings.TrimSpace(typeCode)
	if pressureClass == "" && typeCode == "" {
		return standard
	}

	pressure := trailingTable.ReplaceAllString(pressureClass, "")
	if m := leadingDigits.FindStringSubmatch(pressureClass); m != nil {
		pressure = m[1]
	}
	return standard + " T" + pressure + typeCode
}

// Caveat returns the warning shown when reference values stand in for a
// standard the table does not cover, or "" when none is needed.
func Caveat(standard string, fromCatalog bool) string {
	if fromCatalog || IsFallbackFriendly(standard) {
		return ""
	}
	return "Data not available for " + standard + " - showing " + ReferenceStandard + " reference values"
}
