package analysis

// Grade maps a weighted score to a letter grade, first match wins.
// The D-range boundaries are strict (>) while all others are inclusive, so a
// score of exactly 67, 63, or 60 falls through to F. Kept that way for
// compatibility with existing consumers.
func Grade(score float64) string {
	switch {
	case score >= 97:
		return "A+"
	case score >= 93:
		return "A"
	case score >= 90:
		return "A-"
	case score >= 87:
		return "B+"
	case score >= 83:
		return "B"
	case score >= 80:
		return "B-"
	case score >= 77:
		return "C+"
	case score >= 73:
		return "C"
	case score >= 70:
		return "C-"
	case score > 67:
		return "D+"
	case score > 63:
		return "D"
	case score > 60:
		return "D-"
	default:
		return "F"
	}
}
