package help

// Header returns text styled as a header (bold + cyan).
func Header(text string) string {
	return ColorBold + ColorCyan + text + ColorReset
}

// StyleGroup returns text styled as a group heading (bold + green).
func StyleGroup(text string) string {
	return ColorBold + ColorGreen + text + ColorReset
}

// StyleKey returns text styled as a menu key (cyan).
func StyleKey(text string) string {
	return ColorCyan + text + ColorReset
}

// StyleValue returns text styled as a literal value the user can type (yellow).
func StyleValue(text string) string {
	return ColorYellow + text + ColorReset
}

// Dim returns text in gray.
func Dim(text string) string {
	return ColorGray + text + ColorReset
}

// Bold returns text in bold style.
func Bold(text string) string {
	return ColorBold + text + ColorReset
}

// ValueList styles each value and joins them with dim commas.
func ValueList(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += Dim(", ")
		}
		out += StyleValue(v)
	}
	return out
}
