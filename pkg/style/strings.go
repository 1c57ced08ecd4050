package style

// String renderings of the computed keyword enums. These match the source
// keyword spellings so dumps read like declarations.

func (d Display) String() string {
	return keywordString(uint8(d), []string{"none", "block", "inline", "inline-block"})
}

func (p Position) String() string {
	return keywordString(uint8(p), []string{"static", "relative", "absolute", "fixed"})
}

func (o Overflow) String() string {
	return keywordString(uint8(o), []string{"visible", "hidden", "auto", "scroll"})
}

func (v Visibility) String() string {
	return keywordString(uint8(v), []string{"visible", "hidden"})
}

func (f FontStyle) String() string {
	return keywordString(uint8(f), []string{"normal", "italic"})
}

func (f FontWeight) String() string {
	return keywordString(uint8(f), []string{"normal", "bold"})
}

func (t TextAlign) String() string {
	return keywordString(uint8(t), []string{"left", "right", "center", "justify"})
}

func (w WhiteSpace) String() string {
	return keywordString(uint8(w), []string{"normal", "pre", "nowrap", "pre-wrap", "pre-line"})
}

func (p PointerEvents) String() string {
	return keywordString(uint8(p), []string{"auto", "none"})
}

func keywordString(index uint8, names []string) string {
	if int(index) < len(names) {
		return names[index]
	}
	return "invalid"
}
