package display

import "strings"

// Display glyphs for the operators whose internal spelling differs.
const (
	GlyphMul = "×"
	GlyphDiv = "÷"
	GlyphPow = "^"
)

var (
	// Replacer compares patterns in argument order, so ** must precede *.
	toDisplay  = strings.NewReplacer("**", GlyphPow, "*", GlyphMul, "/", GlyphDiv)
	toInternal = strings.NewReplacer(GlyphMul, "*", GlyphDiv, "/", GlyphPow, "**")
)

// ToDisplay rewrites an internal expression with display glyphs:
// ** becomes ^, * becomes × and / becomes ÷.
func ToDisplay(internal string) string {
	return toDisplay.Replace(internal)
}

// ToInternal rewrites display glyphs to the internal operators:
// × becomes *, ÷ becomes / and ^ becomes **.
//
// Text that is already internal passes through unchanged, so mixing the two
// spellings is safe. ToInternal(ToDisplay(s)) == s for internal text without
// a caret; a caret in internal text is read back as **.
func ToInternal(text string) string {
	return toInternal.Replace(text)
}
