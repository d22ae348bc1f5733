/*
Package display turns evaluation results and expressions into the text a
calculator shows.

# Results

Format renders a float64 for the main display. Whole numbers print without a
fractional part, other values with ten significant digits, and NaN or the
infinities as ErrorText:

	display.Format(10.0 / 4)      // "2.5"
	display.Format(math.Sqrt(7))  // "2.645751311"
	display.Format(math.Inf(1))   // "Error"

# Notation

Expressions are evaluated in internal notation (*, /, **) and shown in display
notation (×, ÷, ^). ToDisplay and ToInternal convert between the two; both
expect a string that is entirely in one notation.

	display.ToDisplay("2**3*4/2")  // "2^3×4÷2"
	display.ToInternal("2^3×4÷2")  // "2**3*4/2"
*/
package display
