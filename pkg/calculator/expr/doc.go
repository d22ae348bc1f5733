/*
Package expr parses and evaluates restricted arithmetic expressions.

# Overview

expr implements the arithmetic core of the calculator. Parse turns a string
into an expression tree and Eval walks the tree computing a float64. No
general-purpose code execution is involved: the grammar is written out by hand
and only the constructs listed below can ever produce a tree.

# Expression Syntax

	<expr>    := <term> { ('+' | '-') <term> }
	<term>    := <unary> { ('*' | '/' | '%') <unary> }
	<unary>   := ('+' | '-') <unary> | <power>
	<power>   := <primary> [ '**' <unary> ]
	<primary> := <number> | '(' <expr> ')'
	<number>  := digits [ '.' [digits] ] [ exponent ] | '.' digits [ exponent ]

The caret is sugar for exponentiation: "2^3" scans as the same token as
"2**3". Error columns count runes from 1 in the text as given. Exponentiation is right-associative and binds tighter than a leading
sign, so "-2**2" is -4 and "2**3**2" is 512. The exponent may itself carry a
sign: "2**-1" is 0.5.

# Operators

	+    Addition, or identity when unary
	-    Subtraction, or negation when unary
	*    Multiplication
	/    Division (fails with ErrDivisionByZero on a zero denominator)
	%    Floating-point remainder, sign of the dividend (fails with ErrModuloByZero)
	**   Exponentiation

# Rejected Input

Input that a richer expression language would accept is rejected with an
*errors.UnsupportedError: names such as "pi" or "sqrt", calls, imaginary
literals like "2j", comparison, boolean and bitwise operators, floor division
"//", strings, and collection brackets. Everything else that does not match
the grammar is an *errors.SyntaxError.

# Examples

	v, err := expr.Evaluate("2 + 3 * 4") // 14
	v, err = expr.Evaluate("7^0.5")      // 2.6457513110645907
	_, err = expr.Evaluate("5 % 0")      // errors.ErrModuloByZero

Parse and evaluate separately:

	tree, err := expr.Parse("(1 + 2) * 3")
	if err != nil {
	    return err
	}
	fmt.Println(tree)            // ((1 + 2) * 3)
	v, err := expr.Eval(tree)    // 9

# Non-finite Results

Eval only fails on zero denominators. Other non-finite outcomes such as
"0**-1" (+Inf) or "(-8)**0.5" (NaN) are returned as values; rendering them is
the formatter's job.
*/
package expr
