// Package evaluator implements an arbitrary-precision calculator for
// single-line expressions with persistent variables.
//
// An expression is a flat sequence of numbers, variables, operators, function
// names, and parentheses, optionally preceded by an assignment: "x = 2 (3 +
// 4)" is not valid, but "x = 2 * (3 + 4)" is, and afterward "x / 2" evaluates
// to 7. Values live in the Evaluator that assigned them for as long as the
// Evaluator does.
//
// Operators are resolved by priority rather than by building a syntax tree.
// Binary operators of equal priority group to the left, so "2^3^2" is 64.
// Unary + and - bind tighter than any binary operator, so "-2^2" is 4 and
// "3 * -2" is -6. Each pair of parentheses raises the priority of everything
// inside it above everything outside.
//
package evaluator
