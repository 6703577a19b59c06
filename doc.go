// Package apint implements arbitrary-precision integer arithmetic on
// machine-word limbs.
//
// The public surface is two immutable value types, Nat for magnitudes and
// Int for signed values, plus Ring for repeated modular arithmetic against
// a fixed modulus. Operations return fresh values; recoverable conditions
// (division by zero, parse errors, narrowing overflow) are error values,
// while usage errors such as mixing elements of different rings panic.
//
// Multiplication dispatches between schoolbook, Karatsuba and Toom-Cook-3
// by operand length, and division switches from schoolbook long division to
// a divide-and-conquer scheme above a threshold, so large-operand work is
// sub-quadratic throughout. The thresholds are tunable for benchmarking.
package apint
