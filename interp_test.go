package main

import "testing"

func TestInterp_resolution(t *testing.T) {
	vmTestCases{
		vmTest("numbers push themselves").
			withInput("1 2 3").
			expectStack(1, 2, 3),

		vmTest("max decimal").
			withInput("18446744073709551615").
			expectStack(-1),

		vmTest("decimal overflow").
			do(interpLine("18446744073709551616")).
			expectError(errNumberRange),

		vmTest("undefined word").
			do(interpLine("frob")).
			expectError(errUndefined),

		vmTest("digits with trailing junk are not a number").
			do(interpLine("12ab")).
			expectError(errUndefined),

		vmTest("word shadows primitive").
			withInput(lines(
				": dup 42 ;",
				"1 dup",
			)).
			expectStack(1, 42),

		vmTest("word shadows number").
			withInput(lines(
				": 5 6 ;",
				"5",
			)).
			expectStack(6),

		vmTest("latest definition wins").
			withInput(lines(
				": x 1 ;",
				": x 2 ;",
				"x",
			)).
			expectStack(2),

		vmTest("compiled callers keep their binding").
			withInput(lines(
				": x 1 ;",
				": y x ;",
				": x 2 ;",
				"y x",
			)).
			expectStack(1, 2),

		vmTest("error stops the rest of the line").
			do(interpLine("1 frob 2")).
			expectError(errUndefined).
			expectStack(1),
	}.run(t)
}

func TestInterp_modes(t *testing.T) {
	vmTestCases{
		vmTest("run mode executes primitives").
			withInput("1 2 +").
			expectStack(3),

		vmTest("compile mode defers execution").
			withInput(lines(
				": add2 2 + ;",
				"1",
				"add2",
			)).
			expectStack(3),

		vmTest("ignore mode skips numbers and primitives").
			withInput("0 ? [ 1 2 + ] 9").
			expectStack(9),
	}.run(t)
}
