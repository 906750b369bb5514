package testutil

// ScanToBlank moves right over 0s and 1s and accepts on the first blank.
const ScanToBlank = `0 0 0 0 R
0 1 0 1 R
0 B f B R
`

// OnlyZero accepts nothing: it has no rule for a 1 or a blank.
const OnlyZero = `0 0 0 0 R
`

// Complement flips every bit, then accepts at the first blank.
const Complement = `// flip bits left to right
0 0 0 1 R
0 1 0 0 R
0 B f B R // done
`

// WalkLeft steps left from the start, off the end of the tape, writes a 1
// there and accepts.
const WalkLeft = `0 0 1 0 L
0 1 1 1 L
1 B 2 1 L
2 B f B R
`

// Commented has exactly one rule.
const Commented = `0 0 1 1 L
// comment

`
