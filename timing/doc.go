// SPDX-License-Identifier: MIT

// Package timing places pulses inside a periodic burst.
//
// Pulses come in groups of four. Group g starts at g·Period after the burst
// start; inside a group, pulse k (k = n mod 4) sits at the cumulative gap
// Tau[k] with Tau[0] = 0, Tau[1] = δ₁, Tau[2] = δ₁+δ₂, Tau[3] = δ₁+δ₂+δ₃.
//
//	TimeFromStart(n) = Period·⌊n/4⌋ + Tau[n mod 4]
//
// A Timing value is immutable after New and safe for concurrent use.
package timing
