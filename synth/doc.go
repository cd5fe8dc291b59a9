// SPDX-License-Identifier: MIT
// Package: burstfit/synth
//
// Purpose:
//   - Produce reproducible synthetic scope traces for tests, demos and the
//     simulate command: burst waveforms from known amplitudes, optionally
//     with Gaussian noise, and noise-only traces that contain no burst.
//
// Contract:
//   - Strict determinism per (model, amplitudes, options). Noise is drawn
//     from the RNG given by WithRand/WithSeed, else from DefaultSeed.
//   - Option constructors validate and panic on meaningless inputs; the
//     builders themselves return errors and never panic.
//
// Sampling:
//   - Times are a uniform grid t_i = tMin + i/rate over the closed span
//     [tMin, tMax] (DefaultSpan at DefaultSampleRate: 4 GS/s over
//     −10 ns … 200 ns, 841 samples).
package synth
