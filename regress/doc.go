// SPDX-License-Identifier: MIT

// Package regress estimates per-pulse amplitudes by ordinary least squares
// and certifies the fit.
//
// What & Why:
//
//	Given a trace y sampled at times t and a burst model, the regressor
//	matrix X (one column per pulse) turns amplitude recovery into the linear
//	problem min ||y − X·a||². The default solver factorizes X with Householder
//	QR and refuses rank-deficient designs; SolverSVD instead returns the
//	minimum-norm pseudo-inverse solution through gonum's SVD.
//
// Statistics:
//
//	R²          = 1 − SS_res/SS_tot
//	adjusted R² = 1 − (1−R²)·(n−1)/(n−k+1)   (AdjustedRSquared)
//	            = 1 − (1−R²)·(n−1)/(n−k−1)   (ConventionalAdjustedRSquared)
//	χ²          = Σ r_i²/σ_i²,  reduced χ² = χ²/dof,  p = 1 − CDF_χ²(χ², dof)
//
// Quality gate:
//
//	A fit whose R² falls below the threshold (DefaultThreshold) returns its
//	Result together with a *QualityError. The error carries the same Result,
//	so a caller can inspect or plot a rejected fit before deciding. R² below
//	the reject floor marks the error Severe.
//
// Concurrency:
//
//	A Fitter caches its last Result and must not be shared between
//	goroutines; use one Fitter per trace. The package-level statistic
//	functions are pure.
package regress
