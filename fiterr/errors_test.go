package fiterr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/burstfit/fiterr"
)

func TestNew_MatchesSelfAndCategory(t *testing.T) {
	errBadSigma := fiterr.New(fiterr.ErrDomain, "pulse: sigma must be > 0")

	require.ErrorIs(t, errBadSigma, errBadSigma)
	require.ErrorIs(t, errBadSigma, fiterr.ErrDomain)
	require.False(t, errors.Is(errBadSigma, fiterr.ErrShapeMismatch))
	require.Equal(t, "pulse: sigma must be > 0", errBadSigma.Error())
}

func TestWrapf_KeepsChain(t *testing.T) {
	errCount := fiterr.New(fiterr.ErrShapeMismatch, "burst: amplitude count mismatch")

	err := fiterr.Wrapf("Evaluate", errCount, "got %d want %d", 4, 5)
	require.ErrorIs(t, err, errCount)
	require.ErrorIs(t, err, fiterr.ErrShapeMismatch)
	require.Equal(t, "Evaluate: got 4 want 5: burst: amplitude count mismatch", err.Error())

	bare := fiterr.Wrapf("Fit", fiterr.ErrPrecondition, "")
	require.Equal(t, "Fit: burstfit: precondition not met", bare.Error())
}
