package source

import (
	"bufio"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pcerrors "github.com/alexisbeaulieu97/pipecheck/pkg/errors"
)

func TestClassifyScanError(t *testing.T) {
	t.Parallel()

	t.Run("over-long record is permanent", func(t *testing.T) {
		t.Parallel()
		// Retrying an output whose record exceeds the cap can never succeed.
		err := classifyScanError("/tmp/out.txt", bufio.ErrTooLong)
		require.True(t, pcerrors.IsPermanent(err))
		require.False(t, pcerrors.IsTransient(err))
		require.ErrorIs(t, err, bufio.ErrTooLong)
	})

	t.Run("other mid-read faults stay transient", func(t *testing.T) {
		t.Parallel()
		err := classifyScanError("/tmp/out.txt", errors.New("read: connection reset by peer"))
		require.True(t, pcerrors.IsTransient(err))
		require.False(t, pcerrors.IsPermanent(err))
	})
}
