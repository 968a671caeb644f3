package errs_test

import (
	"testing"

	"github.com/Astemirdum/library-catalog/catalog/internal/errs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Parallel()
	verr := &errs.ValidationError{Messages: []string{"Book must be specified"}}

	require.Equal(t, errs.KindNotFound, errs.Kind(errors.Wrap(errs.ErrNotFound, "author")))
	require.Equal(t, errs.KindValidationFailed, errs.Kind(verr))
	require.Equal(t, errs.KindValidationFailed, errs.Kind(errors.Wrap(verr, "create")))
	require.Equal(t, errs.KindInternal, errs.Kind(errors.New("connection refused")))
	require.Equal(t, "ValidationFailed", errs.Kind(verr).String())

	require.Equal(t, []string{"Book must be specified"}, errs.Messages(errors.Wrap(verr, "create")))
	require.Nil(t, errs.Messages(errs.ErrNotFound))
}
