package catalog

import (
	"context"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// ErrRetrievalFailed is the single failure signal every Source reports. Callers match
// it with errors.Is; the wrapped cause carries transport or status detail.
var ErrRetrievalFailed = pkgerrors.New(pkgerrors.CodeDependency, "catalog retrieval failed")

// Source retrieves the complete catalog. Implementations return either the full
// product list or an error wrapping ErrRetrievalFailed, never a partial catalog.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) ([]Product, error)

func (fn SourceFunc) Fetch(ctx context.Context) ([]Product, error) {
	return fn(ctx)
}

func retrievalFailure(err error) error {
	if err == nil {
		return ErrRetrievalFailed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, ErrRetrievalFailed.Message())
}
