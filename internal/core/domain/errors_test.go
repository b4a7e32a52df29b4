package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestPackageError(t *testing.T) {
	err := domain.ForPackages(domain.ErrPackageNotInstalled, "a")
	assert.EqualError(t, err, `package "a": package is not installed`)
	assert.ErrorIs(t, err, domain.ErrPackageNotInstalled)

	err = domain.ForPackages(zerr.Wrap(errors.New("boom"), domain.ErrInvalidPackageID.Error()), "../etc", "x")
	assert.EqualError(t, err, `packages "../etc", "x": invalid package id: boom`)

	var pe *domain.PackageError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"../etc", "x"}, pe.IDs)
}
