package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"mars_shop/internal/apperr"
)

func TestGormErrClassification(t *testing.T) {
	driverErr := errors.New("connection reset by peer")
	validation := apperr.Validation("déjà classée")

	cases := []struct {
		name      string
		err       error
		notFound  func() error
		duplicate func() error
		want      apperr.Kind
	}{
		{"introuvable", gorm.ErrRecordNotFound, productNotFound, nil, apperr.KindNotFound},
		{"introuvable enveloppé", fmt.Errorf("lecture: %w", gorm.ErrRecordNotFound), orderNotFound, nil, apperr.KindNotFound},
		{"doublon", gorm.ErrDuplicatedKey, nil, emailTaken, apperr.KindConflict},
		{"doublon sans traduction", gorm.ErrDuplicatedKey, productNotFound, nil, apperr.KindTransient},
		{"introuvable sans traduction", gorm.ErrRecordNotFound, nil, emailTaken, apperr.KindTransient},
		{"erreur du driver", driverErr, productNotFound, emailTaken, apperr.KindTransient},
		{"erreur applicative conservée", validation, productNotFound, emailTaken, apperr.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := gormErr("test", tc.err, tc.notFound, tc.duplicate)
			assert.Equal(t, tc.want, apperr.KindOf(got), "%v", got)
		})
	}

	assert.NoError(t, gormErr("test", nil, productNotFound, emailTaken))
	assert.ErrorIs(t, gormErr("test", driverErr, nil, nil), driverErr)
}

func TestScyllaErrClassification(t *testing.T) {
	assert.NoError(t, scyllaErr("test", nil, userNotFound))
	assert.True(t, apperr.Is(scyllaErr("test", gocql.ErrNotFound, userNotFound), apperr.KindNotFound))
	assert.True(t, apperr.Is(scyllaErr("test", gocql.ErrNotFound, nil), apperr.KindTransient))

	timeout := gocql.ErrTimeoutNoResponse
	err := scyllaErr("test", timeout, userNotFound)
	assert.True(t, apperr.Is(err, apperr.KindTransient))
	assert.ErrorIs(t, err, timeout)
}
