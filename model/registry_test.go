package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pkpd/expr"
	"github.com/katalvlaran/pkpd/model"
)

func TestRegistry_Reserve(t *testing.T) {
	r := model.NewRegistry()
	require.NoError(t, r.Reserve("CENTRAL", model.KindCompartment))
	require.NoError(t, r.Reserve("Drug", model.KindSpecies))

	err := r.Reserve("CENTRAL", model.KindParameter)
	require.ErrorIs(t, err, model.ErrDuplicateName)

	var dup *model.DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "CENTRAL", dup.Name)
	assert.Equal(t, model.KindCompartment, dup.Existing)
	assert.Equal(t, model.KindParameter, dup.Requested)

	assert.Equal(t, []string{"CENTRAL", "Drug"}, r.Names())
	assert.Equal(t, 2, r.Len())
	k, ok := r.Kind("Drug")
	assert.True(t, ok)
	assert.Equal(t, model.KindSpecies, k)
}

func TestRegistry_InvalidNames(t *testing.T) {
	r := model.NewRegistry()
	for _, name := range []string{"", "1abc", "with space", "Drug@CENTRAL", "a-b"} {
		assert.ErrorIs(t, r.Reserve(name, model.KindParameter), model.ErrInvalidName, name)
	}
	assert.Zero(t, r.Len())
}

func TestRegistry_TimeSymbolReserved(t *testing.T) {
	assert.False(t, model.ValidName(model.TimeSymbol))
	assert.True(t, model.ValidName("t0"))
	assert.ErrorIs(t, model.NewRegistry().Reserve("t", model.KindSpecies), model.ErrInvalidName)

	m := model.New("time")
	_, err := m.AddParameter("t", 1)
	assert.ErrorIs(t, err, model.ErrInvalidName)
	_, err = m.AddSpecies("t")
	assert.ErrorIs(t, err, model.ErrInvalidName)
	assert.Empty(t, m.Names())

	_, err = m.Apply(func(tx *model.Tx) error {
		_, err := tx.AddExpression("clock", expr.Symbol("t"))
		return err
	})
	assert.ErrorIs(t, err, model.ErrUnknownComponent)
	_, err = m.Apply(func(tx *model.Tx) error {
		_, err := tx.AddExpression("clock", expr.Time())
		return err
	})
	assert.NoError(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "parameter", model.KindParameter.String())
	assert.Equal(t, "rule", model.KindRule.String())
	assert.Equal(t, "unknown", model.Kind(0).String())
}
