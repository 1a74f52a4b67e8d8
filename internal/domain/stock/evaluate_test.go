package stock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/internal/domain"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/entity"
	"github.com/tharaka19/CCIMS-sub000/internal/domain/stock"
)

func TestEvaluate_SinSnapshot(t *testing.T) {
	next, err := stock.EquipmentRules().Evaluate(entity.OperationAdd, 5, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 15, next)
}

func TestEvaluate_SnapshotCoincide(t *testing.T) {
	next, err := stock.ClientProjectRules().Evaluate(entity.OperationRemove, 3, 5, intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, 8, next)
}

func TestEvaluate_SnapshotViejoEsConflicto(t *testing.T) {
	_, err := stock.EquipmentRules().Evaluate(entity.OperationRemove, 1, 10, intPtr(12))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.False(t, errors.Is(err, domain.ErrValidation))
}

func TestEvaluate_RechazoDevuelveMensajes(t *testing.T) {
	_, err := stock.EquipmentRules().Evaluate(entity.OperationRemove, 5, 3, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, []string{stock.MsgInvalidRemoveQuantity}, domain.ValidationMessages(err))
}
