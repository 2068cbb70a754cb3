package warehouse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appwarehouse "github.com/yogapit/eshop/application/warehouse"
	"github.com/yogapit/eshop/constant"
	txmocks "github.com/yogapit/eshop/mocks/repository/tx"
	warehousemocks "github.com/yogapit/eshop/mocks/repository/warehouse"
	"github.com/yogapit/eshop/model"
	cerr "github.com/yogapit/eshop/utils/errors"
)

func TestDistributeRestore(t *testing.T) {
	tests := []struct {
		name          string
		levels        model.StockLevels
		qty           int64
		want          model.StockLevels
		wantUnapplied int64
	}{
		{
			name:   "fills in order up to capacity",
			levels: model.StockLevels{Bratislava: 900},
			qty:    1500,
			want:   model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 400},
		},
		{
			name:   "small quantity stays in bratislava",
			levels: model.StockLevels{Bratislava: 3, Bezo: 7},
			qty:    5,
			want:   model.StockLevels{Bratislava: 8, Bezo: 7},
		},
		{
			name:   "full warehouse is skipped",
			levels: model.StockLevels{Bratislava: 1200, Ruzomberok: 10},
			qty:    5,
			want:   model.StockLevels{Bratislava: 1200, Ruzomberok: 15},
		},
		{
			name:          "overflow is reported",
			levels:        model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 990},
			qty:           25,
			want:          model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 1000},
			wantUnapplied: 15,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unapplied := appwarehouse.DistributeRestore(tt.levels, tt.qty)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnapplied, unapplied)
		})
	}
}

func TestDistributeDecrement(t *testing.T) {
	tests := []struct {
		name          string
		levels        model.StockLevels
		qty           int64
		want          model.StockLevels
		wantUnapplied int64
	}{
		{
			name:   "drains in order",
			levels: model.StockLevels{Bratislava: 2, Ruzomberok: 3, Bezo: 4},
			qty:    6,
			want:   model.StockLevels{Bezo: 3},
		},
		{
			name:   "empty warehouse is skipped",
			levels: model.StockLevels{Ruzomberok: 3},
			qty:    1,
			want:   model.StockLevels{Ruzomberok: 2},
		},
		{
			name:          "shortage is reported and levels stay non-negative",
			levels:        model.StockLevels{Bratislava: 1, Bezo: 1},
			qty:           5,
			want:          model.StockLevels{},
			wantUnapplied: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, unapplied := appwarehouse.DistributeDecrement(tt.levels, tt.qty)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUnapplied, unapplied)
		})
	}
}

func TestWarehouseApp_RestoreStock(t *testing.T) {
	type fields struct {
		txRepo        *txmocks.TxRepository
		warehouseRepo *warehousemocks.WarehouseRepository
	}
	tests := []struct {
		name     string
		req      *model.StockAdjustmentRequest
		mockCall func(f fields)
		want     *model.StockAdjustmentResult
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: named warehouse",
			req:  &model.StockAdjustmentRequest{Quantity: 4, Warehouse: constant.WarehouseBezo},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()
				f.warehouseRepo.On("GetLevelsForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.StockLevels{Bezo: 1}, nil).Once()
				f.warehouseRepo.On("RestoreStockTx", mock.Anything, tx, uint64(1), constant.WarehouseBezo, int64(4)).Return(nil).Once()
			},
			want: &model.StockAdjustmentResult{ProductID: 1, Levels: model.StockLevels{Bezo: 5}},
		},
		{
			name: "success: legacy spread",
			req:  &model.StockAdjustmentRequest{Quantity: 1500},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()
				f.warehouseRepo.On("GetLevelsForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.StockLevels{Bratislava: 900}, nil).Once()
				f.warehouseRepo.On("SetLevelsTx", mock.Anything, tx, uint64(1), model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 400}).Return(nil).Once()
			},
			want: &model.StockAdjustmentResult{ProductID: 1, Levels: model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 400}},
		},
		{
			name:    "error: zero quantity",
			req:     &model.StockAdjustmentRequest{},
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name:    "error: unknown warehouse",
			req:     &model.StockAdjustmentRequest{Quantity: 1, Warehouse: "praha"},
			wantErr: true,
			errCode: constant.ErrInvalidWarehouse,
		},
		{
			name: "error: product not found",
			req:  &model.StockAdjustmentRequest{Quantity: 1},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.warehouseRepo.On("GetLevelsForUpdateTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: write fails",
			req:  &model.StockAdjustmentRequest{Quantity: 1},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.warehouseRepo.On("GetLevelsForUpdateTx", mock.Anything, tx, uint64(1)).Return(&model.StockLevels{}, nil).Once()
				f.warehouseRepo.On("SetLevelsTx", mock.Anything, tx, uint64(1), mock.Anything).Return(errors.New("deadlock")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := fields{
				txRepo:        txmocks.NewTxRepository(t),
				warehouseRepo: warehousemocks.NewWarehouseRepository(t),
			}
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			app := appwarehouse.NewWarehouseApp(f.txRepo, f.warehouseRepo)
			got, err := app.RestoreStock(context.Background(), 1, tt.req)
			if tt.wantErr {
				var ce cerr.CustomError
				require.True(t, errors.As(err, &ce), "error = %v", err)
				assert.Equal(t, constant.ErrorTypeCode[tt.errCode], ce.ErrorCode())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWarehouseApp_RemoveStock(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	warehouseRepo := warehousemocks.NewWarehouseRepository(t)
	tx := &sqlx.Tx{}
	txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	txRepo.On("CommitTx", tx).Return(nil).Once()
	txRepo.On("RollbackTx", tx).Return(nil).Maybe()
	warehouseRepo.On("GetLevelsForUpdateTx", mock.Anything, tx, uint64(2)).Return(&model.StockLevels{Ruzomberok: 2}, nil).Once()
	warehouseRepo.On("DecrementStockTx", mock.Anything, tx, uint64(2), constant.WarehouseRuzomberok, int64(3)).Return(nil).Once()

	got, err := appwarehouse.NewWarehouseApp(txRepo, warehouseRepo).
		RemoveStock(context.Background(), 2, &model.StockAdjustmentRequest{Quantity: 3, Warehouse: constant.WarehouseRuzomberok})
	require.NoError(t, err)
	assert.Equal(t, model.StockLevels{}, got.Levels)
	assert.Equal(t, int64(1), got.Unapplied)
}

func TestWarehouseApp_ListReserved(t *testing.T) {
	warehouseRepo := warehousemocks.NewWarehouseRepository(t)
	warehouseRepo.On("ListReserved", mock.Anything).Return(nil, errors.New("view missing")).Once()

	_, err := appwarehouse.NewWarehouseApp(txmocks.NewTxRepository(t), warehouseRepo).ListReserved(context.Background())
	var ce cerr.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, constant.ErrorTypeCode[constant.ErrInternal], ce.ErrorCode())
}
