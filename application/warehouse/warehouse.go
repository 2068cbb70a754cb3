package warehouse

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	txrepo "github.com/yogapit/eshop/repository/tx"
	warehouserepo "github.com/yogapit/eshop/repository/warehouse"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

type WarehouseApp interface {
	ListReserved(ctx context.Context) ([]model.ReservedProduct, error)
	RestoreStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockAdjustmentResult, error)
	RemoveStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockAdjustmentResult, error)
}

type warehouseAppImpl struct {
	txRepo        txrepo.TxRepository
	warehouseRepo warehouserepo.WarehouseRepository
}

func NewWarehouseApp(txRepo txrepo.TxRepository, warehouseRepo warehouserepo.WarehouseRepository) WarehouseApp {
	return &warehouseAppImpl{
		txRepo:        txRepo,
		warehouseRepo: warehouseRepo,
	}
}

func (s *warehouseAppImpl) ListReserved(ctx context.Context) ([]model.ReservedProduct, error) {
	items, err := s.warehouseRepo.ListReserved(ctx)
	if err != nil {
		logger.Error("[ListReserved] error warehouseRepo.ListReserved", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load reserved products")
	}
	return items, nil
}

// RestoreStock puts stock back, into the named warehouse or spread over all of them.
func (s *warehouseAppImpl) RestoreStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockAdjustmentResult, error) {
	return s.adjust(ctx, "RestoreStock", productID, req, true)
}

// RemoveStock takes stock out, from the named warehouse or draining all of them.
func (s *warehouseAppImpl) RemoveStock(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockAdjustmentResult, error) {
	return s.adjust(ctx, "RemoveStock", productID, req, false)
}

func (s *warehouseAppImpl) adjust(ctx context.Context, op string, productID uint64, req *model.StockAdjustmentRequest, restore bool) (*model.StockAdjustmentResult, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "invalid field %s", validatorx.FirstField(err))
	}
	if req.Warehouse != "" && !req.Warehouse.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidWarehouse, "unknown warehouse %q", req.Warehouse)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("["+op+"] begin tx failed", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	levels, err := s.warehouseRepo.GetLevelsForUpdateTx(ctx, tx, productID)
	if err != nil {
		logger.Error("["+op+"] get levels failed", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if levels == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	result := &model.StockAdjustmentResult{ProductID: productID}
	if req.Warehouse != "" {
		result.Levels, result.Unapplied, err = s.adjustOneTx(ctx, tx, productID, *levels, req, restore)
	} else {
		result.Levels, result.Unapplied, err = s.adjustAllTx(ctx, tx, productID, *levels, req.Quantity, restore)
	}
	if err != nil {
		logger.Error("["+op+"] update stock failed", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update stock")
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("["+op+"] commit tx failed", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if result.Unapplied > 0 {
		logger.Warn("["+op+"] quantity partly unapplied", zap.Uint64("product_id", productID), zap.Int64("unapplied", result.Unapplied))
	}
	return result, nil
}

func (s *warehouseAppImpl) adjustOneTx(ctx context.Context, tx *sqlx.Tx, productID uint64, levels model.StockLevels, req *model.StockAdjustmentRequest, restore bool) (model.StockLevels, int64, error) {
	w := req.Warehouse
	if restore {
		if err := s.warehouseRepo.RestoreStockTx(ctx, tx, productID, w, req.Quantity); err != nil {
			return levels, 0, err
		}
		levels.Set(w, levels.Get(w)+req.Quantity)
		return levels, 0, nil
	}

	if err := s.warehouseRepo.DecrementStockTx(ctx, tx, productID, w, req.Quantity); err != nil {
		return levels, 0, err
	}
	// the decrement floors at zero
	have := levels.Get(w)
	taken := min(have, req.Quantity)
	levels.Set(w, have-taken)
	return levels, req.Quantity - taken, nil
}

func (s *warehouseAppImpl) adjustAllTx(ctx context.Context, tx *sqlx.Tx, productID uint64, levels model.StockLevels, qty int64, restore bool) (model.StockLevels, int64, error) {
	var unapplied int64
	if restore {
		levels, unapplied = DistributeRestore(levels, qty)
	} else {
		levels, unapplied = DistributeDecrement(levels, qty)
	}
	if err := s.warehouseRepo.SetLevelsTx(ctx, tx, productID, levels); err != nil {
		return levels, 0, err
	}
	return levels, unapplied, nil
}
