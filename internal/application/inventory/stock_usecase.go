package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/partdb-api/internal/application/dto"
	"github.com/jhoicas/partdb-api/internal/domain"
	"github.com/jhoicas/partdb-api/internal/domain/entity"
	"github.com/jhoicas/partdb-api/internal/domain/repository"
	"github.com/jhoicas/partdb-api/pkg/logger"
)

// StockUseCase registra entradas y salidas de stock de forma transaccional: el movimiento y
// el recálculo de stock y precio promedio cacheados se confirman juntos o no se confirman.
type StockUseCase struct {
	txRunner  TxRunner
	partRepo  repository.PartRepository
	stockRepo repository.StockEntryRepository
	publisher EventPublisher
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	stockRepo repository.StockEntryRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		partRepo:  partRepo,
		stockRepo: stockRepo,
		publisher: publisher,
		log:       log.Component("stock"),
	}
}

// AddStock registra una entrada de stock (cantidad positiva, precio opcional).
func (uc *StockUseCase) AddStock(ctx context.Context, tr domain.Translator, in dto.StockChangeRequest) (*dto.StockChangeResponse, error) {
	return uc.change(ctx, tr, in, 1)
}

// RemoveStock registra una salida de stock. Las salidas no llevan precio.
func (uc *StockUseCase) RemoveStock(ctx context.Context, tr domain.Translator, in dto.StockChangeRequest) (*dto.StockChangeResponse, error) {
	in.Price = decimal.NullDecimal{}
	return uc.change(ctx, tr, in, -1)
}

func (uc *StockUseCase) change(ctx context.Context, tr domain.Translator, in dto.StockChangeRequest, sign int64) (*dto.StockChangeResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	partID := in.Part.Int64()
	if partID <= 0 {
		return nil, domain.NewInvalidInput("Part id is required")
	}
	if in.Stock.Int64() < 1 {
		return nil, domain.NewOutOfRange("Stock amount is out of range", "The stock amount must be 1 or higher")
	}
	if in.Price.Valid && in.Price.Decimal.IsNegative() {
		return nil, domain.NewValidation(map[string]string{"price": "This value is too small"})
	}

	now := time.Now()
	entry := &entity.StockEntry{
		PartID:     partID,
		StockLevel: sign * in.Stock.Int64(),
		Price:      in.Price,
		DateTime:   now,
		Comment:    in.Comment,
	}
	var p *entity.Part
	err := uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		manufacturerRepo repository.PartManufacturerRepository,
		distributorRepo repository.PartDistributorRepository,
		parameterRepo repository.PartParameterRepository,
		stockRepo repository.StockEntryRepository,
	) error {
		var err error
		p, err = loadPart(ctx, partRepo, manufacturerRepo, distributorRepo, parameterRepo, partID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound(entityPart, partID)
		}
		if err := stockRepo.Create(ctx, entry); err != nil {
			return err
		}
		return refreshAggregates(ctx, partRepo, stockRepo, p)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, p, entry)
	return &dto.StockChangeResponse{
		Entry: toStockEntryResponse(entry),
		Part:  p.Serialize(tr),
	}, nil
}

// publish notifica el cambio ya confirmado. Un fallo del broker no revierte el movimiento.
func (uc *StockUseCase) publish(ctx context.Context, p *entity.Part, entry *entity.StockEntry) {
	if uc.publisher == nil {
		return
	}
	event := StockChangedEvent{
		EventID:       uuid.New().String(),
		PartID:        p.ID,
		PartName:      p.Name,
		Quantity:      entry.StockLevel,
		StockLevel:    p.CachedStockLevel,
		MinStockLevel: p.MinStockLevel(),
		BelowMinimum:  p.BelowMinimum(),
		OccurredAt:    entry.DateTime,
	}
	if err := uc.publisher.PublishStockChanged(ctx, event); err != nil {
		uc.log.Warn().Err(err).Int64("part_id", p.ID).Str("event_id", event.EventID).Msg("no se pudo publicar el evento de stock")
	}
}

// History devuelve los movimientos de una pieza, más recientes primero.
func (uc *StockUseCase) History(ctx context.Context, in dto.StockHistoryRequest) (*dto.ListResponse[dto.StockEntryResponse], error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	partID := in.Part.Int64()
	p, err := uc.partRepo.GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewNotFound(entityPart, partID)
	}
	list, err := uc.stockRepo.ListByPart(ctx, partID, int(in.Limit), int(in.Offset))
	if err != nil {
		return nil, err
	}
	total, err := uc.stockRepo.CountByPart(ctx, partID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, toStockEntryResponse(e))
	}
	return &dto.ListResponse[dto.StockEntryResponse]{Data: items, TotalCount: total}, nil
}

func toStockEntryResponse(e *entity.StockEntry) dto.StockEntryResponse {
	out := dto.StockEntryResponse{
		ID:         e.ID,
		PartID:     e.PartID,
		StockLevel: e.StockLevel,
		DateTime:   e.DateTime,
		Comment:    e.Comment,
	}
	if e.Price.Valid {
		price := e.Price.Decimal
		out.Price = &price
	}
	return out
}
