package impl

import (
	"context"
	"log/slog"
	"sort"

	deliverycontext "servease/internal/delivery/context"
	"servease/internal/domain/entity"
	domainerrors "servease/internal/domain/errors"
	"servease/internal/domain/repository"
	"servease/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	shopRepo repository.ShopRepository
	logger   *slog.Logger
}

// ShopServiceParams holds dependencies for ShopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	ShopRepo repository.ShopRepository
	Logger   *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		shopRepo: params.ShopRepo,
		logger:   params.Logger,
	}
}

func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *shopService) GetShop(ctx context.Context, shopID uuid.UUID) (*entity.RepairShop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, errors.Wrap(domainerrors.ErrShopNotFound, "failed to load shop")
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	return shop, nil
}

func (srv *shopService) ListShops(ctx context.Context) ([]*entity.RepairShop, error) {
	shops, err := srv.shopRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	return shops, nil
}

// ListShopsNear returns all shops sorted by great-circle distance from the
// given coordinates.
func (srv *shopService) ListShopsNear(ctx context.Context, lat, lng float64) ([]*entity.RepairShop, error) {
	shops, err := srv.shopRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}

	origin := orb.Point{lng, lat}
	sort.SliceStable(shops, func(i, j int) bool {
		di := geo.Distance(origin, orb.Point{shops[i].Longitude, shops[i].Latitude})
		dj := geo.Distance(origin, orb.Point{shops[j].Longitude, shops[j].Latitude})

		return di < dj
	})

	return shops, nil
}

// EnsureDefaultShops seeds the default shop catalog when the collection is
// empty. Seeding is idempotent across restarts.
func (srv *shopService) EnsureDefaultShops(ctx context.Context) error {
	count, err := srv.shopRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count shops")
	}
	if count > 0 {
		return nil
	}

	for _, shop := range defaultShops() {
		if err := srv.shopRepo.Create(ctx, shop); err != nil {
			return errors.Wrap(err, "failed to seed default shop")
		}
	}

	srv.log(ctx).Info("Seeded default repair shops", slog.Int("count", len(defaultShops())))

	return nil
}

func defaultShops() []*entity.RepairShop {
	return []*entity.RepairShop{
		{
			ID:              uuid.New(),
			Name:            "ElectroFix Pro",
			Location:        "Downtown",
			Contact:         "123-456-7890",
			ServicesOffered: []entity.ApplianceType{entity.ApplianceRefrigerator, entity.ApplianceWashingMachine, entity.ApplianceAirConditioner},
			AvailableSlots:  []string{"9:00 AM", "11:00 AM", "2:00 PM", "4:00 PM"},
			Rating:          4.7,
			ReviewCount:     112,
			Latitude:        25.0330,
			Longitude:       121.5654,
		},
		{
			ID:              uuid.New(),
			Name:            "ApplianceMasters",
			Location:        "Uptown",
			Contact:         "098-765-4321",
			ServicesOffered: []entity.ApplianceType{entity.ApplianceTelevision, entity.ApplianceMicrowave, entity.ApplianceOven},
			AvailableSlots:  []string{"10:00 AM", "1:00 PM", "3:00 PM", "5:00 PM"},
			Rating:          4.5,
			ReviewCount:     87,
			Latitude:        25.0622,
			Longitude:       121.5198,
		},
		{
			ID:              uuid.New(),
			Name:            "TechRepair Solutions",
			Location:        "Midtown",
			Contact:         "111-222-3333",
			ServicesOffered: []entity.ApplianceType{entity.ApplianceWashingMachine, entity.ApplianceDishwasher, entity.ApplianceRefrigerator},
			AvailableSlots:  []string{"9:30 AM", "12:30 PM", "3:30 PM", "5:30 PM"},
			Rating:          4.8,
			ReviewCount:     94,
			Latitude:        25.0478,
			Longitude:       121.5319,
		},
	}
}
