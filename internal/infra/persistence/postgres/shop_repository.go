package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"servease/internal/domain/entity"
	"servease/internal/domain/repository"
	"servease/internal/infra/persistence/model"
)

// shopRepository implements the domain's ShopRepository interface using GORM.
type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository is the constructor for shopRepository.
func NewShopRepository(db *gorm.DB) repository.ShopRepository {
	return &shopRepository{db: db}
}

// FindByID retrieves a single repair shop by ID.
func (repo *shopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RepairShop, error) {
	var shopM model.ShopModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&shopM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShopNotFound
		}

		return nil, errors.Wrap(err, "failed to find repair shop by id")
	}

	return toShopDomain(&shopM), nil
}

// ListAll returns every repair shop ordered by name.
func (repo *shopRepository) ListAll(ctx context.Context) ([]*entity.RepairShop, error) {
	var models []model.ShopModel
	if err := repo.db.WithContext(ctx).
		Order("name ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list repair shops")
	}

	shops := make([]*entity.RepairShop, 0, len(models))
	for i := range models {
		shops = append(shops, toShopDomain(&models[i]))
	}

	return shops, nil
}

// Count returns the number of shops on the platform.
func (repo *shopRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ShopModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count repair shops")
	}

	return count, nil
}

// Create persists a new repair shop.
func (repo *shopRepository) Create(ctx context.Context, shop *entity.RepairShop) error {
	shopM := fromShopDomain(shop)

	if err := repo.db.WithContext(ctx).Create(shopM).Error; err != nil {
		return errors.Wrap(err, "failed to create repair shop")
	}

	shop.ID = shopM.ID

	return nil
}

// Update modifies an existing repair shop record.
func (repo *shopRepository) Update(ctx context.Context, shop *entity.RepairShop) error {
	shopM := fromShopDomain(shop)

	result := repo.db.WithContext(ctx).
		Model(&model.ShopModel{ID: shopM.ID}).
		Select("name", "location", "contact", "services_offered", "available_slots", "rating", "review_count", "latitude", "longitude").
		Updates(shopM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update repair shop")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShopNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toShopDomain(data *model.ShopModel) *entity.RepairShop {
	if data == nil {
		return nil
	}

	services := make([]entity.ApplianceType, 0, len(data.ServicesOffered))
	for _, svc := range data.ServicesOffered {
		services = append(services, entity.ApplianceType(svc))
	}

	return &entity.RepairShop{
		ID:              data.ID,
		Name:            data.Name,
		Location:        data.Location,
		Contact:         data.Contact,
		ServicesOffered: services,
		AvailableSlots:  data.AvailableSlots,
		Rating:          data.Rating,
		ReviewCount:     data.ReviewCount,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
	}
}

func fromShopDomain(data *entity.RepairShop) *model.ShopModel {
	if data == nil {
		return nil
	}

	services := make([]string, 0, len(data.ServicesOffered))
	for _, svc := range data.ServicesOffered {
		services = append(services, string(svc))
	}

	return &model.ShopModel{
		ID:              data.ID,
		Name:            data.Name,
		Location:        data.Location,
		Contact:         data.Contact,
		ServicesOffered: services,
		AvailableSlots:  data.AvailableSlots,
		Rating:          data.Rating,
		ReviewCount:     data.ReviewCount,
		Latitude:        data.Latitude,
		Longitude:       data.Longitude,
	}
}
