package postgres

import (
	"context"

	"piquant/internal/domain/entity"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/domain/repository"
	"piquant/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sauceRepository implements the repository.SauceRepository interface using GORM.
type sauceRepository struct {
	db *gorm.DB
}

// NewSauceRepository is the constructor for sauceRepository.
func NewSauceRepository(db *gorm.DB) repository.SauceRepository {
	return &sauceRepository{db: db}
}

// FindByID retrieves a single sauce by its unique ID.
func (repo *sauceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Sauce, error) {
	var sauceM model.SauceModel
	if err := repo.db.WithContext(ctx).First(&sauceM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSauceNotFound
		}

		return nil, errors.Wrap(err, "failed to find sauce by id")
	}

	return toSauceDomain(&sauceM), nil
}

// FindAll retrieves every sauce, newest first.
func (repo *sauceRepository) FindAll(ctx context.Context) ([]*entity.Sauce, error) {
	var sauceMs []model.SauceModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&sauceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list sauces")
	}

	sauces := make([]*entity.Sauce, 0, len(sauceMs))
	for i := range sauceMs {
		sauces = append(sauces, toSauceDomain(&sauceMs[i]))
	}

	return sauces, nil
}

// Create persists a new sauce entity.
func (repo *sauceRepository) Create(ctx context.Context, sauce *entity.Sauce) error {
	sauceM := fromSauceDomain(sauce)

	if err := repo.db.WithContext(ctx).Create(sauceM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create sauce")
	}

	sauce.ID = sauceM.ID
	sauce.CreatedAt = sauceM.CreatedAt
	sauce.UpdatedAt = sauceM.UpdatedAt

	return nil
}

// Update modifies the descriptive fields of an existing sauce. Vote state
// and ownership are deliberately excluded from the column list.
func (repo *sauceRepository) Update(ctx context.Context, sauce *entity.Sauce) error {
	result := repo.db.WithContext(ctx).
		Model(&model.SauceModel{}).
		Where("id = ?", sauce.ID).
		Select("name", "manufacturer", "description", "main_pepper", "image_url", "heat").
		Updates(fromSauceDomain(sauce))

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update sauce")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSauceNotFound
	}

	return nil
}

// Delete removes a sauce by its ID.
func (repo *sauceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.SauceModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete sauce")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSauceNotFound
	}

	return nil
}

// ApplyVote persists a vote delta as a single conditional UPDATE. Counter
// increments and membership array changes land in one statement, guarded by
// the version the delta was computed against, so counters and sets can
// never disagree and concurrent votes never lose an update.
func (repo *sauceRepository) ApplyVote(ctx context.Context, id uuid.UUID, version int64, delta entity.VoteDelta) error {
	if delta.IsZero() {
		return nil
	}

	updates := map[string]any{
		"version": gorm.Expr("version + 1"),
	}
	if delta.Likes != 0 {
		updates["likes"] = gorm.Expr("likes + ?", delta.Likes)
	}
	if delta.Dislikes != 0 {
		updates["dislikes"] = gorm.Expr("dislikes + ?", delta.Dislikes)
	}

	actor := delta.UserID.String()
	switch {
	case delta.AddLiked:
		updates["users_liked"] = gorm.Expr("array_append(users_liked, ?)", actor)
	case delta.RemoveLiked:
		updates["users_liked"] = gorm.Expr("array_remove(users_liked, ?)", actor)
	}
	switch {
	case delta.AddDisliked:
		updates["users_disliked"] = gorm.Expr("array_append(users_disliked, ?)", actor)
	case delta.RemoveDisliked:
		updates["users_disliked"] = gorm.Expr("array_remove(users_disliked, ?)", actor)
	}

	result := repo.db.WithContext(ctx).
		Model(&model.SauceModel{}).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to apply vote")
	}
	if result.RowsAffected == 0 {
		// Distinguish a stale version from a missing sauce.
		var count int64
		if err := repo.db.WithContext(ctx).
			Model(&model.SauceModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check sauce existence after vote conflict")
		}
		if count == 0 {
			return repository.ErrSauceNotFound
		}

		return repository.ErrVersionConflict
	}

	return nil
}

// --- Mapper Functions ---

// toSauceDomain converts a GORM SauceModel to a domain Sauce entity.
func toSauceDomain(data *model.SauceModel) *entity.Sauce {
	if data == nil {
		return nil
	}

	return &entity.Sauce{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Manufacturer:  data.Manufacturer,
		Description:   data.Description,
		MainPepper:    data.MainPepper,
		ImageURL:      data.ImageURL,
		Heat:          data.Heat,
		Likes:         data.Likes,
		Dislikes:      data.Dislikes,
		UsersLiked:    toUUIDSet(data.UsersLiked),
		UsersDisliked: toUUIDSet(data.UsersDisliked),
		Version:       data.Version,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromSauceDomain converts a domain Sauce entity to a GORM SauceModel for persistence.
func fromSauceDomain(data *entity.Sauce) *model.SauceModel {
	if data == nil {
		return nil
	}

	return &model.SauceModel{
		ID:            data.ID,
		OwnerID:       data.OwnerID,
		Name:          data.Name,
		Manufacturer:  data.Manufacturer,
		Description:   data.Description,
		MainPepper:    data.MainPepper,
		ImageURL:      data.ImageURL,
		Heat:          data.Heat,
		Likes:         data.Likes,
		Dislikes:      data.Dislikes,
		UsersLiked:    fromUUIDSet(data.UsersLiked),
		UsersDisliked: fromUUIDSet(data.UsersDisliked),
		Version:       data.Version,
	}
}

func toUUIDSet(data pq.StringArray) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(data))
	for _, raw := range data {
		id, err := uuid.Parse(raw)
		if err != nil {
			// Rows are only ever written with canonical UUID strings.
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

func fromUUIDSet(ids []uuid.UUID) pq.StringArray {
	data := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		data = append(data, id.String())
	}

	return data
}
