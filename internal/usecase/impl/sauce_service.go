package impl

import (
	"context"
	"log/slog"

	"piquant/internal/domain/entity"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/domain/repository"
	"piquant/internal/domain/service"
	"piquant/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sauceService implements the SauceUsecase interface.
type sauceService struct {
	sauceRepo repository.SauceRepository
	storage   service.FileStorage
	logger    *slog.Logger
}

// SauceServiceParams holds dependencies for sauceService, injected by Fx.
type SauceServiceParams struct {
	fx.In

	SauceRepo repository.SauceRepository
	Storage   service.FileStorage
	Logger    *slog.Logger
}

// NewSauceService is the constructor for sauceService.
func NewSauceService(params SauceServiceParams) usecase.SauceUsecase {
	return &sauceService{
		sauceRepo: params.SauceRepo,
		storage:   params.Storage,
		logger:    params.Logger,
	}
}

// CreateSauce stores the uploaded image and persists the new sauce owned by
// the acting user. If persistence fails the stored image is removed so no
// orphan file is left behind.
func (srv *sauceService) CreateSauce(ctx context.Context, input *usecase.CreateSauceInput) (*entity.Sauce, error) {
	imageURL, err := srv.storage.Store(ctx, input.Image, input.ImageName)
	if err != nil {
		srv.logger.Error("Failed to store sauce image", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store sauce image")
	}

	sauce := &entity.Sauce{
		OwnerID:      input.OwnerID,
		Name:         input.Fields.Name,
		Manufacturer: input.Fields.Manufacturer,
		Description:  input.Fields.Description,
		MainPepper:   input.Fields.MainPepper,
		Heat:         input.Fields.Heat,
		ImageURL:     imageURL,
	}

	if err := srv.sauceRepo.Create(ctx, sauce); err != nil {
		if removeErr := srv.storage.Remove(ctx, imageURL); removeErr != nil {
			srv.logger.Warn("Failed to clean up image after create failure", slog.Any("error", removeErr))
		}

		return nil, errors.Wrap(err, "failed to create sauce")
	}

	srv.logger.Info("Sauce created", slog.Any("sauceID", sauce.ID), slog.Any("ownerID", sauce.OwnerID))

	return sauce, nil
}

// GetSauce retrieves a single sauce.
func (srv *sauceService) GetSauce(ctx context.Context, id uuid.UUID) (*entity.Sauce, error) {
	sauce, err := srv.sauceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSauceNotFound) {
			return nil, errors.WithStack(domainerrors.ErrSauceNotFound)
		}

		return nil, errors.Wrap(err, "failed to get sauce")
	}

	return sauce, nil
}

// ListSauces retrieves every sauce.
func (srv *sauceService) ListSauces(ctx context.Context) ([]*entity.Sauce, error) {
	sauces, err := srv.sauceRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sauces")
	}

	return sauces, nil
}

// UpdateSauce modifies a sauce's descriptive fields. Only the owner may
// update; a replacement image swaps the stored file.
func (srv *sauceService) UpdateSauce(ctx context.Context, input *usecase.UpdateSauceInput) (*entity.Sauce, error) {
	sauce, err := srv.loadOwnedSauce(ctx, input.SauceID, input.ActorID)
	if err != nil {
		return nil, err
	}

	previousImageURL := sauce.ImageURL
	if input.Image != nil {
		imageURL, err := srv.storage.Store(ctx, input.Image, input.ImageName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to store replacement image")
		}
		sauce.ImageURL = imageURL
	}

	sauce.Name = input.Fields.Name
	sauce.Manufacturer = input.Fields.Manufacturer
	sauce.Description = input.Fields.Description
	sauce.MainPepper = input.Fields.MainPepper
	sauce.Heat = input.Fields.Heat

	if err := srv.sauceRepo.Update(ctx, sauce); err != nil {
		if input.Image != nil {
			if removeErr := srv.storage.Remove(ctx, sauce.ImageURL); removeErr != nil {
				srv.logger.Warn("Failed to clean up image after update failure", slog.Any("error", removeErr))
			}
		}
		if errors.Is(err, repository.ErrSauceNotFound) {
			return nil, errors.WithStack(domainerrors.ErrSauceNotFound)
		}

		return nil, errors.Wrap(err, "failed to update sauce")
	}

	if input.Image != nil && previousImageURL != "" {
		if err := srv.storage.Remove(ctx, previousImageURL); err != nil {
			srv.logger.Warn("Failed to remove replaced image", slog.Any("error", err))
		}
	}

	srv.logger.Info("Sauce updated", slog.Any("sauceID", sauce.ID))

	return sauce, nil
}

// DeleteSauce removes a sauce and its stored image. Only the owner may delete.
func (srv *sauceService) DeleteSauce(ctx context.Context, sauceID, actorID uuid.UUID) error {
	sauce, err := srv.loadOwnedSauce(ctx, sauceID, actorID)
	if err != nil {
		return err
	}

	if err := srv.sauceRepo.Delete(ctx, sauceID); err != nil {
		if errors.Is(err, repository.ErrSauceNotFound) {
			return errors.WithStack(domainerrors.ErrSauceNotFound)
		}

		return errors.Wrap(err, "failed to delete sauce")
	}

	// The row is gone; removing the file is best-effort.
	if sauce.ImageURL != "" {
		if err := srv.storage.Remove(ctx, sauce.ImageURL); err != nil {
			srv.logger.Warn("Failed to remove image of deleted sauce", slog.Any("error", err))
		}
	}

	srv.logger.Info("Sauce deleted", slog.Any("sauceID", sauceID))

	return nil
}

// Vote runs the vote state machine against the sauce's current state and
// persists the resulting delta as one atomic conditional write. A no-op
// transition (repeated intent, undo from neutral) skips persistence
// entirely, which makes retries safe.
func (srv *sauceService) Vote(ctx context.Context, input *usecase.VoteInput) (*entity.Sauce, error) {
	sauce, err := srv.sauceRepo.FindByID(ctx, input.SauceID)
	if err != nil {
		if errors.Is(err, repository.ErrSauceNotFound) {
			return nil, errors.WithStack(domainerrors.ErrSauceNotFound)
		}

		return nil, errors.Wrap(err, "failed to find sauce for vote")
	}

	delta := sauce.VoteDelta(input.UserID, input.Intent)
	if delta.IsZero() {
		return sauce, nil
	}

	if err := srv.sauceRepo.ApplyVote(ctx, sauce.ID, sauce.Version, delta); err != nil {
		switch {
		case errors.Is(err, repository.ErrSauceNotFound):
			return nil, errors.WithStack(domainerrors.ErrSauceNotFound)
		case errors.Is(err, repository.ErrVersionConflict):
			srv.logger.Warn("Vote lost a concurrent update race",
				slog.Any("sauceID", input.SauceID), slog.Any("userID", input.UserID))

			return nil, errors.WithStack(domainerrors.ErrVoteConflict)
		}

		return nil, errors.Wrap(err, "failed to apply vote")
	}

	sauce.ApplyVoteDelta(delta)

	srv.logger.Debug("Vote applied",
		slog.Any("sauceID", sauce.ID), slog.Any("userID", input.UserID), slog.Int("intent", int(input.Intent)))

	return sauce, nil
}

// loadOwnedSauce fetches a sauce and enforces that the actor owns it.
func (srv *sauceService) loadOwnedSauce(ctx context.Context, sauceID, actorID uuid.UUID) (*entity.Sauce, error) {
	sauce, err := srv.sauceRepo.FindByID(ctx, sauceID)
	if err != nil {
		if errors.Is(err, repository.ErrSauceNotFound) {
			return nil, errors.WithStack(domainerrors.ErrSauceNotFound)
		}

		return nil, errors.Wrap(err, "failed to find sauce")
	}

	if sauce.OwnerID != actorID {
		return nil, errors.WithStack(domainerrors.ErrNotSauceOwner)
	}

	return sauce, nil
}
