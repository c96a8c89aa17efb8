package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"

	"piquant/internal/delivery/http/middleware"
	"piquant/internal/delivery/http/response"
	"piquant/internal/domain/entity"
	domainerrors "piquant/internal/domain/errors"
	"piquant/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SauceHandler holds dependencies for sauce-related handlers.
type SauceHandler struct {
	uc     usecase.SauceUsecase
	logger *slog.Logger
}

// NewSauceHandler is the constructor for SauceHandler, injected by Fx.
func NewSauceHandler(uc usecase.SauceUsecase, logger *slog.Logger) *SauceHandler {
	return &SauceHandler{
		uc:     uc,
		logger: logger,
	}
}

// voteRequest is the wire shape of a vote. The userId echoes the acting
// identity and has already been checked against the token by the gateway.
type voteRequest struct {
	UserID string `json:"userId"`
	Like   int    `json:"like"`
}

// CreateSauce handles the multipart creation request: a "sauce" JSON part
// with the descriptive fields and an "image" file part.
func (h *SauceHandler) CreateSauce(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	fields, err := bindSaucePart(c)
	if err != nil {
		return errors.WithStack(err)
	}

	file, fileHeader, err := openImagePart(c)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	sauce, err := h.uc.CreateSauce(c.Request().Context(), &usecase.CreateSauceInput{
		OwnerID:   actorID,
		Fields:    *fields,
		Image:     file,
		ImageName: fileHeader.Filename,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sauce, "Sauce created")
}

// GetAllSauces returns every sauce.
func (h *SauceHandler) GetAllSauces(c echo.Context) error {
	sauces, err := h.uc.ListSauces(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sauces, "")
}

// GetOneSauce returns a single sauce by ID.
func (h *SauceHandler) GetOneSauce(c echo.Context) error {
	sauceID, err := sauceIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	sauce, err := h.uc.GetSauce(c.Request().Context(), sauceID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sauce, "")
}

// ModifySauce handles the update request. With a replacement image the
// request is multipart like creation; without one it is a plain JSON body.
func (h *SauceHandler) ModifySauce(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	sauceID, err := sauceIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateSauceInput{
		SauceID: sauceID,
		ActorID: actorID,
	}

	if isMultipart(c) {
		fields, err := bindSaucePart(c)
		if err != nil {
			return errors.WithStack(err)
		}

		file, fileHeader, err := openImagePart(c)
		if err != nil {
			return errors.WithStack(err)
		}
		defer file.Close()

		input.Fields = *fields
		input.Image = file
		input.ImageName = fileHeader.Filename
	} else {
		fields := new(usecase.SauceFields)
		if err := c.Bind(fields); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid sauce input")
		}
		if err := c.Validate(fields); err != nil {
			return errors.WithStack(err)
		}
		input.Fields = *fields
	}

	sauce, err := h.uc.UpdateSauce(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sauce, "Sauce updated")
}

// DeleteSauce handles the deletion request.
func (h *SauceHandler) DeleteSauce(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	sauceID, err := sauceIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteSauce(c.Request().Context(), sauceID, actorID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Sauce deleted")
}

// VoteSauce handles a like/dislike/undo request against a sauce.
func (h *SauceHandler) VoteSauce(c echo.Context) error {
	actorID, err := authenticatedUserID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	sauceID, err := sauceIDParam(c)
	if err != nil {
		return errors.WithStack(err)
	}

	req := new(voteRequest)
	if err := c.Bind(req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vote input")
	}

	intent, err := entity.ParseVoteIntent(req.Like)
	if err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(err.Error()))
	}

	sauce, err := h.uc.Vote(c.Request().Context(), &usecase.VoteInput{
		SauceID: sauceID,
		UserID:  actorID,
		Intent:  intent,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sauce, voteMessage(intent))
}

func voteMessage(intent entity.VoteIntent) string {
	switch intent {
	case entity.IntentLike:
		return "You like this sauce"
	case entity.IntentDislike:
		return "You dislike this sauce"
	default:
		return "Your vote was removed"
	}
}

// --- Request helpers ---

// authenticatedUserID reads the identity the gateway attached to the context.
func authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return userID, nil
}

func sauceIDParam(c echo.Context) (uuid.UUID, error) {
	sauceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid sauce id"))
	}

	return sauceID, nil
}

func isMultipart(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)

	return len(contentType) >= len(echo.MIMEMultipartForm) &&
		contentType[:len(echo.MIMEMultipartForm)] == echo.MIMEMultipartForm
}

// bindSaucePart parses and validates the "sauce" JSON form value of a
// multipart request.
func bindSaucePart(c echo.Context) (*usecase.SauceFields, error) {
	raw := c.FormValue("sauce")
	if raw == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("missing sauce payload"))
	}

	fields := new(usecase.SauceFields)
	if err := json.Unmarshal([]byte(raw), fields); err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed sauce payload"))
	}
	if err := c.Validate(fields); err != nil {
		return nil, errors.WithStack(err)
	}

	return fields, nil
}

// openImagePart opens the "image" file part of a multipart request.
func openImagePart(c echo.Context) (multipart.File, *multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("missing image file"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open uploaded image")
	}

	return file, fileHeader, nil
}
