package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"SCHEDULING_PLATFORM_BACK-END/internal/config"
	"SCHEDULING_PLATFORM_BACK-END/internal/dto"
	"SCHEDULING_PLATFORM_BACK-END/internal/models"
	"SCHEDULING_PLATFORM_BACK-END/internal/utils"
)

const profilePictureField = "profile_picture"

// Fields missing from the form keep their stored value; the picture is only
// replaced when a new file was uploaded. xmax is 0 for a freshly inserted row.
const qUpsertProfile = `
insert into profiles (
	user_unique_id, name, email, phone, address, bio, profile_picture
) values (
	$1, $2, $3, $4, $5, $6, $7
)
on conflict (user_unique_id) do update set
	name            = coalesce(excluded.name, profiles.name),
	email           = coalesce(excluded.email, profiles.email),
	phone           = coalesce(excluded.phone, profiles.phone),
	address         = coalesce(excluded.address, profiles.address),
	bio             = coalesce(excluded.bio, profiles.bio),
	profile_picture = coalesce(excluded.profile_picture, profiles.profile_picture),
	updated_at      = current_timestamp
returning (xmax = 0) as inserted;
`

type ProfileHandler struct {
	db     DB
	upload config.UploadConfig
}

func NewProfileHandler(db DB, upload config.UploadConfig) *ProfileHandler {
	return &ProfileHandler{db: db, upload: upload}
}

// Upsert godoc
// @Summary      Create or update a user profile
// @Description  Creates the profile on first write and updates it afterwards. Fields left out of the form keep their stored value.
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        user_unique_id   path      string  true   "User unique id"
// @Param        name             formData  string  false  "Name"
// @Param        email            formData  string  false  "Email"
// @Param        phone            formData  string  false  "Phone"
// @Param        address          formData  string  false  "Address"
// @Param        bio              formData  string  false  "Bio"
// @Param        profile_picture  formData  file    false  "Profile picture"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      413  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /profile/{user_unique_id} [post]
// @Router       /profile/{user_unique_id} [put]
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	if h.upload.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.upload.MaxBodyBytes)
	}
	message, err := h.upsert(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *ProfileHandler) upsert(r *http.Request) (string, error) {
	ctx := r.Context()
	userUniqueID := strings.TrimSpace(r.PathValue("user_unique_id"))

	// 1) the user must exist
	if err := h.ensureUser(ctx, userUniqueID); err != nil {
		return "", err
	}

	// 2) form fields + optional picture
	profile, err := h.readForm(r)
	if err != nil {
		return "", err
	}
	profile.UserUniqueID = userUniqueID

	// 3) insert or update in one statement
	var inserted bool
	err = h.db.QueryRow(ctx, qUpsertProfile,
		profile.UserUniqueID,
		profile.Name, profile.Email, profile.Phone,
		profile.Address, profile.Bio, profile.ProfilePicture,
	).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("upsert profile: %w", err)
	}

	if inserted {
		return "Profile created successfully!", nil
	}
	return "Profile updated successfully!", nil
}

func (h *ProfileHandler) ensureUser(ctx context.Context, userUniqueID string) error {
	if userUniqueID == "" {
		return ErrUnknownUser
	}
	var one int
	err := h.db.QueryRow(ctx,
		"SELECT 1 FROM users WHERE user_unique_id = $1", userUniqueID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUnknownUser
	}
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	return nil
}

// readForm accepts multipart and urlencoded bodies.
func (h *ProfileHandler) readForm(r *http.Request) (*models.Profile, error) {
	if err := r.ParseMultipartForm(h.upload.MaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &Error{
				Kind:    KindTooLarge,
				Message: "Request body too large",
				Detail:  fmt.Sprintf("limit is %d bytes", tooLarge.Limit),
			}
		}
		return nil, validationError("Invalid form data", err.Error())
	}

	profile := &models.Profile{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Address: formValue(r, "address"),
		Bio:     formValue(r, "bio"),
	}

	if r.MultipartForm == nil || len(r.MultipartForm.File[profilePictureField]) == 0 {
		return profile, nil
	}

	path, err := utils.SaveUpload(h.upload.Dir, r.MultipartForm.File[profilePictureField][0])
	if errors.Is(err, utils.ErrInvalidFilename) {
		return nil, validationError("Invalid file name", "profile_picture has no usable file name")
	}
	if err != nil {
		return nil, fmt.Errorf("save profile picture: %w", err)
	}
	profile.ProfilePicture = &path

	if h.upload.ThumbnailWidth > 0 {
		if _, err := utils.CreateThumbnail(path, h.upload.ThumbnailWidth, h.upload.MaxPixels); err != nil {
			log.WithError(err).WithField("path", path).Warn("profile picture thumbnail skipped")
		}
	}

	return profile, nil
}

// formValue returns nil when the field was not sent at all.
func formValue(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
