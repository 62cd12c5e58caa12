package uploads

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/solpin/solpin-service/internal/challenge"
	"github.com/solpin/solpin-service/internal/events"
	"github.com/solpin/solpin-service/internal/pinning"
	uploadService "github.com/solpin/solpin-service/internal/services/uploads"
	"github.com/solpin/solpin-service/internal/types"
	"github.com/solpin/solpin-service/internal/utils/response"
)

// UploadResponse is the success envelope for one registered upload.
type UploadResponse struct {
	Ok       bool                 `json:"ok"`
	Record   types.UploadRecord   `json:"record"`
	Metadata types.PinnedMetadata `json:"metadata"`
}

// ListResponse carries the gallery listing, newest first.
type ListResponse struct {
	Ok    bool                 `json:"ok"`
	Items []types.UploadRecord `json:"items"`
}

// ChallengeResponse carries a freshly issued signing challenge.
type ChallengeResponse struct {
	Ok        bool      `json:"ok"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Upload handles one multipart submission
// @Summary Pin a file and register its upload record
// @Description Pins the file and an ERC-721-style metadata document to content-addressed storage, optionally verifying a wallet ownership proof, then persists a record
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to pin"
// @Param name formData string false "Display name, defaults to the filename"
// @Param description formData string false "Description"
// @Param tags formData string false "Comma-separated tags"
// @Param publicKey formData string false "Base58 wallet public key"
// @Param message formData string false "Signed message"
// @Param signature formData string false "Base58 detached signature"
// @Success 200 {object} UploadResponse "Upload registered"
// @Failure 400 {object} response.ErrorBody "Missing or oversized file"
// @Failure 401 {object} response.ErrorBody "Invalid signature"
// @Failure 500 {object} response.ErrorBody "Storage or persistence failure"
// @Router /api/uploads/upload [post]
func Upload(svc *uploadService.Service, publisher events.Publisher, maxFileSize int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFileSize)

		if err := r.ParseMultipartForm(maxFileSize); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(errors.New("could not parse multipart form: "+err.Error())))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(errors.New("file is required")))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(errors.New("failed to read file")))
			return
		}

		req := types.UploadRequest{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			TagsCSV:     r.FormValue("tags"),
			FileName:    header.Filename,
			FileType:    header.Header.Get("Content-Type"),
			File:        data,
			Proof: types.OwnershipProof{
				PublicKey: r.FormValue("publicKey"),
				Message:   r.FormValue("message"),
				Signature: r.FormValue("signature"),
			},
		}

		// Validate request
		validate := validator.New()
		if err := validate.Struct(req); err != nil {
			if ve, ok := err.(validator.ValidationErrors); ok {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(ve))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.Error(err))
			return
		}

		record, metadata, err := svc.SubmitUpload(r.Context(), req)
		if err != nil {
			writeUploadError(w, err)
			return
		}

		if publisher != nil {
			publisher.PublishUploadCreated(record)
		}

		response.WriteJSON(w, http.StatusOK, UploadResponse{
			Ok:       true,
			Record:   record,
			Metadata: metadata,
		})
	}
}

func writeUploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uploadService.ErrMissingFile):
		response.WriteJSON(w, http.StatusBadRequest, response.Error(err))
	case errors.Is(err, uploadService.ErrInvalidSignature):
		response.WriteJSON(w, http.StatusUnauthorized, response.Error(err))
	default:
		// Downstream failure. The error string already carries the provider's
		// status and body when the provider answered; log the status as its
		// own attribute too.
		var provErr *pinning.ProviderError
		if errors.As(err, &provErr) {
			slog.Error("upload failed",
				slog.String("error", err.Error()),
				slog.Int("provider_status", provErr.StatusCode))
		} else {
			slog.Error("upload failed", slog.String("error", err.Error()))
		}
		response.WriteJSON(w, http.StatusInternalServerError, response.Error(err))
	}
}

// List returns previously registered uploads
// @Summary List uploads, newest first
// @Tags uploads
// @Produce json
// @Success 200 {object} ListResponse "Uploads fetched"
// @Failure 500 {object} response.ErrorBody "Persistence failure"
// @Router /api/uploads [get]
func List(svc *uploadService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListUploads(uploadService.MaxListLimit)
		if err != nil {
			slog.Error("failed to list uploads", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, ListResponse{Ok: true, Items: items})
	}
}

// Challenge issues a single-use signing challenge
// @Summary Issue a signing challenge
// @Description Returns the exact message a wallet should sign to prove ownership for one upload
// @Tags uploads
// @Produce json
// @Success 200 {object} ChallengeResponse "Challenge issued"
// @Failure 500 {object} response.ErrorBody "Challenge store failure"
// @Router /api/uploads/challenge [post]
func Challenge(store *challenge.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		message, expiresAt, err := store.Issue(r.Context())
		if err != nil {
			slog.Error("failed to issue challenge", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.Error(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, ChallengeResponse{
			Ok:        true,
			Message:   message,
			ExpiresAt: expiresAt,
		})
	}
}

// Health is the liveness probe
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /health [get]
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}
