package uploads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/solpin/solpin-service/internal/sigverify"
	"github.com/solpin/solpin-service/internal/storage"
	"github.com/solpin/solpin-service/internal/types"
)

const (
	defaultFileName    = "upload"
	defaultContentType = "application/octet-stream"
	metadataFileName   = "metadata.json"

	// MaxListLimit caps how many records one listing returns.
	MaxListLimit = 200
)

var (
	ErrMissingFile      = errors.New("file is required")
	ErrInvalidSignature = errors.New("invalid signature")
)

// StorageError wraps a pinning-provider failure from either upload stage.
// Nothing is persisted when it occurs; an asset pinned before a later failure
// simply stays orphaned, which content addressing makes harmless.
type StorageError struct {
	Stage string // "file" or "metadata"
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s upload failed: %s", e.Stage, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// PersistError wraps a database failure after both uploads succeeded.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist upload record: %s", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Pinner uploads one blob to the content-addressed storage provider and
// returns its content identifier.
type Pinner interface {
	Pin(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// ChallengeChecker consumes a server-issued signing challenge. It is only
// consulted when challenge enforcement is enabled.
type ChallengeChecker interface {
	Consume(ctx context.Context, message string) (bool, error)
}

// VerifyFunc checks a detached signature; swappable in tests.
type VerifyFunc func(publicKey, message, signature string) bool

// Service is the upload orchestrator: it verifies ownership proofs, pins the
// asset and its metadata document, and persists the resulting record.
type Service struct {
	pinner     Pinner
	store      storage.Storage
	verify     VerifyFunc
	challenges ChallengeChecker // nil when challenge enforcement is off
	gateway    string
}

func NewService(pinner Pinner, store storage.Storage, gateway string) *Service {
	return &Service{
		pinner:  pinner,
		store:   store,
		verify:  sigverify.Verify,
		gateway: strings.TrimRight(gateway, "/"),
	}
}

// WithChallenges enables single-use challenge enforcement: a verified proof's
// message must be an issued, unconsumed challenge.
func (s *Service) WithChallenges(checker ChallengeChecker) *Service {
	s.challenges = checker
	return s
}

// WithVerifier replaces the signature verifier.
func (s *Service) WithVerifier(verify VerifyFunc) *Service {
	s.verify = verify
	return s
}

// ParseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty entries. Order is preserved and duplicates are kept.
func ParseTags(csv string) []string {
	tags := []string{}
	for _, tag := range strings.Split(csv, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// SubmitUpload runs the full workflow: optional proof verification, two pin
// calls, then one insert. A failure at any step aborts the request; already
// pinned content is left behind as an accepted orphan.
func (s *Service) SubmitUpload(ctx context.Context, req types.UploadRequest) (types.UploadRecord, types.PinnedMetadata, error) {
	if len(req.File) == 0 {
		return types.UploadRecord{}, types.PinnedMetadata{}, ErrMissingFile
	}

	tags := ParseTags(req.TagsCSV)

	// A partial proof triple is treated as no proof: the upload proceeds
	// anonymously. Only a complete triple is verified, and only a verified
	// public key is ever recorded as the uploader.
	var uploader *string
	if req.Proof.Complete() {
		if !s.verify(req.Proof.PublicKey, req.Proof.Message, req.Proof.Signature) {
			return types.UploadRecord{}, types.PinnedMetadata{}, ErrInvalidSignature
		}
		if s.challenges != nil {
			ok, err := s.challenges.Consume(ctx, req.Proof.Message)
			if err != nil {
				return types.UploadRecord{}, types.PinnedMetadata{}, fmt.Errorf("challenge check failed: %w", err)
			}
			if !ok {
				return types.UploadRecord{}, types.PinnedMetadata{}, fmt.Errorf("%w: unknown, expired, or reused challenge", ErrInvalidSignature)
			}
		}
		uploader = &req.Proof.PublicKey
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = defaultFileName
	}
	fileType := req.FileType
	if fileType == "" {
		fileType = defaultContentType
	}

	fileCID, err := s.pinner.Pin(ctx, req.File, fileName, fileType)
	if err != nil {
		return types.UploadRecord{}, types.PinnedMetadata{}, &StorageError{Stage: "file", Err: err}
	}

	// The name falls back to the client-supplied filename, not the defaulted
	// one, so a nameless, filename-less submission is "Untitled".
	name := req.Name
	if name == "" {
		name = req.FileName
	}
	if name == "" {
		name = "Untitled"
	}

	doc := types.MetadataDocument{
		Name:        name,
		Description: req.Description,
		Image:       "ipfs://" + fileCID,
		Properties: types.MetadataProperties{
			Tags:       tags,
			UploadedAt: time.Now().UTC().Format(time.RFC3339),
			UploadedBy: uploader,
		},
	}

	docBytes, err := json.Marshal(doc)
	if err != nil {
		return types.UploadRecord{}, types.PinnedMetadata{}, fmt.Errorf("failed to serialize metadata: %w", err)
	}

	metadataCID, err := s.pinner.Pin(ctx, docBytes, metadataFileName, "application/json")
	if err != nil {
		return types.UploadRecord{}, types.PinnedMetadata{}, &StorageError{Stage: "metadata", Err: err}
	}

	metadata := types.PinnedMetadata{
		MetadataCID:        metadataCID,
		MetadataIPFSURI:    "ipfs://" + metadataCID + "/" + metadataFileName,
		MetadataGatewayURL: s.gateway + "/" + metadataCID + "/" + metadataFileName,
		FileCID:            fileCID,
		FileIPFSURI:        "ipfs://" + fileCID,
		FileGatewayURL:     s.gateway + "/" + fileCID,
	}

	// The record carries the same defaulted filename and content type the
	// provider was given, so the two never disagree.
	record, err := s.store.CreateUpload(types.UploadRecord{
		Name:        name,
		Description: req.Description,
		MetadataCID: metadataCID,
		MetadataURL: metadata.MetadataGatewayURL,
		FileCID:     fileCID,
		FileName:    fileName,
		FileType:    fileType,
		Uploader:    uploader,
		Tags:        tags,
	})
	if err != nil {
		return types.UploadRecord{}, types.PinnedMetadata{}, &PersistError{Err: err}
	}

	slog.Info("upload registered",
		slog.String("record_id", record.ID),
		slog.String("file_cid", fileCID),
		slog.String("metadata_cid", metadataCID))

	return record, metadata, nil
}

// ListUploads returns the most recent records, newest first. Limits outside
// (0, MaxListLimit] are clamped to MaxListLimit.
func (s *Service) ListUploads(limit int) ([]types.UploadRecord, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.store.ListUploads(limit)
}
