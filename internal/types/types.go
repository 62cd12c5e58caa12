package types

import "time"

// UploadRecord is the persisted summary of one successful upload. Records are
// append-only; content addresses never change once assigned.
type UploadRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MetadataCID string    `json:"metadataCid"`
	MetadataURL string    `json:"metadataUrl"`
	FileCID     string    `json:"fileCid"`
	FileName    string    `json:"fileName"`
	FileType    string    `json:"fileType"`
	Uploader    *string   `json:"uploader"`
	CreatedAt   time.Time `json:"createdAt"`
	Tags        []string  `json:"tags"`
}

// MetadataDocument is the ERC-721-style JSON document pinned alongside each
// asset. It is built once the asset CID is known and never mutated after.
type MetadataDocument struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	Properties  MetadataProperties `json:"properties"`
}

type MetadataProperties struct {
	Tags       []string `json:"tags"`
	UploadedAt string   `json:"uploadedAt"`
	UploadedBy *string  `json:"uploadedBy"`
}

// OwnershipProof is the optional (publicKey, message, signature) triple a
// client attaches to claim an uploader identity.
type OwnershipProof struct {
	PublicKey string
	Message   string
	Signature string
}

// Complete reports whether all three proof fields were supplied. A partial
// triple is treated as no proof at all, not as an error.
func (p OwnershipProof) Complete() bool {
	return p.PublicKey != "" && p.Message != "" && p.Signature != ""
}

// UploadRequest carries the multipart form fields of one submission.
type UploadRequest struct {
	Name        string `validate:"max=256"`
	Description string `validate:"max=4096"`
	TagsCSV     string
	FileName    string
	FileType    string
	File        []byte
	Proof       OwnershipProof
}

// PinnedMetadata is the addressing info returned to the client after both
// storage uploads succeed.
type PinnedMetadata struct {
	MetadataCID        string `json:"metadataCid"`
	MetadataIPFSURI    string `json:"metadataIpfsUri"`
	MetadataGatewayURL string `json:"metadataGatewayUrl"`
	FileCID            string `json:"fileCid"`
	FileIPFSURI        string `json:"fileIpfsUri"`
	FileGatewayURL     string `json:"fileGatewayUrl"`
}
