package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Recognized file types.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootParentID is the stored sentinel for a top-level record. On the wire
// it is rendered as the integer 0 instead; see File.Response.
const RootParentID = "0"

// ThumbnailWidths are the derivative sizes generated for image uploads.
var ThumbnailWidths = []int{500, 250, 100}

// ValidType reports whether t is one of the recognized file types.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

type File struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   primitive.ObjectID `bson:"userId"`
	Name     string             `bson:"name"`
	Type     string             `bson:"type"`
	IsPublic bool               `bson:"isPublic"`
	// ParentID is RootParentID or the hex id of a folder record.
	ParentID string `bson:"parentId"`
	// LocalPath is set for every type except folder.
	LocalPath string `bson:"localPath,omitempty"`
}

// FileResponse is the external representation of a file record.
type FileResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	// ParentID is the integer 0 for root records, a hex string otherwise.
	ParentID any `json:"parentId"`
}

// Response converts a stored record to its wire shape, normalizing the
// root sentinel to a numeric 0.
func (f File) Response() FileResponse {
	var parent any = f.ParentID
	if f.ParentID == RootParentID {
		parent = 0
	}
	return FileResponse{
		ID:       f.ID.Hex(),
		UserID:   f.UserID.Hex(),
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: parent,
	}
}
