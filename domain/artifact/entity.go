package artifact

// Role distinguishes the two artifacts produced by a successful upload.
type Role string

const (
	// RoleOriginal is the staged upload exactly as the client sent it.
	RoleOriginal Role = "original"

	// RoleDerivative is the quality-reduced re-encoding of an original.
	RoleDerivative Role = "derivative"
)

// StoredArtifact represents a file on durable storage. Artifacts are never
// mutated after creation; a derivative only exists once its original has
// been fully written.
type StoredArtifact struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	Role Role   `json:"role"`
}
