package types

import (
	"context"
	"errors"
)

// Config holds backend selection and connection parameters for
// Client.Connect.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"-"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Experimenter is a repository user account.
type Experimenter struct {
	ID       int64
	Username string
}

// Ref is a lightweight listing result: enough to report an id and to
// filter by owner, without fetching the full object.
type Ref struct {
	Kind    ObjectType
	ID      int64
	Name    string
	OwnerID int64
}

// RepositoryObject is the resolved payload of one of the six named,
// containable kinds.
type RepositoryObject struct {
	Kind        ObjectType
	ID          int64
	Name        string
	Description string
	OwnerID     int64
}

// Addr returns the object's typed address.
func (o RepositoryObject) Addr() TypedID { return TypedID{Kind: o.Kind, ID: o.ID} }

// Pair is one key-value entry of a map annotation or of an object's
// aggregated annotation content.
type Pair struct {
	Key   string
	Value string
}

// Annotation is the resolved payload of a tag or key-value pair.
// Tags carry a Name; kv-pairs carry Pairs.
type Annotation struct {
	Kind    ObjectType
	ID      int64
	Name    string
	Pairs   []Pair
	OwnerID int64
}

// Addr returns the annotation's typed address.
func (a Annotation) Addr() TypedID { return TypedID{Kind: a.Kind, ID: a.ID} }

// Region is a resolved sub-region of an image, with the bounds clamped
// to the image's actual extents.
type Region struct {
	ImageID int64
	Bounds  Bounds
}

// Client is the capability surface of the remote repository. Every
// method performs exactly one remote interaction, blocks until the
// transport returns, and is attempted once; retry policy, timeouts and
// authentication belong to the implementation.
type Client interface {
	// Connect opens a session with the repository.
	Connect(ctx context.Context, cfg Config) error
	// Close ends the session. Idempotent.
	Close(ctx context.Context) error
	// SwitchGroup changes the active group and returns its id.
	SwitchGroup(ctx context.Context, groupID int64) (int64, error)
	// FindUser resolves a username. Returns ErrNotFound if unknown.
	FindUser(ctx context.Context, username string) (Experimenter, error)
	// Sudo returns a client acting as the given user. The receiver
	// stays usable.
	Sudo(ctx context.Context, username string) (Client, error)

	// RepositoryObject fetches one of the six repository kinds by id.
	RepositoryObject(ctx context.Context, kind ObjectType, id int64) (RepositoryObject, error)
	// Annotation fetches a tag or kv-pair by id.
	Annotation(ctx context.Context, kind ObjectType, id int64) (Annotation, error)
	// ListRefs enumerates all objects of a kind, optionally restricted
	// to an exact name ("" lists everything).
	ListRefs(ctx context.Context, kind ObjectType, name string) ([]Ref, error)
	// ListChildren enumerates the children of one kind inside a parent.
	// When the parent is an annotation this enumerates the objects the
	// annotation is attached to.
	ListChildren(ctx context.Context, parent TypedID, child ObjectType) ([]Ref, error)
	// Create makes a new object and returns its id. For datasets,
	// parent optionally names the project to create it under. For
	// kv-pairs, name and detail carry the key and value.
	Create(ctx context.Context, kind ObjectType, name, detail string, parent *int64) (int64, error)
	// Delete removes the addressed object.
	Delete(ctx context.Context, ref TypedID) error
	// Link applies the planned link; Unlink removes it.
	Link(ctx context.Context, plan LinkPlan) error
	Unlink(ctx context.Context, plan LinkPlan) error

	// KeyValuePairs aggregates the key-value content attached to a
	// repository object.
	KeyValuePairs(ctx context.Context, target TypedID) ([]Pair, error)
	// AttachFile uploads a file to a repository object and returns the
	// file id.
	AttachFile(ctx context.Context, target TypedID, path string) (int64, error)
	// DeleteFile removes an uploaded file by id.
	DeleteFile(ctx context.Context, id int64) error
	// AddTable stores a named table on a repository object and returns
	// its id.
	AddTable(ctx context.Context, target TypedID, table *TableData) (int64, error)

	// ImageRegion resolves a sub-region of an image, clamping the
	// requested bounds to the image extents.
	ImageRegion(ctx context.Context, imageID int64, bounds Bounds) (Region, error)
	// ROIRegion resolves the region covered by one of the image's ROIs.
	ROIRegion(ctx context.Context, imageID, roiID int64) (Region, error)
	// RemoveROIs deletes all ROIs of an image and returns the count.
	RemoveROIs(ctx context.Context, imageID int64) (int, error)
	// ImportImages imports the image file(s) at path into a dataset and
	// returns the new image ids.
	ImportImages(ctx context.Context, datasetID int64, path string) ([]int64, error)
	// DownloadImage fetches the original file(s) of an image into dir
	// and returns their paths.
	DownloadImage(ctx context.Context, imageID int64, dir string) ([]string, error)
}
