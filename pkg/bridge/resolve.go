package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumigraph/omebridge/pkg/types"
)

// invalidTypeError builds an ErrUnknownType error advertising the
// subset of kinds the call site accepts.
func invalidTypeError(raw string, allowed []types.ObjectType) error {
	return fmt.Errorf("%w: %q, possible values are: %s",
		types.ErrUnknownType, raw, types.FormatTypes(allowed))
}

// parseTypeIn normalizes a type label and checks it against the kinds
// the call site accepts.
func parseTypeIn(raw string, allowed []types.ObjectType) (types.ObjectType, error) {
	kind, err := types.ParseObjectType(raw)
	if err != nil {
		return "", invalidTypeError(raw, allowed)
	}
	for _, a := range allowed {
		if kind == a {
			return kind, nil
		}
	}
	return "", invalidTypeError(raw, allowed)
}

// repositoryObject resolves one of the six repository kinds by label
// and id, performing a single remote fetch.
func (b *Bridge) repositoryObject(ctx context.Context, rawType string, id int64) (types.RepositoryObject, error) {
	kind, err := parseTypeIn(rawType, types.RepositoryTypes)
	if err != nil {
		return types.RepositoryObject{}, err
	}
	obj, err := b.client.RepositoryObject(ctx, kind, id)
	if err != nil {
		return types.RepositoryObject{}, fmt.Errorf("retrieve %s %d: %w", kind, id, err)
	}
	return obj, nil
}

// annotation resolves a tag or kv-pair by label and id.
func (b *Bridge) annotation(ctx context.Context, rawType string, id int64) (types.Annotation, error) {
	kind, err := parseTypeIn(rawType, types.AnnotationTypes)
	if err != nil {
		return types.Annotation{}, err
	}
	ann, err := b.client.Annotation(ctx, kind, id)
	if err != nil {
		return types.Annotation{}, fmt.Errorf("retrieve %s %d: %w", kind, id, err)
	}
	return ann, nil
}

// GetName resolves any of the eight kinds and returns its display
// name: the object or tag name, or for a kv-pair the key-value content
// as tab-separated lines.
func (b *Bridge) GetName(ctx context.Context, rawType string, id int64) (string, error) {
	kind, err := parseTypeIn(rawType, types.AllTypes)
	if err != nil {
		return "", err
	}
	if !kind.IsAnnotation() {
		obj, err := b.repositoryObject(ctx, rawType, id)
		if err != nil {
			return "", err
		}
		return obj.Name, nil
	}
	ann, err := b.annotation(ctx, rawType, id)
	if err != nil {
		return "", err
	}
	if kind == types.TypeTag {
		return ann.Name, nil
	}
	lines := make([]string, len(ann.Pairs))
	for i, p := range ann.Pairs {
		lines[i] = p.Key + "\t" + p.Value
	}
	return strings.Join(lines, "\n"), nil
}

// Delete removes an object of any of the eight kinds. The object is
// resolved first so a bad address fails before the destructive call.
func (b *Bridge) Delete(ctx context.Context, rawType string, id int64) error {
	kind, err := parseTypeIn(rawType, types.AllTypes)
	if err != nil {
		return err
	}
	var addr types.TypedID
	if kind.IsAnnotation() {
		ann, err := b.annotation(ctx, rawType, id)
		if err != nil {
			return err
		}
		addr = ann.Addr()
	} else {
		obj, err := b.repositoryObject(ctx, rawType, id)
		if err != nil {
			return err
		}
		addr = obj.Addr()
	}
	if err := b.client.Delete(ctx, addr); err != nil {
		return fmt.Errorf("delete %s: %w", addr, err)
	}
	return nil
}

// CreateProject creates a project and returns its id.
func (b *Bridge) CreateProject(ctx context.Context, name, description string) (int64, error) {
	id, err := b.client.Create(ctx, types.TypeProject, name, description, nil)
	if err != nil {
		return -1, fmt.Errorf("create project: %w", err)
	}
	return id, nil
}

// CreateDataset creates a dataset, optionally under a project.
func (b *Bridge) CreateDataset(ctx context.Context, name, description string, projectID *int64) (int64, error) {
	id, err := b.client.Create(ctx, types.TypeDataset, name, description, projectID)
	if err != nil {
		return -1, fmt.Errorf("create dataset: %w", err)
	}
	return id, nil
}

// CreateTag creates a tag annotation and returns its id.
func (b *Bridge) CreateTag(ctx context.Context, name, description string) (int64, error) {
	id, err := b.client.Create(ctx, types.TypeTag, name, description, nil)
	if err != nil {
		return -1, fmt.Errorf("create tag: %w", err)
	}
	return id, nil
}

// CreateKeyValuePair creates a key-value pair annotation.
func (b *Bridge) CreateKeyValuePair(ctx context.Context, key, value string) (int64, error) {
	id, err := b.client.Create(ctx, types.TypeKVPair, key, value, nil)
	if err != nil {
		return -1, fmt.Errorf("create kv-pair: %w", err)
	}
	return id, nil
}

// AttachFile uploads a file to a repository object and returns the
// file id.
func (b *Bridge) AttachFile(ctx context.Context, rawType string, id int64, path string) (int64, error) {
	obj, err := b.repositoryObject(ctx, rawType, id)
	if err != nil {
		return -1, err
	}
	fileID, err := b.client.AttachFile(ctx, obj.Addr(), path)
	if err != nil {
		return -1, fmt.Errorf("add file to %s: %w", obj.Addr(), err)
	}
	return fileID, nil
}

// DeleteFile removes an uploaded file by id.
func (b *Bridge) DeleteFile(ctx context.Context, id int64) error {
	if err := b.client.DeleteFile(ctx, id); err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	return nil
}
