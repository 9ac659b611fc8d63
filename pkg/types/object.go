package types

import (
	"fmt"
	"strings"
)

// ObjectType identifies one kind of remote object. The vocabulary is
// closed: six repository kinds plus two annotation kinds.
type ObjectType string

const (
	TypeProject ObjectType = "project"
	TypeDataset ObjectType = "dataset"
	TypeImage   ObjectType = "image"
	TypeScreen  ObjectType = "screen"
	TypePlate   ObjectType = "plate"
	TypeWell    ObjectType = "well"
	TypeTag     ObjectType = "tag"
	TypeKVPair  ObjectType = "kv-pair"
)

// validObjectTypes is the set of recognized object types.
var validObjectTypes = map[ObjectType]bool{
	TypeProject: true,
	TypeDataset: true,
	TypeImage:   true,
	TypeScreen:  true,
	TypePlate:   true,
	TypeWell:    true,
	TypeTag:     true,
	TypeKVPair:  true,
}

// RepositoryTypes lists the six hierarchically-containable kinds in
// canonical order.
var RepositoryTypes = []ObjectType{
	TypeProject, TypeDataset, TypeImage, TypeScreen, TypePlate, TypeWell,
}

// AnnotationTypes lists the two attachable annotation kinds.
var AnnotationTypes = []ObjectType{TypeTag, TypeKVPair}

// AllTypes lists every recognized kind in canonical order.
var AllTypes = []ObjectType{
	TypeProject, TypeDataset, TypeImage, TypeScreen, TypePlate, TypeWell,
	TypeTag, TypeKVPair,
}

// ParseObjectType normalizes a free-form type label to its canonical
// ObjectType: lower-cased, with one trailing plural "s" stripped.
// Normalization is idempotent. Returns ErrUnknownType if the result is
// not in the vocabulary.
func ParseObjectType(raw string) (ObjectType, error) {
	s := strings.ToLower(raw)
	if n := len(s); n > 0 && s[n-1] == 's' {
		s = s[:n-1]
	}
	t := ObjectType(s)
	if !validObjectTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// IsAnnotation reports whether the type is a tag or key-value pair.
func (t ObjectType) IsAnnotation() bool {
	return t == TypeTag || t == TypeKVPair
}

// IsHCS reports whether the type belongs to the high-content-screening
// hierarchy (screen, plate or well).
func (t ObjectType) IsHCS() bool {
	return t == TypeScreen || t == TypePlate || t == TypeWell
}

// IsRepository reports whether the type is one of the six repository
// kinds (named, hierarchically-containable objects).
func (t ObjectType) IsRepository() bool {
	return validObjectTypes[t] && !t.IsAnnotation()
}

// String returns the canonical label.
func (t ObjectType) String() string { return string(t) }

// TypedID addresses one remote object by kind and numeric id.
type TypedID struct {
	Kind ObjectType
	ID   int64
}

// String formats the address as "kind:id".
func (r TypedID) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// FormatTypes joins type labels for "possible values" error messages.
func FormatTypes(kinds []ObjectType) string {
	labels := make([]string, len(kinds))
	for i, k := range kinds {
		labels[i] = string(k)
	}
	return strings.Join(labels, ", ")
}
