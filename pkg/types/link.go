package types

import "fmt"

// LinkKind selects the remote strategy a link or unlink request maps to.
type LinkKind string

const (
	// LinkAnnotationAttach attaches or detaches an annotation on a
	// repository object.
	LinkAnnotationAttach LinkKind = "annotation-attach"
	// LinkContainerChild adds or removes a child in a container
	// (dataset in project, or image in dataset).
	LinkContainerChild LinkKind = "container-child"
)

// LinkPlan is the validated outcome of a link or unlink request: which
// strategy applies and which side plays which role. The same plan shape
// drives both the add and the remove operation.
type LinkPlan struct {
	Kind LinkKind

	// Annotation and Object are set for LinkAnnotationAttach.
	Annotation TypedID
	Object     TypedID

	// Parent and Child are set for LinkContainerChild.
	Parent TypedID
	Child  TypedID
}

// PlanLink decides whether linking the two addressed objects is legal
// and, if so, which strategy applies. The arguments may come in either
// order. The containment rules of the repository are encoded here:
// projects contain datasets, datasets contain images, annotations
// attach to any repository object, and the HCS hierarchy is fixed and
// only reachable by annotations. Returns ErrInvalidLink otherwise.
func PlanLink(a, b TypedID) (LinkPlan, error) {
	invalid := func() (LinkPlan, error) {
		return LinkPlan{}, fmt.Errorf("%w: cannot link %s and %s", ErrInvalidLink, a.Kind, b.Kind)
	}

	// Two distinct addresses are required; duplicate kinds collapse
	// into one.
	if !validObjectTypes[a.Kind] || !validObjectTypes[b.Kind] || a.Kind == b.Kind {
		return invalid()
	}

	aAnn := a.Kind.IsAnnotation()
	bAnn := b.Kind.IsAnnotation()
	switch {
	case aAnn && bAnn:
		// Two annotations cannot be linked to each other.
		return invalid()
	case (a.Kind.IsHCS() || b.Kind.IsHCS()) && !aAnn && !bAnn:
		// HCS containers only accept annotations through this path.
		return invalid()
	}

	byKind := map[ObjectType]TypedID{a.Kind: a, b.Kind: b}
	_, hasProject := byKind[TypeProject]
	_, hasImage := byKind[TypeImage]
	if hasProject && hasImage {
		// No direct project-image link; it must go through a dataset.
		return invalid()
	}

	if aAnn || bAnn {
		ann, obj := a, b
		if bAnn {
			ann, obj = b, a
		}
		return LinkPlan{Kind: LinkAnnotationAttach, Annotation: ann, Object: obj}, nil
	}

	dataset, ok := byKind[TypeDataset]
	if !ok {
		// Unreachable through the table above, but the dataset is
		// mandatory in this branch.
		return invalid()
	}
	if project, ok := byKind[TypeProject]; ok {
		return LinkPlan{Kind: LinkContainerChild, Parent: project, Child: dataset}, nil
	}
	image, ok := byKind[TypeImage]
	if !ok {
		return invalid()
	}
	return LinkPlan{Kind: LinkContainerChild, Parent: dataset, Child: image}, nil
}
