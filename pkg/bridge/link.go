package bridge

import (
	"context"
	"fmt"

	"github.com/lumigraph/omebridge/pkg/types"
)

// planLink normalizes both type labels and runs the link validator.
func planLink(rawType1 string, id1 int64, rawType2 string, id2 int64) (types.LinkPlan, error) {
	t1, err := parseTypeIn(rawType1, types.AllTypes)
	if err != nil {
		return types.LinkPlan{}, err
	}
	t2, err := parseTypeIn(rawType2, types.AllTypes)
	if err != nil {
		return types.LinkPlan{}, err
	}
	return types.PlanLink(types.TypedID{Kind: t1, ID: id1}, types.TypedID{Kind: t2, ID: id2})
}

// Link validates the pairing of two addressed objects and applies the
// resulting plan: attaching an annotation to a repository object, or
// adding a child to its container.
func (b *Bridge) Link(ctx context.Context, rawType1 string, id1 int64, rawType2 string, id2 int64) error {
	plan, err := planLink(rawType1, id1, rawType2, id2)
	if err != nil {
		return err
	}
	if err := b.client.Link(ctx, plan); err != nil {
		return fmt.Errorf("cannot link %s and %s: %w", rawType1, rawType2, err)
	}
	return nil
}

// Unlink validates the pairing exactly as Link does and removes the
// planned link.
func (b *Bridge) Unlink(ctx context.Context, rawType1 string, id1 int64, rawType2 string, id2 int64) error {
	plan, err := planLink(rawType1, id1, rawType2, id2)
	if err != nil {
		return err
	}
	if err := b.client.Unlink(ctx, plan); err != nil {
		return fmt.Errorf("cannot unlink %s and %s: %w", rawType1, rawType2, err)
	}
	return nil
}
