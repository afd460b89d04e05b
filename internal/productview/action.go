package productview

import (
	"strconv"
	"strings"

	"github.com/dukerupert/vitrine/internal/domain"
)

// ActionKind is the kind of shopper event.
type ActionKind string

const (
	ActionColor    ActionKind = "color"
	ActionSize     ActionKind = "size"
	ActionQuantity ActionKind = "qty"
)

// maxQuantityStep bounds a single quantity change from outside input.
const maxQuantityStep = 1000

// Action is one shopper event: a color click, a size click, or a quantity
// change.
type Action struct {
	Kind  ActionKind
	Value string
	Delta int
}

// ParseAction parses "color:<value>", "size:<value>" or "qty:<delta>"
// (for example "qty:+1", "qty:-1").
func ParseAction(s string) (Action, error) {
	const op = "productview.parse_action"

	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return Action{}, domain.Errorf(domain.EINVALID, op, "malformed action %q", s)
	}

	switch ActionKind(kind) {
	case ActionColor, ActionSize:
		if value == "" {
			return Action{}, domain.Errorf(domain.EINVALID, op, "action %q needs a value", kind)
		}
		return Action{Kind: ActionKind(kind), Value: value}, nil
	case ActionQuantity:
		delta, err := strconv.Atoi(value)
		if err != nil || delta < -maxQuantityStep || delta > maxQuantityStep {
			return Action{}, domain.Errorf(domain.EINVALID, op, "invalid quantity change %q", value)
		}
		return Action{Kind: ActionQuantity, Delta: delta}, nil
	default:
		return Action{}, domain.Errorf(domain.EINVALID, op, "unknown action %q", kind)
	}
}

// String formats the action the way ParseAction reads it.
func (a Action) String() string {
	if a.Kind == ActionQuantity {
		return string(a.Kind) + ":" + strconv.Itoa(a.Delta)
	}
	return string(a.Kind) + ":" + a.Value
}

// Apply applies one shopper event to the view. A size outside the size
// axis is rejected here, before it reaches the selection.
func (v *View) Apply(a Action) error {
	switch a.Kind {
	case ActionColor:
		return v.SelectColor(a.Value)
	case ActionSize:
		if !v.Axes().HasSize(a.Value) {
			return domain.Errorf(domain.EINVALID, "productview.apply", "Size %q is not available for this product", a.Value)
		}
		v.SelectSize(a.Value)
		return nil
	case ActionQuantity:
		v.SetQuantity(a.Delta)
		return nil
	default:
		return domain.Errorf(domain.EINVALID, "productview.apply", "unknown action %q", a.Kind)
	}
}

// Saved is a selection carried between requests. SizeSet records that a
// size was sent at all, so the empty size left by a color change is told
// apart from no size.
type Saved struct {
	Color    string
	Size     string
	SizeSet  bool
	Quantity int
}

// Restore brings a fresh view to a previously rendered state using only
// the selection operations: SelectColor, then SelectSize, then
// SetQuantity. An empty color leaves the initial color. An unsent size
// leaves whatever SelectColor chose; a sent size, empty included, is taken
// as given so that a state reached through SelectSize or a color repair
// survives a round trip.
func (v *View) Restore(s Saved) error {
	if s.Color != "" {
		if err := v.SelectColor(s.Color); err != nil {
			return err
		}
	}

	switch {
	case s.Size != "":
		if !v.Axes().HasSize(s.Size) {
			return domain.Errorf(domain.EINVALID, "productview.restore", "Size %q is not available for this product", s.Size)
		}
		v.SelectSize(s.Size)
	case s.SizeSet:
		v.SelectSize("")
	}

	if s.Quantity > 1 {
		v.SetQuantity(s.Quantity - v.Selection().Quantity)
	}
	return nil
}
