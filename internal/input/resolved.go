package input

import (
	"fmt"

	"github.com/zjrosen/ebi/internal/registry"
)

// Resolved is the value bound to one command argument. It is one of
// *TraitInput, *ObjectInput, TextInput, IntegerInput, *FileHandlerInput or
// FractionInput.
type Resolved interface {
	// Spec returns the slot alternative the value satisfies.
	Spec() SlotSpec
	resolved()
}

// TraitInput is an object read through one of its capabilities.
type TraitInput struct {
	Capability registry.Capability
	Value      any
	Handler    *registry.FormatHandler
}

// ObjectInput is a concrete object.
type ObjectInput struct {
	Kind    registry.ObjectKind
	Value   any
	Handler *registry.FormatHandler
}

// TextInput is free text.
type TextInput string

// IntegerInput is an unsigned integer.
type IntegerInput uint64

// FileHandlerInput is a file handler named on the command line.
type FileHandlerInput struct {
	Handler *registry.FormatHandler
}

// FractionInput is a fraction as typed by the user. It is parsed by the
// command that consumes it, which decides on exact or approximate arithmetic.
type FractionInput FractionToken

func (t *TraitInput) Spec() SlotSpec     { return CapabilitySlot(t.Capability) }
func (o *ObjectInput) Spec() SlotSpec    { return ObjectSlot(o.Kind) }
func (TextInput) Spec() SlotSpec         { return TextSlot }
func (IntegerInput) Spec() SlotSpec      { return IntegerSlot }
func (*FileHandlerInput) Spec() SlotSpec { return FileHandlerSlot }
func (FractionInput) Spec() SlotSpec     { return FractionSlot }
func (*TraitInput) resolved()            {}
func (*ObjectInput) resolved()           {}
func (TextInput) resolved()              {}
func (IntegerInput) resolved()           {}
func (*FileHandlerInput) resolved()      {}
func (FractionInput) resolved()          {}

// As returns the value of a resolved object or trait as T.
func As[T any](r Resolved) (T, error) {
	var zero T
	var value any
	switch v := r.(type) {
	case *TraitInput:
		value = v.Value
	case *ObjectInput:
		value = v.Value
	default:
		return zero, fmt.Errorf("%s does not hold an object", r.Spec())
	}
	t, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%s holds %T, not %T", r.Spec(), value, zero)
	}
	return t, nil
}
