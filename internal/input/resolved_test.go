package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ebi/internal/registry"
)

func TestResolved_Spec(t *testing.T) {
	tests := []struct {
		name  string
		value Resolved
		want  SlotSpec
	}{
		{"trait", &TraitInput{Capability: registry.CapabilityEventLog}, CapabilitySlot(registry.CapabilityEventLog)},
		{"object", &ObjectInput{Kind: registry.ObjectFiniteLanguage}, ObjectSlot(registry.ObjectFiniteLanguage)},
		{"text", TextInput("a"), TextSlot},
		{"integer", IntegerInput(1), IntegerSlot},
		{"file handler", &FileHandlerInput{}, FileHandlerSlot},
		{"fraction", FractionInput("1/2"), FractionSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.value.Spec())
		})
	}
}

func TestAs(t *testing.T) {
	v, err := As[string](&ObjectInput{Kind: registry.ObjectFiniteLanguage, Value: "language"})
	require.NoError(t, err)
	require.Equal(t, "language", v)

	_, err = As[int](&TraitInput{Capability: registry.CapabilityFiniteLanguage, Value: "language"})
	require.ErrorContains(t, err, "finite language holds string, not int")

	_, err = As[string](TextInput("x"))
	require.ErrorContains(t, err, "text does not hold an object")
}
