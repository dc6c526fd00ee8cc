package answer

import (
	"maps"
	"slices"

	"github.com/flyingsilverfin/grakn-client-go/pkg/concept"
	"github.com/flyingsilverfin/grakn-client-go/pkg/graknerrors"
	"github.com/flyingsilverfin/grakn-client-go/pkg/protocol"
)

// ConceptMap binds the variables of a query to the concepts answering it.
type ConceptMap struct {
	concepts map[string]concept.Concept
}

// ConceptMapOf decodes every concept of a concept map.
func ConceptMapOf(p *protocol.ConceptMap) (ConceptMap, error) {
	if p == nil {
		return ConceptMap{}, graknerrors.MissingResponse.New("concept_map")
	}

	concepts := make(map[string]concept.Concept, len(p.Map))
	for variable, cp := range p.Map {
		c, err := concept.ConceptOf(cp)
		if err != nil {
			return ConceptMap{}, err
		}
		concepts[variable] = c
	}
	return ConceptMap{concepts: concepts}, nil
}

// Get returns the concept bound to variable.
func (m ConceptMap) Get(variable string) (concept.Concept, bool) {
	c, ok := m.concepts[variable]
	return c, ok
}

// Variables returns the bound variables in sorted order.
func (m ConceptMap) Variables() []string {
	return slices.Sorted(maps.Keys(m.concepts))
}

// Map returns a copy of the bindings.
func (m ConceptMap) Map() map[string]concept.Concept {
	return maps.Clone(m.concepts)
}

func (m ConceptMap) Len() int {
	return len(m.concepts)
}

// ConceptMapGroup is the set of answers sharing an owner concept.
type ConceptMapGroup struct {
	Owner       concept.Concept
	ConceptMaps []ConceptMap
}

func ConceptMapGroupOf(p *protocol.ConceptMapGroup) (ConceptMapGroup, error) {
	if p == nil {
		return ConceptMapGroup{}, graknerrors.MissingResponse.New("concept_map_group")
	}

	owner, err := OwnerOf(p.Owner)
	if err != nil {
		return ConceptMapGroup{}, err
	}

	conceptMaps := make([]ConceptMap, 0, len(p.ConceptMaps))
	for _, cm := range p.ConceptMaps {
		decoded, err := ConceptMapOf(cm)
		if err != nil {
			return ConceptMapGroup{}, err
		}
		conceptMaps = append(conceptMaps, decoded)
	}
	return ConceptMapGroup{Owner: owner, ConceptMaps: conceptMaps}, nil
}

// NumericGroup is an aggregate computed over the answers sharing an owner.
type NumericGroup struct {
	Owner   concept.Concept
	Numeric Numeric
}

func NumericGroupOf(p *protocol.NumericGroup) (NumericGroup, error) {
	if p == nil {
		return NumericGroup{}, graknerrors.MissingResponse.New("numeric_group")
	}

	owner, err := OwnerOf(p.Owner)
	if err != nil {
		return NumericGroup{}, err
	}
	numeric, err := NumericOf(p.Number)
	if err != nil {
		return NumericGroup{}, err
	}
	return NumericGroup{Owner: owner, Numeric: numeric}, nil
}

// OwnerOf decodes the owner of a group. A thing decodes as a Thing; a type
// with a scope decodes as a RoleType and any other type as a ThingType.
func OwnerOf(p *protocol.Concept) (concept.Concept, error) {
	switch {
	case p.HasThing():
		return concept.ThingOf(p.Thing)
	case p.HasType() && p.Type.Scope != "":
		return concept.RoleTypeOf(p.Type)
	case p.HasType():
		return concept.ThingTypeOf(p.Type)
	default:
		return nil, graknerrors.MissingConcept.New()
	}
}
