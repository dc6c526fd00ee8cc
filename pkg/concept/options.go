package concept

import "github.com/flyingsilverfin/grakn-client-go/pkg/protocol"

type getOwnsArgs struct {
	valueType *protocol.ValueType
	keysOnly  bool
}

// GetOwnsOption filters the attribute types returned by GetOwns.
type GetOwnsOption func(*getOwnsArgs)

// OwnsValueType limits GetOwns to attribute types of the given value type.
func OwnsValueType(valueType protocol.ValueType) GetOwnsOption {
	return func(a *getOwnsArgs) {
		a.valueType = &valueType
	}
}

// OwnsKeysOnly limits GetOwns to attribute types owned as keys.
func OwnsKeysOnly() GetOwnsOption {
	return func(a *getOwnsArgs) {
		a.keysOnly = true
	}
}

type setOwnsArgs struct {
	overriddenType AttributeType
	isKey          bool
}

// SetOwnsOption refines the ownership declared by SetOwns.
type SetOwnsOption func(*setOwnsArgs)

// WithOverriddenType declares that the owned attribute type overrides the one
// inherited from a supertype.
func WithOverriddenType(overridden AttributeType) SetOwnsOption {
	return func(a *setOwnsArgs) {
		a.overriddenType = overridden
	}
}

// AsKey declares the owned attribute type as a key.
func AsKey() SetOwnsOption {
	return func(a *setOwnsArgs) {
		a.isKey = true
	}
}

type getHasArgs struct {
	attributeTypes []AttributeType
	keysOnly       bool
}

// GetHasOption filters the attributes returned by GetHas.
type GetHasOption func(*getHasArgs)

// HasOfTypes limits GetHas to attributes of the given types.
func HasOfTypes(attributeTypes ...AttributeType) GetHasOption {
	return func(a *getHasArgs) {
		a.attributeTypes = append(a.attributeTypes, attributeTypes...)
	}
}

// HasKeysOnly limits GetHas to attributes owned as keys.
func HasKeysOnly() GetHasOption {
	return func(a *getHasArgs) {
		a.keysOnly = true
	}
}

func applyOptions[A any, O ~func(*A)](opts []O) A {
	var args A
	for _, opt := range opts {
		opt(&args)
	}
	return args
}
