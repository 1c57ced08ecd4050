package style

import (
	"fmt"

	"github.com/go-drift/styling/pkg/errors"
	"github.com/go-drift/styling/pkg/property"
)

// Decorator is an instanced visual-effect handle. The engine only stores and
// hands these out; rendering owns their behavior.
type Decorator any

// DecoratorFactory instances a decorator from its declared properties.
type DecoratorFactory func(declared map[string]property.Property) (Decorator, error)

// FactoryRegistry maps declared type strings to decorator factories. Two
// registries exist per engine instance: one for decorators, one for font
// effects.
type FactoryRegistry struct {
	factories map[string]DecoratorFactory
}

// NewFactoryRegistry returns an empty factory registry.
func NewFactoryRegistry() *FactoryRegistry {
	return &FactoryRegistry{factories: make(map[string]DecoratorFactory)}
}

// Register binds a factory to a declared type string, replacing any previous
// binding.
func (r *FactoryRegistry) Register(typ string, factory DecoratorFactory) {
	r.factories[typ] = factory
}

// Instance creates a decorator of the declared type. Unknown types and
// factory failures are reported to the error sink and return nil.
func (r *FactoryRegistry) Instance(typ string, declared map[string]property.Property) Decorator {
	if r == nil {
		return nil
	}
	factory, ok := r.factories[typ]
	if !ok {
		errors.Report(&errors.StyleError{
			Op:   "style.FactoryRegistry.Instance",
			Kind: errors.KindResolve,
			Err:  fmt.Errorf("no factory for decorator type %q", typ),
		})
		return nil
	}
	dec, err := factory(declared)
	if err != nil {
		errors.Report(&errors.StyleError{
			Op:   "style.FactoryRegistry.Instance",
			Kind: errors.KindResolve,
			Err:  fmt.Errorf("instancing decorator type %q: %w", typ, err),
		})
		return nil
	}
	return dec
}

// DecoratorDeclaration is one decorator or font-effect declaration attached
// to a rule: the declared type plus its parameter properties.
type DecoratorDeclaration struct {
	// Type selects the factory.
	Type string
	// Properties are the declared parameters, passed to the factory as-is.
	Properties map[string]property.Property
}
