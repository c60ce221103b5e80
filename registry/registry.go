package registry

import (
	"strings"
	"sync"

	"github.com/querylab/typesig/types"
)

// Factory produces the type instance a registered name stands for. It's
// invoked on every resolution, so a host can hand out singletons or build
// fresh instances, whichever it prefers.
type Factory interface {
	Type() types.Type
}

type FactoryFunc func() types.Type

func (f FactoryFunc) Type() types.Type {
	return f()
}

// Static returns a factory which always resolves to the given type.
func Static(t types.Type) Factory {
	return FactoryFunc(func() types.Type {
		return t
	})
}

// Canonicalize case-folds a type name for registry lookup. Spaces are kept
// as-is, multi-word names are expected to use exactly one space between
// words.
func Canonicalize(name string) string {
	return strings.ToLower(name)
}

// Registry maps canonical type names to factories. Safe for concurrent
// registration and resolution.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// New returns a registry pre-populated with the builtin type names.
func New() *Registry {
	r := &Registry{
		factories: make(map[string]Factory, len(builtins)),
	}
	for name, t := range builtins {
		r.Register(name, Static(t))
	}
	return r
}

// Register inserts or replaces the factory for the canonicalized name. Last
// write wins, re-registration is a deliberate override capability for host
// applications.
func (r *Registry) Register(name string, factory Factory) {
	canonical := Canonicalize(name)

	r.mu.Lock()
	r.factories[canonical] = factory
	r.mu.Unlock()
}

// Resolve canonicalizes the name and returns the registered type, if any.
func (r *Registry) Resolve(name string) (types.Type, bool) {
	canonical := Canonicalize(name)

	r.mu.RLock()
	factory, ok := r.factories[canonical]
	r.mu.RUnlock()

	if !ok {
		return types.Type{}, false
	}
	return factory.Type(), true
}

// IsRegisteredMultiWord reports whether the canonicalized name contains a
// space and is registered. The parser uses it to recognize custom names
// spanning several identifier tokens.
func (r *Registry) IsRegisteredMultiWord(name string) bool {
	canonical := Canonicalize(name)
	if !strings.Contains(canonical, " ") {
		return false
	}

	r.mu.RLock()
	_, ok := r.factories[canonical]
	r.mu.RUnlock()

	return ok
}

var builtins = map[string]types.Type{
	"boolean":   types.Boolean,
	"tinyint":   types.Tinyint,
	"smallint":  types.Smallint,
	"int":       types.Integer,
	"integer":   types.Integer,
	"bigint":    types.Bigint,
	"hugeint":   types.Hugeint,
	"real":      types.Real,
	"double":    types.Double,
	"varchar":   types.Varchar,
	"varbinary": types.Varbinary,
	"timestamp": types.Timestamp,
	"date":      types.Date,
	"unknown":   types.Unknown,

	"interval year to month": types.IntervalYearMonth,
	"interval day to second": types.IntervalDayTime,
}

// Default is the process-wide registry used by parser.ParseType. Hosts
// register their custom types here at startup.
var Default = New()

func Register(name string, factory Factory) {
	Default.Register(name, factory)
}

func Resolve(name string) (types.Type, bool) {
	return Default.Resolve(name)
}
