package drivers

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/retrohost/retrohost/abi"
)

// optionEntry is the up-converted internal representation every protocol
// version (v0/v1/v2) is normalized into. reorderDefault-equivalent handling
// happens when definitions are installed: Values[0] is always treated as the default when a
// core hasn't reported one explicitly, mirroring eblitui's reorderDefault.
type optionEntry struct {
	key          string
	values       []abi.CoreOptionValue
	defaultValue string
	current      string
	category     string
	visible      bool
}

// DefaultOptionDriver is the stock OptionDriver: an in-memory table of
// optionEntry keyed by option key, a bounded LRU cache in front of repeated
// GetVariable lookups (cores commonly poll the same handful of keys every
// frame), and a single dirty flag cleared by VariableUpdated.
//
// Per the conservative reading of the variable_updated semantics, any
// mutation from either SetVariable (frontend-initiated) or a later
// SetVariables/SetOptionsV1/SetOptionsV2 call (core re-declaring its option
// set) sets the flag.
type DefaultOptionDriver struct {
	mu      sync.Mutex
	version int
	order   []string
	entries map[string]*optionEntry
	cache   *lru.Cache[string, string]
	dirty   bool
}

// NewDefaultOptionDriver builds an OptionDriver with a lookup cache sized
// for a few hundred distinct keys, comfortably above what any real core
// declares.
func NewDefaultOptionDriver() *DefaultOptionDriver {
	cache, _ := lru.New[string, string](256)
	return &DefaultOptionDriver{
		entries: make(map[string]*optionEntry),
		cache:   cache,
	}
}

func (d *DefaultOptionDriver) Version() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

func (d *DefaultOptionDriver) SetVariables(vars []abi.Variable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = 0
	d.entries = make(map[string]*optionEntry, len(vars))
	d.order = d.order[:0]
	for _, v := range vars {
		d.entries[v.Key] = &optionEntry{
			key:     v.Key,
			current: v.Value,
			visible: true,
		}
		d.order = append(d.order, v.Key)
	}
	d.cache.Purge()
	d.dirty = true
}

func (d *DefaultOptionDriver) SetOptionsV1(defs []abi.CoreOptionDefinition) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = 1
	d.setDefinitionsLocked(defs)
}

func (d *DefaultOptionDriver) SetOptionsV2(opts abi.CoreOptionsV2) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.version = 2
	d.setDefinitionsLocked(opts.Definitions)
}

func (d *DefaultOptionDriver) setDefinitionsLocked(defs []abi.CoreOptionDefinition) {
	d.entries = make(map[string]*optionEntry, len(defs))
	d.order = d.order[:0]
	for _, def := range defs {
		e := &optionEntry{
			key:      def.Key,
			values:   def.Values,
			category: def.Category,
			visible:  true,
		}
		e.defaultValue = reorderedDefault(def)
		e.current = e.defaultValue
		d.entries[def.Key] = e
		d.order = append(d.order, def.Key)
	}
	d.cache.Purge()
	d.dirty = true
}

// reorderedDefault picks the default value for one definition: the core's
// explicit DefaultValue if set and present among Values, otherwise the
// first value, mirroring eblitui's reorderDefault (move default to front).
func reorderedDefault(def abi.CoreOptionDefinition) string {
	if def.DefaultValue != "" {
		for _, v := range def.Values {
			if v.Value == def.DefaultValue {
				return def.DefaultValue
			}
		}
	}
	if len(def.Values) > 0 {
		return def.Values[0].Value
	}
	return ""
}

func (d *DefaultOptionDriver) GetVariable(key string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.cache.Get(key); ok {
		return v, true
	}
	e, ok := d.entries[key]
	if !ok {
		return "", false
	}
	d.cache.Add(key, e.current)
	return e.current, true
}

func (d *DefaultOptionDriver) SetVariable(key, value string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[key]
	if !ok {
		return false
	}
	e.current = value
	d.cache.Add(key, value)
	d.dirty = true
	return true
}

func (d *DefaultOptionDriver) VariableUpdated() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	updated := d.dirty
	d.dirty = false
	return updated
}

func (d *DefaultOptionDriver) MarkDirty() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dirty = true
}

func (d *DefaultOptionDriver) SetDisplay(display abi.CoreOptionDisplay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.entries[display.Key]; ok {
		e.visible = display.Visible
	}
}
