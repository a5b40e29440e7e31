package event

import (
	"reflect"
	"sort"
)

// ListenerID uniquely identifies a listener within one Dispatcher.
// It has the form "<event name>_<n>".
type ListenerID string

// listener is a registered callback and its recovered parameter signature.
type listener struct {
	id       ListenerID
	name     string
	fn       reflect.Value
	params   Signature
	errIndex int // index of a trailing error result, or -1
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// newListener validates callback and wraps it.
func newListener(id ListenerID, name string, callback any) (*listener, error) {
	if callback == nil {
		return nil, ErrNotCallable
	}
	fn := reflect.ValueOf(callback)
	ft := fn.Type()
	if ft.Kind() != reflect.Func || fn.IsNil() || ft.IsVariadic() {
		return nil, ErrNotCallable
	}

	errIndex := -1
	if n := ft.NumOut(); n > 0 && ft.Out(n-1) == errorType {
		errIndex = n - 1
	}

	return &listener{
		id:       id,
		name:     name,
		fn:       fn,
		params:   signatureOf(ft),
		errIndex: errIndex,
	}, nil
}

// call invokes the listener with already type-checked arguments.
func (l *listener) call(args []reflect.Value) error {
	out := l.fn.Call(args)
	if l.errIndex < 0 {
		return nil
	}
	if err, ok := out[l.errIndex].Interface().(error); ok && err != nil {
		return err
	}
	return nil
}

// registry is the insertion-ordered multi-map from event name to listeners.
// It is not safe for concurrent use; Dispatcher guards it.
type registry struct {
	byName map[string][]*listener
	byID   map[ListenerID]string
	sigs   map[string]Signature
}

func newRegistry() *registry {
	return &registry{
		byName: make(map[string][]*listener),
		byID:   make(map[ListenerID]string),
		sigs:   make(map[string]Signature),
	}
}

// add appends l to its event's listener list.
func (r *registry) add(l *listener) {
	r.byName[l.name] = append(r.byName[l.name], l)
	r.byID[l.id] = l.name
}

// remove deletes the listener with the given id.
// The name's slice is replaced rather than edited in place so that
// snapshots taken by an in-progress emit stay intact.
func (r *registry) remove(id ListenerID) bool {
	name, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)

	old := r.byName[name]
	if len(old) == 1 {
		delete(r.byName, name)
		return true
	}
	kept := make([]*listener, 0, len(old)-1)
	for _, l := range old {
		if l.id != id {
			kept = append(kept, l)
		}
	}
	r.byName[name] = kept
	return true
}

// snapshot returns a copy of the listeners registered under name.
func (r *registry) snapshot(name string) []*listener {
	ls := r.byName[name]
	if len(ls) == 0 {
		return nil
	}
	result := make([]*listener, len(ls))
	copy(result, ls)
	return result
}

// names returns all event names with at least one listener, sorted.
func (r *registry) names() []string {
	if len(r.byName) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry) clear() {
	r.byName = make(map[string][]*listener)
	r.byID = make(map[ListenerID]string)
}
