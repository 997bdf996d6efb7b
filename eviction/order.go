package eviction

import "container/list"

// keyOrder is a list of keys with O(1) lookup by key.
// The front of the list is the next victim.
type keyOrder struct {
	order *list.List
	elems map[string]*list.Element
}

func newKeyOrder() keyOrder {
	return keyOrder{order: list.New(), elems: make(map[string]*list.Element)}
}

func (o *keyOrder) has(k string) bool {
	_, ok := o.elems[k]
	return ok
}

func (o *keyOrder) pushBack(k string) {
	o.elems[k] = o.order.PushBack(k)
}

func (o *keyOrder) moveToBack(k string) {
	if e, ok := o.elems[k]; ok {
		o.order.MoveToBack(e)
	}
}

func (o *keyOrder) Remove(k string) {
	if e, ok := o.elems[k]; ok {
		o.order.Remove(e)
		delete(o.elems, k)
	}
}

func (o *keyOrder) Evict() (string, bool) {
	front := o.order.Front()
	if front == nil {
		return "", false
	}
	k := o.order.Remove(front).(string)
	delete(o.elems, k)
	return k, true
}

func (o *keyOrder) Len() int {
	return o.order.Len()
}

func (o *keyOrder) Reset() {
	o.order.Init()
	o.elems = make(map[string]*list.Element)
}
