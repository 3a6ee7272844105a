package stylesheet

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Names of sheet mutations, as reported to subscribers.
const (
	OpReplace    = "replace"
	OpInsertRule = "insertRule"
	OpDeleteRule = "deleteRule"
	OpAddRule    = "addRule"
	OpRemoveRule = "removeRule"
)

// Mutation describes a successful change of a sheet.
type Mutation struct {
	Name string        // one of the Op… constants
	Args []interface{} // arguments of the call, e.g. rule text and index
}

// Sheet is a constructable style sheet: a list of rules which may be changed
// and observed. Sheets are safe for concurrent use.
type Sheet struct {
	mx     sync.RWMutex
	rules  []string // serialized rules
	subs   map[int]func(Mutation)
	nextID int
}

// NewSheet creates an empty sheet.
func NewSheet() *Sheet {
	return &Sheet{subs: make(map[int]func(Mutation))}
}

// Replace replaces all rules of the sheet by the rules of text.
// If text cannot be parsed, the sheet is unchanged.
func (sh *Sheet) Replace(text string) error {
	rules, err := splitRules(text)
	if err != nil {
		return err
	}
	sh.mx.Lock()
	sh.rules = rules
	sh.mx.Unlock()
	sh.publish(Mutation{Name: OpReplace, Args: []interface{}{text}})
	return nil
}

// InsertRule inserts a single rule at position index and returns index.
// Valid indices are 0…Len().
func (sh *Sheet) InsertRule(rule string, index int) (int, error) {
	if err := sh.insert(rule, index); err != nil {
		return -1, err
	}
	sh.publish(Mutation{Name: OpInsertRule, Args: []interface{}{rule, index}})
	return index, nil
}

// AddRule is the legacy form of InsertRule, taking a selector and a
// declaration block. If index is negative, the rule is appended.
func (sh *Sheet) AddRule(sel, block string, index int) (int, error) {
	if index < 0 {
		index = sh.Len()
	}
	if !strings.HasPrefix(strings.TrimSpace(block), "{") {
		block = "{ " + block + " }"
	}
	if err := sh.insert(sel+" "+block, index); err != nil {
		return -1, err
	}
	sh.publish(Mutation{Name: OpAddRule, Args: []interface{}{sel, block, index}})
	return index, nil
}

func (sh *Sheet) insert(rule string, index int) error {
	rules, err := splitRules(rule)
	if err != nil {
		return err
	}
	if len(rules) != 1 {
		return fmt.Errorf("%w: expected a single rule, have %d", ErrSyntax, len(rules))
	}
	sh.mx.Lock()
	defer sh.mx.Unlock()
	if index < 0 || index > len(sh.rules) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	sh.rules = append(sh.rules, "")
	copy(sh.rules[index+1:], sh.rules[index:])
	sh.rules[index] = rules[0]
	return nil
}

// DeleteRule removes the rule at position index.
func (sh *Sheet) DeleteRule(index int) error {
	if err := sh.delete(index); err != nil {
		return err
	}
	sh.publish(Mutation{Name: OpDeleteRule, Args: []interface{}{index}})
	return nil
}

// RemoveRule is the legacy form of DeleteRule.
func (sh *Sheet) RemoveRule(index int) error {
	if err := sh.delete(index); err != nil {
		return err
	}
	sh.publish(Mutation{Name: OpRemoveRule, Args: []interface{}{index}})
	return nil
}

func (sh *Sheet) delete(index int) error {
	sh.mx.Lock()
	defer sh.mx.Unlock()
	if index < 0 || index >= len(sh.rules) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	sh.rules = append(sh.rules[:index], sh.rules[index+1:]...)
	return nil
}

// Len returns the number of rules.
func (sh *Sheet) Len() int {
	sh.mx.RLock()
	defer sh.mx.RUnlock()
	return len(sh.rules)
}

// Rules returns the serialized rules of the sheet.
func (sh *Sheet) Rules() []string {
	sh.mx.RLock()
	defer sh.mx.RUnlock()
	rules := make([]string, len(sh.rules))
	copy(rules, sh.rules)
	return rules
}

// CSSText returns the serialized sheet.
func (sh *Sheet) CSSText() string {
	return strings.Join(sh.Rules(), "\n")
}

// Subscribe registers a callback for mutations of the sheet. Callbacks are
// called synchronously after a mutation succeeded, in order of subscription.
// The returned function cancels the subscription.
func (sh *Sheet) Subscribe(callback func(Mutation)) (cancel func()) {
	sh.mx.Lock()
	id := sh.nextID
	sh.nextID++
	sh.subs[id] = callback
	sh.mx.Unlock()
	return func() {
		sh.mx.Lock()
		delete(sh.subs, id)
		sh.mx.Unlock()
	}
}

func (sh *Sheet) publish(m Mutation) {
	sh.mx.RLock()
	ids := make([]int, 0, len(sh.subs))
	for id := range sh.subs {
		ids = append(ids, id)
	}
	callbacks := make([]func(Mutation), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		callbacks = append(callbacks, sh.subs[id])
	}
	sh.mx.RUnlock()
	tracer().Debugf("sheet mutation %s, %d subscriber(s)", m.Name, len(callbacks))
	for _, callback := range callbacks {
		callback(m)
	}
}

// splitRules parses text and returns its rules in serialized form.
func splitRules(text string) ([]string, error) {
	sheet, err := Parse(text)
	if err != nil {
		return nil, err
	}
	rules := sheet.Rules()
	texts := make([]string, len(rules))
	for i, r := range rules {
		texts[i] = r.CSSText()
	}
	return texts, nil
}
