package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/tasktimer/internal/config"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// KeyRegistry maps key names to actions per scope. Lookups fall back to the
// global scope.
type KeyRegistry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	scopeGlobal     = "global"
	scopeClock      = "clock"
	scopeTasks      = "tasks"
	scopeTaskForm   = "task_form"
	scopeTaskEdit   = "task_edit"
	scopeTaskSearch = "task_search"
	scopeConfirm    = "confirm"
)

const (
	actionQuit      Action = "quit"
	actionNextTab   Action = "next_tab"
	actionPrevTab   Action = "prev_tab"
	actionGoClock   Action = "go_clock"
	actionGoTasks   Action = "go_tasks"
	actionHelp      Action = "help"
	actionStartStop Action = "start_stop"
	actionLap       Action = "lap"
	actionReset     Action = "reset"

	actionNavigate       Action = "navigate"
	actionUp             Action = "up"
	actionDown           Action = "down"
	actionAdd            Action = "add"
	actionEdit           Action = "edit"
	actionDelete         Action = "delete"
	actionToggle         Action = "toggle"
	actionSearch         Action = "search"
	actionClearSearch    Action = "clear_search"
	actionFilterCategory Action = "filter_category"
	actionShowCompleted  Action = "show_completed"
	actionClearCompleted Action = "clear_completed"

	actionSubmit        Action = "submit"
	actionCancel        Action = "cancel"
	actionNextField     Action = "next_field"
	actionCycleCategory Action = "cycle_category"
	actionCyclePriority Action = "cycle_priority"
	actionConfirm       Action = "confirm"
)

func NewKeyRegistry() *KeyRegistry {
	r := &KeyRegistry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	// Global fallback lookup.
	reg(scopeGlobal, actionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(scopeGlobal, actionNextTab, []string{"tab"}, "next tab")
	reg(scopeGlobal, actionPrevTab, []string{"shift+tab"}, "prev tab")
	reg(scopeGlobal, actionGoClock, []string{"1"}, "clock")
	reg(scopeGlobal, actionGoTasks, []string{"2"}, "tasks")
	reg(scopeGlobal, actionHelp, []string{"?"}, "help")

	reg(scopeClock, actionStartStop, []string{"s", "space"}, "start/stop")
	reg(scopeClock, actionLap, []string{"l"}, "lap")
	reg(scopeClock, actionReset, []string{"r"}, "reset")

	reg(scopeTasks, actionUp, []string{"k", "up"}, "up")
	reg(scopeTasks, actionDown, []string{"j", "down"}, "down")
	reg(scopeTasks, actionAdd, []string{"a", "n"}, "add")
	reg(scopeTasks, actionToggle, []string{"space", "x"}, "done")
	reg(scopeTasks, actionEdit, []string{"e", "enter"}, "edit")
	reg(scopeTasks, actionDelete, []string{"d", "delete"}, "delete")
	reg(scopeTasks, actionSearch, []string{"/"}, "search")
	reg(scopeTasks, actionClearSearch, []string{"esc"}, "clear search")
	reg(scopeTasks, actionFilterCategory, []string{"c"}, "category")
	reg(scopeTasks, actionShowCompleted, []string{"h"}, "show done")
	reg(scopeTasks, actionClearCompleted, []string{"C"}, "clear done")

	reg(scopeTaskForm, actionSubmit, []string{"enter"}, "add")
	reg(scopeTaskForm, actionNextField, []string{"tab", "shift+tab"}, "field")
	reg(scopeTaskForm, actionCycleCategory, []string{"ctrl+g"}, "category")
	reg(scopeTaskForm, actionCyclePriority, []string{"ctrl+p"}, "priority")
	reg(scopeTaskForm, actionCancel, []string{"esc"}, "cancel")

	reg(scopeTaskEdit, actionSubmit, []string{"enter"}, "save")
	reg(scopeTaskEdit, actionCancel, []string{"esc"}, "cancel")

	reg(scopeTaskSearch, actionSubmit, []string{"enter"}, "apply")
	reg(scopeTaskSearch, actionCancel, []string{"esc"}, "clear")

	reg(scopeConfirm, actionConfirm, []string{"y"}, "confirm")
	reg(scopeConfirm, actionCancel, []string{"n", "esc"}, "cancel")

	return r
}

func (r *KeyRegistry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 || r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *KeyRegistry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves keyName in scope, then in the global scope.
func (r *KeyRegistry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = normalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != scopeGlobal {
		return r.lookupInScope(keyName, scopeGlobal)
	}
	return nil
}

// LookupScoped resolves keyName in scope only, without the global fallback.
// Panes with a focused text input use it so typed characters reach the input.
func (r *KeyRegistry) LookupScoped(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	return r.lookupInScope(normalizeKeyName(keyName), scope)
}

func (r *KeyRegistry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, helpBinding(b))
	}
	return out
}

func helpBinding(b Binding) key.Binding {
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help))
}

func (r *KeyRegistry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *KeyRegistry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := normalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func normalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

// ApplyKeybindingConfig replaces the keys of configured actions and rejects
// overrides that leave two actions sharing a key within one scope.
func (r *KeyRegistry) ApplyKeybindingConfig(items []config.Keybinding) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keybinding scope=%q action=%q: unknown scope", scope, action)
		}
		var target *Binding
		for _, b := range bindings {
			if b.Action == action {
				target = b
				break
			}
		}
		if target == nil {
			return fmt.Errorf("keybinding scope=%q action=%q: unknown action in scope", scope, action)
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keybinding scope=%q action=%q: duplicated entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	for scope, bindings := range r.bindingsByScope {
		seen := make(map[string]Action)
		for _, b := range bindings {
			for _, k := range b.Keys {
				if prev, ok := seen[k]; ok {
					return fmt.Errorf("keybinding conflict in scope=%q: key %q used by both %q and %q", scope, k, prev, b.Action)
				}
				seen[k] = b.Action
			}
		}
	}
	return nil
}

func (r *KeyRegistry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}
