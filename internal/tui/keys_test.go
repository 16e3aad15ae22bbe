package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/tasktimer/internal/config"
)

func TestKeyLookupFallsBackToGlobal(t *testing.T) {
	r := NewKeyRegistry()

	b := r.Lookup("l", scopeClock)
	require.NotNil(t, b)
	require.Equal(t, actionLap, b.Action)

	b = r.Lookup("q", scopeClock)
	require.NotNil(t, b)
	require.Equal(t, actionQuit, b.Action)

	require.Nil(t, r.LookupScoped("q", scopeClock))
	require.Nil(t, r.Lookup("", scopeClock))
}

func TestNormalizeKeyName(t *testing.T) {
	cases := map[string]string{
		" ":            "space",
		"Spacebar":     "space",
		"Control+K":    "ctrl+k",
		"ctl+x":        "ctrl+x",
		"Return":       "enter",
		"C":            "C",
		"  Shift+Tab ": "shift+tab",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizeKeyName(in), "input %q", in)
	}
}

func TestApplyKeybindingConfig(t *testing.T) {
	r := NewKeyRegistry()
	require.NoError(t, r.ApplyKeybindingConfig([]config.Keybinding{
		{Scope: scopeClock, Action: string(actionLap), Keys: []string{"L", "enter"}},
	}))
	require.Equal(t, actionLap, r.Lookup("enter", scopeClock).Action)
	require.Equal(t, actionLap, r.Lookup("L", scopeClock).Action)
	require.Nil(t, r.LookupScoped("l", scopeClock))

	help := r.HelpBindings(scopeClock)
	require.Len(t, help, 3)
	require.Equal(t, "L", help[1].Help().Key)
}

func TestApplyKeybindingConfigErrors(t *testing.T) {
	cases := map[string][]config.Keybinding{
		"missing scope":  {{Action: "lap", Keys: []string{"x"}}},
		"missing action": {{Scope: scopeClock, Keys: []string{"x"}}},
		"missing keys":   {{Scope: scopeClock, Action: "lap"}},
		"unknown scope":  {{Scope: "settings", Action: "lap", Keys: []string{"x"}}},
		"unknown action": {{Scope: scopeClock, Action: "fly", Keys: []string{"x"}}},
		"duplicate": {
			{Scope: scopeClock, Action: "lap", Keys: []string{"x"}},
			{Scope: scopeClock, Action: "lap", Keys: []string{"y"}},
		},
		"conflict": {{Scope: scopeClock, Action: "lap", Keys: []string{"r"}}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			require.Error(t, NewKeyRegistry().ApplyKeybindingConfig(items))
		})
	}
}
