package story

import (
	"strings"
	"testing"

	types "github.com/andora-ai/andora-backend/internal/domain"
)

func TestCanInteract(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{types.WorkModeOnsite, types.WorkModeRemote, false},
		{types.WorkModeRemote, types.WorkModeOnsite, false},
		{types.WorkModeHybrid, types.WorkModeRemote, true},
		{types.WorkModeFlexible, types.WorkModeOnsite, true},
		{types.WorkModeOnsite, types.WorkModeOnsite, true},
		{types.WorkModeRemote, types.WorkModeRemote, true},
		{types.WorkModeHybrid, types.WorkModeFlexible, true},
		{"", types.WorkModeOnsite, true}, // unknown modes default permissive
	}
	for _, tc := range cases {
		if got := CanInteract(tc.a, tc.b); got != tc.want {
			t.Errorf("CanInteract(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestInferWorkMode(t *testing.T) {
	cases := []struct {
		workMode string
		location string
		want     string
	}{
		{"remote", "New York HQ", types.WorkModeRemote}, // declared mode wins
		{"", "Remote (US)", types.WorkModeRemote},
		{"", "virtual office", types.WorkModeRemote},
		{"", "Hybrid - Austin", types.WorkModeHybrid},
		{"", "flexible hours, Berlin", types.WorkModeHybrid},
		{"", "travels worldwide", types.WorkModeFlexible},
		{"", "anywhere", types.WorkModeFlexible},
		{"", "London office", types.WorkModeOnsite},
		{"", "", types.WorkModeOnsite},
	}
	for _, tc := range cases {
		c := &types.Character{WorkMode: tc.workMode, Location: tc.location}
		if got := InferWorkMode(c); got != tc.want {
			t.Errorf("InferWorkMode(mode=%q, loc=%q) = %q, want %q", tc.workMode, tc.location, got, tc.want)
		}
	}
}

func TestSplitWorkModeGroups(t *testing.T) {
	onsite := &types.Character{Name: "A", WorkMode: types.WorkModeOnsite}
	remote := &types.Character{Name: "B", WorkMode: types.WorkModeRemote}
	hybrid := &types.Character{Name: "C", WorkMode: types.WorkModeHybrid}
	flexible := &types.Character{Name: "D", WorkMode: types.WorkModeFlexible}

	g := SplitWorkModeGroups([]*types.Character{onsite, remote, hybrid, flexible})
	if len(g.OnsiteCentric) != 3 {
		t.Fatalf("onsite-centric size=%d, want 3 (onsite+hybrid+flexible)", len(g.OnsiteCentric))
	}
	if len(g.RemoteCentric) != 3 {
		t.Fatalf("remote-centric size=%d, want 3 (remote+hybrid+flexible)", len(g.RemoteCentric))
	}
}

func TestValidatePairing(t *testing.T) {
	a := &types.Character{Name: "A", WorkMode: types.WorkModeOnsite}
	b := &types.Character{Name: "B", WorkMode: types.WorkModeRemote}
	c := &types.Character{Name: "C", WorkMode: types.WorkModeHybrid}

	err := ValidatePairing([]*types.Character{a, b})
	if err == nil {
		t.Fatal("onsite+remote pairing must be rejected")
	}
	if !strings.Contains(err.Error(), "A") || !strings.Contains(err.Error(), "B") {
		t.Fatalf("rejection %q must name both characters", err)
	}

	if err := ValidatePairing([]*types.Character{a, c}); err != nil {
		t.Fatalf("onsite+hybrid rejected: %v", err)
	}
	if err := ValidatePairing([]*types.Character{b, c}); err != nil {
		t.Fatalf("remote+hybrid rejected: %v", err)
	}
	if err := ValidatePairing([]*types.Character{a}); err != nil {
		t.Fatalf("single-character cast rejected: %v", err)
	}
	if err := ValidatePairing(nil); err != nil {
		t.Fatalf("empty cast rejected: %v", err)
	}
}
