package story

import (
	"fmt"
	"strings"

	types "github.com/andora-ai/andora-backend/internal/domain"
	brandtypes "github.com/andora-ai/andora-backend/internal/domain/brand"
)

// InferWorkMode resolves a character's work mode: the declared mode wins,
// otherwise it is inferred from the free-text location.
func InferWorkMode(c *types.Character) string {
	if mode := strings.ToLower(strings.TrimSpace(c.WorkMode)); mode != "" {
		return mode
	}
	loc := strings.ToLower(c.Location)
	switch {
	case strings.Contains(loc, "remote"), strings.Contains(loc, "virtual"):
		return brandtypes.WorkModeRemote
	case strings.Contains(loc, "hybrid"), strings.Contains(loc, "flexible"):
		return brandtypes.WorkModeHybrid
	case strings.Contains(loc, "travel"), strings.Contains(loc, "anywhere"):
		return brandtypes.WorkModeFlexible
	default:
		return brandtypes.WorkModeOnsite
	}
}

// CanInteract decides whether two work modes may share a scene. The single
// hard exclusion is remote with onsite; everything else is permissive.
func CanInteract(modeA, modeB string) bool {
	a := strings.ToLower(strings.TrimSpace(modeA))
	b := strings.ToLower(strings.TrimSpace(modeB))
	if a == brandtypes.WorkModeFlexible || b == brandtypes.WorkModeFlexible ||
		a == brandtypes.WorkModeHybrid || b == brandtypes.WorkModeHybrid {
		return true
	}
	if a == b {
		return true
	}
	if (a == brandtypes.WorkModeRemote && b == brandtypes.WorkModeOnsite) ||
		(a == brandtypes.WorkModeOnsite && b == brandtypes.WorkModeRemote) {
		return false
	}
	return true
}

// WorkModeGroups partitions a roster by where its members can plausibly
// appear: hybrid and flexible characters land in both groups.
type WorkModeGroups struct {
	OnsiteCentric []*types.Character
	RemoteCentric []*types.Character
}

func SplitWorkModeGroups(cast []*types.Character) WorkModeGroups {
	var g WorkModeGroups
	for _, c := range cast {
		if c == nil {
			continue
		}
		switch InferWorkMode(c) {
		case brandtypes.WorkModeOnsite:
			g.OnsiteCentric = append(g.OnsiteCentric, c)
		case brandtypes.WorkModeRemote:
			g.RemoteCentric = append(g.RemoteCentric, c)
		default:
			g.OnsiteCentric = append(g.OnsiteCentric, c)
			g.RemoteCentric = append(g.RemoteCentric, c)
		}
	}
	return g
}

// ValidatePairing checks every pair in a proposed cast list and fails on the
// first incompatible one, naming both characters. A list of zero or one
// characters is trivially valid.
func ValidatePairing(cast []*types.Character) error {
	for i := 0; i < len(cast); i++ {
		for j := i + 1; j < len(cast); j++ {
			a, b := cast[i], cast[j]
			if a == nil || b == nil {
				continue
			}
			modeA, modeB := InferWorkMode(a), InferWorkMode(b)
			if !CanInteract(modeA, modeB) {
				return fmt.Errorf("characters %q (%s) and %q (%s) cannot appear together",
					a.DisplayName(), modeA, b.DisplayName(), modeB)
			}
		}
	}
	return nil
}
