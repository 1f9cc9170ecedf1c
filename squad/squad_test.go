package squad

import (
	"testing"

	"github.com/ironhold/endless/components"
)

func TestSquadGatherThresholdDispatchRetreat(t *testing.T) {
	s := NewSquad(1, 0, components.Position{}, 3, 0.5)
	s.AddMember(1)
	s.AddMember(2)
	if s.TryActivate(2) {
		t.Fatal("should not activate below WaveMinStart")
	}
	s.AddMember(3)
	if !s.TryActivate(3) {
		t.Fatal("should activate once member count reaches WaveMinStart")
	}
	if s.Phase != PhaseActive {
		t.Fatalf("phase = %v, want Active", s.Phase)
	}

	if s.CheckRetreat(2) {
		t.Fatal("2/3 alive should not yet trigger retreat at 50%% threshold")
	}
	if !s.CheckRetreat(1) {
		t.Fatal("1/3 alive should trigger retreat below 50%% threshold")
	}
	if s.Phase != PhaseRetreating {
		t.Fatalf("phase = %v, want Retreating", s.Phase)
	}
}

func TestSquadAddMemberIsIdempotent(t *testing.T) {
	s := NewSquad(1, 0, components.Position{}, 1, 0.5)
	s.AddMember(7)
	s.AddMember(7)
	if len(s.Members) != 1 {
		t.Fatalf("members = %v, want exactly one entry", s.Members)
	}
}

func TestSquadRemoveMember(t *testing.T) {
	s := NewSquad(1, 0, components.Position{}, 1, 0.5)
	s.AddMember(4)
	s.AddMember(5)
	s.RemoveMember(4)
	if len(s.Members) != 1 || s.Members[0] != 5 {
		t.Fatalf("members = %v, want [5]", s.Members)
	}
}

func TestSquadClearTargetIfDead(t *testing.T) {
	s := NewSquad(1, 0, components.Position{}, 1, 0.5)
	s.SetManualTarget(Target{Kind: TargetNpc, Slot: 9})
	s.ClearTargetIfDead(func(slot int32) bool { return slot != 9 })
	if s.Target.Kind != TargetNone {
		t.Fatal("target should clear once the tracked NPC is reported dead")
	}
}

func TestSquadManualTargetResetsToGathering(t *testing.T) {
	s := NewSquad(1, 0, components.Position{}, 1, 0.5)
	s.Phase = PhaseActive
	s.SetManualTarget(Target{Kind: TargetPosition, Pos: components.Position{X: 5, Y: 5}})
	if s.Phase != PhaseGathering {
		t.Fatal("assigning a new manual target should regather the wave")
	}
}

func TestAllocateSharesAggressiveLeansAttack(t *testing.T) {
	aggressive := AllocateShares(components.Aggressive | components.Bold)
	cautious := AllocateShares(components.Cautious | components.Loyal)
	if aggressive.AttackShare <= cautious.AttackShare {
		t.Fatalf("aggressive attack share %v should exceed cautious %v", aggressive.AttackShare, cautious.AttackShare)
	}
	if aggressive.AttackShare+aggressive.DefenseShare != 1 {
		t.Fatal("shares should sum to 1")
	}
}

func TestRetargetPolicyGatesByCooldown(t *testing.T) {
	p := NewRetargetPolicy(5)
	if p.Tick(2) {
		t.Fatal("should not allow retarget before cooldown elapses")
	}
	if !p.Tick(3) {
		t.Fatal("should allow retarget once cooldown elapses")
	}
	if p.Tick(1) {
		t.Fatal("cooldown should reset after firing")
	}
}

func TestKindFilterAllowsOnlyListedJobs(t *testing.T) {
	f := NewKindFilter(components.JobFighter, components.JobArcher)
	if !f.Allows(components.JobFighter) {
		t.Fatal("fighter should be allowed")
	}
	if f.Allows(components.JobFarmer) {
		t.Fatal("farmer should not be allowed")
	}
}

func TestKindFilterNilAllowsEverything(t *testing.T) {
	var f *KindFilter
	if !f.Allows(components.JobFarmer) {
		t.Fatal("a nil filter should admit any job")
	}
}
