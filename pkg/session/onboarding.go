package session

import (
	"context"

	"github.com/aretw0/avyna/pkg/core"
)

const (
	OnboardingKey     = "onboard-storage"
	onboardingVersion = 0
)

// Progress tracks how far the user got through the welcome screens.
type Progress struct {
	Step int  `json:"step"`
	Seen bool `json:"seen"`
}

type onboardingState struct {
	HasSeen Progress `json:"hasSeen"`
}

// Onboarding is the typed view of the welcome flow state.
type Onboarding struct {
	slot *Slot[onboardingState]
}

func NewOnboarding(store core.KeyValueStore) *Onboarding {
	return &Onboarding{
		slot: NewSlot(store, OnboardingKey, onboardingVersion, onboardingState{HasSeen: Progress{Step: 1}}),
	}
}

func (o *Onboarding) HasSeen(ctx context.Context) (Progress, error) {
	st, err := o.slot.Load(ctx)
	return st.HasSeen, err
}

func (o *Onboarding) SetHasSeen(ctx context.Context, p Progress) error {
	return o.slot.Save(ctx, onboardingState{HasSeen: p})
}
