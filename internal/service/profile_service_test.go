package service

import (
	"context"
	"testing"

	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileBeforeFirstWrite(t *testing.T) {
	store := newFakeStore()
	svc := NewProfileService(&fakeFactory{store: store})
	sess := session.Context{SessionId: uuid.New()}

	res, err := svc.GetProfile(context.Background(), sess)
	require.NoError(t, err)
	assert.Empty(t, res.Name)
	assert.NotNil(t, res.Problems)
	assert.Empty(t, res.Problems)
}

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	store := newFakeStore()
	svc := NewProfileService(&fakeFactory{store: store})
	sess := session.Context{SessionId: uuid.New()}

	_, err := svc.UpdateProfile(context.Background(), sess, &dto.UpdateProfileRequest{
		Name:     "Alex",
		Tone:     "quiet",
		Problems: []string{"insomnia"},
	})
	require.NoError(t, err)

	// Empty fields keep their stored values; problems accumulate.
	res, err := svc.UpdateProfile(context.Background(), sess, &dto.UpdateProfileRequest{
		Behavior: "more talkative",
		Problems: []string{"stress"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alex", res.Name)
	assert.Equal(t, "quiet", res.Tone)
	assert.Equal(t, "more talkative", res.Behavior)
	assert.ElementsMatch(t, []string{"insomnia", "stress"}, res.Problems)
}

func TestProfilesAreIsolatedPerSession(t *testing.T) {
	store := newFakeStore()
	svc := NewProfileService(&fakeFactory{store: store})

	first := session.Context{SessionId: uuid.New()}
	second := session.Context{SessionId: uuid.New()}

	_, err := svc.UpdateProfile(context.Background(), first, &dto.UpdateProfileRequest{Name: "Alex"})
	require.NoError(t, err)

	res, err := svc.GetProfile(context.Background(), second)
	require.NoError(t, err)
	assert.Empty(t, res.Name)
}
