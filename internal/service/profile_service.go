package service

import (
	"context"

	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/repository/unitofwork"
	"irene-companion-be/internal/session"
)

type IProfileService interface {
	GetProfile(ctx context.Context, sess session.Context) (*dto.GetProfileResponse, error)
	UpdateProfile(ctx context.Context, sess session.Context, request *dto.UpdateProfileRequest) (*dto.GetProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{uowFactory: uowFactory}
}

// GetProfile returns an empty profile rather than a 404 when no facts have
// been stored yet; the client treats both the same way.
func (ps *profileService) GetProfile(ctx context.Context, sess session.Context) (*dto.GetProfileResponse, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.UserProfileRepository().Get(ctx, sess.UserId())
	if err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

// UpdateProfile merges the partial update into the stored profile: empty
// fields keep their stored values and problems accumulate as a set.
func (ps *profileService) UpdateProfile(ctx context.Context, sess session.Context, request *dto.UpdateProfileRequest) (*dto.GetProfileResponse, error) {
	uow := ps.uowFactory.NewUnitOfWork(ctx)

	partial := &entity.UserProfile{
		Name:     request.Name,
		Behavior: request.Behavior,
		Tone:     request.Tone,
		Problems: request.Problems,
	}

	profile, err := uow.UserProfileRepository().Merge(ctx, sess.UserId(), partial)
	if err != nil {
		return nil, err
	}

	return toProfileResponse(profile), nil
}

func toProfileResponse(profile *entity.UserProfile) *dto.GetProfileResponse {
	response := &dto.GetProfileResponse{Problems: []string{}}
	if profile == nil {
		return response
	}

	response.Name = profile.Name
	response.Behavior = profile.Behavior
	response.Tone = profile.Tone
	if len(profile.Problems) > 0 {
		response.Problems = profile.Problems
	}
	return response
}
