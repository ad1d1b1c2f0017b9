package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-tracker/internal/access"
	domain "github.com/BruksfildServices01/clinic-tracker/internal/domain/service"
	"github.com/BruksfildServices01/clinic-tracker/internal/models"
)

// ======================================================
// LIST / GET
// ======================================================

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, actor *access.Actor) ([]models.Service, error) {
	if err := access.Check(actor, access.ViewServices); err != nil {
		return nil, err
	}
	return uc.repo.List(ctx)
}

type GetService struct {
	repo domain.Repository
}

func NewGetService(repo domain.Repository) *GetService {
	return &GetService{repo: repo}
}

func (uc *GetService) Execute(ctx context.Context, actor *access.Actor, id uint) (*models.Service, error) {
	if err := access.Check(actor, access.ViewServices); err != nil {
		return nil, err
	}
	return uc.repo.GetByID(ctx, id)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

type CreateService struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewCreateService(repo domain.Repository, log *zap.Logger) *CreateService {
	return &CreateService{repo: repo, log: log}
}

func (uc *CreateService) Execute(ctx context.Context, actor *access.Actor, in Input) (*models.Service, error) {
	if err := access.Check(actor, access.CreateService); err != nil {
		return nil, err
	}

	if err := in.validate().OrNil(); err != nil {
		return nil, err
	}

	s := &models.Service{Name: in.Name, Description: in.Description}
	if err := uc.repo.Create(ctx, s); err != nil {
		if errors.Is(err, domain.ErrNameExists) {
			return nil, duplicateName()
		}
		return nil, err
	}

	uc.log.Info("service created", zap.Uint("service_id", s.ID), zap.Uint("user_id", actor.UserID))
	return s, nil
}

type UpdateService struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewUpdateService(repo domain.Repository, log *zap.Logger) *UpdateService {
	return &UpdateService{repo: repo, log: log}
}

func (uc *UpdateService) Execute(ctx context.Context, actor *access.Actor, id uint, in Input) (*models.Service, error) {
	if err := access.Check(actor, access.UpdateService); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.validate().OrNil(); err != nil {
		return nil, err
	}

	s.Name = in.Name
	s.Description = in.Description

	if err := uc.repo.Update(ctx, s); err != nil {
		if errors.Is(err, domain.ErrNameExists) {
			return nil, duplicateName()
		}
		return nil, err
	}

	uc.log.Info("service updated", zap.Uint("service_id", s.ID), zap.Uint("user_id", actor.UserID))
	return s, nil
}

// ======================================================
// DELETE
// ======================================================

// DeleteService refuses with domain.ErrInUse while appointments reference the service.
type DeleteService struct {
	repo domain.Repository
	log  *zap.Logger
}

func NewDeleteService(repo domain.Repository, log *zap.Logger) *DeleteService {
	return &DeleteService{repo: repo, log: log}
}

func (uc *DeleteService) Execute(ctx context.Context, actor *access.Actor, id uint) error {
	if err := access.Check(actor, access.DeleteService); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.log.Info("service deleted", zap.Uint("service_id", id), zap.Uint("user_id", actor.UserID))
	return nil
}
