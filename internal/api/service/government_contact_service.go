package service

import (
	"context"
	"sort"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/entity"
	"regintel/pkg/logger"
)

// GovernmentContactService defines the interface for managing contacts
// inside issuing authorities.
type GovernmentContactService interface {
	Create(ctx context.Context, req *dto.CreateGovernmentContactRequest) (*entity.GovernmentContact, error)
	GetByID(ctx context.Context, id string) (*entity.GovernmentContact, error)
	List(ctx context.Context, filter repository.GovernmentContactFilter) (*dto.GovernmentContactListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateGovernmentContactRequest) (*entity.GovernmentContact, error)
	Delete(ctx context.Context, id string) error
}

// NewGovernmentContactService creates a new government contact service.
func NewGovernmentContactService(contactRepo repository.GovernmentContactRepository, logger *logger.Logger) GovernmentContactService {
	return &governmentContactService{
		contactRepo: contactRepo,
		logger:      logger,
	}
}

type governmentContactService struct {
	contactRepo repository.GovernmentContactRepository
	logger      *logger.Logger
}

func (s *governmentContactService) Create(ctx context.Context, req *dto.CreateGovernmentContactRequest) (*entity.GovernmentContact, error) {
	contact := &entity.GovernmentContact{
		Name:          req.Name,
		Title:         req.Title,
		Department:    req.Department,
		Email:         req.Email,
		Phone:         req.Phone,
		LinkedinURL:   req.LinkedinURL,
		Role:          req.Role,
		Influence:     entity.InfluenceLevel(req.Influence),
		Notes:         req.Notes,
		OpportunityID: req.OpportunityID,
	}
	if contact.Influence == "" {
		contact.Influence = entity.InfluenceMedium
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *governmentContactService) GetByID(ctx context.Context, id string) (*entity.GovernmentContact, error) {
	return s.contactRepo.FindByID(ctx, id)
}

// List returns contacts with a department rollup and the influence
// distribution over the filtered set.
func (s *governmentContactService) List(ctx context.Context, filter repository.GovernmentContactFilter) (*dto.GovernmentContactListResponse, error) {
	contacts, err := s.contactRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	departments := make(map[string]*dto.DepartmentSummary)
	influence := make(map[string]int)
	for _, contact := range contacts {
		influence[string(contact.Influence)]++

		dept, ok := departments[contact.Department]
		if !ok {
			dept = &dto.DepartmentSummary{Department: contact.Department}
			departments[contact.Department] = dept
		}
		dept.Count++
		if contact.Influence == entity.InfluenceKeyDecisionMaker {
			dept.KeyDecisionMakers++
		}
		if contact.Email != "" || contact.Phone != "" {
			dept.WithContact++
		}
	}

	summary := make([]dto.DepartmentSummary, 0, len(departments))
	for _, dept := range departments {
		summary = append(summary, *dept)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].Department < summary[j].Department
	})

	return &dto.GovernmentContactListResponse{
		Contacts:              contacts,
		DepartmentSummary:     summary,
		InfluenceDistribution: influence,
	}, nil
}

func (s *governmentContactService) Update(ctx context.Context, id string, req *dto.UpdateGovernmentContactRequest) (*entity.GovernmentContact, error) {
	contact, err := s.contactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Title != nil {
		contact.Title = *req.Title
	}
	if req.Department != nil {
		contact.Department = *req.Department
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.LinkedinURL != nil {
		contact.LinkedinURL = *req.LinkedinURL
	}
	if req.Role != nil {
		contact.Role = *req.Role
	}
	if req.Influence != nil {
		contact.Influence = entity.InfluenceLevel(*req.Influence)
	}
	if req.Notes != nil {
		contact.Notes = *req.Notes
	}
	if req.OpportunityID != nil {
		contact.OpportunityID = req.OpportunityID
	}

	opportunity, procurements := contact.Opportunity, contact.Procurements
	contact.Opportunity = nil
	contact.Procurements = nil
	if err := s.contactRepo.Update(ctx, contact); err != nil {
		s.logger.Error("Failed to update government contact", logger.ErrorField(err), logger.Field("contact_id", id))
		return nil, err
	}
	contact.Opportunity = opportunity
	contact.Procurements = procurements

	return contact, nil
}

func (s *governmentContactService) Delete(ctx context.Context, id string) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete government contact", logger.ErrorField(err), logger.Field("contact_id", id))
		return err
	}
	return nil
}
