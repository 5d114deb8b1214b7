package services

import (
	"errors"

	"ardhi/internal/models"
	"ardhi/internal/pdf"
	"ardhi/internal/repositories"
)

var (
	ErrLandNotFound  = errors.New("land not found")
	ErrNotLandOwner  = errors.New("not authorized to update this land")
	ErrOwnerNotFound = errors.New("user not found")
	ErrBadStatus     = errors.New("invalid status")
)

type LandService interface {
	Create(land *models.Land) error
	GetByID(id int64) (*models.Land, error)
	List(filter models.LandFilter) ([]*models.Land, error)
	Update(id int64, requesterID int, upd *models.LandUpdate) (*models.Land, error)
	Delete(id int64) error
	Brochure(id int64) (string, error)
}

type landService struct {
	repo     repositories.LandRepository
	userRepo repositories.UserRepository
	pdfGen   pdf.Generator
}

func NewLandService(repo repositories.LandRepository, userRepo repositories.UserRepository, pdfGen pdf.Generator) LandService {
	return &landService{
		repo:     repo,
		userRepo: userRepo,
		pdfGen:   pdfGen,
	}
}

func (s *landService) Create(land *models.Land) error {
	// владелец из токена обязан существовать в БД
	owner, err := s.userRepo.GetByID(land.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return ErrOwnerNotFound
	}

	if land.Status == "" {
		land.Status = models.LandStatusAvailable
	}
	if land.Images == nil {
		land.Images = []string{}
	}
	return s.repo.Create(land)
}

func (s *landService) GetByID(id int64) (*models.Land, error) {
	land, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if land == nil {
		return nil, ErrLandNotFound
	}
	return land, nil
}

func (s *landService) List(filter models.LandFilter) ([]*models.Land, error) {
	return s.repo.List(filter)
}

func (s *landService) Update(id int64, requesterID int, upd *models.LandUpdate) (*models.Land, error) {
	land, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if land == nil {
		return nil, ErrLandNotFound
	}
	if land.OwnerID != requesterID {
		return nil, ErrNotLandOwner
	}

	if upd.Title != nil {
		land.Title = *upd.Title
	}
	if upd.Description != nil {
		land.Description = *upd.Description
	}
	if upd.Price != nil {
		land.Price = *upd.Price
	}
	if upd.SizeAcres != nil {
		land.SizeAcres = *upd.SizeAcres
	}
	if upd.County != nil {
		land.County = *upd.County
	}
	if upd.SubCounty != nil {
		land.SubCounty = *upd.SubCounty
	}
	if upd.Lat != nil {
		land.Lat = upd.Lat
	}
	if upd.Lng != nil {
		land.Lng = upd.Lng
	}
	if upd.Status != nil {
		if !models.IsValidLandStatus(*upd.Status) {
			return nil, ErrBadStatus
		}
		land.Status = *upd.Status
	}

	if err := s.repo.Update(land); err != nil {
		return nil, err
	}
	return land, nil
}

func (s *landService) Delete(id int64) error {
	land, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if land == nil {
		return ErrLandNotFound
	}
	return s.repo.Delete(id)
}

func (s *landService) Brochure(id int64) (string, error) {
	land, err := s.GetByID(id)
	if err != nil {
		return "", err
	}
	data := pdf.BrochureData{
		LandID:      land.ID,
		Title:       land.Title,
		Description: land.Description,
		Price:       land.Price,
		SizeAcres:   land.SizeAcres,
		County:      land.County,
		SubCounty:   land.SubCounty,
		Status:      land.Status,
		CreatedAt:   land.CreatedAt,
	}
	if land.Owner != nil {
		data.OwnerName = land.Owner.Name
		data.OwnerPhone = land.Owner.Phone
	}
	return s.pdfGen.GenerateBrochure(data)
}
