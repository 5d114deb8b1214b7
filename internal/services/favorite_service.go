package services

import (
	"errors"

	"ardhi/internal/models"
	"ardhi/internal/repositories"
)

var (
	ErrAlreadyFavorite  = errors.New("already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteService interface {
	Add(userID int, landID int64) (*models.Favorite, error)
	Remove(userID int, landID int64) error
	ListByUser(userID int) ([]*models.Favorite, error)
}

type favoriteService struct {
	repo     repositories.FavoriteRepository
	landRepo repositories.LandRepository
}

func NewFavoriteService(repo repositories.FavoriteRepository, landRepo repositories.LandRepository) FavoriteService {
	return &favoriteService{repo: repo, landRepo: landRepo}
}

func (s *favoriteService) Add(userID int, landID int64) (*models.Favorite, error) {
	land, err := s.landRepo.GetByID(landID)
	if err != nil {
		return nil, err
	}
	if land == nil {
		return nil, ErrLandNotFound
	}

	exists, err := s.repo.Exists(userID, landID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	fav, err := s.repo.Create(userID, landID)
	if err != nil {
		// гонка двух одинаковых запросов упирается в уникальный индекс
		if errors.Is(err, repositories.ErrDuplicateFavorite) {
			return nil, ErrAlreadyFavorite
		}
		return nil, err
	}
	return fav, nil
}

func (s *favoriteService) Remove(userID int, landID int64) error {
	ok, err := s.repo.Delete(userID, landID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFavoriteNotFound
	}
	return nil
}

func (s *favoriteService) ListByUser(userID int) ([]*models.Favorite, error) {
	return s.repo.ListByUser(userID)
}
