package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ardhi/internal/models"
	"ardhi/internal/services"
)

type FavoriteHandler struct {
	service services.FavoriteService
}

func NewFavoriteHandler(service services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// @Summary      Добавить участок в избранное
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        land_id  path      int  true  "ID участка"
// @Success      201      {object}  models.Favorite
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /favorites/{land_id} [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	landID, err := strconv.ParseInt(c.Param("land_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}
	userID, _ := getUserAndRole(c)

	fav, err := h.service.Add(userID, landID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Land not found"})
		case errors.Is(err, services.ErrAlreadyFavorite):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already in favorites"})
		default:
			log.Printf("[favorites][add] userID=%d landID=%d: %v", userID, landID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not add favorite"})
		}
		return
	}
	c.JSON(http.StatusCreated, fav)
}

// @Summary      Убрать участок из избранного
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Param        land_id  path      int  true  "ID участка"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /favorites/{land_id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	landID, err := strconv.ParseInt(c.Param("land_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}
	userID, _ := getUserAndRole(c)

	if err := h.service.Remove(userID, landID); err != nil {
		if errors.Is(err, services.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Favorite not found"})
			return
		}
		log.Printf("[favorites][remove] userID=%d landID=%d: %v", userID, landID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

// @Summary      Избранное текущего пользователя
// @Tags         Favorites
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.Favorite
// @Failure      500  {object}  map[string]string
// @Router       /favorites [get]
func (h *FavoriteHandler) ListMine(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	favs, err := h.service.ListByUser(userID)
	if err != nil {
		log.Printf("[favorites][list] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not list favorites"})
		return
	}
	if favs == nil {
		favs = []*models.Favorite{}
	}
	c.JSON(http.StatusOK, favs)
}
