package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ardhi/internal/models"
	"ardhi/internal/services"
)

type LandHandler struct {
	service   services.LandService
	filesRoot string
}

func NewLandHandler(service services.LandService, filesRoot string) *LandHandler {
	return &LandHandler{service: service, filesRoot: filepath.Clean(filesRoot)}
}

// @Summary      Создание объявления
// @Description  Multipart: поля участка + файлы images, title_deed_copy, user_id_copy
// @Tags         Lands
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  models.Land
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /lands [post]
func (h *LandHandler) Create(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized: User ID missing"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title is required and must be a string"})
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price is required and must be a positive number"})
		return
	}

	sizeAcres, err := strconv.ParseFloat(c.PostForm("size_acres"), 64)
	if err != nil || sizeAcres <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Size (acres) is required and must be a positive number"})
		return
	}

	county := strings.TrimSpace(c.PostForm("county"))
	if county == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Location with county is required"})
		return
	}

	var lat, lng *float64
	if v := c.PostForm("lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < -90 || f > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Latitude must be between -90 and 90"})
			return
		}
		lat = &f
	}
	if v := c.PostForm("lng"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < -180 || f > 180 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Longitude must be between -180 and 180"})
			return
		}
		lng = &f
	}

	land := &models.Land{
		Title:       title,
		Description: strings.TrimSpace(c.PostForm("description")),
		Price:       price,
		SizeAcres:   sizeAcres,
		County:      county,
		SubCounty:   strings.TrimSpace(c.PostForm("sub_county")),
		Lat:         lat,
		Lng:         lng,
		OwnerID:     userID,
	}

	// файлы опциональны; сохраняем под отметкой времени, как и загрузчик оригинала
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for i, file := range form.File["images"] {
			path, err := h.saveUpload(c, file, i)
			if err != nil {
				log.Printf("[lands][create] save image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not store uploaded file"})
				return
			}
			land.Images = append(land.Images, path)
		}
		if files := form.File["title_deed_copy"]; len(files) > 0 {
			path, err := h.saveUpload(c, files[0], 0)
			if err != nil {
				log.Printf("[lands][create] save title deed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not store uploaded file"})
				return
			}
			land.TitleDeedCopy = path
		}
		if files := form.File["user_id_copy"]; len(files) > 0 {
			path, err := h.saveUpload(c, files[0], 0)
			if err != nil {
				log.Printf("[lands][create] save id copy: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not store uploaded file"})
				return
			}
			land.UserIDCopy = path
		}
	}

	if err := h.service.Create(land); err != nil {
		if errors.Is(err, services.ErrOwnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("[lands][create] userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create land"})
		return
	}

	c.JSON(http.StatusCreated, land)
}

func (h *LandHandler) saveUpload(c *gin.Context, file *multipart.FileHeader, seq int) (string, error) {
	name := fmt.Sprintf("%d_%d%s", time.Now().UnixNano(), seq, filepath.Ext(file.Filename))
	dst := filepath.Join(h.filesRoot, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return filepath.ToSlash(dst), nil
}

// @Summary      Список объявлений
// @Description  Фильтры: county, status, min_price, max_price; limit/offset опциональны, без них отдаётся вся выборка
// @Tags         Lands
// @Produce      json
// @Param        county     query  string  false  "Округ"
// @Param        status     query  string  false  "available | pending | sold"
// @Param        min_price  query  number  false  "Цена от"
// @Param        max_price  query  number  false  "Цена до"
// @Param        limit      query  int     false  "Размер страницы (0 = без ограничения)"
// @Param        offset     query  int     false  "Смещение"
// @Success      200  {array}   models.Land
// @Failure      500  {object}  map[string]string
// @Router       /lands [get]
func (h *LandHandler) List(c *gin.Context) {
	filter := models.LandFilter{
		County: strings.TrimSpace(c.Query("county")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	lands, err := h.service.List(filter)
	if err != nil {
		log.Printf("[lands][list] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not list lands"})
		return
	}
	if lands == nil {
		lands = []*models.Land{}
	}
	c.JSON(http.StatusOK, lands)
}

// @Summary      Объявление по id
// @Tags         Lands
// @Produce      json
// @Param        id   path      int  true  "ID участка"
// @Success      200  {object}  models.Land
// @Failure      404  {object}  map[string]string
// @Router       /lands/{id} [get]
func (h *LandHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}

	land, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrLandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Land not found"})
			return
		}
		log.Printf("[lands][get] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not load land"})
		return
	}
	c.JSON(http.StatusOK, land)
}

// @Summary      Обновление объявления
// @Description  Только владелец записи
// @Tags         Lands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int                true  "ID участка"
// @Param        upd  body      models.LandUpdate  true  "Изменяемые поля"
// @Success      200  {object}  models.Land
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /lands/{id} [put]
func (h *LandHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}
	userID, _ := getUserAndRole(c)

	var upd models.LandUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if upd.Price != nil && *upd.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Price is required and must be a positive number"})
		return
	}
	if upd.SizeAcres != nil && *upd.SizeAcres <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Size (acres) is required and must be a positive number"})
		return
	}

	land, err := h.service.Update(id, userID, &upd)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLandNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Land not found"})
		case errors.Is(err, services.ErrNotLandOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to update this land"})
		case errors.Is(err, services.ErrBadStatus):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Status must be one of available, pending, sold"})
		default:
			log.Printf("[lands][update] id=%d userID=%d: %v", id, userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not update land"})
		}
		return
	}
	c.JSON(http.StatusOK, land)
}

// @Summary      Удаление объявления
// @Description  Только admin
// @Tags         Lands
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID участка"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /lands/{id} [delete]
func (h *LandHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, services.ErrLandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Land not found"})
			return
		}
		log.Printf("[lands][delete] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not delete land"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Land deleted successfully"})
}

// @Summary      PDF-брошюра объявления
// @Tags         Lands
// @Produce      application/pdf
// @Param        id   path      int  true  "ID участка"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /lands/{id}/brochure [get]
func (h *LandHandler) Brochure(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid land id"})
		return
	}

	path, err := h.service.Brochure(id)
	if err != nil {
		if errors.Is(err, services.ErrLandNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Land not found"})
			return
		}
		log.Printf("[lands][brochure] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate brochure"})
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
