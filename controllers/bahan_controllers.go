package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

type BahanController struct {
	DB *gorm.DB
}

func NewBahanController(db *gorm.DB) *BahanController {
	return &BahanController{DB: db}
}

type bahanRequest struct {
	Name             string `json:"name" binding:"required"`
	HargaEndCustomer int64  `json:"harga_end_customer"`
	HargaRetail      int64  `json:"harga_retail"`
	HargaGrosir      int64  `json:"harga_grosir"`
	HargaReseller    int64  `json:"harga_reseller"`
	HargaCorporate   int64  `json:"harga_corporate"`
}

func (r bahanRequest) validate() error {
	if r.HargaEndCustomer < 0 || r.HargaRetail < 0 || r.HargaGrosir < 0 ||
		r.HargaReseller < 0 || r.HargaCorporate < 0 {
		return ErrNegativePrice
	}
	return nil
}

// GetAllBahan -> katalog bahan lengkap dengan lima harga per level
func (bc *BahanController) GetAllBahan(c *gin.Context) {
	var bahans []models.Bahan
	if err := bc.DB.Order("name ASC").Find(&bahans).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bahan", bahans)
}

// CreateBahan -> Menambahkan bahan baru ke katalog
func (bc *BahanController) CreateBahan(c *gin.Context) {
	var req bahanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bahan := models.Bahan{
		Name:             req.Name,
		HargaEndCustomer: req.HargaEndCustomer,
		HargaRetail:      req.HargaRetail,
		HargaGrosir:      req.HargaGrosir,
		HargaReseller:    req.HargaReseller,
		HargaCorporate:   req.HargaCorporate,
	}

	if err := bc.DB.Create(&bahan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New bahan created (ID=%d, name=%s)", bahan.ID, bahan.Name)

	utils.RespondJSON(c, http.StatusCreated, "Bahan created", bahan)
}

// GetBahanByID -> detail 1 bahan
func (bc *BahanController) GetBahanByID(c *gin.Context) {
	idStr := c.Param("bahan_id")
	id, _ := strconv.Atoi(idStr)

	var bahan models.Bahan
	if err := bc.DB.First(&bahan, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bahan detail", bahan)
}

// UpdateBahan -> Update harga bahan. Total order yang memakai bahan ini
// ikut berubah karena total selalu dihitung ulang dari katalog.
func (bc *BahanController) UpdateBahan(c *gin.Context) {
	idStr := c.Param("bahan_id")
	id, _ := strconv.Atoi(idStr)

	var req bahanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var bahan models.Bahan
	if err := bc.DB.First(&bahan, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	bahan.Name = req.Name
	bahan.HargaEndCustomer = req.HargaEndCustomer
	bahan.HargaRetail = req.HargaRetail
	bahan.HargaGrosir = req.HargaGrosir
	bahan.HargaReseller = req.HargaReseller
	bahan.HargaCorporate = req.HargaCorporate

	if err := bc.DB.Save(&bahan).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bahan updated", bahan)
}

// DeleteBahan -> Menghapus bahan dari katalog. Item order yang masih
// menunjuk bahan ini berkontribusi 0 ke total, bukan error.
func (bc *BahanController) DeleteBahan(c *gin.Context) {
	idStr := c.Param("bahan_id")
	id, _ := strconv.Atoi(idStr)

	if err := bc.DB.Delete(&models.Bahan{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bahan deleted", gin.H{"bahan_id": id})
}

var ErrNegativePrice = &CustomError{"Harga bahan tidak boleh negatif"}
