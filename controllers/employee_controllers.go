package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nalaku/printshop-app/models"
	"github.com/nalaku/printshop-app/utils"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetAllEmployees -> daftar karyawan
func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.DB.Preload("User").Order("name ASC").Find(&employees).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

// CreateEmployee -> Menambahkan karyawan, opsional link ke akun user
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	type reqBody struct {
		Name     string `json:"name" binding:"required"`
		Position string `json:"position" binding:"required"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		UserID   *uint  `json:"user_id"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.UserID != nil {
		var user models.User
		if err := ec.DB.First(&user, *req.UserID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
	}

	employee := models.Employee{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
		UserID:   req.UserID,
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New employee created (ID=%d, position=%s)", employee.ID, employee.Position)

	utils.RespondJSON(c, http.StatusCreated, "Employee created", employee)
}

// GetEmployeeByID -> detail 1 karyawan
func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	idStr := c.Param("employee_id")
	id, _ := strconv.Atoi(idStr)

	var employee models.Employee
	if err := ec.DB.Preload("User").First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

// UpdateEmployee -> Update data karyawan
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	idStr := c.Param("employee_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		Name     *string `json:"name"`
		Position *string `json:"position"`
		Email    *string `json:"email"`
		Phone    *string `json:"phone"`
		UserID   *uint   `json:"user_id"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.UserID != nil {
		employee.UserID = req.UserID
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee updated", employee)
}

// DeleteEmployee -> Menghapus karyawan
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	idStr := c.Param("employee_id")
	id, _ := strconv.Atoi(idStr)

	if err := ec.DB.Delete(&models.Employee{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Employee deleted", gin.H{"employee_id": id})
}
