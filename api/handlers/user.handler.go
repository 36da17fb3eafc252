package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/fopmanager/fop-api/internal/dbrepo"
	"github.com/fopmanager/fop-api/internal/ledger"
	"github.com/fopmanager/fop-api/internal/models"
	"github.com/fopmanager/fop-api/internal/utils"
)

type UserHandler struct {
	DB       *dbrepo.UserRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewUserHandler(db *dbrepo.UserRepo, infoLog *log.Logger, errorLog *log.Logger) *UserHandler {
	return &UserHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

func (u *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	// User never serializes its password back, so the payload carries it
	// in a separate field
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Role     string `json:"role" validate:"omitempty,oneof=admin seller"`
		Mobile   string `json:"mobile"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		u.errorLog.Println("ERROR_01_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		u.errorLog.Println("ERROR_02_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		u.errorLog.Println("ERROR_03_AddUser:", err)
		utils.ServerError(w, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
		Mobile:   req.Mobile,
	}
	if err := u.DB.CreateUser(r.Context(), &user); err != nil {
		u.errorLog.Println("ERROR_04_AddUser:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User added successfully"
	resp.User = &user

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (u *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	idParam := strings.TrimSpace(r.URL.Query().Get("id"))
	if idParam == "" {
		u.errorLog.Println("ERROR_01_GetUser: empty user id")
		utils.BadRequest(w, errors.New("empty user id"))
		return
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		u.errorLog.Println("ERROR_02_GetUser: invalid user id")
		utils.BadRequest(w, err)
		return
	}

	user, err := u.DB.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		u.errorLog.Println("ERROR_03_GetUser:", err)
		utils.BadRequest(w, err)
		return
	}

	var resp struct {
		Error   bool         `json:"error"`
		Status  string       `json:"status"`
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	resp.Error = false
	resp.Status = "success"
	resp.Message = "User info fetched successfully"
	resp.User = user

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (u *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := u.DB.ListUsers(r.Context())
	if err != nil {
		u.errorLog.Println("ERROR_01_ListUsers:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"error":  false,
		"status": "success",
		"users":  users,
	})
}

// UpdateUserRole changes role and status (admin only)
func (u *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     int    `json:"id" validate:"required"`
		Role   string `json:"role" validate:"required,oneof=admin seller"`
		Status string `json:"status" validate:"required,oneof=active inactive"`
	}
	if err := utils.ReadJSON(w, r, &req); err != nil {
		u.errorLog.Println("ERROR_01_UpdateUserRole:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		u.errorLog.Println("ERROR_02_UpdateUserRole:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := u.DB.UpdateUserRole(r.Context(), req.ID, req.Role, req.Status); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			utils.NotFound(w, err)
			return
		}
		u.errorLog.Println("ERROR_03_UpdateUserRole:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.Response{
		Error:   false,
		Status:  "success",
		Message: "User role updated",
	})
}
