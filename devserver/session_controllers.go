package devserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/claudiojas/rockbandpay-table-client/models"
	"github.com/claudiojas/rockbandpay-table-client/utils"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoActiveSession = errors.New("no active session for this table")
	ErrSessionExists   = errors.New("table already has an active session")
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

// GetSessionByID -> GET /sessions/id/:session_id
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	var session models.Session
	if err := sc.DB.First(&session, "id = ?", c.Param("session_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrSessionNotFound)
		return
	}
	utils.RespondData(c, http.StatusOK, session)
}

// GetActiveSession -> GET /sessions/table/:table_id/active
func (sc *SessionController) GetActiveSession(c *gin.Context) {
	var session models.Session
	err := sc.DB.First(&session, "table_id = ? AND status = ?", c.Param("table_id"), models.SessionActive).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNoActiveSession)
		return
	}
	utils.RespondData(c, http.StatusOK, session)
}

// CreateSession -> POST /sessions. One ACTIVE session per table: a second
// create for the same table answers 409 so racing clients can re-query.
func (sc *SessionController) CreateSession(c *gin.Context) {
	type reqBody struct {
		TableID string `json:"tableId" binding:"required"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session := models.Session{
		ID:          uuid.NewString(),
		TableID:     req.TableID,
		Status:      models.SessionActive,
		TableNumber: req.TableID,
		CreatedAt:   time.Now(),
	}

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Session
		err := tx.First(&existing, "table_id = ? AND status = ?", req.TableID, models.SessionActive).Error
		if err == nil {
			return ErrSessionExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&session).Error
	})
	if errors.Is(err, ErrSessionExists) {
		utils.RespondError(c, http.StatusConflict, ErrSessionExists)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New session %s opened for table %s", session.ID, req.TableID)
	utils.RespondData(c, http.StatusCreated, session)
}
