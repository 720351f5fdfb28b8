package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jayelcee/internhq/dtr"
	"github.com/jayelcee/internhq/model"
	"github.com/jayelcee/internhq/store"
	"github.com/jayelcee/internhq/utils"
	"github.com/jayelcee/internhq/web/common"
	"github.com/jayelcee/internhq/web/middlewares"
)

type InternEndpoint struct {
	Handler
}

func RegisterInterns(r *gin.RouterGroup, admin *gin.RouterGroup, base Handler) {
	endpoint := &InternEndpoint{Handler: base}
	r.GET("/interns/:id/progress", endpoint.Progress)

	admin.GET("/interns", endpoint.List)
	admin.POST("/interns", endpoint.Create)
	admin.GET("/interns/:id", endpoint.Get)
	admin.PUT("/interns/:id", endpoint.Update)
	admin.DELETE("/interns/:id", endpoint.Archive)
}

func (ep *InternEndpoint) List(c *gin.Context) {
	interns, err := ep.GetStore(c).ListInterns(c.Query("status"))
	if err != nil {
		RespondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.NewSearchResponse(interns, int64(len(interns))))
}

type InternCreateDTO struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	FirstName  string  `json:"firstName" binding:"required"`
	LastName   string  `json:"lastName" binding:"required"`
	School     string  `json:"school"`
	Supervisor string  `json:"supervisor"`
	BadgeTag   *string `json:"badgeTag,omitempty"`

	RequiredHours            float64          `json:"requiredHours" binding:"required,gt=0"`
	DailyRequiredHours       float64          `json:"dailyRequiredHours"`
	MaxStandardOvertimeHours float64          `json:"maxStandardOvertimeHours"`
	StartDate                *common.DateOnly `json:"startDate,omitempty"`
}

func (ep *InternEndpoint) Create(c *gin.Context) {
	var dto InternCreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	user := model.User{
		Email:                    dto.Email,
		PasswordHash:             string(hash),
		FirstName:                dto.FirstName,
		LastName:                 dto.LastName,
		Role:                     model.RoleIntern,
		School:                   dto.School,
		Supervisor:               dto.Supervisor,
		BadgeTag:                 dto.BadgeTag,
		RequiredHours:            dto.RequiredHours,
		DailyRequiredHours:       dto.DailyRequiredHours,
		MaxStandardOvertimeHours: dto.MaxStandardOvertimeHours,
		Status:                   model.UserActive,
	}
	if dto.StartDate != nil {
		start := dto.StartDate.Time
		user.StartDate = &start
	}

	if err := ep.GetStore(c).CreateUser(&user); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(user))
}

func (ep *InternEndpoint) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	user, err := ep.GetStore(c).FindUserByID(id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(user))
}

type InternUpdateDTO struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	School     *string `json:"school,omitempty"`
	Supervisor *string `json:"supervisor,omitempty"`
	BadgeTag   *string `json:"badgeTag,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=active completed archived"`

	RequiredHours            *float64 `json:"requiredHours,omitempty"`
	DailyRequiredHours       *float64 `json:"dailyRequiredHours,omitempty"`
	MaxStandardOvertimeHours *float64 `json:"maxStandardOvertimeHours,omitempty"`
}

func (ep *InternEndpoint) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var dto InternUpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	updates := map[string]interface{}{}
	set := func(col string, v interface{}) { updates[col] = v }
	if dto.FirstName != nil {
		set("first_name", *dto.FirstName)
	}
	if dto.LastName != nil {
		set("last_name", *dto.LastName)
	}
	if dto.School != nil {
		set("school", *dto.School)
	}
	if dto.Supervisor != nil {
		set("supervisor", *dto.Supervisor)
	}
	if dto.BadgeTag != nil {
		set("badge_tag", *dto.BadgeTag)
	}
	if dto.Status != nil {
		set("status", *dto.Status)
	}
	if dto.RequiredHours != nil {
		set("required_hours", *dto.RequiredHours)
	}
	if dto.DailyRequiredHours != nil {
		set("daily_required_hours", *dto.DailyRequiredHours)
	}
	if dto.MaxStandardOvertimeHours != nil {
		set("max_standard_overtime_hours", *dto.MaxStandardOvertimeHours)
	}

	if err := ep.GetStore(c).UpdateUser(id, updates); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

func (ep *InternEndpoint) Archive(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := ep.GetStore(c).ArchiveUser(id); err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}

type ProgressDTO struct {
	RequiredHours  float64 `json:"requiredHours"`
	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	ExtendedHours  float64 `json:"extendedHours"`
	CountedHours   float64 `json:"countedHours"`
	RemainingHours float64 `json:"remainingHours"`
	Completed      bool    `json:"completed"`
}

// Progress sums an intern's whole record against the program requirement.
// Only approved overtime counts toward completion.
func (ep *InternEndpoint) Progress(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	claims := middlewares.CurrentIdentity(c)
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		c.JSON(http.StatusForbidden, common.NewErrorResponse("not your record"))
		return
	}

	dto, err := internProgress(ep.GetStore(c), id)
	if err != nil {
		RespondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(dto))
}

func internProgress(st *store.Store, userID uint) (*ProgressDTO, error) {
	user, err := st.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	logs, err := st.AllTimeLogs(userID)
	if err != nil {
		return nil, err
	}

	dailyRequired, maxStandardOT := user.DailyPolicy()
	policy := dtr.Policy{DailyRequiredHours: dailyRequired, MaxStandardOvertimeHours: maxStandardOT}

	dto := &ProgressDTO{RequiredHours: user.RequiredHours}
	byDate := utils.GroupBy(logs, func(l model.TimeLog) string { return l.Date })
	for _, dayLogs := range byDate {
		counted := utils.Filter(dayLogs, func(l model.TimeLog) bool {
			// Rejected overtime never counts; pending waits for a decision.
			return l.LogType == model.LogTypeRegular || l.OvertimeStatus == model.StatusApproved
		})
		day := dtr.BuildDay(dayLogs[0].Date, counted, nil, policy)
		dto.RegularHours += day.RegularHours
		dto.OvertimeHours += day.OvertimeHours
		dto.ExtendedHours += day.ExtendedOvertimeHours
	}

	dto.CountedHours = dtr.TruncateHours(dto.RegularHours + dto.OvertimeHours + dto.ExtendedHours)
	dto.RemainingHours = dtr.TruncateHours(dto.RequiredHours - dto.CountedHours)
	dto.Completed = dto.CountedHours >= dto.RequiredHours && dto.RequiredHours > 0
	return dto, nil
}
